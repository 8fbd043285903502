package multiworld

import (
	"errors"
	"testing"
)

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(toyType("")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(toyType("")); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if games := reg.Games(); len(games) != 1 || games[0] != "Toy" {
		t.Fatalf("expected [Toy], got %v", games)
	}
	if _, err := reg.Lookup("Toy"); err != nil {
		t.Fatalf("lookup: %v", err)
	}
}

func TestRegistryRejectsBadTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorldType)
	}{
		{"empty game", func(wt *WorldType) { wt.Game = "" }},
		{"no constructor", func(wt *WorldType) { wt.New = nil }},
		{"event id item", func(wt *WorldType) { wt.ItemNameToID = map[string]int64{"Key": EventID} }},
		{"duplicate location id", func(wt *WorldType) {
			wt.LocationNameToID = map[string]int64{"Chest": 10, "Shelf": 10}
		}},
		{"duplicate option", func(wt *WorldType) {
			wt.Options = append(wt.Options, wt.Options[0])
		}},
		{"bad option", func(wt *WorldType) {
			wt.Options = []OptionDef{Range("coins", "Coins", "", 5, 0, 2)}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wt := toyType("")
			tc.mutate(&wt)
			if err := NewRegistry().Register(wt); err == nil {
				t.Fatalf("expected registration to fail")
			}
		})
	}
}

func TestDuplicateIDSentinel(t *testing.T) {
	err := uniqueIDs(map[string]int64{"a": 4, "b": 4})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestDataPackageChecksumStable(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(toyType("")); err != nil {
		t.Fatalf("register: %v", err)
	}
	a, err := reg.DataPackage()
	if err != nil {
		t.Fatalf("datapackage: %v", err)
	}
	b, err := reg.DataPackage()
	if err != nil {
		t.Fatalf("datapackage: %v", err)
	}
	if a["Toy"].Checksum == "" || a["Toy"].Checksum != b["Toy"].Checksum {
		t.Fatalf("checksum unstable: %q vs %q", a["Toy"].Checksum, b["Toy"].Checksum)
	}

	changed := toyType("")
	changed.Game = "Toy2"
	changed.ItemNameToID = map[string]int64{"Key": 1, "Crown": 2, "Coin": 4}
	gd, err := changed.GameData()
	if err != nil {
		t.Fatalf("game data: %v", err)
	}
	if gd.Checksum == a["Toy"].Checksum {
		t.Fatalf("expected the checksum to change with the tables")
	}
}
