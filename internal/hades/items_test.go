package hades

import (
	"testing"

	mw "github.com/polycosmos/hades-world/internal/multiworld"
)

func TestItemIDsUniqueAndNonZero(t *testing.T) {
	seen := make(map[int64]string)
	for name, data := range ItemTable() {
		if data.Code == mw.EventID {
			t.Fatalf("item %s uses the event id", name)
		}
		if data.Name != name {
			t.Fatalf("item %s is stored under %s", data.Name, name)
		}
		if prev, ok := seen[data.Code]; ok {
			t.Fatalf("items %s and %s share id %d", prev, name, data.Code)
		}
		seen[data.Code] = name
	}
}

func TestLocationIDsUniqueAndNonZero(t *testing.T) {
	seen := make(map[int64]string)
	for name, id := range AllLocationsTable() {
		if id == mw.EventID {
			t.Fatalf("location %s uses the event id", name)
		}
		if prev, ok := seen[id]; ok {
			t.Fatalf("locations %s and %s share id %d", prev, name, id)
		}
		seen[id] = name
	}
}

func TestFilteredLocationTablesAgreeWithStatic(t *testing.T) {
	static := AllLocationsTable()
	for _, o := range optionMatrix() {
		for name, id := range LocationTableForOptions(o) {
			want, ok := static[name]
			if !ok {
				t.Fatalf("%s: location %s missing from static table", describe(o), name)
			}
			if want != id {
				t.Fatalf("%s: location %s id %d, static table has %d", describe(o), name, id, want)
			}
		}
	}
}

func TestEventLocationsAreNotInStaticTable(t *testing.T) {
	static := AllLocationsTable()
	for _, o := range optionMatrix() {
		for _, ev := range eventPairsForOptions(o) {
			if _, ok := static[ev.Location]; ok {
				t.Fatalf("event location %s has an id", ev.Location)
			}
			if _, ok := itemTable[ev.Item]; ok {
				t.Fatalf("event item %s has an id", ev.Item)
			}
		}
	}
}

func TestPactDefaultsWithinMaxLevel(t *testing.T) {
	total := 0
	for _, p := range Pacts() {
		if p.Default < 0 || p.Default > p.MaxLevel {
			t.Fatalf("pact %s default %d outside 0..%d", p.Item, p.Default, p.MaxLevel)
		}
		total += p.Default
	}
	if got := NumberOfPactItems(DefaultOptions()); got != total {
		t.Fatalf("expected %d default pact items, got %d", total, got)
	}
}

func TestStoreRequirementsResolve(t *testing.T) {
	for _, s := range StoreEntries() {
		if s.Requires == "" {
			continue
		}
		data, ok := itemTable[s.Requires]
		if !ok {
			t.Fatalf("store entry %s requires unknown item %s", s.Name, s.Requires)
		}
		if !data.Classification.IsProgression() {
			t.Fatalf("store entry %s requires %s, which is not progression", s.Name, s.Requires)
		}
	}
}

func TestFateRequirementsResolve(t *testing.T) {
	for _, f := range Fates() {
		if f.StoreItem != "" {
			if _, ok := itemTable[f.StoreItem]; !ok {
				t.Fatalf("fate %s needs unknown store item %s", f.Name, f.StoreItem)
			}
		}
		for _, k := range f.Keepsakes {
			if _, ok := itemTable[k]; !ok {
				t.Fatalf("fate %s needs unknown keepsake %s", f.Name, k)
			}
		}
	}
}

func TestPactPoolAmountsFollowOptions(t *testing.T) {
	o := DefaultOptions()
	o.PactAmounts["HardLaborPactLevel"] = 5
	o.PactAmounts["PersonalLiabilityPactLevel"] = 0

	amounts := PactPoolAmounts(o)
	if amounts["HardLaborPactLevel"] != 5 {
		t.Fatalf("expected 5 hard labor items, got %d", amounts["HardLaborPactLevel"])
	}
	if amounts["PersonalLiabilityPactLevel"] != 0 {
		t.Fatalf("expected no personal liability items, got %d", amounts["PersonalLiabilityPactLevel"])
	}
	sum := 0
	for _, n := range amounts {
		sum += n
	}
	if sum != NumberOfPactItems(o) {
		t.Fatalf("pool amounts sum to %d, pact total is %d", sum, NumberOfPactItems(o))
	}
}
