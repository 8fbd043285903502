package hades

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	mw "github.com/polycosmos/hades-world/internal/multiworld"
)

// optionMatrix covers every location system against the sanity toggles.
func optionMatrix() []Options {
	var out []Options
	for _, system := range []int{LocationSystemRoomBased, LocationSystemScoreBased, LocationSystemRoomWeaponBased} {
		for mask := 0; mask < 16; mask++ {
			o := DefaultOptions()
			o.LocationSystem = system
			o.KeepsakeSanity = mask&1 != 0
			o.WeaponSanity = mask&2 != 0
			o.StoreSanity = mask&4 != 0
			o.FateSanity = mask&8 != 0
			if system == LocationSystemRoomWeaponBased && !o.WeaponSanity {
				continue
			}
			out = append(out, o)
		}
	}
	return out
}

func describe(o Options) string {
	return fmt.Sprintf("system=%d keepsakes=%v weapons=%v store=%v fates=%v",
		o.LocationSystem, o.KeepsakeSanity, o.WeaponSanity, o.StoreSanity, o.FateSanity)
}

// buildWorld runs the world hooks up to SetRules for a single player.
func buildWorld(t *testing.T, o Options) (*mw.MultiWorld, *World) {
	t.Helper()
	m := mw.New(42)
	m.AddPlayer(1, "Zagreus", Game)
	w := NewWorld(m, 1, o)
	for _, step := range []func() error{w.GenerateEarly, w.CreateRegions, w.CreateItems, w.SetRules} {
		if err := step(); err != nil {
			t.Fatalf("%s: %v", describe(o), err)
		}
	}
	return m, w
}

func TestPoolSizeMatchesLocations(t *testing.T) {
	for _, o := range optionMatrix() {
		m, w := buildWorld(t, o)
		open := 0
		for _, loc := range m.Locations(1) {
			if loc.Empty() {
				open++
			}
		}
		if open != len(w.LocationTable()) {
			t.Fatalf("%s: %d open locations, table has %d", describe(o), open, len(w.LocationTable()))
		}
		if got := len(m.ItemPool()); got != open {
			t.Fatalf("%s: pool has %d items for %d locations", describe(o), got, open)
		}
	}
}

func TestPactItemsInPool(t *testing.T) {
	o := DefaultOptions()
	o.PactAmounts["HardLaborPactLevel"] = 5
	o.PactAmounts["TightDeadlinePactLevel"] = 0
	m, _ := buildWorld(t, o)

	counts := make(map[string]int)
	for _, item := range m.ItemPool() {
		counts[item.Name]++
	}
	total := 0
	for _, p := range Pacts() {
		if counts[p.Item] != o.PactAmounts[p.Item] {
			t.Fatalf("expected %d %s, got %d", o.PactAmounts[p.Item], p.Item, counts[p.Item])
		}
		total += counts[p.Item]
	}
	if total != NumberOfPactItems(o) {
		t.Fatalf("pool carries %d pact items, expected %d", total, NumberOfPactItems(o))
	}
}

func TestInitialWeaponIsPrecollected(t *testing.T) {
	o := DefaultOptions()
	o.InitialWeapon = 3
	m, _ := buildWorld(t, o)

	pre := m.Precollected(1)
	if len(pre) != 1 || pre[0].Name != "ShieldWeaponUnlockItem" {
		t.Fatalf("expected the shield to be precollected, got %v", pre)
	}
	for _, item := range m.ItemPool() {
		if item.Name == "ShieldWeaponUnlockItem" {
			t.Fatalf("initial weapon also placed in the pool")
		}
	}
}

func TestNoWeaponsWithoutWeaponsanity(t *testing.T) {
	o := DefaultOptions()
	o.WeaponSanity = false
	m, _ := buildWorld(t, o)
	if len(m.Precollected(1)) != 0 {
		t.Fatalf("expected nothing precollected, got %v", m.Precollected(1))
	}
	weaponItems := make(map[string]bool)
	for _, wp := range Weapons() {
		weaponItems[wp.Item] = true
	}
	for _, item := range m.ItemPool() {
		if weaponItems[item.Name] {
			t.Fatalf("weapon %s in pool without weaponsanity", item.Name)
		}
	}
}

func TestEventItemsLocked(t *testing.T) {
	m, _ := buildWorld(t, DefaultOptions())
	for loc, item := range EventItemPairs {
		l, err := m.Location(loc, 1)
		if err != nil {
			t.Fatalf("event location %s: %v", loc, err)
		}
		if l.Item == nil || l.Item.Name != item || !l.Locked {
			t.Fatalf("expected %s locked on %s, got %v", item, loc, l.Item)
		}
	}
}

func TestCreateItemUnknownSuggests(t *testing.T) {
	w := NewWorld(mw.New(1), 1, DefaultOptions())
	_, err := w.CreateItem("HardLaborPactLevl")
	if !errors.Is(err, mw.ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "HardLaborPactLevel") {
		t.Fatalf("expected a suggestion in %q", got)
	}
	if w.FillerItemName() != "Darkness" {
		t.Fatalf("expected Darkness filler, got %s", w.FillerItemName())
	}
}

func TestRoomWeaponWithoutWeaponsanityFailsEarly(t *testing.T) {
	o := DefaultOptions()
	o.LocationSystem = LocationSystemRoomWeaponBased
	o.WeaponSanity = false
	w := NewWorld(mw.New(1), 1, o)
	if err := w.GenerateEarly(); !errors.Is(err, mw.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}

func TestFillSlotData(t *testing.T) {
	_, w := buildWorld(t, DefaultOptions())
	data, err := w.FillSlotData()
	if err != nil {
		t.Fatalf("slot data: %v", err)
	}
	seed, ok := data["seed"].(string)
	if !ok || len(seed) != 16 {
		t.Fatalf("expected a 16 letter seed, got %v", data["seed"])
	}
	for _, r := range seed {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			t.Fatalf("seed %q has non-letter %q", seed, r)
		}
	}
	if data["version_check"] != PolycosmosVersion {
		t.Fatalf("expected version %s, got %v", PolycosmosVersion, data["version_check"])
	}
	for _, d := range OptionDefs() {
		v, ok := data[d.Name]
		if !ok {
			t.Fatalf("slot data missing option %s", d.Name)
		}
		if v != d.Default {
			t.Fatalf("option %s: expected default %d, got %v", d.Name, d.Default, v)
		}
	}
}

func TestOptionsRoundTripThroughValues(t *testing.T) {
	o := DefaultOptions()
	o.FillerTrapPercentage = 15
	o.PactAmounts["JurySummonsPactLevel"] = 3
	o.DeathLink = true

	back := OptionsFromValues(o.Values())
	if back.FillerTrapPercentage != 15 || back.PactAmounts["JurySummonsPactLevel"] != 3 || !back.DeathLink {
		t.Fatalf("options lost in round trip: %+v", back)
	}
	if got, want := len(o.Values().Names()), len(OptionDefs()); got != want {
		t.Fatalf("expected %d option values, got %d", want, got)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		ok     bool
	}{
		{"defaults", func(*Options) {}, true},
		{"bad weapon", func(o *Options) { o.InitialWeapon = 9 }, false},
		{"bad system", func(o *Options) { o.LocationSystem = 7 }, false},
		{"score too low", func(o *Options) {
			o.LocationSystem = LocationSystemScoreBased
			o.ScoreRewardsAmount = 10
		}, false},
		{"filler over 100", func(o *Options) {
			o.FillerHelperPercentage = 60
			o.FillerTrapPercentage = 50
		}, false},
		{"helper shares over 100", func(o *Options) {
			o.MaxHealthHelperPercentage = 70
			o.InitialMoneyHelperPercentage = 40
		}, false},
		{"too many fates", func(o *Options) {
			o.FateSanity = true
			o.FatesNeeded = len(fates) + 1
		}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := DefaultOptions()
			tc.mutate(&o)
			err := o.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid options, got %v", err)
			}
			if !tc.ok && !errors.Is(err, mw.ErrInvalidOption) {
				t.Fatalf("expected ErrInvalidOption, got %v", err)
			}
		})
	}
}

func newRegistry(t *testing.T) *mw.Registry {
	t.Helper()
	reg := mw.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	return reg
}

func TestGenerateDefaultIsBeatable(t *testing.T) {
	reg := newRegistry(t)
	res, err := mw.Generate(context.Background(), reg, []mw.PlayerConfig{{Name: "Zagreus", Game: Game}}, mw.GenerateConfig{Seed: 7})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(res.Spheres) == 0 {
		t.Fatalf("expected at least one sphere")
	}
	for _, p := range res.Placements {
		if p.Item == "" {
			t.Fatalf("location %s left empty", p.Location)
		}
	}
	if _, ok := res.SlotData[1]["seed"]; !ok {
		t.Fatalf("slot data missing seed")
	}
}

func TestGenerateOptionVariants(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]any
	}{
		{"score based", map[string]any{OptionLocationSystem: "score_based", OptionScoreRewardsAmount: 100}},
		{"room weapon based", map[string]any{OptionLocationSystem: "room_weapon_based", OptionWeaponsClearsNeeded: 3}},
		{"every sanity", map[string]any{OptionStoreSanity: true, OptionFateSanity: true, OptionKeepsakesNeeded: 10, OptionFatesNeeded: 5}},
		{"minimal heat", map[string]any{OptionHeatSystem: "minimal_heat", OptionKeepsakeSanity: false}},
		{"max pacts", maxPacts()},
	}
	reg := newRegistry(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			players := []mw.PlayerConfig{{Name: "Zagreus", Game: Game, Options: tc.options}}
			if _, err := mw.Generate(context.Background(), reg, players, mw.GenerateConfig{Seed: 11}); err != nil {
				t.Fatalf("generate: %v", err)
			}
		})
	}
}

func maxPacts() map[string]any {
	out := make(map[string]any)
	for _, p := range Pacts() {
		out[p.Option] = p.MaxLevel
	}
	return out
}

func TestGenerateTwoPlayers(t *testing.T) {
	reg := newRegistry(t)
	players := []mw.PlayerConfig{
		{Name: "Zagreus", Game: Game},
		{Name: "Melinoe", Game: Game, Options: map[string]any{OptionInitialWeapon: "Bow", OptionStoreSanity: true}},
	}
	res, err := mw.Generate(context.Background(), reg, players, mw.GenerateConfig{Seed: 99})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(res.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(res.Players))
	}
	if len(res.SlotData) != 2 {
		t.Fatalf("expected slot data for 2 players, got %d", len(res.SlotData))
	}
	if res.SlotData[1]["seed"] == res.SlotData[2]["seed"] {
		t.Fatalf("expected different slot seeds")
	}
}

func TestGenerateRoomWeaponWithoutWeaponsanity(t *testing.T) {
	reg := newRegistry(t)
	players := []mw.PlayerConfig{{Name: "Zagreus", Game: Game, Options: map[string]any{
		OptionLocationSystem: "room_weapon_based",
		OptionWeaponSanity:   false,
	}}}
	_, err := mw.Generate(context.Background(), reg, players, mw.GenerateConfig{Seed: 3})
	var genErr *mw.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected a GenerationError, got %v", err)
	}
	if genErr.Stage != mw.StageGenerateEarly {
		t.Fatalf("expected failure in %s, got %s", mw.StageGenerateEarly, genErr.Stage)
	}
	if !errors.Is(err, mw.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	reg := newRegistry(t)
	players := []mw.PlayerConfig{{Name: "Zagreus", Game: Game, Options: map[string]any{OptionFillerTrapPct: 20}}}
	a, err := mw.Generate(context.Background(), reg, players, mw.GenerateConfig{Seed: 1234})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := mw.Generate(context.Background(), reg, players, mw.GenerateConfig{Seed: 1234})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(a.Placements) != len(b.Placements) {
		t.Fatalf("placement counts differ: %d vs %d", len(a.Placements), len(b.Placements))
	}
	for i := range a.Placements {
		if a.Placements[i] != b.Placements[i] {
			t.Fatalf("placement %d differs: %+v vs %+v", i, a.Placements[i], b.Placements[i])
		}
	}
	if a.SlotData[1]["seed"] != b.SlotData[1]["seed"] {
		t.Fatalf("slot seed differs")
	}
}
