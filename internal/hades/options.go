package hades

import (
	"fmt"

	mw "github.com/polycosmos/hades-world/internal/multiworld"
)

const (
	OptionInitialWeapon         = "initial_weapon"
	OptionLocationSystem        = "location_system"
	OptionScoreRewardsAmount    = "score_rewards_amount"
	OptionKeepsakeSanity        = "keepsakesanity"
	OptionWeaponSanity          = "weaponsanity"
	OptionStoreSanity           = "storesanity"
	OptionFateSanity            = "fatesanity"
	OptionHeatSystem            = "heat_system"
	OptionHadesDefeatsNeeded    = "hades_defeats_needed"
	OptionWeaponsClearsNeeded   = "weapons_clears_needed"
	OptionKeepsakesNeeded       = "keepsakes_needed"
	OptionFatesNeeded           = "fates_needed"
	OptionFillerHelperPct       = "filler_helper_percentage"
	OptionMaxHealthHelperPct    = "max_health_helper_percentage"
	OptionInitialMoneyHelperPct = "initial_money_helper_percentage"
	OptionFillerTrapPct         = "filler_trap_percentage"
	OptionIgnoreGreeceDeaths    = "ignore_greece_deaths"
	OptionStoreGiveHints        = "store_give_hints"
	OptionAutoFinishRooms       = "automatic_rooms_finish_on_hades_defeat"
	OptionDeathLink             = "death_link"
)

const (
	LocationSystemRoomBased       = 1
	LocationSystemScoreBased      = 2
	LocationSystemRoomWeaponBased = 3
)

const (
	HeatSystemReverse = 0
	HeatSystemMinimal = 1
)

const (
	minScoreRewards = 72
	maxScoreRewards = 1000
)

// hadesOptions is the option schema. Declaration order is the order slot
// data and docs list them in.
var hadesOptions = buildOptions()

func buildOptions() []mw.OptionDef {
	weaponChoices := make([]mw.ChoiceOption, len(weapons))
	for i, w := range weapons {
		weaponChoices[i] = mw.ChoiceOption{Name: w.Name, Value: w.Value}
	}

	defs := []mw.OptionDef{
		mw.Choice(OptionInitialWeapon, "Initial Weapon",
			"The weapon Zagreus starts with. With weaponsanity the other weapons are shuffled into the pool.",
			0, weaponChoices...),
		mw.Choice(OptionLocationSystem, "Location System",
			"Room based: clearing each room is a check. Score based: checks come from accumulated room score. Room weapon based: every room is a check once per weapon.",
			LocationSystemRoomBased,
			mw.ChoiceOption{Name: "room_based", Value: LocationSystemRoomBased},
			mw.ChoiceOption{Name: "score_based", Value: LocationSystemScoreBased},
			mw.ChoiceOption{Name: "room_weapon_based", Value: LocationSystemRoomWeaponBased},
		),
		mw.Range(OptionScoreRewardsAmount, "Score Rewards Amount",
			"Number of score checks when the location system is score based.",
			minScoreRewards, maxScoreRewards, minScoreRewards),
		mw.Toggle(OptionKeepsakeSanity, "Keepsakesanity",
			"Keepsakes are shuffled into the pool and giving nectar to each NPC is a check.", true),
		mw.Toggle(OptionWeaponSanity, "Weaponsanity",
			"Weapons other than the initial one are shuffled into the pool.", true),
		mw.Toggle(OptionStoreSanity, "Storesanity",
			"House Contractor purchases are shuffled into the pool and each purchase is a check.", false),
		mw.Toggle(OptionFateSanity, "Fatesanity",
			"Completing a prophecy of the Fated List is a check.", false),
		mw.Choice(OptionHeatSystem, "Heat System",
			"Reverse heat: every pact starts at the configured rank and pact items lower it. Minimal heat: pact items raise heat and are never required.",
			HeatSystemReverse,
			mw.ChoiceOption{Name: "reverse_heat", Value: HeatSystemReverse},
			mw.ChoiceOption{Name: "minimal_heat", Value: HeatSystemMinimal},
		),
		mw.Range(OptionHadesDefeatsNeeded, "Hades Defeats Needed",
			"Number of times Hades must be defeated to goal. Counted by the client.", 1, 10, 1),
		mw.Range(OptionWeaponsClearsNeeded, "Weapons Clears Needed",
			"Number of distinct weapons Hades must be defeated with to goal.", 1, len(weapons), 1),
		mw.Range(OptionKeepsakesNeeded, "Keepsakes Needed",
			"Number of keepsakes needed to goal. Only used with keepsakesanity.", 0, len(keepsakes), 0),
		mw.Range(OptionFatesNeeded, "Fates Needed",
			"Number of Fated List prophecies needed to goal. Only used with fatesanity.", 0, len(fates), 0),
	}
	for _, p := range pacts {
		defs = append(defs, mw.Range(p.Option, p.Display+" Pact Amount",
			fmt.Sprintf("Starting rank of %s, and how many %s items are in the pool.", p.Display, p.Item),
			0, p.MaxLevel, p.Default))
	}
	for _, r := range resources {
		defs = append(defs, mw.Range(r.Option, r.Display+" Pack Value",
			fmt.Sprintf("Amount of %s each %s item gives. Zero removes it from the filler pool.", r.Display, r.Item),
			0, r.Max, r.Default))
	}
	defs = append(defs,
		mw.Range(OptionFillerHelperPct, "Filler Helper Percentage",
			"Percentage of filler replaced by helpers.", 0, 100, 0),
		mw.Range(OptionMaxHealthHelperPct, "Max Health Helper Percentage",
			"Share of helpers that raise max health. The remainder not taken by money helpers boosts boons.", 0, 100, 34),
		mw.Range(OptionInitialMoneyHelperPct, "Initial Money Helper Percentage",
			"Share of helpers that give starting obols.", 0, 100, 33),
		mw.Range(OptionFillerTrapPct, "Filler Trap Percentage",
			"Percentage of filler replaced by traps.", 0, 100, 0),
		mw.Toggle(OptionIgnoreGreeceDeaths, "Ignore Greece Deaths",
			"Dying in Greece after beating Hades does not send a death link.", true),
		mw.Toggle(OptionStoreGiveHints, "Store Give Hints",
			"Viewing a store item hints what it holds.", true),
		mw.Toggle(OptionAutoFinishRooms, "Automatic Rooms Finish On Hades Defeat",
			"Defeating Hades with a weapon sends every room check of that weapon.", false),
		mw.Toggle(OptionDeathLink, "Death Link",
			"Dying kills linked players and their deaths kill you.", false),
	)
	return defs
}

// OptionDefs returns the option schema in declaration order.
func OptionDefs() []mw.OptionDef {
	out := make([]mw.OptionDef, len(hadesOptions))
	copy(out, hadesOptions)
	return out
}

// Options is the typed view of one player's resolved values.
type Options struct {
	InitialWeapon      int
	LocationSystem     int
	ScoreRewardsAmount int
	KeepsakeSanity     bool
	WeaponSanity       bool
	StoreSanity        bool
	FateSanity         bool
	HeatSystem         int
	HadesDefeatsNeeded int
	WeaponsClears      int
	KeepsakesNeeded    int
	FatesNeeded        int

	// Keyed by item name.
	PactAmounts map[string]int
	PackValues  map[string]int

	FillerHelperPercentage       int
	MaxHealthHelperPercentage    int
	InitialMoneyHelperPercentage int
	FillerTrapPercentage         int

	IgnoreGreeceDeaths bool
	StoreGiveHints     bool
	AutoFinishRooms    bool
	DeathLink          bool
}

func OptionsFromValues(v mw.Values) Options {
	o := Options{
		InitialWeapon:      v.Get(OptionInitialWeapon),
		LocationSystem:     v.Get(OptionLocationSystem),
		ScoreRewardsAmount: v.Get(OptionScoreRewardsAmount),
		KeepsakeSanity:     v.Bool(OptionKeepsakeSanity),
		WeaponSanity:       v.Bool(OptionWeaponSanity),
		StoreSanity:        v.Bool(OptionStoreSanity),
		FateSanity:         v.Bool(OptionFateSanity),
		HeatSystem:         v.Get(OptionHeatSystem),
		HadesDefeatsNeeded: v.Get(OptionHadesDefeatsNeeded),
		WeaponsClears:      v.Get(OptionWeaponsClearsNeeded),
		KeepsakesNeeded:    v.Get(OptionKeepsakesNeeded),
		FatesNeeded:        v.Get(OptionFatesNeeded),
		PactAmounts:        make(map[string]int, len(pacts)),
		PackValues:         make(map[string]int, len(resources)),

		FillerHelperPercentage:       v.Get(OptionFillerHelperPct),
		MaxHealthHelperPercentage:    v.Get(OptionMaxHealthHelperPct),
		InitialMoneyHelperPercentage: v.Get(OptionInitialMoneyHelperPct),
		FillerTrapPercentage:         v.Get(OptionFillerTrapPct),

		IgnoreGreeceDeaths: v.Bool(OptionIgnoreGreeceDeaths),
		StoreGiveHints:     v.Bool(OptionStoreGiveHints),
		AutoFinishRooms:    v.Bool(OptionAutoFinishRooms),
		DeathLink:          v.Bool(OptionDeathLink),
	}
	for _, p := range pacts {
		o.PactAmounts[p.Item] = v.Get(p.Option)
	}
	for _, r := range resources {
		o.PackValues[r.Item] = v.Get(r.Option)
	}
	return o
}

// DefaultOptions is every option at its default.
func DefaultOptions() Options {
	return OptionsFromValues(mw.DefaultValues(hadesOptions))
}

// Validate rejects option combinations that cannot produce a world.
func (o Options) Validate() error {
	if _, ok := weaponByValue(o.InitialWeapon); !ok {
		return fmt.Errorf("%w: initial weapon %d", mw.ErrInvalidOption, o.InitialWeapon)
	}
	switch o.LocationSystem {
	case LocationSystemRoomBased, LocationSystemScoreBased:
	case LocationSystemRoomWeaponBased:
		if !o.WeaponSanity {
			return fmt.Errorf("%w: room_weapon_based location system requires weaponsanity", mw.ErrInvalidOption)
		}
	default:
		return fmt.Errorf("%w: location system %d", mw.ErrInvalidOption, o.LocationSystem)
	}
	if o.ScoreRewardsAmount < minScoreRewards || o.ScoreRewardsAmount > maxScoreRewards {
		return fmt.Errorf("%w: score rewards amount %d outside %d..%d", mw.ErrInvalidOption, o.ScoreRewardsAmount, minScoreRewards, maxScoreRewards)
	}
	if o.FillerHelperPercentage+o.FillerTrapPercentage > 100 {
		return fmt.Errorf("%w: helper (%d%%) and trap (%d%%) percentages exceed 100", mw.ErrInvalidOption, o.FillerHelperPercentage, o.FillerTrapPercentage)
	}
	if o.MaxHealthHelperPercentage+o.InitialMoneyHelperPercentage > 100 {
		return fmt.Errorf("%w: max health (%d%%) and initial money (%d%%) helper shares exceed 100", mw.ErrInvalidOption, o.MaxHealthHelperPercentage, o.InitialMoneyHelperPercentage)
	}
	if o.FateSanity && o.FatesNeeded > len(fates) {
		return fmt.Errorf("%w: fates needed %d above %d fates", mw.ErrInvalidOption, o.FatesNeeded, len(fates))
	}
	return nil
}

// Values flattens the options back into name to value form, in declaration
// order.
func (o Options) Values() mw.Values {
	v := mw.NewValues()
	set := map[string]int{
		OptionInitialWeapon:         o.InitialWeapon,
		OptionLocationSystem:        o.LocationSystem,
		OptionScoreRewardsAmount:    o.ScoreRewardsAmount,
		OptionKeepsakeSanity:        boolValue(o.KeepsakeSanity),
		OptionWeaponSanity:          boolValue(o.WeaponSanity),
		OptionStoreSanity:           boolValue(o.StoreSanity),
		OptionFateSanity:            boolValue(o.FateSanity),
		OptionHeatSystem:            o.HeatSystem,
		OptionHadesDefeatsNeeded:    o.HadesDefeatsNeeded,
		OptionWeaponsClearsNeeded:   o.WeaponsClears,
		OptionKeepsakesNeeded:       o.KeepsakesNeeded,
		OptionFatesNeeded:           o.FatesNeeded,
		OptionFillerHelperPct:       o.FillerHelperPercentage,
		OptionMaxHealthHelperPct:    o.MaxHealthHelperPercentage,
		OptionInitialMoneyHelperPct: o.InitialMoneyHelperPercentage,
		OptionFillerTrapPct:         o.FillerTrapPercentage,
		OptionIgnoreGreeceDeaths:    boolValue(o.IgnoreGreeceDeaths),
		OptionStoreGiveHints:        boolValue(o.StoreGiveHints),
		OptionAutoFinishRooms:       boolValue(o.AutoFinishRooms),
		OptionDeathLink:             boolValue(o.DeathLink),
	}
	for _, p := range pacts {
		set[p.Option] = o.PactAmounts[p.Item]
	}
	for _, r := range resources {
		set[r.Option] = o.PackValues[r.Item]
	}
	for _, d := range hadesOptions {
		v.Set(d.Name, set[d.Name])
	}
	return v
}

func boolValue(b bool) int {
	if b {
		return 1
	}
	return 0
}
