package hades

import (
	mw "github.com/polycosmos/hades-world/internal/multiworld"
)

const baseItemID int64 = 666000

type ItemData struct {
	Name           string
	Code           int64
	Classification mw.Classification
}

// Pact is one Pact of Punishment condition. Each item lowers the condition
// by one rank in game, so a full set brings it back to zero.
type Pact struct {
	Item     string
	Option   string
	Display  string
	MaxLevel int
	Default  int
}

var pacts = []Pact{
	{Item: "HardLaborPactLevel", Option: "hard_labor_pact_amount", Display: "Hard Labor", MaxLevel: 5, Default: 3},
	{Item: "LastingConsequencesPactLevel", Option: "lasting_consequences_pact_amount", Display: "Lasting Consequences", MaxLevel: 4, Default: 1},
	{Item: "ConvenienceFeePactLevel", Option: "convenience_fee_pact_amount", Display: "Convenience Fee", MaxLevel: 2, Default: 1},
	{Item: "JurySummonsPactLevel", Option: "jury_summons_pact_amount", Display: "Jury Summons", MaxLevel: 3, Default: 1},
	{Item: "ExtremeMeasuresPactLevel", Option: "extreme_measures_pact_amount", Display: "Extreme Measures", MaxLevel: 4, Default: 1},
	{Item: "CalisthenicsProgramPactLevel", Option: "calisthenics_program_pact_amount", Display: "Calisthenics Program", MaxLevel: 2, Default: 1},
	{Item: "BenefitsPackagePactLevel", Option: "benefits_package_pact_amount", Display: "Benefits Package", MaxLevel: 2, Default: 1},
	{Item: "MiddleManagementPactLevel", Option: "middle_management_pact_amount", Display: "Middle Management", MaxLevel: 1, Default: 1},
	{Item: "UnderworldCustomsPactLevel", Option: "underworld_customs_pact_amount", Display: "Underworld Customs", MaxLevel: 1, Default: 1},
	{Item: "ForcedOvertimePactLevel", Option: "forced_overtime_pact_amount", Display: "Forced Overtime", MaxLevel: 2, Default: 1},
	{Item: "HeightenedSecurityPactLevel", Option: "heightened_security_pact_amount", Display: "Heightened Security", MaxLevel: 1, Default: 1},
	{Item: "RoutineInspectionPactLevel", Option: "routine_inspection_pact_amount", Display: "Routine Inspection", MaxLevel: 4, Default: 2},
	{Item: "DamageControlPactLevel", Option: "damage_control_pact_amount", Display: "Damage Control", MaxLevel: 2, Default: 1},
	{Item: "ApprovalProcessPactLevel", Option: "approval_process_pact_amount", Display: "Approval Process", MaxLevel: 2, Default: 1},
	{Item: "TightDeadlinePactLevel", Option: "tight_deadline_pact_amount", Display: "Tight Deadline", MaxLevel: 3, Default: 2},
	{Item: "PersonalLiabilityPactLevel", Option: "personal_liability_pact_amount", Display: "Personal Liability", MaxLevel: 1, Default: 1},
}

// Resource is a filler item whose in-game amount comes from a pack option.
// A pack value of zero removes the resource from the filler pool.
type Resource struct {
	Item    string
	Option  string
	Display string
	Max     int
	Default int
}

var resources = []Resource{
	{Item: "Darkness", Option: "darkness_pack_value", Display: "Darkness", Max: 10000, Default: 1000},
	{Item: "Keys", Option: "keys_pack_value", Display: "Chthonic Keys", Max: 500, Default: 3},
	{Item: "Gemstones", Option: "gemstones_pack_value", Display: "Gemstones", Max: 2500, Default: 15},
	{Item: "Diamonds", Option: "diamonds_pack_value", Display: "Diamonds", Max: 100, Default: 15},
	{Item: "TitanBlood", Option: "titan_blood_pack_value", Display: "Titan Blood", Max: 50, Default: 3},
	{Item: "Nectar", Option: "nectar_pack_value", Display: "Nectar", Max: 50, Default: 3},
	{Item: "Ambrosia", Option: "ambrosia_pack_value", Display: "Ambrosia", Max: 50, Default: 3},
}

const (
	ItemMaxHealthHelper    = "MaxHealthHelper"
	ItemBoonBoostHelper    = "BoonBoostHelper"
	ItemInitialMoneyHelper = "InitialMoneyHelper"
	ItemMoneyPunishment    = "MoneyPunishment"
	ItemHealthPunishment   = "HealthPunishment"

	defaultFiller = "Darkness"
)

var helpers = []string{ItemMaxHealthHelper, ItemBoonBoostHelper, ItemInitialMoneyHelper}
var traps = []string{ItemMoneyPunishment, ItemHealthPunishment}

type Weapon struct {
	Value int
	Name  string
	Item  string
}

var weapons = []Weapon{
	{Value: 0, Name: "Sword", Item: "SwordWeaponUnlockItem"},
	{Value: 1, Name: "Bow", Item: "BowWeaponUnlockItem"},
	{Value: 2, Name: "Spear", Item: "SpearWeaponUnlockItem"},
	{Value: 3, Name: "Shield", Item: "ShieldWeaponUnlockItem"},
	{Value: 4, Name: "Fist", Item: "FistWeaponUnlockItem"},
	{Value: 5, Name: "Gun", Item: "GunWeaponUnlockItem"},
}

func weaponByValue(v int) (Weapon, bool) {
	for _, w := range weapons {
		if w.Value == v {
			return w, true
		}
	}
	return Weapon{}, false
}

// Keepsake is given by an NPC met in Region, optionally only after a boss
// victory.
type Keepsake struct {
	Item   string
	Giver  string
	Region string
	Boss   string
}

var keepsakes = []Keepsake{
	{Item: "CerberusKeepsake", Giver: "Cerberus", Region: RegionHouse},
	{Item: "AchillesKeepsake", Giver: "Achilles", Region: RegionHouse},
	{Item: "NyxKeepsake", Giver: "Nyx", Region: RegionHouse},
	{Item: "ThanatosKeepsake", Giver: "Thanatos", Region: RegionAsphodel},
	{Item: "CharonKeepsake", Giver: "Charon", Region: RegionTartarus},
	{Item: "HypnosKeepsake", Giver: "Hypnos", Region: RegionHouse},
	{Item: "MegaeraKeepsake", Giver: "Megaera", Region: RegionTartarus, Boss: BossMeg},
	{Item: "OrpheusKeepsake", Giver: "Orpheus", Region: RegionHouse},
	{Item: "DusaKeepsake", Giver: "Dusa", Region: RegionHouse},
	{Item: "SkellyKeepsake", Giver: "Skelly", Region: RegionHouse},
	{Item: "ZeusKeepsake", Giver: "Zeus", Region: RegionTartarus},
	{Item: "PoseidonKeepsake", Giver: "Poseidon", Region: RegionTartarus},
	{Item: "AthenaKeepsake", Giver: "Athena", Region: RegionTartarus},
	{Item: "AphroditeKeepsake", Giver: "Aphrodite", Region: RegionTartarus},
	{Item: "AresKeepsake", Giver: "Ares", Region: RegionTartarus},
	{Item: "ArtemisKeepsake", Giver: "Artemis", Region: RegionTartarus},
	{Item: "DionysusKeepsake", Giver: "Dionysus", Region: RegionTartarus},
	{Item: "HermesKeepsake", Giver: "Hermes", Region: RegionAsphodel},
	{Item: "DemeterKeepsake", Giver: "Demeter", Region: RegionAsphodel},
	{Item: "ChaosKeepsake", Giver: "Chaos", Region: RegionAsphodel},
	{Item: "SisyphusKeepsake", Giver: "Sisyphus", Region: RegionTartarus},
	{Item: "EurydiceKeepsake", Giver: "Eurydice", Region: RegionAsphodel},
	{Item: "PatroclusKeepsake", Giver: "Patroclus", Region: RegionElysium},
	{Item: "PersephoneKeepsake", Giver: "Persephone", Region: RegionStyx, Boss: BossHades},
	{Item: "HadesKeepsake", Giver: "Hades", Region: RegionStyx, Boss: BossHades},
}

// StoreEntry is a House Contractor purchase.
type StoreEntry struct {
	Name     string
	Region   string
	Requires string
	Class    mw.Classification
}

func (s StoreEntry) Item() string     { return s.Name + "Item" }
func (s StoreEntry) Location() string { return s.Name + "Location" }

const (
	ItemKeepsakeCollection    = "KeepsakeCollectionItem"
	ItemFishingRod            = "FishingRodItem"
	ItemCourtMusicianSentence = "CourtMusicianSentenceItem"
)

var store = []StoreEntry{
	{Name: "FountainUpgrade1", Region: RegionHouse, Class: mw.Progression | mw.Useful},
	{Name: "FountainUpgrade2", Region: RegionHouse, Requires: "FountainUpgrade1Item", Class: mw.Useful},
	{Name: "FountainTartarus", Region: RegionTartarus, Class: mw.Useful},
	{Name: "FountainAsphodel", Region: RegionAsphodel, Class: mw.Useful},
	{Name: "FountainElysium", Region: RegionElysium, Class: mw.Useful},
	{Name: "UrnsOfWealth1", Region: RegionTartarus, Class: mw.Useful},
	{Name: "UrnsOfWealth2", Region: RegionAsphodel, Class: mw.Useful},
	{Name: "UrnsOfWealth3", Region: RegionElysium, Class: mw.Useful},
	{Name: "InfernalTrove1", Region: RegionTartarus, Class: mw.Useful},
	{Name: "InfernalTrove2", Region: RegionAsphodel, Class: mw.Useful},
	{Name: "InfernalTrove3", Region: RegionElysium, Class: mw.Useful},
	{Name: "WellShops", Region: RegionTartarus, Class: mw.Useful},
	{Name: "KeepsakeCollection", Region: RegionHouse, Class: mw.Progression},
	{Name: "DeluxeContractorDesk", Region: RegionHouse, Class: mw.Useful},
	{Name: "CourtMusicianSentence", Region: RegionHouse, Class: mw.Progression},
	{Name: "CourtMusicianStand", Region: RegionHouse, Requires: ItemCourtMusicianSentence, Class: mw.Useful},
	{Name: "FishingRod", Region: RegionAsphodel, Class: mw.Progression},
	{Name: "PitchBlackDarkness", Region: RegionHouse, Class: mw.Useful},
	{Name: "FatedKeys", Region: RegionHouse, Class: mw.Useful},
	{Name: "BrilliantGemstones", Region: RegionHouse, Class: mw.Useful},
	{Name: "VintageNectar", Region: RegionHouse, Class: mw.Useful},
	{Name: "DarkerThirst", Region: RegionHouse, Class: mw.Useful},
}

// itemTable is every item with an id. Event items are not part of it.
var itemTable = buildItemTable()

func buildItemTable() map[string]ItemData {
	t := make(map[string]ItemData)
	add := func(name string, code int64, class mw.Classification) {
		t[name] = ItemData{Name: name, Code: baseItemID + code, Classification: class}
	}
	for i, p := range pacts {
		add(p.Item, int64(1+i), mw.Progression)
	}
	for i, r := range resources {
		add(r.Item, int64(101+i), mw.Filler)
	}
	for i, h := range helpers {
		add(h, int64(121+i), mw.Useful)
	}
	for i, tr := range traps {
		add(tr, int64(141+i), mw.Trap)
	}
	for i, k := range keepsakes {
		add(k.Item, int64(201+i), mw.Progression)
	}
	for i, w := range weapons {
		add(w.Item, int64(301+i), mw.Progression)
	}
	for i, s := range store {
		add(s.Item(), int64(401+i), s.Class)
	}
	return t
}

// ItemTable returns a copy of the static item table.
func ItemTable() map[string]ItemData {
	out := make(map[string]ItemData, len(itemTable))
	for k, v := range itemTable {
		out[k] = v
	}
	return out
}

func ItemNameToID() map[string]int64 {
	out := make(map[string]int64, len(itemTable))
	for name, data := range itemTable {
		out[name] = data.Code
	}
	return out
}

func Pacts() []Pact {
	out := make([]Pact, len(pacts))
	copy(out, pacts)
	return out
}

func Keepsakes() []Keepsake {
	out := make([]Keepsake, len(keepsakes))
	copy(out, keepsakes)
	return out
}

func Weapons() []Weapon {
	out := make([]Weapon, len(weapons))
	copy(out, weapons)
	return out
}

func Resources() []Resource {
	out := make([]Resource, len(resources))
	copy(out, resources)
	return out
}

func StoreEntries() []StoreEntry {
	out := make([]StoreEntry, len(store))
	copy(out, store)
	return out
}

func pactItemNames() []string {
	out := make([]string, len(pacts))
	for i, p := range pacts {
		out[i] = p.Item
	}
	return out
}

func keepsakeItemNames() []string {
	out := make([]string, len(keepsakes))
	for i, k := range keepsakes {
		out[i] = k.Item
	}
	return out
}

func weaponItemNames() []string {
	out := make([]string, len(weapons))
	for i, w := range weapons {
		out[i] = w.Item
	}
	return out
}

// PactPoolAmounts maps each pact item to the number of copies the pool gets.
func PactPoolAmounts(o Options) map[string]int {
	out := make(map[string]int, len(pacts))
	for _, p := range pacts {
		out[p.Item] = o.PactAmounts[p.Item]
	}
	return out
}

// NumberOfPactItems is the configured total of pact items, the figure the
// rules scale their thresholds against.
func NumberOfPactItems(o Options) int {
	total := 0
	for _, p := range pacts {
		total += o.PactAmounts[p.Item]
	}
	return total
}
