package hades

import (
	"fmt"
)

const baseLocationID int64 = 5093427000

const (
	RegionHouse    = "House of Hades"
	RegionTartarus = "Tartarus"
	RegionAsphodel = "Asphodel"
	RegionElysium  = "Elysium"
	RegionStyx     = "Styx"
)

// biomes in run order. Rooms, score checks and bosses are split across them.
var biomes = []string{RegionTartarus, RegionAsphodel, RegionElysium, RegionStyx}

// lastRoom is the final room number of each biome, in biome order.
var lastRoom = []int{13, 23, 35, 45}

const roomCount = 45

const (
	BossMeg    = "Meg"
	BossLernie = "Lernie"
	BossBros   = "Bros"
	BossHades  = "Hades"
)

// Boss is an event location at the end of a biome. Its victory item gates
// the exit out of the biome.
type Boss struct {
	Name   string
	Region string
}

func (b Boss) Location() string { return "Beat " + b.Name }
func (b Boss) Item() string     { return b.Name + " Victory" }

func (b Boss) WeaponLocation(w Weapon) string { return b.Location() + " " + w.Name }
func (b Boss) WeaponItem(w Weapon) string     { return b.Item() + " " + w.Name }

var bosses = []Boss{
	{Name: BossMeg, Region: RegionTartarus},
	{Name: BossLernie, Region: RegionAsphodel},
	{Name: BossBros, Region: RegionElysium},
	{Name: BossHades, Region: RegionStyx},
}

func bossByName(name string) Boss {
	for _, b := range bosses {
		if b.Name == name {
			return b
		}
	}
	panic("hades: unknown boss " + name)
}

// EventItemPairs maps each event location to the event item locked on it.
var EventItemPairs = map[string]string{
	"Beat Meg":    "Meg Victory",
	"Beat Lernie": "Lernie Victory",
	"Beat Bros":   "Bros Victory",
	"Beat Hades":  "Hades Victory",
}

// Fate is a Fated List prophecy. Prerequisites stack: the region must be
// reachable, the boss beaten, and the listed items held where the matching
// sanity option put them in the pool.
type Fate struct {
	Name       string
	Region     string
	Boss       string
	StoreItem  string
	Keepsakes  []string
	AllWeapons bool
}

var fates = []Fate{
	{Name: "Is There No Escape?", Region: RegionStyx, Boss: BossHades},
	{Name: "Infernal Arms", Region: RegionStyx, AllWeapons: true},
	{Name: "Divine Pairings", Region: RegionElysium},
	{Name: "Primordial Boons", Region: RegionAsphodel},
	{Name: "Primordial Banes", Region: RegionAsphodel},
	{Name: "God of the Heavens", Region: RegionTartarus},
	{Name: "God of the Sea", Region: RegionTartarus},
	{Name: "Goddess of Wisdom", Region: RegionTartarus},
	{Name: "Goddess of Love", Region: RegionTartarus},
	{Name: "God of War", Region: RegionTartarus},
	{Name: "Goddess of the Hunt", Region: RegionTartarus},
	{Name: "God of Wine", Region: RegionTartarus},
	{Name: "God of Swiftness", Region: RegionAsphodel},
	{Name: "Goddess of Seasons", Region: RegionAsphodel},
	{Name: "Power Without Equal", Region: RegionStyx},
	{Name: "Chthonic Colleagues", Region: RegionElysium, Keepsakes: []string{"MegaeraKeepsake", "ThanatosKeepsake", "DusaKeepsake"}},
	{Name: "Friends Forever", Region: RegionStyx},
	{Name: "Denizens of the Deep", Region: RegionElysium, StoreItem: ItemFishingRod},
	{Name: "The Reluctant Musician", Region: RegionHouse, StoreItem: ItemCourtMusicianSentence},
	{Name: "Night and Darkness", Region: RegionStyx, Boss: BossHades},
	{Name: "The Useless Trinket", Region: RegionStyx},
}

func Fates() []Fate {
	out := make([]Fate, len(fates))
	copy(out, fates)
	return out
}

func Bosses() []Boss {
	out := make([]Boss, len(bosses))
	copy(out, bosses)
	return out
}

// LocationData is one placement slot and the region that owns it.
type LocationData struct {
	Name   string
	Code   int64
	Region string
}

func roomName(n int) string { return fmt.Sprintf("ClearRoom%02d", n) }

func weaponRoomName(n int, w Weapon) string { return roomName(n) + " " + w.Name }

func scoreName(n int) string { return fmt.Sprintf("ClearScore%02d", n) }

func keepsakeLocationName(k Keepsake) string { return k.Item + "Location" }

func roomRegion(n int) string {
	for i, last := range lastRoom {
		if n <= last {
			return biomes[i]
		}
	}
	return biomes[len(biomes)-1]
}

// scoreRegion spreads score checks evenly over the four biomes.
func scoreRegion(n, total int) string {
	idx := (n - 1) * len(biomes) / total
	return biomes[idx]
}

func roomLocations() []LocationData {
	out := make([]LocationData, 0, roomCount)
	for n := 1; n <= roomCount; n++ {
		out = append(out, LocationData{Name: roomName(n), Code: baseLocationID + int64(n), Region: roomRegion(n)})
	}
	return out
}

func weaponRoomLocations() []LocationData {
	out := make([]LocationData, 0, roomCount*len(weapons))
	for _, w := range weapons {
		for n := 1; n <= roomCount; n++ {
			out = append(out, LocationData{
				Name:   weaponRoomName(n, w),
				Code:   baseLocationID + 1000 + int64(w.Value*100+n),
				Region: roomRegion(n),
			})
		}
	}
	return out
}

func scoreLocations(total int) []LocationData {
	out := make([]LocationData, 0, total)
	for n := 1; n <= total; n++ {
		out = append(out, LocationData{Name: scoreName(n), Code: baseLocationID + 2000 + int64(n), Region: scoreRegion(n, total)})
	}
	return out
}

func keepsakeLocations() []LocationData {
	out := make([]LocationData, 0, len(keepsakes))
	for i, k := range keepsakes {
		out = append(out, LocationData{Name: keepsakeLocationName(k), Code: baseLocationID + 3101 + int64(i), Region: RegionHouse})
	}
	return out
}

func storeLocations() []LocationData {
	out := make([]LocationData, 0, len(store))
	for i, s := range store {
		out = append(out, LocationData{Name: s.Location(), Code: baseLocationID + 3201 + int64(i), Region: RegionHouse})
	}
	return out
}

func fateLocations() []LocationData {
	out := make([]LocationData, 0, len(fates))
	for i, f := range fates {
		out = append(out, LocationData{Name: f.Name, Code: baseLocationID + 3301 + int64(i), Region: RegionHouse})
	}
	return out
}

// allLocations is the static superset every option combination draws from.
// Score checks are declared up to the largest amount a player may choose.
func allLocations() []LocationData {
	var out []LocationData
	out = append(out, roomLocations()...)
	out = append(out, weaponRoomLocations()...)
	out = append(out, scoreLocations(maxScoreRewards)...)
	out = append(out, keepsakeLocations()...)
	out = append(out, storeLocations()...)
	out = append(out, fateLocations()...)
	return out
}

// AllLocations lists every static location with its default region.
func AllLocations() []LocationData {
	return allLocations()
}

// AllLocationsTable is the location_name_to_id table advertised to clients.
func AllLocationsTable() map[string]int64 {
	locs := allLocations()
	out := make(map[string]int64, len(locs))
	for _, l := range locs {
		out[l.Name] = l.Code
	}
	return out
}

// LocationsForOptions lists the locations a player with these options gets,
// in region-wiring order. Score checks keep their static ids but are
// reassigned to biomes by the chosen amount.
func LocationsForOptions(o Options) []LocationData {
	var out []LocationData
	switch o.LocationSystem {
	case LocationSystemScoreBased:
		out = append(out, scoreLocations(o.ScoreRewardsAmount)...)
	case LocationSystemRoomWeaponBased:
		out = append(out, weaponRoomLocations()...)
	default:
		out = append(out, roomLocations()...)
	}
	if o.KeepsakeSanity {
		out = append(out, keepsakeLocations()...)
	}
	if o.StoreSanity {
		out = append(out, storeLocations()...)
	}
	if o.FateSanity {
		out = append(out, fateLocations()...)
	}
	return out
}

// LocationTableForOptions is the per-player name to id table.
func LocationTableForOptions(o Options) map[string]int64 {
	locs := LocationsForOptions(o)
	out := make(map[string]int64, len(locs))
	for _, l := range locs {
		out[l.Name] = l.Code
	}
	return out
}

// eventPairs lists the event locations for the location system, each with
// the victory item it holds and the weapon it belongs to, if any.
type eventPair struct {
	Location string
	Item     string
	Boss     Boss
	Weapon   *Weapon
}

func eventPairsForOptions(o Options) []eventPair {
	var out []eventPair
	if o.LocationSystem == LocationSystemRoomWeaponBased {
		for _, w := range weapons {
			for _, b := range bosses {
				out = append(out, eventPair{Location: b.WeaponLocation(w), Item: b.WeaponItem(w), Boss: b, Weapon: &w})
			}
		}
		return out
	}
	for _, b := range bosses {
		out = append(out, eventPair{Location: b.Location(), Item: EventItemPairs[b.Location()], Boss: b})
	}
	return out
}
