package multiworld

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// MultiWorld is the shared generation context every world writes into.
type MultiWorld struct {
	Seed int64

	players      []int
	names        map[int]string
	games        map[int]string
	regions      map[int]map[string]*Region
	regionOrder  map[int][]*Region
	itemPool     []*Item
	precollected map[int][]*Item
	completion   map[int]Rule
	slotRandom   map[int]*rand.Rand
	fillRandom   *rand.Rand
}

func New(seed int64) *MultiWorld {
	return &MultiWorld{
		Seed:         seed,
		names:        make(map[int]string),
		games:        make(map[int]string),
		regions:      make(map[int]map[string]*Region),
		regionOrder:  make(map[int][]*Region),
		precollected: make(map[int][]*Item),
		completion:   make(map[int]Rule),
		slotRandom:   make(map[int]*rand.Rand),
		fillRandom:   seededRNG(seed, "fill"),
	}
}

// AddPlayer registers a slot. Player numbers start at 1.
func (mw *MultiWorld) AddPlayer(player int, name, game string) {
	if _, ok := mw.names[player]; !ok {
		mw.players = append(mw.players, player)
		sort.Ints(mw.players)
	}
	mw.names[player] = name
	mw.games[player] = game
	mw.regions[player] = make(map[string]*Region)
	mw.slotRandom[player] = seededRNG(mw.Seed, slotSalt(player))
}

func (mw *MultiWorld) Players() []int {
	out := make([]int, len(mw.players))
	copy(out, mw.players)
	return out
}

func (mw *MultiWorld) PlayerName(player int) string { return mw.names[player] }
func (mw *MultiWorld) Game(player int) string       { return mw.games[player] }

// SlotRandom is the per-player random source. Worlds draw from it so that
// one slot's choices never shift another slot's results.
func (mw *MultiWorld) SlotRandom(player int) *rand.Rand {
	return mw.slotRandom[player]
}

func (mw *MultiWorld) AddRegion(r *Region) error {
	byName, ok := mw.regions[r.Player]
	if !ok {
		return fmt.Errorf("add region %q: player %d is not registered", r.Name, r.Player)
	}
	if _, exists := byName[r.Name]; exists {
		return fmt.Errorf("add region %q: already exists for player %d", r.Name, r.Player)
	}
	byName[r.Name] = r
	mw.regionOrder[r.Player] = append(mw.regionOrder[r.Player], r)
	return nil
}

func (mw *MultiWorld) Region(name string, player int) (*Region, error) {
	if r, ok := mw.regions[player][name]; ok {
		return r, nil
	}
	return nil, unknownName(ErrUnknownRegion, name, keys(mw.regions[player]))
}

// Regions returns the player's regions in creation order.
func (mw *MultiWorld) Regions(player int) []*Region {
	out := make([]*Region, len(mw.regionOrder[player]))
	copy(out, mw.regionOrder[player])
	return out
}

func (mw *MultiWorld) Location(name string, player int) (*Location, error) {
	names := make([]string, 0)
	for _, r := range mw.regionOrder[player] {
		for _, loc := range r.Locations {
			if loc.Name == name {
				return loc, nil
			}
			names = append(names, loc.Name)
		}
	}
	return nil, unknownName(ErrUnknownLocation, name, names)
}

// Locations returns the player's locations in region creation order.
func (mw *MultiWorld) Locations(player int) []*Location {
	var out []*Location
	for _, r := range mw.regionOrder[player] {
		out = append(out, r.Locations...)
	}
	return out
}

func (mw *MultiWorld) AllLocations() []*Location {
	var out []*Location
	for _, p := range mw.players {
		out = append(out, mw.Locations(p)...)
	}
	return out
}

func (mw *MultiWorld) AddToPool(items ...*Item) {
	mw.itemPool = append(mw.itemPool, items...)
}

func (mw *MultiWorld) ItemPool() []*Item {
	out := make([]*Item, len(mw.itemPool))
	copy(out, mw.itemPool)
	return out
}

// PushPrecollected hands an item to the player before any location is checked.
func (mw *MultiWorld) PushPrecollected(item *Item) {
	mw.precollected[item.Player] = append(mw.precollected[item.Player], item)
}

func (mw *MultiWorld) Precollected(player int) []*Item {
	out := make([]*Item, len(mw.precollected[player]))
	copy(out, mw.precollected[player])
	return out
}

// PlaceLocked locks item onto the named location of player.
func (mw *MultiWorld) PlaceLocked(location string, player int, item *Item) error {
	loc, err := mw.Location(location, player)
	if err != nil {
		return err
	}
	if !loc.Empty() {
		return fmt.Errorf("place %q at %s: location already holds %q", item.Name, loc, loc.Item.Name)
	}
	loc.PlaceLocked(item)
	return nil
}

func (mw *MultiWorld) SetCompletionCondition(player int, rule Rule) {
	mw.completion[player] = rule
}

func (mw *MultiWorld) CompletionCondition(player int) Rule {
	return mw.completion[player]
}

// NewState returns a collection state holding every precollected item.
func (mw *MultiWorld) NewState() *State {
	s := newState(mw)
	for _, p := range mw.players {
		for _, item := range mw.precollected[p] {
			s.Collect(item)
		}
	}
	return s
}
