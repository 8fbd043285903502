package multiworld

import (
	"github.com/zyedidia/generic/mapset"
)

// State tracks what a set of players has collected and which regions that
// makes reachable. Reachability is recomputed lazily after a collection.
type State struct {
	mw        *MultiWorld
	items     map[int]map[string]int
	reachable map[int]mapset.Set[string]
	checked   map[*Location]bool
	stale     bool
	updating  bool
}

func newState(mw *MultiWorld) *State {
	return &State{
		mw:        mw,
		items:     make(map[int]map[string]int),
		reachable: make(map[int]mapset.Set[string]),
		checked:   make(map[*Location]bool),
		stale:     true,
	}
}

// Copy returns an independent state with the same collection.
func (s *State) Copy() *State {
	out := newState(s.mw)
	for p, counts := range s.items {
		c := make(map[string]int, len(counts))
		for k, v := range counts {
			c[k] = v
		}
		out.items[p] = c
	}
	for loc := range s.checked {
		out.checked[loc] = true
	}
	return out
}

func (s *State) Collect(item *Item) {
	counts, ok := s.items[item.Player]
	if !ok {
		counts = make(map[string]int)
		s.items[item.Player] = counts
	}
	counts[item.Name]++
	if item.Advancement() {
		s.stale = true
	}
}

func (s *State) Has(name string, player int) bool {
	return s.items[player][name] > 0
}

func (s *State) HasCount(name string, player, count int) bool {
	return s.items[player][name] >= count
}

func (s *State) Count(name string, player int) int {
	return s.items[player][name]
}

// CountOf sums the counts of every named item.
func (s *State) CountOf(names []string, player int) int {
	total := 0
	for _, n := range names {
		total += s.items[player][n]
	}
	return total
}

// CountUnique counts how many of the named items are held at least once.
func (s *State) CountUnique(names []string, player int) int {
	total := 0
	for _, n := range names {
		if s.items[player][n] > 0 {
			total++
		}
	}
	return total
}

func (s *State) HasAny(names []string, player int) bool {
	for _, n := range names {
		if s.items[player][n] > 0 {
			return true
		}
	}
	return false
}

func (s *State) HasAll(names []string, player int) bool {
	for _, n := range names {
		if s.items[player][n] == 0 {
			return false
		}
	}
	return true
}

func (s *State) CanReachRegion(name string, player int) bool {
	if s.stale && !s.updating {
		s.update()
	}
	set, ok := s.reachable[player]
	if !ok {
		return false
	}
	return set.Has(name)
}

func (s *State) CanReachLocation(loc *Location) bool {
	if loc.Parent == nil {
		return false
	}
	return s.CanReachRegion(loc.Parent.Name, loc.Player) && loc.Rule.eval(s)
}

// ReachableRegionCount reports how many of the player's regions are reachable.
func (s *State) ReachableRegionCount(player int) int {
	if s.stale && !s.updating {
		s.update()
	}
	set, ok := s.reachable[player]
	if !ok {
		return 0
	}
	return set.Size()
}

func (s *State) update() {
	s.updating = true
	defer func() { s.updating = false }()

	for _, p := range s.mw.players {
		set := mapset.New[string]()
		s.reachable[p] = set
		if _, ok := s.mw.regions[p][MenuRegion]; !ok {
			continue
		}
		set.Put(MenuRegion)

		// Rules may ask about other regions, so iterate to a fixpoint
		// instead of a single breadth-first pass.
		for changed := true; changed; {
			changed = false
			for _, r := range s.mw.regionOrder[p] {
				if !set.Has(r.Name) {
					continue
				}
				for _, e := range r.Exits {
					if e.Target == nil || set.Has(e.Target.Name) {
						continue
					}
					if e.Rule.eval(s) {
						set.Put(e.Target.Name)
						changed = true
					}
				}
			}
		}
	}
	s.stale = false
}

// SweepSphere collects every item sitting on a reachable, unchecked location
// and returns those locations. Items found are collected only after the
// whole sphere is determined.
func (s *State) SweepSphere() []*Location {
	var found []*Location
	for _, loc := range s.mw.AllLocations() {
		if loc.Item == nil || s.checked[loc] {
			continue
		}
		if s.CanReachLocation(loc) {
			found = append(found, loc)
		}
	}
	for _, loc := range found {
		s.checked[loc] = true
		s.Collect(loc.Item)
	}
	return found
}

// Sweep collects spheres until nothing new is reachable.
func (s *State) Sweep() [][]*Location {
	var spheres [][]*Location
	for {
		sphere := s.SweepSphere()
		if len(sphere) == 0 {
			return spheres
		}
		spheres = append(spheres, sphere)
	}
}

func (s *State) Checked(loc *Location) bool {
	return s.checked[loc]
}
