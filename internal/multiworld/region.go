package multiworld

import "fmt"

// MenuRegion is the root every player's reachability search starts from.
const MenuRegion = "Menu"

// Rule is an access predicate evaluated against a collection state. A nil
// rule always passes.
type Rule func(*State) bool

func (r Rule) eval(s *State) bool {
	if r == nil {
		return true
	}
	return r(s)
}

// All passes when every rule passes.
func All(rules ...Rule) Rule {
	return func(s *State) bool {
		for _, r := range rules {
			if !r.eval(s) {
				return false
			}
		}
		return true
	}
}

// Any passes when at least one rule passes.
func Any(rules ...Rule) Rule {
	return func(s *State) bool {
		for _, r := range rules {
			if r.eval(s) {
				return true
			}
		}
		return false
	}
}

type Region struct {
	Name      string
	Player    int
	Locations []*Location
	Exits     []*Entrance
}

func NewRegion(name string, player int) *Region {
	return &Region{Name: name, Player: player}
}

// AddLocation creates a location owned by the region.
func (r *Region) AddLocation(name string, id int64) *Location {
	loc := &Location{Name: name, ID: id, Player: r.Player, Parent: r}
	r.Locations = append(r.Locations, loc)
	return loc
}

// AddExit creates an unconnected entrance leaving the region.
func (r *Region) AddExit(name string) *Entrance {
	e := &Entrance{Name: name, Player: r.Player, Parent: r}
	r.Exits = append(r.Exits, e)
	return e
}

func (r *Region) Exit(name string) (*Entrance, error) {
	for _, e := range r.Exits {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: exit %q in region %q", ErrUnknownRegion, name, r.Name)
}

type Entrance struct {
	Name   string
	Player int
	Parent *Region
	Target *Region
	Rule   Rule
}

func (e *Entrance) Connect(target *Region) {
	e.Target = target
}

type Location struct {
	Name   string
	ID     int64
	Player int
	Parent *Region
	Item   *Item
	Locked bool
	Rule   Rule
}

func (l *Location) IsEvent() bool {
	return l.ID == EventID
}

func (l *Location) Empty() bool {
	return l.Item == nil
}

// PlaceLocked puts an item on the location and excludes it from the fill.
func (l *Location) PlaceLocked(item *Item) {
	l.Item = item
	l.Locked = true
}

func (l *Location) String() string {
	return fmt.Sprintf("%s (player %d)", l.Name, l.Player)
}
