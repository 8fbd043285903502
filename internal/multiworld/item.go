package multiworld

import "strings"

// Classification tags how the fill treats an item. Values combine as flags.
type Classification uint8

const (
	Filler      Classification = 0
	Progression Classification = 1 << (iota - 1)
	Useful
	Trap
	SkipBalancing
)

func (c Classification) IsProgression() bool { return c&Progression != 0 }
func (c Classification) IsUseful() bool      { return c&Useful != 0 }
func (c Classification) IsTrap() bool        { return c&Trap != 0 }

func (c Classification) String() string {
	if c == Filler {
		return "filler"
	}
	parts := make([]string, 0, 4)
	if c&Progression != 0 {
		parts = append(parts, "progression")
	}
	if c&Useful != 0 {
		parts = append(parts, "useful")
	}
	if c&Trap != 0 {
		parts = append(parts, "trap")
	}
	if c&SkipBalancing != 0 {
		parts = append(parts, "skip_balancing")
	}
	return strings.Join(parts, "|")
}

// EventID is the id carried by event items and event locations. Events never
// appear in a world's id tables.
const EventID int64 = 0

type Item struct {
	Name           string
	ID             int64
	Classification Classification
	Player         int
}

func NewItem(name string, id int64, class Classification, player int) *Item {
	return &Item{Name: name, ID: id, Classification: class, Player: player}
}

func (i *Item) IsEvent() bool {
	return i.ID == EventID
}

// Advancement reports whether collecting the item can change logic.
func (i *Item) Advancement() bool {
	return i.Classification.IsProgression()
}
