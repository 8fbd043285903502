// Package hades is the Hades world: its items, locations, region graph,
// options and access rules, wired into the multiworld harness.
package hades

import (
	"fmt"
	"strings"

	mw "github.com/polycosmos/hades-world/internal/multiworld"
)

const (
	Game = "Hades"

	// PolycosmosVersion is checked by the client against slot data.
	PolycosmosVersion = "0.5.2"
	DataVersion       = 1
)

var RequiredClientVersion = mw.Version{Major: 0, Minor: 4, Build: 4}

const seedLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// World is one player's Hades slot.
type World struct {
	multiworld    *mw.MultiWorld
	player        int
	options       Options
	locationTable map[string]int64
}

func New(m *mw.MultiWorld, player int, values mw.Values) (mw.World, error) {
	return NewWorld(m, player, OptionsFromValues(values)), nil
}

func NewWorld(m *mw.MultiWorld, player int, opts Options) *World {
	return &World{
		multiworld:    m,
		player:        player,
		options:       opts,
		locationTable: AllLocationsTable(),
	}
}

// WorldType registers Hades with a harness registry.
func WorldType() mw.WorldType {
	return mw.WorldType{
		Game:                  Game,
		Description:           "Hades is a rogue-like dungeon crawler in which you defy the god of the dead as you hack and slash your way out of the Underworld of Greek myth.",
		Options:               OptionDefs(),
		ItemNameToID:          ItemNameToID(),
		LocationNameToID:      AllLocationsTable(),
		Web:                   Web(),
		DataVersion:           DataVersion,
		RequiredClientVersion: RequiredClientVersion,
		TopologyPresent:       false,
		New:                   New,
	}
}

func Register(reg *mw.Registry) error {
	return reg.Register(WorldType())
}

func (w *World) Options() Options { return w.options }

func (w *World) LocationTable() map[string]int64 {
	return w.locationTable
}

func (w *World) refreshLocationTable() {
	w.locationTable = LocationTableForOptions(w.options)
}

func (w *World) GenerateEarly() error {
	if err := w.options.Validate(); err != nil {
		return err
	}
	w.refreshLocationTable()
	return nil
}

func (w *World) CreateRegions() error {
	w.refreshLocationTable()
	return createRegions(w.multiworld, w.player, LocationsForOptions(w.options), eventPairsForOptions(w.options))
}

func (w *World) CreateItems() error {
	w.refreshLocationTable()

	var pool []*mw.Item
	add := func(name string, count int) error {
		for i := 0; i < count; i++ {
			item, err := w.CreateItem(name)
			if err != nil {
				return err
			}
			pool = append(pool, item)
		}
		return nil
	}

	amounts := PactPoolAmounts(w.options)
	for _, p := range pacts {
		if err := add(p.Item, amounts[p.Item]); err != nil {
			return err
		}
	}

	if w.options.KeepsakeSanity {
		for _, k := range keepsakes {
			if err := add(k.Item, 1); err != nil {
				return err
			}
		}
	}

	initial, _ := weaponByValue(w.options.InitialWeapon)
	if w.options.WeaponSanity {
		for _, wp := range weapons {
			item, err := w.CreateItem(wp.Item)
			if err != nil {
				return err
			}
			if wp.Value == initial.Value {
				w.multiworld.PushPrecollected(item)
				continue
			}
			pool = append(pool, item)
		}
	}

	if w.options.StoreSanity {
		for _, s := range store {
			if err := add(s.Item(), 1); err != nil {
				return err
			}
		}
	}

	open := len(w.locationTable) - len(pool)
	if open < 0 {
		return fmt.Errorf("%w: %d items for %d locations", mw.ErrPoolMismatch, len(pool), len(w.locationTable))
	}
	fillers := FillerPoolOptions(w.options)
	for i := 0; i < open; i++ {
		if err := add(fillers[i%len(fillers)], 1); err != nil {
			return err
		}
	}
	w.multiworld.AddToPool(pool...)

	for _, ev := range eventPairsForOptions(w.options) {
		item := mw.NewItem(ev.Item, mw.EventID, mw.Progression, w.player)
		if err := w.multiworld.PlaceLocked(ev.Location, w.player, item); err != nil {
			return err
		}
	}
	return nil
}

func (w *World) SetRules() error {
	w.refreshLocationTable()
	return setRules(w.multiworld, w.player, w.NumberOfPactItems(), w.locationTable, w.options)
}

// NumberOfPactItems sums the chosen level of every pact option.
func (w *World) NumberOfPactItems() int {
	return NumberOfPactItems(w.options)
}

func (w *World) CreateItem(name string) (*mw.Item, error) {
	data, ok := itemTable[name]
	if !ok {
		return nil, mw.UnknownItem(name, ItemNameToID())
	}
	return mw.NewItem(name, data.Code, data.Classification, w.player), nil
}

func (w *World) FillerItemName() string {
	return defaultFiller
}

func (w *World) FillSlotData() (map[string]any, error) {
	rng := w.multiworld.SlotRandom(w.player)
	var seed strings.Builder
	for i := 0; i < 16; i++ {
		seed.WriteByte(seedLetters[rng.IntN(len(seedLetters))])
	}

	data := map[string]any{"seed": seed.String()}
	values := w.options.Values()
	for _, name := range values.Names() {
		data[name] = values.Get(name)
	}
	data["version_check"] = PolycosmosVersion
	return data, nil
}
