package multiworld

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// World is the per-slot plugin a game supplies. The harness calls the hooks
// once each, in the order they are declared here.
type World interface {
	GenerateEarly() error
	CreateRegions() error
	CreateItems() error
	SetRules() error
	FillSlotData() (map[string]any, error)

	CreateItem(name string) (*Item, error)
	FillerItemName() string
}

// LocationTabler is implemented by worlds whose live location table is a
// filtered subset of the static one.
type LocationTabler interface {
	LocationTable() map[string]int64
}

type Version struct {
	Major, Minor, Build int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

type Tutorial struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	File        string   `json:"file"`
	Link        string   `json:"link"`
	Authors     []string `json:"authors"`
}

type WebInfo struct {
	Tutorials []Tutorial `json:"tutorials"`
}

// WorldType describes a game to the harness: its static tables, options and
// constructor.
type WorldType struct {
	Game                  string
	Description           string
	Options               []OptionDef
	ItemNameToID          map[string]int64
	LocationNameToID      map[string]int64
	Web                   WebInfo
	DataVersion           int
	RequiredClientVersion Version
	TopologyPresent       bool
	New                   func(mw *MultiWorld, player int, opts Values) (World, error)
}

func (wt WorldType) validate() error {
	if wt.Game == "" {
		return fmt.Errorf("world has empty game name")
	}
	if wt.New == nil {
		return fmt.Errorf("world %s has no constructor", wt.Game)
	}
	seen := make(map[string]bool, len(wt.Options))
	for _, d := range wt.Options {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("world %s: %w", wt.Game, err)
		}
		if seen[d.Name] {
			return fmt.Errorf("world %s: option %s declared twice", wt.Game, d.Name)
		}
		seen[d.Name] = true
	}
	if err := uniqueIDs(wt.ItemNameToID); err != nil {
		return fmt.Errorf("world %s items: %w", wt.Game, err)
	}
	if err := uniqueIDs(wt.LocationNameToID); err != nil {
		return fmt.Errorf("world %s locations: %w", wt.Game, err)
	}
	return nil
}

func uniqueIDs(table map[string]int64) error {
	byID := make(map[int64]string, len(table))
	for _, name := range keys(table) {
		id := table[name]
		if id == EventID {
			return fmt.Errorf("%q uses the reserved event id", name)
		}
		if prev, ok := byID[id]; ok {
			return fmt.Errorf("%w: %d used by %q and %q", ErrDuplicateID, id, prev, name)
		}
		byID[id] = name
	}
	return nil
}

// Registry holds the games a generation may draw from.
type Registry struct {
	mu    sync.RWMutex
	games map[string]WorldType
}

func NewRegistry() *Registry {
	return &Registry{games: make(map[string]WorldType)}
}

func (r *Registry) Register(wt WorldType) error {
	if err := wt.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[wt.Game]; ok {
		return fmt.Errorf("game %s already registered", wt.Game)
	}
	r.games[wt.Game] = wt
	return nil
}

func (r *Registry) Lookup(game string) (WorldType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if wt, ok := r.games[game]; ok {
		return wt, nil
	}
	return WorldType{}, unknownName(ErrUnknownGame, game, keys(r.games))
}

func (r *Registry) Games() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return keys(r.games)
}

// GameData is one game's entry in the data package.
type GameData struct {
	ItemNameToID     map[string]int64 `json:"item_name_to_id"`
	LocationNameToID map[string]int64 `json:"location_name_to_id"`
	Checksum         string           `json:"checksum"`
	Version          int              `json:"version"`
}

// GameData builds the id tables a client needs to decode network messages.
// The checksum covers both tables so clients can cache them.
func (wt WorldType) GameData() (GameData, error) {
	gd := GameData{
		ItemNameToID:     wt.ItemNameToID,
		LocationNameToID: wt.LocationNameToID,
		Version:          wt.DataVersion,
	}
	// encoding/json sorts map keys, so the digest is stable.
	raw, err := json.Marshal(struct {
		Items     map[string]int64 `json:"item_name_to_id"`
		Locations map[string]int64 `json:"location_name_to_id"`
	}{gd.ItemNameToID, gd.LocationNameToID})
	if err != nil {
		return GameData{}, fmt.Errorf("checksum %s: %w", wt.Game, err)
	}
	sum := sha1.Sum(raw)
	gd.Checksum = hex.EncodeToString(sum[:])
	return gd, nil
}

func (r *Registry) DataPackage() (map[string]GameData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	games := make([]string, 0, len(r.games))
	for g := range r.games {
		games = append(games, g)
	}
	sort.Strings(games)

	out := make(map[string]GameData, len(games))
	for _, g := range games {
		gd, err := r.games[g].GameData()
		if err != nil {
			return nil, err
		}
		out[g] = gd
	}
	return out, nil
}
