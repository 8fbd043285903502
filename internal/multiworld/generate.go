package multiworld

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

type GenerateConfig struct {
	// Seed 0 draws a fresh seed.
	Seed   int64
	Logger *log.Logger
}

type slot struct {
	player int
	wt     WorldType
	opts   Values
	world  World
}

// Generate runs one multiworld generation. Hooks run per stage across every
// slot before the next stage starts. The first error aborts the whole run.
func Generate(ctx context.Context, reg *Registry, players []PlayerConfig, cfg GenerateConfig) (*Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if len(players) == 0 {
		return nil, &GenerationError{Stage: StageOptions, Err: fmt.Errorf("no players")}
	}
	seed := cfg.Seed
	if seed == 0 {
		// #nosec G404
		seed = rand.Int64()
	}
	names, err := expandPlayerNames(players)
	if err != nil {
		return nil, &GenerationError{Stage: StageOptions, Err: err}
	}

	mw := New(seed)
	slots := make([]*slot, len(players))
	for i, p := range players {
		player := i + 1
		wt, err := reg.Lookup(p.Game)
		if err != nil {
			return nil, &GenerationError{Stage: StageOptions, Player: player, Err: err}
		}
		mw.AddPlayer(player, names[i], wt.Game)
		opts, err := ResolveOptions(wt.Options, p.Options, seededRNG(seed, "options:"+slotSalt(player)))
		if err != nil {
			return nil, &GenerationError{Stage: StageOptions, Player: player, Err: err}
		}
		world, err := wt.New(mw, player, opts)
		if err != nil {
			return nil, &GenerationError{Stage: StageOptions, Player: player, Err: err}
		}
		slots[i] = &slot{player: player, wt: wt, opts: opts, world: world}
	}
	logger.Printf("seed %d: %d players", seed, len(slots))

	stages := []struct {
		stage Stage
		run   func(World) error
	}{
		{StageGenerateEarly, World.GenerateEarly},
		{StageCreateRegions, World.CreateRegions},
		{StageCreateItems, World.CreateItems},
		{StageSetRules, World.SetRules},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, &GenerationError{Stage: st.stage, Err: err}
		}
		for _, s := range slots {
			if err := st.run(s.world); err != nil {
				return nil, &GenerationError{Stage: st.stage, Player: s.player, Err: err}
			}
		}
		logger.Printf("%s done", st.stage)
	}

	for _, s := range slots {
		if err := validateSlot(mw, s); err != nil {
			return nil, &GenerationError{Stage: StageValidate, Player: s.player, Err: err}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, &GenerationError{Stage: StageFill, Err: err}
	}
	start := time.Now()
	if err := mw.fill(ctx); err != nil {
		return nil, &GenerationError{Stage: StageFill, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &GenerationError{Stage: StageFill, Err: err}
	}
	spheres, err := mw.playthrough()
	if err != nil {
		return nil, &GenerationError{Stage: StageFill, Err: err}
	}
	logger.Printf("fill placed %d items in %s, %d spheres", len(mw.itemPool), time.Since(start).Round(time.Millisecond), len(spheres))

	res := &Result{
		ID:        uuid.NewString(),
		Seed:      seed,
		SeedName:  uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		SlotData:  make(map[int]map[string]any, len(slots)),
	}
	for _, s := range slots {
		data, err := s.world.FillSlotData()
		if err != nil {
			return nil, &GenerationError{Stage: StageSlotData, Player: s.player, Err: err}
		}
		res.SlotData[s.player] = data
		res.Players = append(res.Players, playerInfo(mw, s))
	}
	res.Placements = placements(mw.AllLocations())
	for _, sphere := range spheres {
		res.Spheres = append(res.Spheres, placements(sphere))
	}
	for _, p := range mw.players {
		for _, item := range mw.precollected[p] {
			res.Precollected = append(res.Precollected, Precollected{Player: p, Item: item.Name})
		}
	}
	logger.Printf("generation %s finished (seed name %s)", res.ID, res.SeedName)
	return res, nil
}

// validateSlot checks the slot's live tables against the static ones it
// advertised to clients.
func validateSlot(mw *MultiWorld, s *slot) error {
	live := map[string]int64(nil)
	if lt, ok := s.world.(LocationTabler); ok {
		live = lt.LocationTable()
	}
	empty := 0
	for _, loc := range mw.Locations(s.player) {
		if loc.IsEvent() {
			if loc.Empty() {
				return fmt.Errorf("event location %q has no event item", loc.Name)
			}
			continue
		}
		id, ok := s.wt.LocationNameToID[loc.Name]
		if !ok || id != loc.ID {
			return fmt.Errorf("%w: location %q id %d is not in the %s table", ErrUnknownLocation, loc.Name, loc.ID, s.wt.Game)
		}
		if live != nil {
			if _, ok := live[loc.Name]; !ok {
				return fmt.Errorf("%w: location %q created but not in the slot table", ErrUnknownLocation, loc.Name)
			}
		}
		if loc.Empty() {
			empty++
		}
	}

	items := 0
	for _, item := range mw.itemPool {
		if item.Player != s.player {
			continue
		}
		items++
		if item.IsEvent() {
			return fmt.Errorf("event item %q in the item pool", item.Name)
		}
		if id, ok := s.wt.ItemNameToID[item.Name]; !ok || id != item.ID {
			return UnknownItem(item.Name, s.wt.ItemNameToID)
		}
	}
	if items != empty {
		return fmt.Errorf("%w: %d items for %d open locations", ErrPoolMismatch, items, empty)
	}
	return nil
}

func playerInfo(mw *MultiWorld, s *slot) PlayerInfo {
	info := PlayerInfo{
		Slot:    s.player,
		Name:    mw.PlayerName(s.player),
		Game:    s.wt.Game,
		Options: make(map[string]int),
	}
	for _, name := range s.opts.Names() {
		info.Options[name] = s.opts.Get(name)
	}
	return info
}

func placements(locs []*Location) []Placement {
	out := make([]Placement, 0, len(locs))
	for _, loc := range locs {
		if loc.Item == nil {
			continue
		}
		out = append(out, Placement{
			Location:       loc.Name,
			LocationID:     loc.ID,
			Player:         loc.Player,
			Item:           loc.Item.Name,
			ItemID:         loc.Item.ID,
			ItemPlayer:     loc.Item.Player,
			Classification: loc.Item.Classification,
			Event:          loc.IsEvent(),
		})
	}
	return out
}
