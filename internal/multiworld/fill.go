package multiworld

import (
	"context"
	"fmt"
	"strings"
)

// fill places the shared item pool into every empty location. Progression is
// placed first with an assumed fill: each item goes to a location reachable
// while holding every progression item not yet placed. The remainder is
// shuffled into whatever is left.
func (mw *MultiWorld) fill(ctx context.Context) error {
	var empty []*Location
	for _, loc := range mw.AllLocations() {
		if loc.Empty() {
			empty = append(empty, loc)
		}
	}
	pool := mw.ItemPool()
	if len(pool) != len(empty) {
		return fmt.Errorf("%w: %d items for %d locations", ErrPoolMismatch, len(pool), len(empty))
	}

	var prog, rest []*Item
	for _, item := range pool {
		if item.Advancement() {
			prog = append(prog, item)
		} else {
			rest = append(rest, item)
		}
	}
	shuffle(mw.fillRandom, empty)
	shuffle(mw.fillRandom, prog)
	shuffle(mw.fillRandom, rest)

	remaining, err := mw.fillRestrictive(ctx, empty, prog)
	if err != nil {
		return err
	}
	shuffle(mw.fillRandom, remaining)
	for i, item := range rest {
		remaining[i].Item = item
	}
	return nil
}

// fillRestrictive stops between placements once ctx is done.
func (mw *MultiWorld) fillRestrictive(ctx context.Context, locations []*Location, items []*Item) ([]*Location, error) {
	for len(items) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := items[len(items)-1]
		items = items[:len(items)-1]

		state := mw.NewState()
		for _, held := range items {
			state.Collect(held)
		}
		state.Sweep()

		placed := -1
		for i, loc := range locations {
			if state.CanReachLocation(loc) {
				placed = i
				break
			}
		}
		if placed < 0 {
			return nil, fmt.Errorf("%w: no reachable location left for %q (player %d), %d progression items unplaced",
				ErrFillFailed, item.Name, item.Player, len(items)+1)
		}
		locations[placed].Item = item
		locations = append(locations[:placed], locations[placed+1:]...)
	}
	return locations, nil
}

// playthrough sweeps from the precollected state and reports the spheres
// found. Every location must be checked and every completion condition must
// hold afterwards.
func (mw *MultiWorld) playthrough() ([][]*Location, error) {
	state := mw.NewState()
	spheres := state.Sweep()

	var missing []string
	for _, loc := range mw.AllLocations() {
		if !state.Checked(loc) {
			missing = append(missing, loc.String())
		}
	}
	if len(missing) > 0 {
		const show = 5
		more := ""
		if len(missing) > show {
			more = fmt.Sprintf(" and %d more", len(missing)-show)
			missing = missing[:show]
		}
		return nil, fmt.Errorf("%w: unreachable locations %s%s", ErrUnbeatable, strings.Join(missing, ", "), more)
	}
	for _, p := range mw.players {
		if !mw.completion[p].eval(state) {
			return nil, fmt.Errorf("%w: goal unreachable for player %d (%s)", ErrUnbeatable, p, mw.names[p])
		}
	}
	return spheres, nil
}
