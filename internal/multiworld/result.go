package multiworld

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"time"
)

type PlayerInfo struct {
	Slot    int            `json:"slot"`
	Name    string         `json:"name"`
	Game    string         `json:"game"`
	Options map[string]int `json:"options"`
}

type Placement struct {
	Location       string         `json:"location"`
	LocationID     int64          `json:"location_id"`
	Player         int            `json:"player"`
	Item           string         `json:"item"`
	ItemID         int64          `json:"item_id"`
	ItemPlayer     int            `json:"item_player"`
	Classification Classification `json:"classification"`
	Event          bool           `json:"event,omitempty"`
}

type Precollected struct {
	Player int    `json:"player"`
	Item   string `json:"item"`
}

// Result is everything a finished generation produced.
type Result struct {
	ID           string                 `json:"id"`
	Seed         int64                  `json:"seed"`
	SeedName     string                 `json:"seed_name"`
	CreatedAt    time.Time              `json:"created_at"`
	Players      []PlayerInfo           `json:"players"`
	Placements   []Placement            `json:"placements"`
	Precollected []Precollected         `json:"precollected,omitempty"`
	Spheres      [][]Placement          `json:"spheres"`
	SlotData     map[int]map[string]any `json:"slot_data"`
}

func (r *Result) Player(slot int) (PlayerInfo, bool) {
	for _, p := range r.Players {
		if p.Slot == slot {
			return p, true
		}
	}
	return PlayerInfo{}, false
}

func (r *Result) playerName(slot int) string {
	if p, ok := r.Player(slot); ok {
		return p.Name
	}
	return fmt.Sprintf("Player%d", slot)
}

// WriteSpoiler renders a human-readable spoiler log.
func WriteSpoiler(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)
	multi := len(r.Players) > 1
	name := func(n string, slot int) string {
		if !multi {
			return n
		}
		return fmt.Sprintf("%s (%s)", n, r.playerName(slot))
	}

	fmt.Fprintf(bw, "Seed: %s\n", r.SeedName)
	fmt.Fprintf(bw, "Generation: %s\n", r.ID)
	fmt.Fprintf(bw, "Players: %d\n\n", len(r.Players))

	for _, p := range r.Players {
		fmt.Fprintf(bw, "Player %d: %s\n", p.Slot, p.Name)
		fmt.Fprintf(bw, "Game: %s\n", p.Game)
		opts := make([]string, 0, len(p.Options))
		for k := range p.Options {
			opts = append(opts, k)
		}
		sort.Strings(opts)
		for _, k := range opts {
			fmt.Fprintf(bw, "  %s: %d\n", k, p.Options[k])
		}
		bw.WriteString("\n")
	}

	if len(r.Precollected) > 0 {
		bw.WriteString("Starting Items:\n\n")
		for _, pc := range r.Precollected {
			fmt.Fprintf(bw, "%s\n", name(pc.Item, pc.Player))
		}
		bw.WriteString("\n")
	}

	bw.WriteString("Locations:\n\n")
	for _, pl := range r.Placements {
		if pl.Event {
			continue
		}
		fmt.Fprintf(bw, "%s: %s\n", name(pl.Location, pl.Player), name(pl.Item, pl.ItemPlayer))
	}

	bw.WriteString("\nPlaythrough:\n\n")
	for i, sphere := range r.Spheres {
		fmt.Fprintf(bw, "%d: {\n", i+1)
		for _, pl := range sphere {
			if !pl.Classification.IsProgression() {
				continue
			}
			fmt.Fprintf(bw, "  %s: %s\n", name(pl.Location, pl.Player), name(pl.Item, pl.ItemPlayer))
		}
		bw.WriteString("}\n")
	}
	return bw.Flush()
}
