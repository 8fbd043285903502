// Package store keeps finished generations in SQLite so the web host and
// the CLI can list and reload them.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/polycosmos/hades-world/internal/multiworld"
)

var ErrNotFound = errors.New("generation not found")

// DB is the persistence surface the CLI and web host use.
type DB interface {
	Close() error
	Migrate(ctx context.Context) error
	SaveGeneration(ctx context.Context, res *multiworld.Result) error
	GetGeneration(ctx context.Context, id string) (*multiworld.Result, error)
	ListGenerations(ctx context.Context, query GenerationsQuery) (*GenerationsList, error)
	Placements(ctx context.Context, query PlacementsQuery) ([]multiworld.Placement, error)
}

type GenerationsQuery struct {
	Game    string `json:"game,omitempty"`
	Page    int    `json:"page"`
	PerPage int    `json:"perPage"`
}

// Generation is the summary row listed for a stored run.
type Generation struct {
	ID          string    `json:"id"`
	Seed        int64     `json:"seed"`
	SeedName    string    `json:"seed_name"`
	PlayerCount int       `json:"player_count"`
	Games       []string  `json:"games"`
	CreatedAt   time.Time `json:"created_at"`
}

type GenerationsList struct {
	Generations []Generation `json:"generations"`
	TotalCount  int          `json:"totalCount"`
	Page        int          `json:"page"`
	PerPage     int          `json:"perPage"`
	TotalPages  int          `json:"totalPages"`
}

// PlacementsQuery filters a generation's placements. Zero Player means every
// player; ProgressionOnly drops filler, useful and trap items.
type PlacementsQuery struct {
	GenerationID    string
	Player          int
	ProgressionOnly bool
}
