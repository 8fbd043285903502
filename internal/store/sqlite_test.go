package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/polycosmos/hades-world/internal/multiworld"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func testResult(id string, created time.Time, games ...string) *multiworld.Result {
	res := &multiworld.Result{
		ID:        id,
		Seed:      42,
		SeedName:  "00000000000000000042",
		CreatedAt: created,
		SlotData:  map[int]map[string]any{},
	}
	for i, g := range games {
		slot := i + 1
		res.Players = append(res.Players, multiworld.PlayerInfo{Slot: slot, Name: fmt.Sprintf("P%d", slot), Game: g})
		res.SlotData[slot] = map[string]any{"seed": "abcdefghijklmnop", "version_check": "0.5.2"}
		res.Placements = append(res.Placements,
			multiworld.Placement{Location: "ClearRoom01", LocationID: 5093427001, Player: slot, Item: "Darkness", ItemID: 666101, ItemPlayer: slot},
			multiworld.Placement{Location: "ClearRoom02", LocationID: 5093427002, Player: slot, Item: "HardLaborPactLevel", ItemID: 666001, ItemPlayer: slot, Classification: multiworld.Progression},
			multiworld.Placement{Location: "Beat Hades", Player: slot, Item: "Hades Victory", ItemPlayer: slot, Classification: multiworld.Progression, Event: true},
		)
	}
	return res
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestSaveAndGetGeneration(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	want := testResult("gen1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), "Hades")
	if err := db.SaveGeneration(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.GetGeneration(ctx, "gen1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SeedName != want.SeedName || got.Seed != want.Seed {
		t.Fatalf("expected seed %s, got %s", want.SeedName, got.SeedName)
	}
	if len(got.Placements) != len(want.Placements) {
		t.Fatalf("expected %d placements, got %d", len(want.Placements), len(got.Placements))
	}
	if got.SlotData[1]["seed"] != "abcdefghijklmnop" {
		t.Fatalf("slot data lost: %v", got.SlotData)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("expected created at %v, got %v", want.CreatedAt, got.CreatedAt)
	}
}

func TestSaveAssignsID(t *testing.T) {
	db := newTestDB(t)
	res := testResult("", time.Time{}, "Hades")
	if err := db.SaveGeneration(context.Background(), res); err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.ID == "" || res.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp to be filled, got %q %v", res.ID, res.CreatedAt)
	}
}

func TestSaveDuplicateFails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	if err := db.SaveGeneration(ctx, testResult("dup", time.Now(), "Hades")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.SaveGeneration(ctx, testResult("dup", time.Now(), "Hades")); err == nil {
		t.Fatalf("expected duplicate id to fail")
	}
	list, err := db.ListGenerations(ctx, GenerationsQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.TotalCount != 1 {
		t.Fatalf("failed insert left rows behind: %d generations", list.TotalCount)
	}
}

func TestGetGenerationNotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.GetGeneration(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.Placements(context.Background(), PlacementsQuery{GenerationID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListGenerations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	results := []*multiworld.Result{
		testResult("gen1", base, "Hades"),
		testResult("gen2", base.Add(time.Hour), "Hades", "Clique"),
		testResult("gen3", base.Add(2*time.Hour), "Clique"),
	}
	for _, r := range results {
		if err := db.SaveGeneration(ctx, r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}

	all, err := db.ListGenerations(ctx, GenerationsQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.TotalCount != 3 || len(all.Generations) != 3 {
		t.Fatalf("expected 3 generations, got %d (%d rows)", all.TotalCount, len(all.Generations))
	}
	if all.Generations[0].ID != "gen3" {
		t.Fatalf("expected newest first, got %s", all.Generations[0].ID)
	}
	if all.PerPage != 50 || all.Page != 1 {
		t.Fatalf("expected default paging, got page %d per page %d", all.Page, all.PerPage)
	}

	hades, err := db.ListGenerations(ctx, GenerationsQuery{Game: "Hades"})
	if err != nil {
		t.Fatalf("list hades: %v", err)
	}
	if hades.TotalCount != 2 {
		t.Fatalf("expected 2 Hades generations, got %d", hades.TotalCount)
	}
	if g := hades.Generations[0]; g.ID != "gen2" || g.PlayerCount != 2 || len(g.Games) != 2 {
		t.Fatalf("unexpected first Hades generation: %+v", g)
	}

	page, err := db.ListGenerations(ctx, GenerationsQuery{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if page.TotalPages != 2 || len(page.Generations) != 1 || page.Generations[0].ID != "gen1" {
		t.Fatalf("unexpected second page: %+v", page)
	}
}

func TestPlacementsFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	if err := db.SaveGeneration(ctx, testResult("gen1", time.Now(), "Hades", "Hades")); err != nil {
		t.Fatalf("save: %v", err)
	}

	tests := []struct {
		name  string
		query PlacementsQuery
		want  int
	}{
		{"all", PlacementsQuery{GenerationID: "gen1"}, 6},
		{"one player", PlacementsQuery{GenerationID: "gen1", Player: 2}, 3},
		{"progression", PlacementsQuery{GenerationID: "gen1", ProgressionOnly: true}, 4},
		{"player progression", PlacementsQuery{GenerationID: "gen1", Player: 1, ProgressionOnly: true}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := db.Placements(ctx, tc.query)
			if err != nil {
				t.Fatalf("placements: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("expected %d placements, got %d", tc.want, len(got))
			}
		})
	}

	events, err := db.Placements(ctx, PlacementsQuery{GenerationID: "gen1", Player: 1})
	if err != nil {
		t.Fatalf("placements: %v", err)
	}
	if !events[2].Event || events[2].Classification != multiworld.Progression {
		t.Fatalf("event placement lost its flags: %+v", events[2])
	}
}
