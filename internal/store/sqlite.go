package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/polycosmos/hades-world/internal/multiworld"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements DB on modernc.org/sqlite.
type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return &SQLiteDB{db: db}, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) Migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS generations (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			seed_name TEXT NOT NULL,
			player_count INTEGER NOT NULL,
			games TEXT NOT NULL,
			result_json TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS slots (
			generation_id TEXT NOT NULL,
			slot INTEGER NOT NULL,
			name TEXT NOT NULL,
			game TEXT NOT NULL,
			slot_data TEXT NOT NULL DEFAULT '{}',
			PRIMARY KEY (generation_id, slot),
			FOREIGN KEY (generation_id) REFERENCES generations(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS placements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			generation_id TEXT NOT NULL,
			location TEXT NOT NULL,
			location_id INTEGER NOT NULL,
			player INTEGER NOT NULL,
			item TEXT NOT NULL,
			item_id INTEGER NOT NULL,
			item_player INTEGER NOT NULL,
			classification INTEGER NOT NULL,
			event INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (generation_id) REFERENCES generations(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_slots_game ON slots(game)`,
		`CREATE INDEX IF NOT EXISTS idx_placements_generation ON placements(generation_id, player)`,
	}
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func gamesOf(res *multiworld.Result) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range res.Players {
		if !seen[p.Game] {
			seen[p.Game] = true
			out = append(out, p.Game)
		}
	}
	sort.Strings(out)
	return out
}

// SaveGeneration stores the full result plus queryable slot and placement
// rows. A result without an id gets one.
func (s *SQLiteDB) SaveGeneration(ctx context.Context, res *multiworld.Result) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}
	resultJSON, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO generations (id, seed, seed_name, player_count, games, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.Seed, res.SeedName, len(res.Players), strings.Join(gamesOf(res), ","),
		string(resultJSON), res.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}

	slotStmt, err := tx.PrepareContext(ctx, "INSERT INTO slots (generation_id, slot, name, game, slot_data) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer slotStmt.Close()
	for _, p := range res.Players {
		data, err := json.Marshal(res.SlotData[p.Slot])
		if err != nil {
			return fmt.Errorf("encode slot data for %d: %w", p.Slot, err)
		}
		if _, err := slotStmt.ExecContext(ctx, res.ID, p.Slot, p.Name, p.Game, string(data)); err != nil {
			return fmt.Errorf("insert slot %d: %w", p.Slot, err)
		}
	}

	placeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO placements (generation_id, location, location_id, player, item, item_id, item_player, classification, event)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer placeStmt.Close()
	for _, pl := range res.Placements {
		event := 0
		if pl.Event {
			event = 1
		}
		if _, err := placeStmt.ExecContext(ctx, res.ID, pl.Location, pl.LocationID, pl.Player,
			pl.Item, pl.ItemID, pl.ItemPlayer, int(pl.Classification), event); err != nil {
			return fmt.Errorf("insert placement %s: %w", pl.Location, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteDB) GetGeneration(ctx context.Context, id string) (*multiworld.Result, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT result_json FROM generations WHERE id = ?", id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var res multiworld.Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil, fmt.Errorf("decode generation %s: %w", id, err)
	}
	return &res, nil
}

func (s *SQLiteDB) ListGenerations(ctx context.Context, query GenerationsQuery) (*GenerationsList, error) {
	whereClause := ""
	args := []any{}
	if query.Game != "" {
		whereClause = "WHERE id IN (SELECT generation_id FROM slots WHERE game = ?)"
		args = append(args, query.Game)
	}

	var totalCount int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM generations "+whereClause, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	if query.PerPage <= 0 {
		query.PerPage = 50
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	totalPages := (totalCount + query.PerPage - 1) / query.PerPage
	offset := (query.Page - 1) * query.PerPage

	mainQuery := `SELECT id, seed, seed_name, player_count, games, created_at
		FROM generations ` + whereClause + `
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`
	args = append(args, query.PerPage, offset)

	rows, err := s.db.QueryContext(ctx, mainQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	gens := []Generation{}
	for rows.Next() {
		var g Generation
		var games, created string
		if err := rows.Scan(&g.ID, &g.Seed, &g.SeedName, &g.PlayerCount, &games, &created); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		if games != "" {
			g.Games = strings.Split(games, ",")
		}
		if g.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("generation %s created_at: %w", g.ID, err)
		}
		gens = append(gens, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generations: %w", err)
	}

	return &GenerationsList{
		Generations: gens,
		TotalCount:  totalCount,
		Page:        query.Page,
		PerPage:     query.PerPage,
		TotalPages:  totalPages,
	}, nil
}

func (s *SQLiteDB) Placements(ctx context.Context, query PlacementsQuery) ([]multiworld.Placement, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM generations WHERE id = ?", query.GenerationID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, query.GenerationID)
	}
	if err != nil {
		return nil, err
	}

	q := `SELECT location, location_id, player, item, item_id, item_player, classification, event
		FROM placements WHERE generation_id = ?`
	args := []any{query.GenerationID}
	if query.Player != 0 {
		q += " AND player = ?"
		args = append(args, query.Player)
	}
	if query.ProgressionOnly {
		q += " AND (classification & ?) != 0"
		args = append(args, int(multiworld.Progression))
	}
	q += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []multiworld.Placement{}
	for rows.Next() {
		var pl multiworld.Placement
		var class, event int
		if err := rows.Scan(&pl.Location, &pl.LocationID, &pl.Player, &pl.Item, &pl.ItemID, &pl.ItemPlayer, &class, &event); err != nil {
			return nil, err
		}
		pl.Classification = multiworld.Classification(class)
		pl.Event = event == 1
		out = append(out, pl)
	}
	return out, rows.Err()
}

var _ DB = (*SQLiteDB)(nil)
