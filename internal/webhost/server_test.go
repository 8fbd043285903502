package webhost

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/polycosmos/hades-world/internal/hades"
	"github.com/polycosmos/hades-world/internal/multiworld"
	"github.com/polycosmos/hades-world/internal/store"
)

func newTestServer(t *testing.T, withStore bool) *Server {
	t.Helper()
	reg := multiworld.NewRegistry()
	if err := hades.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	var db store.DB
	if withStore {
		sqlite, err := store.NewSQLiteDB(":memory:")
		if err != nil {
			t.Fatalf("open store: %v", err)
		}
		t.Cleanup(func() { sqlite.Close() })
		if err := sqlite.Migrate(context.Background()); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		db = sqlite
	}
	return NewServer(reg, db, nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/yaml")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, false).Routes()
	w := do(t, h, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	resp := decode[HealthResponse](t, w)
	if resp.Status != "healthy" || len(resp.Games) != 1 || resp.Games[0] != hades.Game || resp.Store {
		t.Fatalf("unexpected health response: %+v", resp)
	}
}

func TestListGames(t *testing.T) {
	h := newTestServer(t, false).Routes()
	w := do(t, h, "GET", "/api/games", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	resp := decode[GamesResponse](t, w)
	if len(resp.Games) != 1 {
		t.Fatalf("expected one game, got %d", len(resp.Games))
	}
	g := resp.Games[0]
	if g.RequiredClientVersion != "0.4.4" || g.DataVersion != hades.DataVersion || g.TopologyPresent {
		t.Fatalf("unexpected game summary: %+v", g)
	}
}

func TestDataPackage(t *testing.T) {
	h := newTestServer(t, false).Routes()
	w := do(t, h, "GET", "/api/datapackage", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	resp := decode[DataPackageResponse](t, w)
	gd, ok := resp.Games[hades.Game]
	if !ok {
		t.Fatalf("datapackage missing %s", hades.Game)
	}
	if gd.Checksum == "" || len(gd.ItemNameToID) == 0 || len(gd.LocationNameToID) == 0 {
		t.Fatalf("incomplete game data: checksum %q, %d items, %d locations", gd.Checksum, len(gd.ItemNameToID), len(gd.LocationNameToID))
	}

	single := do(t, h, "GET", "/api/datapackage/Hades", "")
	if single.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", single.Code)
	}
	if got := decode[multiworld.GameData](t, single); got.Checksum != gd.Checksum {
		t.Fatalf("checksum mismatch: %s vs %s", got.Checksum, gd.Checksum)
	}
}

func TestUnknownGameSuggests(t *testing.T) {
	h := newTestServer(t, false).Routes()
	w := do(t, h, "GET", "/api/games/Hadse/options", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	resp := decode[APIError](t, w)
	if resp.Type != ErrTypeGameNotFound || !strings.Contains(resp.Message, `"Hades"`) {
		t.Fatalf("unexpected error: %+v", resp)
	}
}

func TestGameOptionsAndTutorials(t *testing.T) {
	h := newTestServer(t, false).Routes()
	w := do(t, h, "GET", "/api/games/Hades/options", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	opts := decode[OptionsResponse](t, w)
	if len(opts.Options) != len(hades.OptionDefs()) {
		t.Fatalf("expected %d options, got %d", len(hades.OptionDefs()), len(opts.Options))
	}
	if opts.Options[0].Name != hades.OptionInitialWeapon {
		t.Fatalf("expected declaration order, first option is %s", opts.Options[0].Name)
	}

	w = do(t, h, "GET", "/api/games/Hades/tutorials", "")
	tut := decode[TutorialsResponse](t, w)
	if len(tut.Tutorials) != 1 || tut.Tutorials[0].Title != "Multiworld Setup Guide" {
		t.Fatalf("unexpected tutorials: %+v", tut)
	}
}

const playerYAML = `name: Zagreus
game: Hades
Hades:
  storesanity: true
  filler_trap_percentage: 10
`

func TestGenerateAndHistory(t *testing.T) {
	h := newTestServer(t, true).Routes()
	w := do(t, h, "POST", "/api/generate?seed=77", playerYAML)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	gen := decode[GenerateResponse](t, w)
	if !gen.Stored || gen.Seed != 77 || len(gen.Players) != 1 || gen.Placements == 0 {
		t.Fatalf("unexpected generate response: %+v", gen)
	}

	list := do(t, h, "GET", "/api/generations?game=Hades", "")
	if list.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", list.Code)
	}
	gens := decode[store.GenerationsList](t, list)
	if gens.TotalCount != 1 || gens.Generations[0].ID != gen.ID {
		t.Fatalf("generation not listed: %+v", gens)
	}

	one := do(t, h, "GET", "/api/generations/"+gen.ID, "")
	if one.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", one.Code)
	}
	res := decode[multiworld.Result](t, one)
	if res.SeedName != gen.SeedName {
		t.Fatalf("expected seed name %s, got %s", gen.SeedName, res.SeedName)
	}

	prog := do(t, h, "GET", "/api/generations/"+gen.ID+"/placements?player=1&progression=true", "")
	if prog.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", prog.Code)
	}
	for _, p := range decode[[]multiworld.Placement](t, prog) {
		if !p.Classification.IsProgression() {
			t.Fatalf("non-progression placement %+v", p)
		}
	}

	spoiler := do(t, h, "GET", "/api/generations/"+gen.ID+"/spoiler", "")
	if spoiler.Code != http.StatusOK || !strings.Contains(spoiler.Body.String(), "Playthrough:") {
		t.Fatalf("unexpected spoiler: %d %s", spoiler.Code, spoiler.Body.String())
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	h := newTestServer(t, false).Routes()
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"bad seed", "/api/generate?seed=abc", playerYAML, http.StatusBadRequest},
		{"empty body", "/api/generate", "", http.StatusBadRequest},
		{"unknown game", "/api/generate", "name: Zagreus\ngame: Hadse\n", http.StatusBadRequest},
		{"unknown option", "/api/generate", "name: Zagreus\ngame: Hades\nHades:\n  weaponsanityy: true\n", http.StatusBadRequest},
		{"bad option value", "/api/generate", "name: Zagreus\ngame: Hades\nHades:\n  location_system: everywhere\n", http.StatusBadRequest},
		{"room weapon without weaponsanity", "/api/generate",
			"name: Zagreus\ngame: Hades\nHades:\n  location_system: room_weapon_based\n  weaponsanity: false\n", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, h, "POST", tc.path, tc.body)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestGenerationsWithoutStore(t *testing.T) {
	h := newTestServer(t, false).Routes()
	w := do(t, h, "GET", "/api/generations", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", w.Code)
	}
}

func TestGenerationNotFound(t *testing.T) {
	h := newTestServer(t, true).Routes()
	for _, path := range []string{"/api/generations/nope", "/api/generations/nope/placements", "/api/generations/nope/spoiler"} {
		if w := do(t, h, "GET", path, ""); w.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, w.Code)
		}
	}
}
