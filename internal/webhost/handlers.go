package webhost

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/polycosmos/hades-world/internal/multiworld"
	"github.com/polycosmos/hades-world/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: Version,
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
		Games:   s.registry.Games(),
		Store:   s.db != nil,
	})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	resp := GamesResponse{Games: []GameSummary{}}
	for _, name := range s.registry.Games() {
		wt, err := s.registry.Lookup(name)
		if err != nil {
			continue
		}
		resp.Games = append(resp.Games, GameSummary{
			Game:                  wt.Game,
			Description:           wt.Description,
			DataVersion:           wt.DataVersion,
			RequiredClientVersion: wt.RequiredClientVersion.String(),
			TopologyPresent:       wt.TopologyPresent,
			ItemCount:             len(wt.ItemNameToID),
			LocationCount:         len(wt.LocationNameToID),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDataPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := s.registry.DataPackage()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}
	s.writeJSON(w, http.StatusOK, DataPackageResponse{Games: pkg})
}

// lookupGame resolves the {game} URL parameter, writing a 404 with a
// suggestion when it is unknown.
func (s *Server) lookupGame(w http.ResponseWriter, r *http.Request) (multiworld.WorldType, bool) {
	wt, err := s.registry.Lookup(chi.URLParam(r, "game"))
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, ErrTypeGameNotFound, err.Error(), nil)
		return multiworld.WorldType{}, false
	}
	return wt, true
}

func (s *Server) handleGameDataPackage(w http.ResponseWriter, r *http.Request) {
	wt, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	gd, err := wt.GameData()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}
	s.writeJSON(w, http.StatusOK, gd)
}

func (s *Server) handleGameOptions(w http.ResponseWriter, r *http.Request) {
	wt, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, OptionsResponse{Game: wt.Game, Options: wt.Options})
}

func (s *Server) handleGameTutorials(w http.ResponseWriter, r *http.Request) {
	wt, ok := s.lookupGame(w, r)
	if !ok {
		return
	}
	tutorials := wt.Web.Tutorials
	if tutorials == nil {
		tutorials = []multiworld.Tutorial{}
	}
	s.writeJSON(w, http.StatusOK, TutorialsResponse{Game: wt.Game, Tutorials: tutorials})
}

// handleGenerate takes a YAML body of player documents. ?seed= pins the seed.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var seed int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "seed must be an integer", map[string]any{"seed": raw})
			return
		}
		seed = n
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPlayerFileBytes+1))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "read body: "+err.Error(), nil)
		return
	}
	if len(body) > maxPlayerFileBytes {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, ErrTypeValidation, "player file too large", map[string]any{"limit_bytes": maxPlayerFileBytes})
		return
	}
	players, err := multiworld.LoadPlayers(bytes.NewReader(body), "request")
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	res, err := multiworld.Generate(r.Context(), s.registry, players, multiworld.GenerateConfig{Seed: seed, Logger: s.logger})
	if err != nil {
		s.writeGenerationError(w, r, err)
		return
	}

	stored := false
	if s.db != nil {
		if err := s.db.SaveGeneration(r.Context(), res); err != nil {
			s.logger.Printf("store generation %s: %v", res.ID, err)
		} else {
			stored = true
		}
	}

	s.writeJSON(w, http.StatusCreated, GenerateResponse{
		ID:         res.ID,
		Seed:       res.Seed,
		SeedName:   res.SeedName,
		Players:    res.Players,
		Spheres:    len(res.Spheres),
		Placements: len(res.Placements),
		Stored:     stored,
		SlotData:   res.SlotData,
	})
}

func (s *Server) writeGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := map[string]any{}
	var genErr *multiworld.GenerationError
	if errors.As(err, &genErr) {
		ctx["stage"] = string(genErr.Stage)
		if genErr.Player != 0 {
			ctx["player"] = genErr.Player
		}
	}

	switch {
	case errors.Is(err, multiworld.ErrUnknownGame):
		s.writeError(w, r, http.StatusBadRequest, ErrTypeGameNotFound, err.Error(), ctx)
	case errors.Is(err, multiworld.ErrInvalidOption),
		errors.Is(err, multiworld.ErrUnknownOption),
		genErr != nil && genErr.Stage == multiworld.StageOptions:
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), ctx)
	case errors.Is(err, multiworld.ErrFillFailed), errors.Is(err, multiworld.ErrUnbeatable):
		s.writeError(w, r, http.StatusUnprocessableEntity, ErrTypeUnbeatable, err.Error(), ctx)
	case r.Context().Err() != nil && errors.Is(err, r.Context().Err()):
		s.writeError(w, r, http.StatusGatewayTimeout, ErrTypeTimeout, err.Error(), ctx)
	default:
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), ctx)
	}
}

func (s *Server) handleListGenerations(w http.ResponseWriter, r *http.Request) {
	q := store.GenerationsQuery{Game: r.URL.Query().Get("game")}
	var err error
	if q.Page, err = intParam(r, "page"); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}
	if q.PerPage, err = intParam(r, "per_page"); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}
	list, err := s.db.ListGenerations(r.Context(), q)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) loadGeneration(w http.ResponseWriter, r *http.Request) (*multiworld.Result, bool) {
	res, err := s.db.GetGeneration(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound, err.Error(), nil)
		return nil, false
	}
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return nil, false
	}
	return res, true
}

func (s *Server) handleGetGeneration(w http.ResponseWriter, r *http.Request) {
	res, ok := s.loadGeneration(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGenerationPlacements(w http.ResponseWriter, r *http.Request) {
	player, err := intParam(r, "player")
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}
	q := store.PlacementsQuery{
		GenerationID:    chi.URLParam(r, "id"),
		Player:          player,
		ProgressionOnly: r.URL.Query().Get("progression") == "true",
	}
	placements, err := s.db.Placements(r.Context(), q)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound, err.Error(), nil)
		return
	}
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}
	s.writeJSON(w, http.StatusOK, placements)
}

func (s *Server) handleGenerationSpoiler(w http.ResponseWriter, r *http.Request) {
	res, ok := s.loadGeneration(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := multiworld.WriteSpoiler(&buf, res); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "AP_"+res.SeedName+"_Spoiler.txt"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}
