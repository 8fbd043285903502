// Package webhost serves game metadata and runs generations over HTTP.
package webhost

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/polycosmos/hades-world/internal/multiworld"
	"github.com/polycosmos/hades-world/internal/store"
)

// Version is set at build time.
var Version = "dev"

const (
	maxPlayerFileBytes = 1 << 20
	generateTimeout    = 60 * time.Second
)

type Server struct {
	registry  *multiworld.Registry
	db        store.DB
	logger    *log.Logger
	startTime time.Time
}

// NewServer builds a server over the registry. db may be nil, in which case
// generations are not recorded and the history routes answer 503.
func NewServer(reg *multiworld.Registry, db store.DB, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{
		registry:  reg,
		db:        db,
		logger:    logger,
		startTime: time.Now(),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(generateTimeout))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/games", s.handleListGames)
		r.Get("/datapackage", s.handleDataPackage)
		r.Get("/datapackage/{game}", s.handleGameDataPackage)
		r.Get("/games/{game}/options", s.handleGameOptions)
		r.Get("/games/{game}/tutorials", s.handleGameTutorials)

		r.Post("/generate", s.handleGenerate)

		r.Route("/generations", func(r chi.Router) {
			r.Use(s.requireStore)
			r.Get("/", s.handleListGenerations)
			r.Get("/{id}", s.handleGetGeneration)
			r.Get("/{id}/placements", s.handleGenerationPlacements)
			r.Get("/{id}/spoiler", s.handleGenerationSpoiler)
		})
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Printf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.db == nil {
			s.writeError(w, r, http.StatusServiceUnavailable, ErrTypeServiceUnavailable, "generation store is disabled", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Hades-World-Version", Version)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string, ctx map[string]any) {
	if status >= http.StatusInternalServerError {
		s.logger.Printf("%s %s: %s", r.Method, r.URL.Path, message)
	}
	s.writeJSON(w, status, APIError{
		Type:      errType,
		Message:   message,
		Context:   ctx,
		RequestID: middleware.GetReqID(r.Context()),
	})
}
