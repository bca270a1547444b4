package server

import (
	"log/slog"
	"math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/repforge/internal/catalog"
	"github.com/meltforce/repforge/internal/config"
	"github.com/meltforce/repforge/internal/generator"
	"github.com/meltforce/repforge/internal/storage"
	"tailscale.com/client/local"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	cat    *catalog.Catalog
	gen    *generator.Generator
	log    *slog.Logger
	apiKey string
	gencfg config.GeneratorConfig
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, cat *catalog.Catalog, rng *rand.Rand, cfg *config.Config, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		cat:    cat,
		gen:    generator.New(cat, rng),
		log:    log,
		apiKey: cfg.Auth.APIKey,
		gencfg: cfg.Generator,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(DevIdentity)

	// Session ingest (API key required — used by the sync CLI)
	s.router.Route("/api/v1/sessions", func(r chi.Router) {
		r.With(APIKeyAuth(s.apiKey)).Post("/", s.handleCompleteSession)
		r.Get("/", s.handleQuerySessions)
		r.Get("/{id}", s.handleGetSession)
	})

	// Workout generation (no auth — tsnet handles access)
	s.router.Post("/api/v1/workouts/generate", s.handleGenerate)
	s.router.Post("/api/v1/workouts/substitute", s.handleSubstitute)

	// Catalog
	s.router.Get("/api/v1/catalog", s.handleCatalog)
	s.router.Get("/api/v1/catalog/muscles", s.handleCatalogMuscles)

	// Preferences
	s.router.Get("/api/v1/prefs", s.handleGetPrefs)
	s.router.Put("/api/v1/prefs/{exercise}", s.handlePutPref)

	// Progress
	s.router.Get("/api/v1/progress", s.handleProgress)
	s.router.Get("/charts/progress", s.handleProgressChart)

	s.router.Get("/api/v1/me", s.handleMe)
}

// SetTailscale swaps the dev identity for Tailscale WhoIs identity on
// every route. Must be called before the server starts listening.
func (s *Server) SetTailscale(lc *local.Client) {
	inner := s.router
	wrapped := chi.NewRouter()
	wrapped.Use(TailscaleIdentity(lc, s.db, s.log))
	wrapped.Mount("/", inner)
	s.router = wrapped
}
