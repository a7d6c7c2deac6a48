package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/liftlens/internal/storage"
	"github.com/go-chi/chi/v5"
	"tailscale.com/client/local"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db             *storage.DB
	log            *slog.Logger
	apiKey         string
	trendThreshold float64
	loc            *time.Location
	ts             *local.Client
	now            func() time.Time
	router         chi.Router
}

// Options carries the analytics tunables the handlers apply.
type Options struct {
	APIKey string
	// TrendThresholdPct is the flat band for trend classification.
	TrendThresholdPct float64
	// Location is the user's local calendar zone for day bucketing.
	Location *time.Location
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, opts Options, log *slog.Logger) *Server {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	s := &Server{
		db:             db,
		log:            log,
		apiKey:         opts.APIKey,
		trendThreshold: opts.TrendThresholdPct,
		loc:            loc,
		now:            time.Now,
		router:         chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale wires the tsnet local client so requests are attributed to
// the Tailscale identity instead of the dev user.
func (s *Server) SetTailscale(lc *local.Client) {
	s.ts = lc
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	// Ingest endpoint (API key required)
	s.router.Route("/api/v1/workouts", func(r chi.Router) {
		r.With(APIKeyAuth(s.apiKey)).Post("/", s.handleIngestWorkout)
		r.Get("/", s.handleQueryWorkouts)
		r.Get("/{id}", s.handleGetWorkout)
	})

	// Analytics endpoints (no extra auth — tsnet handles access)
	s.router.Get("/api/v1/analytics/history/{exerciseID}", s.handleExerciseHistory)
	s.router.Get("/api/v1/analytics/trend/{exerciseID}", s.handleExerciseTrend)
	s.router.Get("/api/v1/analytics/muscles", s.handleMuscleDistribution)
	s.router.Get("/api/v1/analytics/heatmap", s.handleHeatmap)
	s.router.Get("/api/v1/analytics/compare", s.handleComparePeriods)

	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/stats", s.handleStats)
}
