package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/dgallion1/stylegest/internal/config"
	"github.com/dgallion1/stylegest/internal/extract"
	"github.com/dgallion1/stylegest/internal/pipeline"
	"github.com/dgallion1/stylegest/internal/report"
	"github.com/dgallion1/stylegest/internal/store"
)

// ReportStore is the report archive the API reads from.
type ReportStore interface {
	Get(ctx context.Context, id string) (report.StyleReport, error)
	List(ctx context.Context, limit int) ([]store.Meta, error)
	Delete(ctx context.Context, id string) error
}

// Server is the HTTP API server for stylegest.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	reports      ReportStore
	stats        *extract.LatencyStats
	limiter      *rate.Limiter
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil.
func NewServer(orch *pipeline.Orchestrator, reports ReportStore, stats *extract.LatencyStats, log *slog.Logger, cfg config.Config) *Server {
	perMinute := max(cfg.AnalyzeRatePerMinute, 1)
	s := &Server{
		orchestrator: orch,
		reports:      reports,
		stats:        stats,
		limiter:      rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.StylegestAPIKey, s.log))

		r.With(RateLimit(s.limiter)).Post("/api/analyze", s.handleAnalyze)
		r.Get("/api/analyze/{jobID}/status", s.handleAnalyzeStatus)
		r.Get("/api/stats/extract", s.handleExtractStats)

		r.Get("/api/reports", s.handleListReports)
		r.Get("/api/reports/{reportID}", s.handleGetReport)
		r.Get("/api/reports/{reportID}/summary", s.handleReportSummary)
		r.Delete("/api/reports/{reportID}", s.handleDeleteReport)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
