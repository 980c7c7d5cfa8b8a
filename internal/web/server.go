package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/robinrobin1706/space-biology/internal/domain"
	"github.com/robinrobin1706/space-biology/internal/ports"
)

const (
	experimentListLimit = 50
	paperListLimit      = 20
	enrichTimeout       = 30 * time.Second
)

// Analytics produces and lists analytics snapshots.
type Analytics interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
	History(ctx context.Context, limit int) ([]domain.Snapshot, error)
}

// Config holds the HTTP server settings.
type Config struct {
	Addr             string
	ShutdownTimeout  time.Duration
	QualityThreshold float64
}

type Server struct {
	router      *http.ServeMux
	cfg         Config
	experiments ports.ExperimentRepository
	dataPoints  ports.DataPointRepository
	papers      ports.PaperRepository
	analytics   Analytics
	metrics     ports.MetricsExporter
	push        http.Handler
	logger      *slog.Logger
	now         func() time.Time

	// background tracks enrichment scheduled by data-point ingestion.
	background sync.WaitGroup
}

func NewServer(
	cfg Config,
	store *ports.Store,
	analytics Analytics,
	metrics ports.MetricsExporter,
	push http.Handler,
	logger *slog.Logger,
) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.QualityThreshold <= 0 {
		cfg.QualityThreshold = domain.DefaultQualityThreshold
	}
	s := &Server{
		router:      http.NewServeMux(),
		cfg:         cfg,
		experiments: store.Experiments,
		dataPoints:  store.DataPoints,
		papers:      store.Papers,
		analytics:   analytics,
		metrics:     metrics,
		push:        push,
		logger:      logger,
		now:         time.Now,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Pages
	s.router.HandleFunc("GET /{$}", s.handleIndex)

	// Catalogue
	s.router.HandleFunc("GET /api/experiments", s.handleListExperiments)
	s.router.HandleFunc("POST /api/experiments", s.handleCreateExperiment)
	s.router.HandleFunc("GET /api/experiments/{code}", s.handleGetExperiment)
	s.router.HandleFunc("GET /api/suggestions", s.handleSuggestions)

	// Measurements
	s.router.HandleFunc("POST /api/data-points", s.handleCreateDataPoint)
	s.router.HandleFunc("GET /api/data-points/{code}", s.handleListDataPoints)

	s.router.HandleFunc("GET /api/papers", s.handleListPapers)

	s.router.HandleFunc("GET /api/analytics", s.handleAnalytics)
	s.router.HandleFunc("GET /api/analytics/history", s.handleAnalyticsHistory)

	s.router.HandleFunc("POST /api/ai/analyze-text", s.handleAnalyzeText)
	s.router.HandleFunc("POST /api/ai/predict-outcome", s.handlePredictOutcome)

	s.router.HandleFunc("GET /api/external/datasets", s.handleExternalDatasets)

	// Push channel
	if s.push != nil {
		s.router.Handle("GET /ws", s.push)
	}
}

// Handler returns the routed handler wrapped in the request middleware.
func (s *Server) Handler() http.Handler {
	return recoverPanics(s.logger, logRequests(s.logger, s.router))
}

// Start serves until ctx is cancelled, then shuts down gracefully and
// waits for scheduled enrichment to finish.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", "addr", s.cfg.Addr)

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
		}
	}()

	err := server.ListenAndServe()
	s.Wait()
	if errors.Is(err, http.ErrServerClosed) {
		return nil // Graceful shutdown
	}
	return err
}

// Wait blocks until background enrichment has finished.
func (s *Server) Wait() {
	s.background.Wait()
}
