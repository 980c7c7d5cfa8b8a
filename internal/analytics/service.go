package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

const DefaultHistoryLimit = 20

// Service provides analytics business logic
type Service struct {
	experiments ExperimentLister
	dataPoints  ProcessedCounter
	snapshots   SnapshotStore
	metrics     Metrics
	aggregator  *Aggregator
	logger      *slog.Logger
}

// NewService creates a new analytics service
func NewService(experiments ExperimentLister, dataPoints ProcessedCounter, snapshots SnapshotStore, metrics Metrics, aggregator *Aggregator, logger *slog.Logger) *Service {
	if aggregator == nil {
		aggregator = NewAggregator(nil, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		experiments: experiments,
		dataPoints:  dataPoints,
		snapshots:   snapshots,
		metrics:     metrics,
		aggregator:  aggregator,
		logger:      logger,
	}
}

// Snapshot aggregates the current catalogue and records the result. A
// failure to record is logged; the snapshot is still returned.
func (s *Service) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	var (
		experiments []domain.Experiment
		processed   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		experiments, err = s.experiments.List(gctx, catalog.Spec{}, 0)
		if err != nil {
			return fmt.Errorf("failed to list experiments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		processed, err = s.dataPoints.CountProcessed(gctx)
		if err != nil {
			return fmt.Errorf("failed to count data points: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot, err := s.aggregator.summarize(ctx, experiments, processed)
	if err != nil {
		return nil, err
	}
	snapshot.ID = uuid.NewString()

	if err := s.snapshots.Create(ctx, &snapshot); err != nil {
		s.logger.Warn("failed to record analytics snapshot", "id", snapshot.ID, "error", err)
	}
	if s.metrics != nil {
		s.metrics.SnapshotGenerated(ctx, &snapshot)
	}

	s.logger.Debug("analytics snapshot generated",
		"id", snapshot.ID,
		"experiments", snapshot.TotalExperiments,
		"active", snapshot.ActiveExperiments,
	)
	return &snapshot, nil
}

// History returns recorded snapshots, most recent first.
func (s *Service) History(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	snapshots, err := s.snapshots.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}
