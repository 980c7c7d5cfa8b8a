package analytics

import (
	"context"

	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

// ExperimentLister lists the catalogue the aggregator runs over.
type ExperimentLister interface {
	List(ctx context.Context, spec catalog.Spec, limit int) ([]domain.Experiment, error)
}

// ProcessedCounter counts processed data points.
type ProcessedCounter interface {
	CountProcessed(ctx context.Context) (int, error)
}

// SnapshotStore records snapshots and reads back their history.
type SnapshotStore interface {
	Create(ctx context.Context, snapshot *domain.Snapshot) error
	List(ctx context.Context, limit int) ([]domain.Snapshot, error)
}

// Metrics receives the headline numbers of each snapshot.
type Metrics interface {
	SnapshotGenerated(ctx context.Context, s *domain.Snapshot)
}
