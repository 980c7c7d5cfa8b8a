package ports

import (
	"context"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

// MetricsExporter exports catalogue activity to an external observability system.
type MetricsExporter interface {
	// ExperimentCreated counts a newly stored experiment.
	ExperimentCreated(ctx context.Context, category domain.Category)
	// DataPointIngested counts a stored data point and records its quality.
	DataPointIngested(ctx context.Context, dp *domain.DataPoint)
	// SnapshotGenerated records the headline numbers of a snapshot.
	SnapshotGenerated(ctx context.Context, s *domain.Snapshot)
	// BroadcastSent counts a real-time update pushed to clients.
	BroadcastSent(ctx context.Context, clients int)
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}
