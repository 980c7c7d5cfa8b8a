package ports

import (
	"context"
	"time"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

type DataPointRepository interface {
	Create(ctx context.Context, dp *domain.DataPoint) error
	// ListByExperiment returns the experiment's data points, newest first.
	ListByExperiment(ctx context.Context, code string) ([]domain.DataPoint, error)
	// ListSince returns data points with Timestamp >= since, newest first.
	ListSince(ctx context.Context, since time.Time) ([]domain.DataPoint, error)
	CountProcessed(ctx context.Context) (int, error)
}
