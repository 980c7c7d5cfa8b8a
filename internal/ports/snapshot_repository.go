package ports

import (
	"context"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

// SnapshotRepository keeps the advisory history of analytics snapshots.
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *domain.Snapshot) error
	// List returns the most recent snapshots first.
	List(ctx context.Context, limit int) ([]domain.Snapshot, error)
}
