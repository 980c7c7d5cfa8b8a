package ports

import (
	"context"

	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

// ExperimentRepository stores the catalogue. Lookups return nil, nil when the
// code is unknown; Create returns domain.ErrDuplicateCode on a reused code.
type ExperimentRepository interface {
	Create(ctx context.Context, experiment *domain.Experiment) error
	GetByCode(ctx context.Context, code string) (*domain.Experiment, error)
	// List returns experiments matching spec in catalogue order, at most
	// limit of them when limit > 0.
	List(ctx context.Context, spec catalog.Spec, limit int) ([]domain.Experiment, error)
	UpdateAnalysis(ctx context.Context, code string, analysis *domain.Analysis) error
	Count(ctx context.Context) (int, error)
}
