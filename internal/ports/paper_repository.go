package ports

import (
	"context"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

// PaperQuery selects papers whose title or summary contains Search
// (case-insensitive) with relevance of at least MinRelevance.
type PaperQuery struct {
	Search       string
	MinRelevance int
	Limit        int
}

type PaperRepository interface {
	Create(ctx context.Context, paper *domain.Paper) error
	// Search returns matching papers, most relevant first.
	Search(ctx context.Context, q PaperQuery) ([]domain.Paper, error)
	Count(ctx context.Context) (int, error)
}
