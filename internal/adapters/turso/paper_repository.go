package turso

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/domain"
	"github.com/robinrobin1706/space-biology/internal/infrastructure/database"
	"github.com/robinrobin1706/space-biology/internal/ports"
)

const paperColumns = `id, title, summary, url, relevance, authors, keywords, citations, published_at`

type PaperRepository struct {
	db *sql.DB
}

func NewPaperRepository(db *sql.DB) *PaperRepository {
	return &PaperRepository{db: db}
}

func (r *PaperRepository) Create(ctx context.Context, p *domain.Paper) error {
	authors, err := toJSON(p.Authors)
	if err != nil {
		return err
	}
	keywords, err := toJSON(p.Keywords)
	if err != nil {
		return err
	}
	var published sql.NullString
	if p.PublishedAt != nil {
		published = sql.NullString{String: formatTime(*p.PublishedAt), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO papers (`+paperColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Summary, p.URL, p.Relevance, authors, keywords, p.Citations, published,
	)
	if err != nil {
		return fmt.Errorf("failed to create paper: %w", err)
	}
	return nil
}

// Search applies the relevance floor in SQL and the text match in process,
// folding case over all of Unicode.
func (r *PaperRepository) Search(ctx context.Context, q ports.PaperQuery) ([]domain.Paper, error) {
	var w where
	if q.MinRelevance > 0 {
		w.add("relevance >= ?", q.MinRelevance)
	}
	query := `SELECT ` + paperColumns + ` FROM papers` + w.String() + ` ORDER BY relevance DESC, rowid`

	return database.WithRetry(ctx, 2, func() ([]domain.Paper, error) {
		rows, err := r.db.QueryContext(ctx, query, w.args...)
		if err != nil {
			return nil, fmt.Errorf("failed to search papers: %w", err)
		}
		defer rows.Close()

		papers := []domain.Paper{}
		for rows.Next() {
			p, err := scanPaper(rows)
			if err != nil {
				return nil, fmt.Errorf("failed to scan paper: %w", err)
			}
			if q.Search != "" && !catalog.ContainsFold(p.Title, q.Search) && !catalog.ContainsFold(p.Summary, q.Search) {
				continue
			}
			papers = append(papers, *p)
			if q.Limit > 0 && len(papers) == q.Limit {
				break
			}
		}
		return papers, rows.Err()
	})
}

func (r *PaperRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count papers: %w", err)
	}
	return n, nil
}

func scanPaper(s rowScanner) (*domain.Paper, error) {
	var (
		p         domain.Paper
		authors   sql.NullString
		keywords  sql.NullString
		published sql.NullString
	)
	if err := s.Scan(&p.ID, &p.Title, &p.Summary, &p.URL, &p.Relevance, &authors, &keywords, &p.Citations, &published); err != nil {
		return nil, err
	}

	p.Authors, p.Keywords = []string{}, []string{}
	if err := fromJSON(authors, &p.Authors); err != nil {
		return nil, err
	}
	if err := fromJSON(keywords, &p.Keywords); err != nil {
		return nil, err
	}
	if published.Valid {
		t, err := parseTime(published.String)
		if err != nil {
			return nil, fmt.Errorf("invalid published_at %q: %w", published.String, err)
		}
		p.PublishedAt = &t
	}
	return &p, nil
}
