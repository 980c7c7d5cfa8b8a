package turso

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/robinrobin1706/space-biology/internal/catalog"
	"github.com/robinrobin1706/space-biology/internal/domain"
	"github.com/robinrobin1706/space-biology/internal/infrastructure/database"
)

const experimentColumns = `code, title, description, impact, organism, mission, duration_days, category,
	created_at, sentiment, complexity, keywords, prediction`

type ExperimentRepository struct {
	db *sql.DB
}

func NewExperimentRepository(db *sql.DB) *ExperimentRepository {
	return &ExperimentRepository{db: db}
}

func (r *ExperimentRepository) Create(ctx context.Context, e *domain.Experiment) error {
	cols, err := analysisColumns(e.Analysis)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO experiments (`+experimentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Code, e.Title, e.Description, e.Impact, e.Organism, e.Mission, e.DurationDays, string(e.Category),
		formatTime(e.CreatedAt), cols.sentiment, cols.complexity, cols.keywords, cols.prediction,
	)
	if database.IsUniqueViolation(err) {
		return domain.ErrDuplicateCode
	}
	if err != nil {
		return fmt.Errorf("failed to create experiment: %w", err)
	}
	return nil
}

func (r *ExperimentRepository) GetByCode(ctx context.Context, code string) (*domain.Experiment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+experimentColumns+` FROM experiments WHERE code = ?`, code)
	e, err := scanExperiment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get experiment: %w", err)
	}
	return e, nil
}

// List filters on category in SQL and applies the remaining constraints in
// process, so text matching folds case the same way catalog.Filter does.
// SQLite's LOWER and LIKE only fold ASCII.
func (r *ExperimentRepository) List(ctx context.Context, spec catalog.Spec, limit int) ([]domain.Experiment, error) {
	var w where
	if spec.Category != "" {
		w.add("category = ?", string(spec.Category))
	}
	query := `SELECT ` + experimentColumns + ` FROM experiments` + w.String() + ` ORDER BY id`

	return database.WithRetry(ctx, 2, func() ([]domain.Experiment, error) {
		rows, err := r.db.QueryContext(ctx, query, w.args...)
		if err != nil {
			return nil, fmt.Errorf("failed to list experiments: %w", err)
		}
		defer rows.Close()

		experiments := []domain.Experiment{}
		for rows.Next() {
			e, err := scanExperiment(rows)
			if err != nil {
				return nil, fmt.Errorf("failed to scan experiment: %w", err)
			}
			if !spec.Matches(e) {
				continue
			}
			experiments = append(experiments, *e)
			if limit > 0 && len(experiments) == limit {
				break
			}
		}
		return experiments, rows.Err()
	})
}

func (r *ExperimentRepository) UpdateAnalysis(ctx context.Context, code string, a *domain.Analysis) error {
	cols, err := analysisColumns(a)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE experiments SET sentiment = ?, complexity = ?, keywords = ?, prediction = ?
		WHERE code = ?`,
		cols.sentiment, cols.complexity, cols.keywords, cols.prediction, code,
	)
	if err != nil {
		return fmt.Errorf("failed to update experiment analysis: %w", err)
	}
	return nil
}

func (r *ExperimentRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM experiments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count experiments: %w", err)
	}
	return n, nil
}

type analysisRow struct {
	sentiment  sql.NullFloat64
	complexity sql.NullFloat64
	keywords   sql.NullString
	prediction sql.NullString
}

func analysisColumns(a *domain.Analysis) (analysisRow, error) {
	if a == nil {
		return analysisRow{}, nil
	}
	row := analysisRow{
		sentiment:  sql.NullFloat64{Float64: a.Sentiment, Valid: true},
		complexity: sql.NullFloat64{Float64: a.Complexity, Valid: true},
	}

	keywords, err := toJSON(a.Keywords)
	if err != nil {
		return analysisRow{}, err
	}
	row.keywords = sql.NullString{String: keywords, Valid: true}

	if a.Prediction != nil {
		prediction, err := toJSON(a.Prediction)
		if err != nil {
			return analysisRow{}, err
		}
		row.prediction = sql.NullString{String: prediction, Valid: true}
	}
	return row, nil
}

func scanExperiment(s rowScanner) (*domain.Experiment, error) {
	var (
		e         domain.Experiment
		category  string
		createdAt string
		a         analysisRow
	)
	err := s.Scan(
		&e.Code, &e.Title, &e.Description, &e.Impact, &e.Organism, &e.Mission, &e.DurationDays, &category,
		&createdAt, &a.sentiment, &a.complexity, &a.keywords, &a.prediction,
	)
	if err != nil {
		return nil, err
	}

	e.Category = domain.Category(category)
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}

	if a.sentiment.Valid {
		analysis := &domain.Analysis{
			Sentiment:  a.sentiment.Float64,
			Complexity: a.complexity.Float64,
			Keywords:   []string{},
		}
		if err := fromJSON(a.keywords, &analysis.Keywords); err != nil {
			return nil, err
		}
		if a.prediction.Valid {
			analysis.Prediction = &domain.Prediction{}
			if err := fromJSON(a.prediction, analysis.Prediction); err != nil {
				return nil, err
			}
		}
		e.Analysis = analysis
	}
	return &e, nil
}
