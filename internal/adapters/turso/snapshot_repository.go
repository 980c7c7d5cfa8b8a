package turso

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Create(ctx context.Context, s *domain.Snapshot) error {
	categories, err := toJSON(s.CategoryDistribution)
	if err != nil {
		return err
	}
	missions, err := toJSON(s.MissionDistribution)
	if err != nil {
		return err
	}
	insights, err := toJSON(s.Insights)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analytics_snapshots (
			id, generated_at, total_experiments, active_experiments, data_points_processed,
			category_distribution, mission_distribution, insights
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, formatTime(s.GeneratedAt), s.TotalExperiments, s.ActiveExperiments, s.DataPointsProcessed,
		categories, missions, insights,
	)
	if err != nil {
		return fmt.Errorf("failed to create analytics snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) List(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, generated_at, total_experiments, active_experiments, data_points_processed,
			category_distribution, mission_distribution, insights
		FROM analytics_snapshots
		ORDER BY generated_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analytics snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []domain.Snapshot{}
	for rows.Next() {
		var (
			s                              domain.Snapshot
			generatedAt                    string
			categories, missions, insights sql.NullString
		)
		if err := rows.Scan(&s.ID, &generatedAt, &s.TotalExperiments, &s.ActiveExperiments, &s.DataPointsProcessed,
			&categories, &missions, &insights); err != nil {
			return nil, fmt.Errorf("failed to scan analytics snapshot: %w", err)
		}
		if s.GeneratedAt, err = parseTime(generatedAt); err != nil {
			return nil, fmt.Errorf("invalid generated_at %q: %w", generatedAt, err)
		}
		for _, col := range []struct {
			src  sql.NullString
			dest any
		}{
			{categories, &s.CategoryDistribution},
			{missions, &s.MissionDistribution},
			{insights, &s.Insights},
		} {
			if err := fromJSON(col.src, col.dest); err != nil {
				return nil, err
			}
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
