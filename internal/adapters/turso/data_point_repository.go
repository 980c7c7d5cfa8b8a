package turso

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robinrobin1706/space-biology/internal/domain"
	"github.com/robinrobin1706/space-biology/internal/util"
)

const dataPointColumns = `id, experiment_code, timestamp, measurement_type, value, unit, quality, processed, source`

type DataPointRepository struct {
	db *sql.DB
}

func NewDataPointRepository(db *sql.DB) *DataPointRepository {
	return &DataPointRepository{db: db}
}

func (r *DataPointRepository) Create(ctx context.Context, dp *domain.DataPoint) error {
	var value sql.NullString
	if raw := dp.Value.Interface(); raw != nil {
		b, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("failed to encode data point value: %w", err)
		}
		value = sql.NullString{String: string(b), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO data_points (`+dataPointColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dp.ID, dp.ExperimentCode, formatTime(dp.Timestamp), dp.MeasurementType, value,
		util.NullString(dp.Unit), dp.Quality, util.BoolToInt64(dp.Processed), dp.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to create data point: %w", err)
	}
	return nil
}

func (r *DataPointRepository) ListByExperiment(ctx context.Context, code string) ([]domain.DataPoint, error) {
	return r.query(ctx, `
		SELECT `+dataPointColumns+` FROM data_points
		WHERE experiment_code = ?
		ORDER BY timestamp DESC, rowid DESC`, code)
}

func (r *DataPointRepository) ListSince(ctx context.Context, since time.Time) ([]domain.DataPoint, error) {
	return r.query(ctx, `
		SELECT `+dataPointColumns+` FROM data_points
		WHERE timestamp >= ?
		ORDER BY timestamp DESC, rowid DESC`, formatTime(since))
}

func (r *DataPointRepository) CountProcessed(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM data_points WHERE processed = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count data points: %w", err)
	}
	return n, nil
}

func (r *DataPointRepository) query(ctx context.Context, query string, args ...any) ([]domain.DataPoint, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list data points: %w", err)
	}
	defer rows.Close()

	points := []domain.DataPoint{}
	for rows.Next() {
		dp, err := scanDataPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan data point: %w", err)
		}
		points = append(points, *dp)
	}
	return points, rows.Err()
}

func scanDataPoint(s rowScanner) (*domain.DataPoint, error) {
	var (
		dp        domain.DataPoint
		ts        string
		value     sql.NullString
		unit      sql.NullString
		processed int64
	)
	if err := s.Scan(&dp.ID, &dp.ExperimentCode, &ts, &dp.MeasurementType, &value, &unit, &dp.Quality, &processed, &dp.Source); err != nil {
		return nil, err
	}

	var err error
	if dp.Timestamp, err = parseTime(ts); err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", ts, err)
	}
	if err := fromJSON(value, &dp.Value); err != nil {
		return nil, err
	}
	if p := util.NullStringToPtr(unit); p != nil {
		dp.Unit = *p
	}
	dp.Processed = processed == 1
	return &dp, nil
}
