package turso_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/robinrobin1706/space-biology/internal/domain"
	"github.com/robinrobin1706/space-biology/internal/migrate"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := migrate.RunAll(ctx, db); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newExperiment(t *testing.T, code, category, impact string) *domain.Experiment {
	t.Helper()

	e, err := domain.NewExperiment(domain.ExperimentInput{
		Code:        code,
		Title:       code + " study",
		Description: "Description of " + code,
		Impact:      impact,
		Organism:    "Arabidopsis thaliana",
		Mission:     "ISS",
		Duration:    "30 days",
		Category:    category,
	}, baseTime)
	if err != nil {
		t.Fatalf("NewExperiment(%s): %v", code, err)
	}
	return e
}
