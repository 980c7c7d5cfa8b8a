package turso

import (
	"context"
	"database/sql"

	"github.com/robinrobin1706/space-biology/internal/ports"
)

// NewStore creates all turso repository implementations from a database
// connection. Closing the store closes db.
func NewStore(db *sql.DB) *ports.Store {
	return &ports.Store{
		Experiments: NewExperimentRepository(db),
		DataPoints:  NewDataPointRepository(db),
		Papers:      NewPaperRepository(db),
		Snapshots:   NewSnapshotRepository(db),
		Close: func(context.Context) error {
			return db.Close()
		},
	}
}
