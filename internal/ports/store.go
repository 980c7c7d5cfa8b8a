package ports

import "context"

// Store bundles the repositories of one storage backend.
type Store struct {
	Experiments ExperimentRepository
	DataPoints  DataPointRepository
	Papers      PaperRepository
	Snapshots   SnapshotRepository

	// Close releases the backend's connection.
	Close func(ctx context.Context) error
}
