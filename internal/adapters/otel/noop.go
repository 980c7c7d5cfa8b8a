package otel

import (
	"context"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) ExperimentCreated(context.Context, domain.Category) {}

func (e *NoOpExporter) DataPointIngested(context.Context, *domain.DataPoint) {}

func (e *NoOpExporter) SnapshotGenerated(context.Context, *domain.Snapshot) {}

func (e *NoOpExporter) BroadcastSent(context.Context, int) {}

func (e *NoOpExporter) Close(context.Context) error {
	return nil
}
