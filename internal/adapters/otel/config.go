package otel

import (
	"context"
	"log/slog"

	"github.com/robinrobin1706/space-biology/internal/ports"
)

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string
	Enabled  bool
	Insecure bool
}

// New returns an OTLP exporter when cfg enables one, and a no-op exporter
// otherwise or when the exporter cannot be created.
func New(ctx context.Context, cfg Config, logger *slog.Logger) ports.MetricsExporter {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return NewNoOpExporter()
	}
	exp, err := NewExporter(ctx, cfg)
	if err != nil {
		logger.Warn("metrics export disabled", "endpoint", cfg.Endpoint, "error", err)
		return NewNoOpExporter()
	}
	return exp
}
