package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

const (
	serviceName    = "spacebio"
	serviceVersion = "1.0.0"
)

// Exporter exports catalogue metrics to an OTEL Collector.
type Exporter struct {
	provider          *sdkmetric.MeterProvider
	experimentsTotal  metric.Int64Counter
	dataPointsTotal   metric.Int64Counter
	qualityHist       metric.Float64Histogram
	snapshotsTotal    metric.Int64Counter
	activeExperiments metric.Int64Histogram
	broadcastsTotal   metric.Int64Counter
	broadcastClients  metric.Int64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return newExporter(provider)
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)
	e := &Exporter{provider: provider}
	var err error

	if e.experimentsTotal, err = meter.Int64Counter(
		"spacebio_experiments_created_total",
		metric.WithDescription("Experiments added to the catalogue"),
		metric.WithUnit("{experiment}"),
	); err != nil {
		return nil, fmt.Errorf("creating experiments counter: %w", err)
	}

	if e.dataPointsTotal, err = meter.Int64Counter(
		"spacebio_data_points_ingested_total",
		metric.WithDescription("Data points stored"),
		metric.WithUnit("{data_point}"),
	); err != nil {
		return nil, fmt.Errorf("creating data points counter: %w", err)
	}

	if e.qualityHist, err = meter.Float64Histogram(
		"spacebio_data_point_quality",
		metric.WithDescription("Quality score of ingested data points"),
		metric.WithExplicitBucketBoundaries(0.2, 0.4, 0.6, 0.8, 0.9, 1),
	); err != nil {
		return nil, fmt.Errorf("creating quality histogram: %w", err)
	}

	if e.snapshotsTotal, err = meter.Int64Counter(
		"spacebio_snapshots_generated_total",
		metric.WithDescription("Analytics snapshots generated"),
		metric.WithUnit("{snapshot}"),
	); err != nil {
		return nil, fmt.Errorf("creating snapshots counter: %w", err)
	}

	if e.activeExperiments, err = meter.Int64Histogram(
		"spacebio_active_experiments",
		metric.WithDescription("Experiments created in the trailing 30 days, per snapshot"),
		metric.WithUnit("{experiment}"),
	); err != nil {
		return nil, fmt.Errorf("creating active experiments histogram: %w", err)
	}

	if e.broadcastsTotal, err = meter.Int64Counter(
		"spacebio_broadcasts_total",
		metric.WithDescription("Real-time updates pushed to clients"),
		metric.WithUnit("{broadcast}"),
	); err != nil {
		return nil, fmt.Errorf("creating broadcasts counter: %w", err)
	}

	if e.broadcastClients, err = meter.Int64Histogram(
		"spacebio_broadcast_clients",
		metric.WithDescription("Connected clients per real-time update"),
		metric.WithUnit("{client}"),
	); err != nil {
		return nil, fmt.Errorf("creating broadcast clients histogram: %w", err)
	}

	return e, nil
}

func (e *Exporter) ExperimentCreated(ctx context.Context, category domain.Category) {
	e.experimentsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("category", string(category))))
}

func (e *Exporter) DataPointIngested(ctx context.Context, dp *domain.DataPoint) {
	opt := metric.WithAttributes(
		attribute.String("measurement_type", dp.MeasurementType),
		attribute.String("source", dp.Source),
	)
	e.dataPointsTotal.Add(ctx, 1, opt)
	e.qualityHist.Record(ctx, dp.Quality, opt)
}

func (e *Exporter) SnapshotGenerated(ctx context.Context, s *domain.Snapshot) {
	e.snapshotsTotal.Add(ctx, 1)
	e.activeExperiments.Record(ctx, int64(s.ActiveExperiments))
}

func (e *Exporter) BroadcastSent(ctx context.Context, clients int) {
	e.broadcastsTotal.Add(ctx, 1)
	e.broadcastClients.Record(ctx, int64(clients))
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
