package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/robinrobin1706/space-biology/internal/domain"
)

const (
	DefaultSchedule = "@every 30s"
	DefaultWindow   = 60 * time.Second

	tickTimeout = 20 * time.Second
)

// RecentPoints lists data points with Timestamp >= since, newest first.
type RecentPoints interface {
	ListSince(ctx context.Context, since time.Time) ([]domain.DataPoint, error)
}

// BroadcastMetrics records broadcasts.
type BroadcastMetrics interface {
	BroadcastSent(ctx context.Context, clients int)
}

// Update is the payload of a real-time-update event.
type Update struct {
	Timestamp  time.Time         `json:"timestamp"`
	DataPoints int               `json:"dataPoints"`
	LatestData *domain.DataPoint `json:"latestData"`
}

// Broadcaster periodically pushes recently arrived data points to the hub.
type Broadcaster struct {
	hub     *Hub
	points  RecentPoints
	metrics BroadcastMetrics
	window  time.Duration
	now     func() time.Time
	logger  *slog.Logger
	cron    *cron.Cron
}

func NewBroadcaster(hub *Hub, points RecentPoints, metrics BroadcastMetrics, window time.Duration, logger *slog.Logger) *Broadcaster {
	if window <= 0 {
		window = DefaultWindow
	}
	cl := cronLogger{logger}
	return &Broadcaster{
		hub:     hub,
		points:  points,
		metrics: metrics,
		window:  window,
		now:     time.Now,
		logger:  logger,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// Start schedules Tick and starts the scheduler.
func (b *Broadcaster) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	_, err := b.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
		defer cancel()

		if err := b.Tick(ctx); err != nil {
			b.logger.Error("real-time update failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule broadcast %q: %w", schedule, err)
	}

	b.logger.Info("broadcaster started", "schedule", schedule, "window", b.window)
	b.cron.Start()
	return nil
}

// Stop halts the scheduler. The returned context is done once a running
// tick has finished.
func (b *Broadcaster) Stop() context.Context {
	return b.cron.Stop()
}

// Tick pushes one update if any data point arrived within the window. The
// newest point also goes to the subscribers of its experiment.
func (b *Broadcaster) Tick(ctx context.Context) error {
	now := b.now().UTC()

	points, err := b.points.ListSince(ctx, now.Add(-b.window))
	if err != nil {
		return fmt.Errorf("failed to list recent data points: %w", err)
	}
	if len(points) == 0 {
		return nil
	}

	latest := points[0]
	clients, err := b.hub.Broadcast(Message{
		Event: EventRealtimeUpdate,
		Data: Update{
			Timestamp:  now,
			DataPoints: len(points),
			LatestData: &latest,
		},
	})
	if err != nil {
		return err
	}

	if _, err := b.hub.Publish(ExperimentRoom(latest.ExperimentCode), Message{
		Event: EventExperimentUpdate,
		Data:  latest,
	}); err != nil {
		return err
	}

	b.metrics.BroadcastSent(ctx, clients)
	b.logger.Debug("real-time update sent", "dataPoints", len(points), "clients", clients)
	return nil
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
