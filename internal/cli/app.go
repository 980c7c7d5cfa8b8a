package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/robinrobin1706/space-biology/internal/adapters/mongo"
	"github.com/robinrobin1706/space-biology/internal/adapters/otel"
	"github.com/robinrobin1706/space-biology/internal/adapters/turso"
	"github.com/robinrobin1706/space-biology/internal/infrastructure/config"
	"github.com/robinrobin1706/space-biology/internal/infrastructure/database"
	"github.com/robinrobin1706/space-biology/internal/migrate"
	"github.com/robinrobin1706/space-biology/internal/ports"
)

// timeNow is the clock used by commands.
var timeNow = time.Now

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config  *config.Config
	Store   *ports.Store
	Metrics ports.MetricsExporter
	Logger  *slog.Logger
}

// NewAppContext loads configuration and opens the configured store.
func NewAppContext(ctx context.Context, logger *slog.Logger) (*AppContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &AppContext{
		Config:  cfg,
		Store:   store,
		Metrics: otel.New(ctx, telemetryConfig(cfg.Telemetry), logger),
		Logger:  logger,
	}, nil
}

// Close releases all resources held by the AppContext.
func (a *AppContext) Close(ctx context.Context) error {
	var firstErr error
	if a.Metrics != nil {
		if err := a.Metrics.Close(ctx); err != nil {
			firstErr = err
		}
	}
	if a.Store != nil && a.Store.Close != nil {
		if err := a.Store.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// openStore connects to the backend named by cfg.Store. The libsql schema
// is migrated on open; mongo indexes are ensured.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ports.Store, error) {
	switch cfg.Store {
	case config.StoreMongo:
		client, err := mongo.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Name)
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		logger.Debug("using mongo store", "database", cfg.Mongo.Name)
		return mongo.NewStore(client, db), nil

	default:
		db, err := database.Open(ctx, cfg.Database.URL, cfg.Database.AuthToken)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := migrate.RunAll(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Debug("using libsql store", "remote", database.IsRemote(cfg.Database.URL))
		return turso.NewStore(db), nil
	}
}

func telemetryConfig(t config.Telemetry) otel.Config {
	return otel.Config{
		Endpoint: t.Endpoint,
		Enabled:  t.Enabled,
		Insecure: t.Insecure,
	}
}

// newLogger builds the process logger: JSON for long-running commands,
// text otherwise.
func newLogger(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// levelFromEnv reads the log level without failing on other config errors,
// so the logger exists before config validation reports them.
func levelFromEnv() slog.Level {
	cfg, err := config.Load()
	if err != nil {
		return slog.LevelInfo
	}
	return cfg.Level()
}
