// Package config loads process configuration from SPACEBIO_* environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/robinrobin1706/space-biology/internal/analytics"
	"github.com/robinrobin1706/space-biology/internal/domain"
)

const envPrefix = "SPACEBIO"

// Store backends.
const (
	StoreLibsql = "libsql"
	StoreMongo  = "mongo"
)

// Database holds libsql (local file or Turso) configuration.
type Database struct {
	URL       string `envconfig:"DATABASE_URL" default:"file:spacebio.db"`
	AuthToken string `envconfig:"AUTH_TOKEN"`
}

// Mongo holds document-store configuration.
type Mongo struct {
	URI  string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Name string `envconfig:"MONGO_DATABASE" default:"nasa_space_biology"`
}

// Realtime configures the periodic data-point broadcast.
type Realtime struct {
	Schedule string        `envconfig:"BROADCAST_SCHEDULE" default:"@every 30s"`
	Window   time.Duration `envconfig:"BROADCAST_WINDOW" default:"60s"`
}

// Telemetry configures the OTLP metrics exporter.
type Telemetry struct {
	Enabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	Endpoint string `envconfig:"OTEL_ENDPOINT" default:"localhost:4317"`
	Insecure bool   `envconfig:"OTEL_INSECURE" default:"true"`
}

// Config is the full service configuration. The embedded groups share the
// SPACEBIO prefix.
type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	Store           string        `envconfig:"STORE" default:"libsql"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`

	// QualityThreshold is the data-point quality above which the owning
	// experiment is re-enriched.
	QualityThreshold float64 `envconfig:"QUALITY_THRESHOLD" default:"0.8"`

	Insights []string `envconfig:"INSIGHTS"`

	Database
	Mongo
	Realtime
	Telemetry
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreLibsql, StoreMongo:
	default:
		return fmt.Errorf("invalid %s_STORE %q: want %s or %s", envPrefix, c.Store, StoreLibsql, StoreMongo)
	}
	if c.QualityThreshold < 0 || c.QualityThreshold > 1 {
		return fmt.Errorf("invalid %s_QUALITY_THRESHOLD %v: must be within [0, 1]", envPrefix, c.QualityThreshold)
	}
	if c.Realtime.Window <= 0 {
		return fmt.Errorf("invalid %s_BROADCAST_WINDOW %v: must be positive", envPrefix, c.Realtime.Window)
	}
	return nil
}

// InsightLines returns the configured insights, or the built-in ones.
func (c *Config) InsightLines() []string {
	if len(c.Insights) == 0 {
		return analytics.DefaultInsights
	}
	return c.Insights
}

// Level parses LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Default returns the configuration with every default applied, ignoring
// the environment.
func Default() *Config {
	return &Config{
		Addr:             ":8080",
		ShutdownTimeout:  10 * time.Second,
		Store:            StoreLibsql,
		LogLevel:         "info",
		QualityThreshold: domain.DefaultQualityThreshold,
		Database:         Database{URL: "file:spacebio.db"},
		Mongo:            Mongo{URI: "mongodb://localhost:27017", Name: "nasa_space_biology"},
		Realtime:         Realtime{Schedule: "@every 30s", Window: 60 * time.Second},
		Telemetry:        Telemetry{Endpoint: "localhost:4317", Insecure: true},
	}
}
