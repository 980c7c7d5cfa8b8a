package config

import (
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if want := Default(); !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SPACEBIO_ADDR", ":9090")
	t.Setenv("SPACEBIO_STORE", "mongo")
	t.Setenv("SPACEBIO_MONGO_URI", "mongodb://db:27017")
	t.Setenv("SPACEBIO_BROADCAST_WINDOW", "2m")
	t.Setenv("SPACEBIO_QUALITY_THRESHOLD", "0.5")
	t.Setenv("SPACEBIO_INSIGHTS", "one,two")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", got.Addr)
	}
	if got.Store != StoreMongo {
		t.Errorf("Store = %q, want mongo", got.Store)
	}
	if got.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("Mongo.URI = %q", got.Mongo.URI)
	}
	if got.Realtime.Window != 2*time.Minute {
		t.Errorf("Realtime.Window = %v, want 2m", got.Realtime.Window)
	}
	if got.QualityThreshold != 0.5 {
		t.Errorf("QualityThreshold = %v, want 0.5", got.QualityThreshold)
	}
	if lines := got.InsightLines(); !reflect.DeepEqual(lines, []string{"one", "two"}) {
		t.Errorf("InsightLines() = %v", lines)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"unknown store", "SPACEBIO_STORE", "postgres", "STORE"},
		{"threshold above one", "SPACEBIO_QUALITY_THRESHOLD", "1.5", "QUALITY_THRESHOLD"},
		{"zero window", "SPACEBIO_BROADCAST_WINDOW", "0s", "BROADCAST_WINDOW"},
		{"unparseable duration", "SPACEBIO_SHUTDOWN_TIMEOUT", "soon", "SHUTDOWN_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestConfig_Level(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		c := &Config{LogLevel: tt.in}
		if got := c.Level(); got != tt.want {
			t.Errorf("Level(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
