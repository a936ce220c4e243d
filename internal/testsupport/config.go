package testsupport

import (
	"path/filepath"
	"testing"

	"slate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.MediaDir = filepath.Join(base, "media")
	cfg.Paths.APIBind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithTargetLine overrides the alignment target script on the test config.
func WithTargetLine(line string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Script.TargetLine = line
	}
}

// WithProgressBounds overrides progress tracker retention on the test config.
func WithProgressBounds(ttlMinutes, maxRecords int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Pipeline.ProgressTTLMinutes = ttlMinutes
		cfg.Pipeline.ProgressMaxRecords = maxRecords
	}
}
