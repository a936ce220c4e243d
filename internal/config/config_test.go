package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slate/internal/config"
)

func TestDefaultCarriesPipelineKnobs(t *testing.T) {
	cfg := config.Default()
	if cfg.Script.TargetLine == "" {
		t.Fatal("expected default target line")
	}
	if cfg.Pipeline.ProgressMaxRecords <= 0 {
		t.Fatal("expected positive progress record cap")
	}
	if cfg.Indexing.SnippetLimit != 200 {
		t.Fatalf("unexpected snippet limit: %d", cfg.Indexing.SnippetLimit)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("expected missing config, got exists for %s", resolved)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7487" {
		t.Fatalf("unexpected api bind: %s", cfg.Paths.APIBind)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		`api_bind = "127.0.0.1:0"`,
		"",
		"[script]",
		`target_line = "Hold the line."`,
		"",
		"[logging]",
		`format = "json"`,
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be detected")
	}
	if cfg.Script.TargetLine != "Hold the line." {
		t.Fatalf("unexpected target line: %q", cfg.Script.TargetLine)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %s", cfg.Logging.Format)
	}
	if cfg.Project.Name == "" {
		t.Fatal("expected project defaults to fill in")
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestMomentIndexPathDefaultsUnderDataDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = "/tmp/slate-data"
	if got := cfg.MomentIndexPath(); got != filepath.Join("/tmp/slate-data", "moments.idx") {
		t.Fatalf("unexpected index path: %s", got)
	}
	cfg.Indexing.IndexPath = "/var/lib/slate/custom.idx"
	if got := cfg.MomentIndexPath(); got != "/var/lib/slate/custom.idx" {
		t.Fatalf("unexpected explicit index path: %s", got)
	}
}
