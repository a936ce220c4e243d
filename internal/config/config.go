package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	MediaDir string `toml:"media_dir"`
	APIBind  string `toml:"api_bind"`
}

// Project contains defaults for the lazily created production project.
type Project struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	AspectRatio string `toml:"aspect_ratio"`
	TargetFPS   int    `toml:"target_fps"`
}

// Script contains the reference dialogue used by the alignment stage.
type Script struct {
	TargetLine string `toml:"target_line"`
}

// Pipeline contains tuning for the take-processing pipeline.
type Pipeline struct {
	// ProgressTTLMinutes bounds how long a finished progress record stays
	// resident before the eviction sweep may drop it.
	ProgressTTLMinutes int `toml:"progress_ttl_minutes"`
	// ProgressMaxRecords caps the number of resident progress records.
	ProgressMaxRecords int `toml:"progress_max_records"`
	// EvictionSchedule is a cron expression for the tracker sweep.
	EvictionSchedule string `toml:"eviction_schedule"`
}

// Indexing contains settings for the semantic moment index handoff.
type Indexing struct {
	IndexPath    string `toml:"index_path"`
	SnippetLimit int    `toml:"snippet_limit"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Slate.
//
// Configuration sections by subsystem:
//   - Paths: directories and API bind address
//   - Project: lazily created default project metadata
//   - Script: target dialogue for the alignment stage
//   - Pipeline: progress tracker retention and sweep schedule
//   - Indexing: moment index storage and transcript snippet limit
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Project  Project  `toml:"project"`
	Script   Script   `toml:"script"`
	Pipeline Pipeline `toml:"pipeline"`
	Indexing Indexing `toml:"indexing"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/slate/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("slate.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
// MediaDir is created on a best-effort basis so the daemon can run when
// external storage is temporarily unavailable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.MediaDir) != "" {
		// Best-effort to avoid failing config load when storage is offline.
		_ = os.MkdirAll(c.Paths.MediaDir, 0o755)
	}
	return nil
}

// MomentIndexPath resolves the similarity index file location, defaulting
// under the data directory when unset.
func (c *Config) MomentIndexPath() string {
	if strings.TrimSpace(c.Indexing.IndexPath) != "" {
		return c.Indexing.IndexPath
	}
	return filepath.Join(c.Paths.DataDir, "moments.idx")
}

// WriteSample writes the annotated sample configuration to the given path.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
