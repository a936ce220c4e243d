package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeProject()
	c.normalizeScript()
	c.normalizePipeline()
	c.normalizeIndexing()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.MediaDir) != "" {
		if c.Paths.MediaDir, err = expandPath(c.Paths.MediaDir); err != nil {
			return fmt.Errorf("paths.media_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Indexing.IndexPath) != "" {
		if c.Indexing.IndexPath, err = expandPath(c.Indexing.IndexPath); err != nil {
			return fmt.Errorf("indexing.index_path: %w", err)
		}
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	return nil
}

func (c *Config) normalizeProject() {
	c.Project.Name = strings.TrimSpace(c.Project.Name)
	if c.Project.Name == "" {
		c.Project.Name = defaultProjectName
	}
	if strings.TrimSpace(c.Project.Description) == "" {
		c.Project.Description = defaultProjectDescription
	}
	if strings.TrimSpace(c.Project.AspectRatio) == "" {
		c.Project.AspectRatio = defaultAspectRatio
	}
	if c.Project.TargetFPS <= 0 {
		c.Project.TargetFPS = defaultTargetFPS
	}
}

func (c *Config) normalizeScript() {
	if strings.TrimSpace(c.Script.TargetLine) == "" {
		c.Script.TargetLine = defaultTargetLine
	}
}

func (c *Config) normalizePipeline() {
	if c.Pipeline.ProgressTTLMinutes <= 0 {
		c.Pipeline.ProgressTTLMinutes = defaultProgressTTLMinutes
	}
	if c.Pipeline.ProgressMaxRecords <= 0 {
		c.Pipeline.ProgressMaxRecords = defaultProgressMaxRecords
	}
	if strings.TrimSpace(c.Pipeline.EvictionSchedule) == "" {
		c.Pipeline.EvictionSchedule = defaultEvictionSchedule
	}
}

func (c *Config) normalizeIndexing() {
	if c.Indexing.SnippetLimit <= 0 {
		c.Indexing.SnippetLimit = defaultSnippetLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
