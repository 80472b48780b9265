package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.InboxDir == "" {
		return errors.New("paths.inbox_dir must be set")
	}
	if c.Paths.ArtifactDir == "" {
		return errors.New("paths.artifact_dir must be set")
	}
	if c.Paths.SummaryDir == "" {
		return errors.New("paths.summary_dir must be set")
	}
	if c.Paths.InboxDir == c.Paths.ArtifactDir {
		return errors.New("paths.artifact_dir must differ from paths.inbox_dir")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.RequestIntervalSeconds < 0 {
		return errors.New("workflow.request_interval_seconds must not be negative")
	}
	if c.Workflow.MaxDocumentChars <= 0 {
		return errors.New("workflow.max_document_chars must be positive")
	}
	return nil
}

func (c *Config) validateScoring() error {
	if c.Scoring.TopRankCount <= 0 {
		return errors.New("scoring.top_rank_count must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
