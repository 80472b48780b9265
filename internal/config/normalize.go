package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() error {
	pathFields := []*string{
		&c.Paths.InboxDir,
		&c.Paths.ArtifactDir,
		&c.Paths.SummaryDir,
		&c.Paths.LogDir,
		&c.Paths.PromptFile,
		&c.Paths.ThemesFile,
		&c.Paths.ErrorLog,
		&c.Scoring.WeightsFile,
	}
	for _, field := range pathFields {
		expanded, err := expandPath(strings.TrimSpace(*field))
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY"))
	}
	c.LLM.BaseURL = strings.TrimRight(strings.TrimSpace(c.LLM.BaseURL), "/")
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}

	exts := make([]string, 0, len(c.Workflow.SourceExtensions))
	seen := map[string]struct{}{}
	for _, ext := range c.Workflow.SourceExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = Default().Workflow.SourceExtensions
	}
	c.Workflow.SourceExtensions = exts

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	return nil
}
