package config

const (
	defaultInboxDir    = "~/papercard/00_inbox"
	defaultArtifactDir = "~/papercard/01_extracted_json"
	defaultSummaryDir  = "~/papercard/02_summary_csv"
	defaultLogDir      = "~/.local/share/papercard/logs"
	defaultPromptFile  = "~/papercard/prompt_extraction.md"
	defaultThemesFile  = "~/papercard/theme_buckets.md"
	defaultErrorLog    = "~/papercard/error_log.txt"

	defaultLLMBaseURL        = "https://api.deepseek.com"
	defaultLLMModel          = "deepseek-chat"
	defaultLLMTimeoutSeconds = 180

	defaultRequestIntervalSeconds = 5
	defaultMaxDocumentChars       = 30000

	defaultWeightsFile  = "~/papercard/scenario_weights.json"
	defaultTopRankCount = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InboxDir:    defaultInboxDir,
			ArtifactDir: defaultArtifactDir,
			SummaryDir:  defaultSummaryDir,
			LogDir:      defaultLogDir,
			PromptFile:  defaultPromptFile,
			ThemesFile:  defaultThemesFile,
			ErrorLog:    defaultErrorLog,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Workflow: Workflow{
			RequestIntervalSeconds: defaultRequestIntervalSeconds,
			MaxDocumentChars:       defaultMaxDocumentChars,
			SourceExtensions:       []string{".pdf", ".txt", ".md"},
		},
		Scoring: Scoring{
			WeightsFile:  defaultWeightsFile,
			TopRankCount: defaultTopRankCount,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
