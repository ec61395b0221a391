package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every outbound request.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the rate-limited fetcher.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxConcurrent caps the number of outstanding network requests
	// across the whole process (default 100).
	MaxConcurrent int64 `json:"max_concurrent" yaml:"max_concurrent"`
}

// SearchConfig holds settings for the case search stage.
type SearchConfig struct {
	// MaxResults is the maximum number of search results to take,
	// in source ranking order (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ScrapeConfig holds settings for the case text extraction stage.
type ScrapeConfig struct {
	// MaxTextLength is the maximum case text length in characters;
	// longer extractions are truncated (default 9500).
	MaxTextLength int `json:"max_text_length" yaml:"max_text_length"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the model identifier served by the generation endpoint
	// (e.g. "deepseek-r1-distill-qwen-1.5b").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the generation endpoint.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the endpoint, so a local OpenAI-compatible
	// server can serve the model. Empty means the provider default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// SummaryConfig holds settings for the summarization stage.
type SummaryConfig struct {
	AIConfig `yaml:",inline"`

	// MaxNewTokens caps generation length (default 512).
	MaxNewTokens int64 `json:"max_new_tokens" yaml:"max_new_tokens"`

	// MaxInputTokens caps the prompt size handed to the model (default 4096).
	MaxInputTokens int `json:"max_input_tokens" yaml:"max_input_tokens"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// TopP is the nucleus sampling threshold (default 0.9).
	TopP float64 `json:"top_p" yaml:"top_p"`

	// Workers is the size of the worker pool running generation calls,
	// separate from the network concurrency gate (default 10).
	Workers int `json:"workers" yaml:"workers"`
}

// StoreConfig holds settings for the run archive.
type StoreConfig struct {
	// ArchiveDir is the directory holding the archive database (default "archive").
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir"`
}

// PipelineConfig groups all stage configurations for one query run.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Search  SearchConfig  `json:"search" yaml:"search"`
	Scrape  ScrapeConfig  `json:"scrape" yaml:"scrape"`
	Summary SummaryConfig `json:"summary" yaml:"summary"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}

// Defaults returns a PipelineConfig populated with the stock settings.
// Callers overlay config-file and flag values on top.
func Defaults() PipelineConfig {
	return PipelineConfig{
		Fetch: FetchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "Mozilla/5.0",
			},
			MaxConcurrent: 100,
		},
		Search: SearchConfig{
			MaxResults: 10,
		},
		Scrape: ScrapeConfig{
			MaxTextLength: 9500,
		},
		Summary: SummaryConfig{
			AIConfig: AIConfig{
				Model: "deepseek-r1-distill-qwen-1.5b",
			},
			MaxNewTokens:   512,
			MaxInputTokens: 4096,
			Temperature:    0.7,
			TopP:           0.9,
			Workers:        10,
		},
		Store: StoreConfig{
			ArchiveDir: "archive",
		},
	}
}
