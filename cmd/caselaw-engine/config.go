// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// pipelineConfig resolves the effective configuration for one command run:
// stock defaults, overlaid with config-file/env values, overlaid with any
// flags the user set on cmd.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.Defaults()

	if viper.IsSet("fetch.timeout") {
		cfg.Fetch.Timeout = viper.GetDuration("fetch.timeout")
	}
	if viper.IsSet("fetch.user_agent") {
		cfg.Fetch.UserAgent = viper.GetString("fetch.user_agent")
	}
	if viper.IsSet("fetch.max_concurrent") {
		cfg.Fetch.MaxConcurrent = viper.GetInt64("fetch.max_concurrent")
	}
	if viper.IsSet("search.max_results") {
		cfg.Search.MaxResults = viper.GetInt("search.max_results")
	}
	if viper.IsSet("scrape.max_text_length") {
		cfg.Scrape.MaxTextLength = viper.GetInt("scrape.max_text_length")
	}
	if viper.IsSet("summary.model") {
		cfg.Summary.Model = viper.GetString("summary.model")
	}
	if viper.IsSet("summary.base_url") {
		cfg.Summary.BaseURL = viper.GetString("summary.base_url")
	}
	if viper.IsSet("summary.workers") {
		cfg.Summary.Workers = viper.GetInt("summary.workers")
	}
	if viper.IsSet("store.archive_dir") {
		cfg.Store.ArchiveDir = viper.GetString("store.archive_dir")
	}

	flags := cmd.Flags()
	if flags.Changed("max-results") {
		cfg.Search.MaxResults, _ = flags.GetInt("max-results")
	}
	if flags.Changed("max-text-length") {
		cfg.Scrape.MaxTextLength, _ = flags.GetInt("max-text-length")
	}
	if flags.Changed("model") {
		cfg.Summary.Model, _ = flags.GetString("model")
	}
	if flags.Changed("base-url") {
		cfg.Summary.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("workers") {
		cfg.Summary.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("archive-dir") {
		cfg.Store.ArchiveDir, _ = flags.GetString("archive-dir")
	}

	apiKey, _ := flags.GetString("api-key")
	cfg.Summary.APIKey = secretDefault("summarizer-api-key", apiKey)

	return cfg
}
