// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/caselaw-engine/internal/fetch"
	"github.com/pdiddy/caselaw-engine/internal/scrape"
)

var extractCmd = &cobra.Command{
	Use:   "extract <case-url>",
	Short: "Extract plain case text from one case page",
	Long: `Extract fetches a single case page and prints the plain case text the
pipeline would hand to the summarizer, including the sentinel markers used
for fetch failures and empty pages.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig(cmd)

		fetcher := fetch.NewFetcher(cfg.Fetch, nil)
		extractor := scrape.NewExtractor(fetcher, cfg.Scrape)

		doc := extractor.Extract(context.Background(), args[0])
		fmt.Fprintln(os.Stdout, doc.Text)
		return nil
	},
}

func init() {
	extractCmd.Flags().Int("max-text-length", 9500, "maximum case text length in characters")

	rootCmd.AddCommand(extractCmd)
}
