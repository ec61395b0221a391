// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/caselaw-engine/internal/fetch"
	"github.com/pdiddy/caselaw-engine/internal/pipeline"
	"github.com/pdiddy/caselaw-engine/internal/report"
	"github.com/pdiddy/caselaw-engine/internal/scrape"
	"github.com/pdiddy/caselaw-engine/internal/search"
	"github.com/pdiddy/caselaw-engine/internal/store"
	"github.com/pdiddy/caselaw-engine/internal/summarize"
)

var queryCmd = &cobra.Command{
	Use:   "query <legal query>",
	Short: "Search cases for a legal query and summarize each one",
	Long: `Query runs the full pipeline: search Indian Kanoon for the query, scrape
every matching case page concurrently, and produce a structured summary
per case with the configured generation model. Results come back in
search ranking order; per-case failures are reported inline and never
abort the other cases.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

// runQuery is the synchronous boundary: it drives the concurrent pipeline
// to completion and renders the collected result.
func runQuery(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)
	query := strings.Join(args, " ")

	formatName, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	gate := fetch.NewGate(cfg.Fetch.MaxConcurrent)
	fetcher := fetch.NewFetcher(cfg.Fetch, gate)

	pool := pipeline.NewPool(cfg.Summary.Workers)
	defer pool.Close()

	runner := pipeline.NewRunner(
		search.NewClient(fetcher, cfg.Search),
		scrape.NewExtractor(fetcher, cfg.Scrape),
		summarize.NewModelBackend(cfg.Summary),
		pool,
		os.Stderr,
	)

	summaries, err := runner.Run(context.Background(), query)
	if errors.Is(err, pipeline.ErrNoResults) {
		fmt.Fprintln(os.Stderr, "No results found.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := report.Write(os.Stdout, format, query, summaries); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		s, err := store.NewStore(cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := s.SaveRun(cmd.Context(), query, summaries)
		if err != nil {
			return fmt.Errorf("archiving run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Archived as run %d\n", id)
	}

	return nil
}

func init() {
	queryCmd.Flags().Int("max-results", 10, "maximum number of search results to process")
	queryCmd.Flags().String("model", "", "generation model identifier")
	queryCmd.Flags().String("base-url", "", "OpenAI-compatible endpoint serving the model")
	queryCmd.Flags().String("api-key", "", "API key for the generation endpoint (default: .secrets/summarizer-api-key)")
	queryCmd.Flags().Int("workers", 10, "summarization worker pool size")
	queryCmd.Flags().String("format", "table", "output format: table, markdown, json, yaml")
	queryCmd.Flags().Bool("save", false, "archive the run in the local database")
	queryCmd.Flags().String("archive-dir", "archive", "directory holding the archive database")

	rootCmd.AddCommand(queryCmd)
}
