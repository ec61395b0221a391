// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/caselaw-engine/internal/fetch"
	"github.com/pdiddy/caselaw-engine/internal/report"
	"github.com/pdiddy/caselaw-engine/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <legal query>",
	Short: "Search Indian Kanoon for cases matching a query",
	Long: `Search queries the court-document source and prints the top-ranked case
references without scraping or summarizing them. Useful for checking what
a full query run would process.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig(cmd)

		fetcher := fetch.NewFetcher(cfg.Fetch, nil)
		client := search.NewClient(fetcher, cfg.Search)

		results, err := client.Search(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		report.WriteSearchTable(os.Stdout, results)
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("max-results", 10, "maximum number of results to return")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
