// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/caselaw-engine/internal/report"
	"github.com/pdiddy/caselaw-engine/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List and replay archived query runs",
	Long: `Runs manages the local archive written by "query --save". Without a
subcommand it lists archived runs; "runs show <id>" replays one run's
summaries in their original order.`,
	RunE: runRunsList,
}

func runRunsList(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	s, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No archived runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-20s  %-6s  %s\n", "ID", "When", "Cases", "Query")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 70))
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-6d  %-20s  %-6d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Cases, r.Query)
	}
	return nil
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one archived run's summaries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID %q", args[0])
		}

		cfg := pipelineConfig(cmd)

		s, err := store.NewStore(cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()

		run, summaries, err := s.GetRun(cmd.Context(), id)
		if err != nil {
			return err
		}

		formatName, _ := cmd.Flags().GetString("format")
		format, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}
		return report.Write(os.Stdout, format, run.Query, summaries)
	},
}

func init() {
	runsCmd.PersistentFlags().String("archive-dir", "archive", "directory holding the archive database")
	runsShowCmd.Flags().String("format", "markdown", "output format: table, markdown, json, yaml")

	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}
