// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders pipeline output for the presentation boundary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// Format selects the output rendering.
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat validates a format name from a flag.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatTable, FormatMarkdown, FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown output format %q (table, markdown, json, yaml)", name)
	}
}

// Write renders summaries to w in the given format.
func Write(w io.Writer, format Format, query string, summaries []types.CaseSummary) error {
	switch format {
	case FormatMarkdown:
		WriteMarkdown(w, query, summaries)
		return nil
	case FormatJSON:
		return WriteJSON(w, summaries)
	case FormatYAML:
		return WriteYAML(w, summaries)
	default:
		WriteTable(w, summaries)
		return nil
	}
}

// WriteTable writes summaries as a human-readable table.
func WriteTable(w io.Writer, summaries []types.CaseSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %s\n", "Rank", "Case", "Summary")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, s := range summaries {
		title := truncate(s.Title, 60)
		summary := truncate(firstLine(s.Summary), 80)
		fmt.Fprintf(w, "%-4d  %-60s  %s\n", i+1, title, summary)
	}
	fmt.Fprintf(w, "\n%d case(s)\n", len(summaries))
}

// WriteMarkdown writes the sectioned report: one heading per case with its
// full summary underneath.
func WriteMarkdown(w io.Writer, query string, summaries []types.CaseSummary) {
	if query != "" {
		fmt.Fprintf(w, "## Case summaries for %q\n\n", query)
	}
	for _, s := range summaries {
		fmt.Fprintf(w, "### %s\n\n%s\n\n", s.Title, s.Summary)
	}
}

// WriteJSON writes summaries as indented JSON.
func WriteJSON(w io.Writer, summaries []types.CaseSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}

// WriteYAML writes summaries as YAML.
func WriteYAML(w io.Writer, summaries []types.CaseSummary) error {
	data, err := yaml.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("marshaling summaries: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteSearchTable writes raw search results, for the search subcommand.
func WriteSearchTable(w io.Writer, results []types.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	fmt.Fprintf(w, "%-4s  %-60s  %s\n", "Rank", "Title", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-60s  %s\n", i+1, truncate(r.Title, 60), r.URL)
	}
	fmt.Fprintf(w, "\n%d result(s)\n", len(results))
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
