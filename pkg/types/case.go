// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the caselaw-engine pipeline.
package types

// SearchResult is one case reference returned by the court-document search.
// Results are immutable and keep the ranking order the source returned.
type SearchResult struct {
	// Title is the trimmed text of the result link.
	Title string `json:"title" yaml:"title"`

	// URL is the absolute address of the case page.
	URL string `json:"url" yaml:"url"`
}

// CaseDocument holds the plain text scraped from one case page. Once built
// it is owned by the case task that produced it and never mutated.
type CaseDocument struct {
	// Title is always "Unknown" at the extraction stage; the pipeline
	// carries the search-result title forward instead.
	Title string `json:"title" yaml:"title"`

	// Text is the concatenated case text, truncated to the configured
	// maximum length, or a sentinel when extraction failed.
	Text string `json:"text" yaml:"text"`

	// URL is the case page address the text was scraped from.
	URL string `json:"url" yaml:"url"`
}

// CaseSummary is the final per-case output unit: the search-result title
// paired with either model output or an unavailable-summary sentinel.
type CaseSummary struct {
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
}
