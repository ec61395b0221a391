// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape retrieves a single case page and extracts its plain case
// text. Extraction never fails: every outcome is a CaseDocument, with
// sentinel text standing in for fetch failures and empty pages.
package scrape

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/caselaw-engine/internal/fetch"
	"github.com/pdiddy/caselaw-engine/pkg/types"
)

const (
	// UnknownTitle is the placeholder title at the extraction stage; the
	// pipeline carries the search-result title forward instead.
	UnknownTitle = "Unknown"

	// FetchFailureText marks a document whose page could not be fetched.
	FetchFailureText = "Failed to fetch case details."

	// NoCaseTextFound marks a page where the case-text selector matched
	// nothing. Note this is ordinary text to downstream stages: the
	// summarizer still receives it. Kept to match the source system.
	NoCaseTextFound = "No case text found."

	// fragmentSelector locates the expanded headline fragments that hold
	// the case body paragraphs.
	fragmentSelector = ".expanded_headline .fragment"
)

// Extractor turns case page URLs into CaseDocuments.
type Extractor struct {
	fetcher *fetch.Fetcher
	cfg     types.ScrapeConfig
}

// NewExtractor builds an extractor on top of the shared fetcher.
func NewExtractor(fetcher *fetch.Fetcher, cfg types.ScrapeConfig) *Extractor {
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = 9500
	}
	return &Extractor{fetcher: fetcher, cfg: cfg}
}

// Extract fetches url and returns its CaseDocument. Transport errors,
// timeouts, and non-success statuses all produce the fetch-failure
// sentinel document rather than an error, so one bad case can never abort
// its siblings.
func (e *Extractor) Extract(ctx context.Context, url string) types.CaseDocument {
	resp, err := e.fetcher.Get(ctx, url)
	if err != nil || !resp.OK() {
		return types.CaseDocument{Title: UnknownTitle, Text: FetchFailureText, URL: url}
	}

	return types.CaseDocument{
		Title: UnknownTitle,
		Text:  ParseCaseText(resp.Body, e.cfg.MaxTextLength),
		URL:   url,
	}
}

// ParseCaseText extracts plain case text from a case page document: the
// trimmed text of every paragraph nested under the expanded headline
// fragments, joined with single spaces and truncated to max characters.
// If the selector matches no paragraphs, or the document cannot be
// parsed, the NoCaseTextFound sentinel is returned.
func ParseCaseText(body []byte, max int) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return NoCaseTextFound
	}

	var paragraphs []string
	doc.Find(fragmentSelector).Each(func(_ int, fragment *goquery.Selection) {
		fragment.Find("p").Each(func(_ int, p *goquery.Selection) {
			text := strings.Join(strings.Fields(p.Text()), " ")
			if text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
	})

	if len(paragraphs) == 0 {
		return NoCaseTextFound
	}

	return Truncate(strings.Join(paragraphs, " "), max)
}

// Truncate caps s at max characters. The cap counts runes, not bytes, so
// Devanagari case text keeps its full length and is never cut mid-rune.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
