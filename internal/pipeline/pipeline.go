// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one query run: search, then per-case
// extraction and summarization fanned out concurrently, then an
// order-preserving fan-in of the results. Each case lives through
// Pending → Extracted → {Summarized | SkippedNoText} → Done; no case
// transitions back and no case is retried.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/caselaw-engine/internal/scrape"
	"github.com/pdiddy/caselaw-engine/internal/summarize"
	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// ErrNoResults signals that the search produced nothing to process. An
// unavailable search source and genuinely zero matches are deliberately
// indistinguishable here.
var ErrNoResults = errors.New("no search results")

// SummaryUnavailable is returned in place of a summary when a case's text
// is missing or its page could not be fetched.
const SummaryUnavailable = "Summary unavailable due to missing case text."

// Searcher yields ranked case references for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.SearchResult, error)
}

// Extractor turns one case URL into a CaseDocument. It never fails;
// failures are encoded as sentinel documents.
type Extractor interface {
	Extract(ctx context.Context, url string) types.CaseDocument
}

// Runner drives the fetch-extract-summarize pipeline for one query at a
// time and is the synchronous boundary the CLI calls into.
type Runner struct {
	searcher   Searcher
	extractor  Extractor
	summarizer summarize.Summarizer
	pool       *Pool
	w          io.Writer
}

// NewRunner wires the pipeline stages together. The pool carries the
// compute-bound summarization calls; pass the writer that should receive
// per-case progress lines.
func NewRunner(searcher Searcher, extractor Extractor, summarizer summarize.Summarizer, pool *Pool, w io.Writer) *Runner {
	if w == nil {
		w = io.Discard
	}
	return &Runner{
		searcher:   searcher,
		extractor:  extractor,
		summarizer: summarizer,
		pool:       pool,
		w:          w,
	}
}

// Run executes the pipeline for query. It returns exactly one CaseSummary
// per search result, in search ranking order regardless of completion
// order, or ErrNoResults when the search yields nothing. A failure in one
// case never cancels or corrupts its siblings: fetch failures and empty
// text become the unavailable-summary sentinel, generation failures become
// an error string in that case's row.
func (r *Runner) Run(ctx context.Context, query string) ([]types.CaseSummary, error) {
	results, err := r.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching cases: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	fmt.Fprintf(r.w, "found %d case(s)\n", len(results))

	// Collect by index so output order matches search order no matter
	// which case finishes first.
	summaries := make([]types.CaseSummary, len(results))

	var wg sync.WaitGroup
	for i, res := range results {
		wg.Add(1)
		go func(i int, res types.SearchResult) {
			defer wg.Done()
			summaries[i] = r.processCase(ctx, res)
		}(i, res)
	}
	wg.Wait()

	return summaries, nil
}

// processCase runs the Extracted → {Summarized | SkippedNoText} leg for a
// single case. The summary title is always the search-result title; the
// extractor's placeholder title is discarded.
func (r *Runner) processCase(ctx context.Context, res types.SearchResult) types.CaseSummary {
	doc := r.extractor.Extract(ctx, res.URL)

	if doc.Text == "" || doc.Text == scrape.FetchFailureText {
		fmt.Fprintf(r.w, "skipped   %s (no case text)\n", res.Title)
		return types.CaseSummary{Title: res.Title, Summary: SummaryUnavailable}
	}

	summary, err := r.pool.Do(ctx, func() (string, error) {
		return r.summarizer.Summarize(ctx, doc.Text)
	})
	if err != nil {
		fmt.Fprintf(r.w, "failed    %s: %v\n", res.Title, err)
		return types.CaseSummary{Title: res.Title, Summary: "Error in summarization: " + err.Error()}
	}

	fmt.Fprintf(r.w, "summarized %s\n", res.Title)
	return types.CaseSummary{Title: res.Title, Summary: summary}
}
