// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/caselaw-engine/internal/fetch"
	"github.com/pdiddy/caselaw-engine/pkg/types"
)

func testClient(max int) *Client {
	f := fetch.NewFetcher(types.FetchConfig{MaxConcurrent: 10}, nil)
	return NewClient(f, types.SearchConfig{MaxResults: max})
}

// searchPage builds a search results document with n result anchors.
func searchPage(n int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<div class="result_title"><a href="/doc/%d/">  Case %d  </a></div>`, i, i)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func TestSearchReturnsRankedResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("formInput"); got != "negligence" {
			t.Errorf("formInput = %q, want %q", got, "negligence")
		}
		fmt.Fprint(w, searchPage(3))
	}))
	defer ts.Close()

	oldBase := kanoonBase
	kanoonBase = ts.URL
	defer func() { kanoonBase = oldBase }()

	results, err := testClient(10).Search(context.Background(), "negligence")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, r := range results {
		wantTitle := fmt.Sprintf("Case %d", i)
		if r.Title != wantTitle {
			t.Errorf("results[%d].Title = %q, want %q (titles must be trimmed, in source order)", i, r.Title, wantTitle)
		}
		wantURL := fmt.Sprintf("%s/doc/%d/", ts.URL, i)
		if r.URL != wantURL {
			t.Errorf("results[%d].URL = %q, want %q", i, r.URL, wantURL)
		}
	}
}

func TestSearchCapsAtMaxResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, searchPage(25))
	}))
	defer ts.Close()

	oldBase := kanoonBase
	kanoonBase = ts.URL
	defer func() { kanoonBase = oldBase }()

	results, err := testClient(10).Search(context.Background(), "contract")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 10 {
		t.Errorf("len(results) = %d, want 10", len(results))
	}
}

func TestSearchUnavailableSourceYieldsEmptyList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "over capacity", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	oldBase := kanoonBase
	kanoonBase = ts.URL
	defer func() { kanoonBase = oldBase }()

	results, err := testClient(10).Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search() error = %v, want nil (unavailable source is not an error)", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestParseResultsSkipsAnchorsWithoutHref(t *testing.T) {
	page := `<html><body>
		<div class="result_title"><a href="/doc/1/">First</a></div>
		<div class="result_title"><a>No href here</a></div>
		<div class="result_title"><a href="/doc/3/">Third</a></div>
	</body></html>`

	results, err := ParseResults([]byte(page), 10)
	if err != nil {
		t.Fatalf("ParseResults() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Title != "First" || results[1].Title != "Third" {
		t.Errorf("results = %+v, hrefless anchor should be skipped", results)
	}
}

// A hrefless anchor inside the ranking window still uses up a slot: with
// max 2, the third-ranked result must not slide in to replace it.
func TestParseResultsHreflessAnchorConsumesSlot(t *testing.T) {
	page := `<html><body>
		<div class="result_title"><a href="/doc/1/">First</a></div>
		<div class="result_title"><a>No href here</a></div>
		<div class="result_title"><a href="/doc/3/">Third</a></div>
	</body></html>`

	results, err := ParseResults([]byte(page), 2)
	if err != nil {
		t.Fatalf("ParseResults() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Title != "First" {
		t.Errorf("results[0].Title = %q, want %q", results[0].Title, "First")
	}
}

func TestParseResultsAbsoluteHrefKept(t *testing.T) {
	page := `<div class="result_title"><a href="https://example.org/doc/9/">Ext</a></div>`

	results, err := ParseResults([]byte(page), 10)
	if err != nil {
		t.Fatalf("ParseResults() error = %v", err)
	}
	if len(results) != 1 || results[0].URL != "https://example.org/doc/9/" {
		t.Errorf("results = %+v, absolute hrefs must pass through unchanged", results)
	}
}

func TestParseResultsEmptyDocument(t *testing.T) {
	results, err := ParseResults([]byte("<html><body></body></html>"), 10)
	if err != nil {
		t.Fatalf("ParseResults() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}
