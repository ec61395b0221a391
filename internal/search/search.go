// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the Indian Kanoon search page and returns the
// top-ranked case references for a free-text legal query.
package search

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/caselaw-engine/internal/fetch"
	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// kanoonBase is the document source root. Declared as a var so tests can
// substitute an httptest server.
var kanoonBase = "https://indiankanoon.org"

// resultTitleSelector matches the anchor inside each search-result heading.
const resultTitleSelector = ".result_title a"

// Client searches the court-document source for cases matching a query.
type Client struct {
	fetcher *fetch.Fetcher
	cfg     types.SearchConfig
}

// NewClient builds a search client on top of the shared fetcher.
func NewClient(fetcher *fetch.Fetcher, cfg types.SearchConfig) *Client {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	return &Client{fetcher: fetcher, cfg: cfg}
}

// Search fetches the search page for query and returns up to MaxResults
// case references in source ranking order. A non-success status means the
// search source is unavailable and yields an empty list, not an error;
// callers cannot distinguish it from genuinely zero matches. Anchors
// without an href are skipped without failing the whole search.
func (c *Client) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	searchURL := fmt.Sprintf("%s/search/?%s", kanoonBase,
		url.Values{"formInput": {query}}.Encode())

	resp, err := c.fetcher.Get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetching search page: %w", err)
	}
	if !resp.OK() {
		return nil, nil
	}

	return ParseResults(resp.Body, c.cfg.MaxResults)
}

// ParseResults extracts (title, url) pairs from a search page document.
// The cap applies to the first max elements matching the result-title rule;
// a hrefless anchor inside that window is skipped but still consumes its
// slot, so a lower-ranked result never takes its place.
func ParseResults(body []byte, max int) ([]types.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing search page: %w", err)
	}

	var results []types.SearchResult
	seen := 0
	doc.Find(resultTitleSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		seen++
		if href, exists := s.Attr("href"); exists {
			results = append(results, types.SearchResult{
				Title: strings.TrimSpace(s.Text()),
				URL:   absoluteURL(href),
			})
		}
		return seen < max
	})

	return results, nil
}

// absoluteURL resolves a result href against the source domain. Hrefs on
// the search page are site-relative.
func absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return kanoonBase + href
}
