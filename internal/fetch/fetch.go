// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch issues outbound HTTP requests under a process-wide
// concurrency cap shared by every stage that touches the network.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// Gate is a counting admission-control resource bounding simultaneous
// outbound network requests. It carries no state besides its counter and
// is safe for concurrent use.
type Gate struct {
	sem *semaphore.Weighted
	cap int64
}

// NewGate returns a gate admitting at most max concurrent holders.
func NewGate(max int64) *Gate {
	if max <= 0 {
		max = 1
	}
	return &Gate{sem: semaphore.NewWeighted(max), cap: max}
}

// Acquire blocks until a slot is free or ctx is cancelled.
func (g *Gate) Acquire(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

// Release returns a previously acquired slot.
func (g *Gate) Release() {
	g.sem.Release(1)
}

// Cap returns the configured maximum number of concurrent holders.
func (g *Gate) Cap() int64 {
	return g.cap
}

// Response is the outcome of a completed fetch. A non-2xx status is not an
// error at this layer; callers interpret the status code themselves.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response carries a success status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher performs GET requests through the shared gate with a fixed
// timeout and User-Agent.
type Fetcher struct {
	client    *http.Client
	gate      *Gate
	userAgent string
}

// NewFetcher builds a fetcher from cfg, sharing the given gate. A nil gate
// gets one sized from cfg.MaxConcurrent.
func NewFetcher(cfg types.FetchConfig, gate *Gate) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0"
	}
	if gate == nil {
		max := cfg.MaxConcurrent
		if max <= 0 {
			max = 100
		}
		gate = NewGate(max)
	}
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		gate:      gate,
		userAgent: cfg.UserAgent,
	}
}

// Get fetches url, holding a gate slot for the duration of the request.
// The slot is released on every path, including transport errors and
// timeouts. Transport failures are errors; HTTP error statuses are not.
func (f *Fetcher) Get(ctx context.Context, url string) (*Response, error) {
	if err := f.gate.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("acquiring request slot: %w", err)
	}
	defer f.gate.Release()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
