// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

func TestRenderPromptEmbedsTextVerbatim(t *testing.T) {
	text := "The appellant was convicted under Section 302 IPC on 04-07-2013."

	prompt, err := RenderPrompt(text)
	if err != nil {
		t.Fatalf("RenderPrompt() error = %v", err)
	}
	if !strings.Contains(prompt, text) {
		t.Errorf("prompt does not contain the case text verbatim:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Do NOT add assumptions or external knowledge") {
		t.Errorf("prompt missing the external-knowledge constraint:\n%s", prompt)
	}
}

func TestRenderPromptIsDeterministic(t *testing.T) {
	text := "Some case text."
	a, err := RenderPrompt(text)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderPrompt(text)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("RenderPrompt() is not deterministic for identical input")
	}
}

func TestStripReasoning(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no delimiter", "plain summary", "plain summary"},
		{"single delimiter", "thinking...</think> the summary ", "the summary"},
		{"multiple delimiters keeps text after the last", "a</think>b</think> final", "final"},
		{"delimiter at end", "all reasoning</think>", ""},
		{"whitespace trimmed without delimiter", "  padded  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripReasoning(tt.in); got != tt.want {
				t.Errorf("StripReasoning(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncateForBudget(t *testing.T) {
	long := strings.Repeat("a", 100)

	got := truncateForBudget(long, 10)
	if len(got) != 40 {
		t.Errorf("len = %d, want 40 (10 tokens * 4 bytes)", len(got))
	}

	if got := truncateForBudget("short", 10); got != "short" {
		t.Errorf("prompt under budget must pass through, got %q", got)
	}

	if got := truncateForBudget(long, 0); got != long {
		t.Errorf("zero budget must mean no cap")
	}
}

func TestTruncateForBudgetRuneBoundary(t *testing.T) {
	// Multi-byte runes: the cut must never split one.
	long := strings.Repeat("न्याय", 100)

	got := truncateForBudget(long, 8)
	if !utf8.ValidString(got) {
		t.Errorf("truncation split a rune: %q", got)
	}
	if len(got) > 32 {
		t.Errorf("len = %d, want <= 32", len(got))
	}
}

// fakeCompletionServer mimics the chat-completions wire format.
func fakeCompletionServer(t *testing.T, content string, capture *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Model       string  `json:"model"`
			MaxTokens   int64   `json:"max_tokens"`
			Temperature float64 `json:"temperature"`
			TopP        float64 `json:"top_p"`
			Messages    []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.MaxTokens != 512 {
			t.Errorf("max_tokens = %d, want 512", req.MaxTokens)
		}
		if req.Temperature != 0.7 {
			t.Errorf("temperature = %v, want 0.7", req.Temperature)
		}
		if req.TopP != 0.9 {
			t.Errorf("top_p = %v, want 0.9", req.TopP)
		}
		if capture != nil && len(req.Messages) > 0 {
			*capture = req.Messages[0].Content
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, content)
	}))
}

func testSummaryCfg(baseURL string) types.SummaryConfig {
	return types.SummaryConfig{
		AIConfig: types.AIConfig{
			Model:   "deepseek-r1-distill-qwen-1.5b",
			APIKey:  "test-key",
			BaseURL: baseURL,
		},
		MaxNewTokens:   512,
		MaxInputTokens: 4096,
		Temperature:    0.7,
		TopP:           0.9,
		Workers:        10,
	}
}

func TestModelBackendSummarize(t *testing.T) {
	var gotPrompt string
	ts := fakeCompletionServer(t, "reasoning here</think> Structured summary.", &gotPrompt)
	defer ts.Close()

	b := NewModelBackend(testSummaryCfg(ts.URL))
	text := "Case text about Section 302."

	summary, err := b.Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary != "Structured summary." {
		t.Errorf("summary = %q, want reasoning stripped", summary)
	}
	if !strings.Contains(gotPrompt, text) {
		t.Errorf("dispatched prompt does not embed the case text verbatim")
	}
}

func TestModelBackendGenerationFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer ts.Close()

	b := NewModelBackend(testSummaryCfg(ts.URL))
	_, err := b.Summarize(context.Background(), "text")
	if err == nil {
		t.Fatal("Summarize() error = nil, want generation failure")
	}
}
