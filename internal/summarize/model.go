// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

// ModelBackend calls an OpenAI-compatible chat-completions endpoint. With
// BaseURL pointed at a local server (vLLM, Ollama) it drives the same
// reasoning-distill models the pipeline was built around; the decode
// parameters are fixed per run.
type ModelBackend struct {
	client openai.Client
	cfg    types.SummaryConfig
}

// NewModelBackend builds a backend from cfg. The model handle is created
// once and shared read-only across concurrent worker-pool calls.
func NewModelBackend(cfg types.SummaryConfig) *ModelBackend {
	if cfg.MaxNewTokens <= 0 {
		cfg.MaxNewTokens = 512
	}
	if cfg.MaxInputTokens <= 0 {
		cfg.MaxInputTokens = 4096
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.TopP == 0 {
		cfg.TopP = 0.9
	}

	// Failures are terminal for a case within a run; disable the client's
	// built-in retries so that holds end to end.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &ModelBackend{
		client: openai.NewClient(opts...),
		cfg:    cfg,
	}
}

// Summarize renders the instruction prompt for text, truncates it to the
// input-token budget, and requests a completion with sampling enabled.
// Chain-of-thought is stripped from the decoded output.
func (b *ModelBackend) Summarize(ctx context.Context, text string) (string, error) {
	prompt, err := RenderPrompt(text)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	prompt = truncateForBudget(prompt, b.cfg.MaxInputTokens)

	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(b.cfg.MaxNewTokens),
		Temperature: openai.Float(b.cfg.Temperature),
		TopP:        openai.Float(b.cfg.TopP),
	})
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generation returned no choices")
	}

	return StripReasoning(resp.Choices[0].Message.Content), nil
}
