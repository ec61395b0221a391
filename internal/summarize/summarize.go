// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize produces structured natural-language summaries of case
// text with a generative model. It is a pure function of its input text:
// no network access besides the generation endpoint, no shared mutable
// state across calls.
package summarize

import (
	"bytes"
	"context"
	"strings"
	"text/template"
	"unicode/utf8"
)

// Summarizer generates a summary for the given case text. Implementations
// return an error on generation failure; the caller decides how a failure
// is presented. Each backend implements this interface per the Strategy
// pattern so the pipeline is testable with substitutes.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// reasoningDelimiter separates the model's chain-of-thought from the final
// answer in reasoning-model output.
const reasoningDelimiter = "</think>"

// approxBytesPerToken is the rough byte-per-token ratio used to map the
// token budget onto a prompt length cap. The serving side still enforces
// its own context window.
const approxBytesPerToken = 4

// summaryPromptTmpl is the instruction prompt sent to the model for each
// case. The case text is embedded verbatim.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`You are an Indian legal AI assistant. Summarize the following court case with high accuracy, using only the provided text.
Do NOT add assumptions or external knowledge on your own.

Include:
- Case Title (if available)
- Key Dates (case, judgement, arrested, seen, call, evidence, person, action time and date.)
- Laws, Acts, or Articles cited (verbatim)
- Main Legal Issue (in brief)
- Court's Decision & Reasoning (without opinion)
- Precedent or Impact (if mentioned in the case text)

Ensure the summary remains neutral, concise, and fact-based.

Case Text: {{.Text}}...
`))

// RenderPrompt executes the summary prompt template with the given case text.
func RenderPrompt(text string) (string, error) {
	var buf bytes.Buffer
	if err := summaryPromptTmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StripReasoning removes chain-of-thought from decoded model output: if
// the reasoning delimiter is present, only the trimmed text after its last
// occurrence is kept; otherwise the trimmed output is returned whole.
func StripReasoning(output string) string {
	if idx := strings.LastIndex(output, reasoningDelimiter); idx >= 0 {
		output = output[idx+len(reasoningDelimiter):]
	}
	return strings.TrimSpace(output)
}

// truncateForBudget caps the prompt at roughly maxTokens worth of bytes,
// cutting back to a rune boundary so the prompt stays valid UTF-8.
func truncateForBudget(prompt string, maxTokens int) string {
	if maxTokens <= 0 {
		return prompt
	}
	limit := maxTokens * approxBytesPerToken
	if len(prompt) <= limit {
		return prompt
	}
	for limit > 0 && !utf8.RuneStart(prompt[limit]) {
		limit--
	}
	return prompt[:limit]
}
