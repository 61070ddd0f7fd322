// Package llm generates an optional narrative for the daily brief.
// The narrative is presentation only: it never feeds back into
// extraction, merging, or scoring.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/hmtrong/catalyst/internal/score"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative for the given request
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for brief narration.
type SummarizeRequest struct {
	// Entries are the top ranked watchlist rows to narrate
	Entries []score.Entry

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's narrative output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 800,
	}
}

// BuildPrompt constructs the default narration prompt. Only the data
// already in the watchlist rows goes in; the model is told not to add
// dates or outcomes of its own.
func BuildPrompt(entries []score.Entry) string {
	var b strings.Builder
	b.WriteString(`You are narrating a biopharma catalyst watchlist for a daily brief.

RULES:
1. Only reference the tickers, events, and dates listed below.
2. Do not invent dates, trial names, or outcomes.
3. Do not give trading advice or predictions. Describe what is scheduled.
4. Approximate dates must be described as approximate.

Watchlist:
`)
	for i, e := range entries {
		if i >= 15 {
			fmt.Fprintf(&b, "... and %d more entries\n", len(entries)-15)
			break
		}
		date := "undated"
		if !e.CatalystDate.IsZero() {
			date = e.CatalystDate.Format("2006-01-02")
		}
		approx := ""
		if e.Approximate {
			approx = " (approximate)"
		}
		fmt.Fprintf(&b, "- %s: %s on %s%s, confidence %.2f\n", e.Ticker, e.Event, date, approx, e.Confidence)
	}
	b.WriteString("\nWrite a 3-5 sentence overview of the most notable upcoming catalysts.")
	return b.String()
}
