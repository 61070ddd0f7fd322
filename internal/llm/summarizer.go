package llm

import (
	"context"
	"fmt"

	"github.com/hmtrong/catalyst/internal/score"
)

// Summarizer narrates the top of the watchlist when a provider is
// configured. With no provider it is a no-op and the brief ships
// without a narrative.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer builds a summarizer from config. An empty provider
// name disables narration without error.
func NewSummarizer(config Config) (*Summarizer, error) {
	switch config.Provider {
	case "":
		return &Summarizer{config: config}, nil
	case "openai":
		p, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		return &Summarizer{provider: p, config: config}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", config.Provider)
	}
}

// Enabled reports whether a provider is configured.
func (s *Summarizer) Enabled() bool {
	return s.provider != nil
}

// Narrate returns a short narrative for the given watchlist entries,
// or empty when disabled.
func (s *Summarizer) Narrate(ctx context.Context, entries []score.Entry) (string, error) {
	if s.provider == nil || len(entries) == 0 {
		return "", nil
	}
	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Entries:   entries,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("narrate brief: %w", err)
	}
	return resp.Summary, nil
}
