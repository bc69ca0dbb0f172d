// Package completion routes assembled conversations to a hosted
// text-completion provider and extracts the reply text.
package completion

import (
	"context"
	"fmt"

	"github.com/spura-app/spura/internal/config"
	"github.com/spura-app/spura/internal/domain"
)

// Request carries one assembled conversation to the provider.
type Request struct {
	// System is the persona or feature instruction prepended to the turns.
	System string
	// Turns is the ordered conversation; it must terminate in a user turn.
	Turns []domain.Turn
	// MaxTokens bounds the generated reply.
	MaxTokens int
}

// Validate checks the invariants every provider relies on.
func (r Request) Validate() error {
	if len(r.Turns) == 0 {
		return fmt.Errorf("turn list cannot be empty")
	}
	for _, t := range r.Turns {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	if last := r.Turns[len(r.Turns)-1]; last.Role != domain.RoleUser {
		return fmt.Errorf("turn list must terminate in a user turn, got %q", last.Role)
	}
	if r.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be > 0")
	}
	return nil
}

// Client is implemented by each completion provider. The two providers are
// drop-in substitutes: both take a system instruction plus an ordered turn
// list and return a single text reply. No retry, no streaming.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// New builds the provider selected by configuration.
func New(ctx context.Context, cfg config.CompletionConfig) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBase, cfg.OpenAIModel), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}
