package llm

import (
	"context"
	"fmt"

	"github.com/siddharthkul/voyager-gha/internal/config"
)

// Provider issues a single completion request. One request, one response; no
// streaming, no retries beyond what the SDK itself does.
type Provider interface {
	// Complete sends the prompt and returns the model's text reply.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider and model for logging.
	Name() string
}

// New builds the provider selected by configuration.
func New(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "claude":
		return NewClaude(cfg.AnthropicAPIKey, cfg.Model, cfg.MaxTokens), nil
	case "gemini":
		return NewGemini(ctx, cfg.GoogleAPIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown completion provider: %s", cfg.Provider)
	}
}
