package enrich

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rcliao/borno/internal/config"
)

// NewFromConfig builds the Generator for the configured provider.
func NewFromConfig(cfg config.EnrichConfig, log zerolog.Logger) (Generator, error) {
	var b Backend
	switch cfg.Provider {
	case "", "none":
		return Disabled{}, nil
	case "anthropic":
		b = NewAnthropicBackend(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens)
	case "gemini":
		b = NewGeminiBackend(cfg.APIKey, cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown enrichment provider %q", cfg.Provider)
	}
	return NewClient(b, cfg.Timeout, log.With().Str("component", "enrich").Logger()), nil
}
