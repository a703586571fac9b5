package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.History.MaxRecords <= 0 {
		return fmt.Errorf("history.max_records must be > 0 (got %d)", c.History.MaxRecords)
	}
	if err := c.Enrich.validate(); err != nil {
		return fmt.Errorf("enrich: %w", err)
	}
	return nil
}

func (e *EnrichConfig) validate() error {
	e.Provider = strings.ToLower(strings.TrimSpace(e.Provider))
	if e.Provider == "" {
		e.Provider = "none"
	}
	if !Providers[e.Provider] {
		return fmt.Errorf("unknown provider %q (valid: none, anthropic, gemini)", e.Provider)
	}
	if e.Provider != "none" && e.APIKey == "" {
		return fmt.Errorf("api_key is required for provider %s", e.Provider)
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", e.Timeout)
	}
	if e.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", e.MaxTokens)
	}
	return nil
}
