package provider

import (
	"fmt"

	"auto-collection-gen/internal/config"
	"auto-collection-gen/internal/logger"
)

// NewClient creates a new LLM client based on the configured provider.
func NewClient(cfg *config.LLMConfig, log logger.Logger) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, config.ProviderDeepSeek:
		return NewOpenAIClient(cfg, log), nil
	case config.ProviderGemini:
		// No streaming contract has been settled for this backend yet, so
		// selecting it fails at construction rather than mid-request.
		return nil, fmt.Errorf("%w: %s is not implemented", ErrUnsupportedProvider, cfg.Provider)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}
