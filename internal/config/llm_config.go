package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Provider names understood by the client factory. The openai and deepseek
// providers share one wire protocol and differ only in base URL, credential
// and model identifier.
const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderGemini   = "gemini"
)

// LLMConfig holds configuration for LLM providers
type LLMConfig struct {
	Provider string `json:"provider"` // e.g., "openai"
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`    // e.g., "gpt-4o-mini"
	BaseURL  string `json:"base_url"` // Optional, for custom endpoints
}

// LoadLLMConfig loads LLM configuration from a file. The LLM_API_KEY
// environment variable overrides the credential from the file.
func LoadLLMConfig(path string) (*LLMConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read LLM config file: %v", err)
	}

	var config LLMConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse LLM config: %v", err)
	}

	if key := os.Getenv("LLM_API_KEY"); key != "" {
		config.APIKey = key
	}

	// Fill provider-specific defaults
	switch config.Provider {
	case ProviderOpenAI:
		if config.Model == "" {
			config.Model = "gpt-4o-mini"
		}
	case ProviderDeepSeek:
		if config.BaseURL == "" {
			config.BaseURL = "https://api.deepseek.com/v1"
		}
		if config.Model == "" {
			config.Model = "deepseek-chat"
		}
	}

	// Validate required fields
	if config.Provider == "" {
		return nil, fmt.Errorf("LLM provider is required")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &config, nil
}
