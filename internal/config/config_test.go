package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
spec:
  source: http://localhost:3000
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.Spec.Source)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, 600, cfg.Server.WriteTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "collections", cfg.Output.Dir)
	assert.Equal(t, "config/llm_config.json", cfg.LLM.ConfigPath)
}

func TestLoadConfigExplicitValues(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  host: 127.0.0.1
  port: 9999
log:
  level: debug
spec:
  source: ./openapi.json
output:
  dir: out
llm:
  config_path: llm.json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./openapi.json", cfg.Spec.Source)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "llm.json", cfg.LLM.ConfigPath)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadConfigMissingSpecSource(t *testing.T) {
	path := writeFile(t, "config.yaml", "log:\n  level: info\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spec source is required")
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "{not yaml: [")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadLLMConfig(t *testing.T) {
	path := writeFile(t, "llm.json", `{"provider":"openai","api_key":"sk-test"}`)

	cfg, err := LoadLLMConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Empty(t, cfg.BaseURL)
}

func TestLoadLLMConfigDeepSeekDefaults(t *testing.T) {
	path := writeFile(t, "llm.json", `{"provider":"deepseek","api_key":"sk-test"}`)

	cfg, err := LoadLLMConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.BaseURL)
	assert.Equal(t, "deepseek-chat", cfg.Model)
}

func TestLoadLLMConfigEnvOverridesKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-from-env")
	path := writeFile(t, "llm.json", `{"provider":"openai","api_key":"sk-file"}`)

	cfg, err := LoadLLMConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.APIKey)
}

func TestLoadLLMConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing provider",
			content: `{"api_key":"k","model":"m"}`,
			wantErr: "provider is required",
		},
		{
			name:    "missing api key",
			content: `{"provider":"openai"}`,
			wantErr: "API key is required",
		},
		{
			name:    "missing model for unknown provider",
			content: `{"provider":"gemini","api_key":"k"}`,
			wantErr: "model is required",
		},
		{
			name:    "invalid json",
			content: `{`,
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "llm.json", tt.content)
			_, err := LoadLLMConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
