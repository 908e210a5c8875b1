package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Spec   SpecConfig   `yaml:"spec"`
	Output OutputConfig `yaml:"output"`
	LLM    LLMFile      `yaml:"llm"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// SpecConfig holds the OpenAPI spec source configuration. Source is either a
// local file path or a URL; a bare base URL is probed for well-known
// swagger.json locations.
type SpecConfig struct {
	Source string `yaml:"source"`
}

// OutputConfig holds configuration for the generated collection artifact
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LLMFile points at the LLM provider configuration file
type LLMFile struct {
	ConfigPath string `yaml:"config_path"`
}

// LoadConfig loads the configuration from the given YAML file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config/config.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	// Set default values if not specified
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 30
	}
	if config.Server.WriteTimeout == 0 {
		// Generation streams stay open for the whole batch
		config.Server.WriteTimeout = 600
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Output.Dir == "" {
		config.Output.Dir = "collections"
	}
	if config.LLM.ConfigPath == "" {
		config.LLM.ConfigPath = "config/llm_config.json"
	}
	if config.Spec.Source == "" {
		return nil, fmt.Errorf("spec source is required")
	}

	return &config, nil
}
