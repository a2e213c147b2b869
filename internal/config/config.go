package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	Provider ProviderConfig `yaml:"provider"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	EnableMCP bool   `yaml:"enable_mcp"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type AuthConfig struct {
	Enabled bool `yaml:"enabled"`
	// Tokens maps bearer tokens to actor names.
	Tokens map[string]string `yaml:"tokens"`
}

type ProviderConfig struct {
	// TimeoutSeconds bounds each generation attempt.
	TimeoutSeconds int          `yaml:"timeout_seconds"`
	OpenAI         OpenAIConfig `yaml:"openai"`
	Gemini         GeminiConfig `yaml:"gemini"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type PipelineConfig struct {
	// Phases overrides the default workflow phase names.
	Phases []string `yaml:"phases"`
	// SeverityMarkers are substrings that mark a provider finding as
	// high severity.
	SeverityMarkers []string `yaml:"severity_markers"`
	// ProposalTemplates adds named proposal layouts; each body must
	// contain the {{content}} placeholder.
	ProposalTemplates map[string]string `yaml:"proposal_templates"`
}

// Timeout returns the provider timeout as a duration, zero when unset.
func (p ProviderConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "craftline.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Provider: ProviderConfig{
			TimeoutSeconds: 60,
		},
	}

	if path := os.Getenv("CRAFTLINE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("CRAFTLINE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("CRAFTLINE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CRAFTLINE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("CRAFTLINE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("CRAFTLINE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if key := os.Getenv("CRAFTLINE_OPENAI_API_KEY"); key != "" {
		cfg.Provider.OpenAI.APIKey = key
	}
	if key := os.Getenv("CRAFTLINE_GEMINI_API_KEY"); key != "" {
		cfg.Provider.Gemini.APIKey = key
	}
	if timeoutStr := os.Getenv("CRAFTLINE_PROVIDER_TIMEOUT_SECONDS"); timeoutStr != "" {
		timeout, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CRAFTLINE_PROVIDER_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Provider.TimeoutSeconds = timeout
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
