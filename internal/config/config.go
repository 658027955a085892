// Package config handles TaskPilot configuration loading and management.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/taskpilot-ai/taskpilot/internal/errors"
)

// Environment variables recognized by applyEnv. They take precedence over
// both built-in defaults and values read from a config file.
const (
	EnvBackendBaseURL  = "BACKEND_BASE_URL"
	EnvMCPServerURL    = "MCP_SERVER_URL"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// Default returns the default configuration with environment
// overrides applied.
func Default() *Config {
	cfg := &Config{
		Backend: BackendConfig{
			BaseURL:               "http://localhost:8000",
			RequestTimeoutSeconds: 30,
		},
		Model: ModelConfig{
			Provider:    string(ProviderOpenAI),
			Name:        "gpt-4o-mini",
			MaxTokens:   1024,
			Temperature: 0.7,
			MaxAttempts: 3,
		},
		Agent: AgentConfig{
			SystemPrompt: "",
		},
		MCP: MCPConfig{
			Enabled:   false,
			ServerURL: "http://localhost:8003",
		},
	}

	applyEnv(cfg)
	return cfg
}

// Load loads the configuration from the given path.
// If the file doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, apperrors.Wrap(err, apperrors.CodeConfigNotFound, "failed to read config file", apperrors.CategorySystem)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConfigInvalid, "failed to parse config file", apperrors.CategorySystem)
	}

	// Environment wins over file values
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to the given path.
func (c *Config) Save(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	return encoder.Encode(c)
}

// Validate checks the configuration for values that would make the
// agent unable to operate.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return apperrors.New(apperrors.CodeConfigInvalid, "backend base URL must not be empty", apperrors.CategorySystem)
	}
	if _, err := url.Parse(c.Backend.BaseURL); err != nil {
		return apperrors.Wrap(err, apperrors.CodeConfigInvalid, "backend base URL is not a valid URL", apperrors.CategorySystem)
	}

	switch Provider(c.Model.Provider) {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return apperrors.New(apperrors.CodeConfigInvalid, "unknown model provider: "+c.Model.Provider, apperrors.CategorySystem)
	}

	if c.Model.Name == "" {
		return apperrors.New(apperrors.CodeConfigInvalid, "model name must not be empty", apperrors.CategorySystem)
	}
	if c.Model.MaxAttempts < 1 {
		return apperrors.New(apperrors.CodeConfigInvalid, "model max_attempts must be at least 1", apperrors.CategorySystem)
	}

	if c.MCP.Enabled {
		if _, err := url.Parse(c.MCP.ServerURL); err != nil || c.MCP.ServerURL == "" {
			return apperrors.New(apperrors.CodeConfigInvalid, "mcp server URL is not a valid URL", apperrors.CategorySystem)
		}
	}

	return nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvBackendBaseURL); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv(EnvMCPServerURL); v != "" {
		cfg.MCP.ServerURL = v
	}

	switch Provider(cfg.Model.Provider) {
	case ProviderAnthropic:
		if v := os.Getenv(EnvAnthropicAPIKey); v != "" {
			cfg.Model.APIKey = v
		}
	default:
		if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
			cfg.Model.APIKey = v
		}
	}
}

// RequestTimeout returns the backend request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	if c.Backend.RequestTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Backend.RequestTimeoutSeconds) * time.Second
}

// IsMCPEnabled returns true if the MCP tool surface should be served.
func (c *Config) IsMCPEnabled() bool {
	return c.MCP.Enabled
}
