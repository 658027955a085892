// Package config provides configuration types for TaskPilot.
package config

// Config represents the main TaskPilot configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Model   ModelConfig   `toml:"model"`
	Agent   AgentConfig   `toml:"agent"`
	MCP     MCPConfig     `toml:"mcp"`
}

// BackendConfig configures the task backend REST API.
type BackendConfig struct {
	BaseURL               string `toml:"base_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// ModelConfig configures the language model used to phrase replies.
type ModelConfig struct {
	Provider    string  `toml:"provider"` // openai, anthropic
	Name        string  `toml:"name"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
	MaxAttempts int     `toml:"max_attempts"` // attempts per model call, including the first
	APIKey      string  `toml:"api_key"`      // normally resolved from the environment
}

// AgentConfig contains assistant behavior settings.
type AgentConfig struct {
	// SystemPrompt overrides the built-in system prompt when non-empty.
	SystemPrompt string `toml:"system_prompt"`
}

// MCPConfig configures the optional MCP tool surface.
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	ServerURL string `toml:"server_url"`
}

// Provider identifies a language model provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)
