// Package model provides provider selection for model clients.
package model

import (
	"fmt"

	"github.com/taskpilot-ai/taskpilot/internal/config"
	apperrors "github.com/taskpilot-ai/taskpilot/internal/errors"
)

// New creates the model client for the configured provider.
func New(cfg *config.Config) (Model, error) {
	switch config.Provider(cfg.Model.Provider) {
	case config.ProviderOpenAI:
		return NewOpenAIClient(&cfg.Model), nil
	case config.ProviderAnthropic:
		return NewAnthropicClient(&cfg.Model), nil
	default:
		return nil, apperrors.User(apperrors.CodeConfigInvalid,
			fmt.Sprintf("unsupported model provider: %q", cfg.Model.Provider))
	}
}
