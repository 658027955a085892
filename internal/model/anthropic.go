// Package model provides the Anthropic API client for cloud LLM access.
package model

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/taskpilot-ai/taskpilot/internal/config"
	apperrors "github.com/taskpilot-ai/taskpilot/internal/errors"
)

// defaultAnthropicMaxTokens is used when the request does not cap
// output size. The messages API requires an explicit limit.
const defaultAnthropicMaxTokens = 1024

// AnthropicClient implements Model using the Anthropic messages API.
type AnthropicClient struct {
	cfg         *config.ModelConfig
	client      anthropic.Client
	retryPolicy *apperrors.Policy
	breaker     *apperrors.CircuitBreaker
}

// NewAnthropicClient creates a new Anthropic client. SDK-level retries
// are disabled so the shared retry policy owns backoff for every
// provider.
func NewAnthropicClient(cfg *config.ModelConfig) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(modelRequestTimeout),
	)

	return &AnthropicClient{
		cfg:         cfg,
		client:      client,
		retryPolicy: newRetryPolicy(cfg.MaxAttempts),
		breaker:     apperrors.NewCircuitBreaker("anthropic", nil),
	}
}

// Generate sends the prompt to Anthropic and returns the reply text.
func (c *AnthropicClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	if !c.IsAvailable() {
		return nil, apperrors.NewBuilder(apperrors.CodeModelUnavailable, "Anthropic API key not configured").
			System().
			WithSuggestion("Set the ANTHROPIC_API_KEY environment variable or api_key in config.toml").
			Build()
	}

	start := time.Now()

	message, err := apperrors.ExecuteCircuitBreakerWithResult(c.breaker, func() (*anthropic.Message, error) {
		return apperrors.DoWithResult(ctx, c.retryPolicy, func() (*anthropic.Message, error) {
			return c.complete(ctx, req)
		})
	})
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}

	return &Response{
		Text:       text.String(),
		Model:      string(message.Model),
		TokensUsed: int(message.Usage.InputTokens + message.Usage.OutputTokens),
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

// complete performs a single messages API call.
func (c *AnthropicClient) complete(ctx context.Context, req *Request) (*anthropic.Message, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Name),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: req.Prompt},
			}},
		}},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		if apiErr, ok := err.(*anthropic.Error); ok {
			return nil, classifyAPIError(apiErr.StatusCode, err)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeModelRequestFailed,
			"Anthropic request failed", apperrors.CategoryTemporary)
	}
	return message, nil
}

// IsAvailable checks if the client is configured.
func (c *AnthropicClient) IsAvailable() bool {
	return c != nil && c.cfg != nil && c.cfg.APIKey != ""
}

// Name returns the configured model name.
func (c *AnthropicClient) Name() string {
	if c.cfg != nil {
		return c.cfg.Name
	}
	return "anthropic"
}
