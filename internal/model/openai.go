// Package model provides the OpenAI API client for cloud LLM access.
package model

import (
	"context"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/taskpilot-ai/taskpilot/internal/config"
	apperrors "github.com/taskpilot-ai/taskpilot/internal/errors"
)

// modelRequestTimeout bounds a single API round trip.
const modelRequestTimeout = 120 * time.Second

// OpenAIClient implements Model using the OpenAI chat completions API.
type OpenAIClient struct {
	cfg         *config.ModelConfig
	client      openai.Client
	retryPolicy *apperrors.Policy
	breaker     *apperrors.CircuitBreaker
}

// NewOpenAIClient creates a new OpenAI client. SDK-level retries are
// disabled so the shared retry policy owns backoff for every provider.
func NewOpenAIClient(cfg *config.ModelConfig) *OpenAIClient {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(modelRequestTimeout),
	)

	return &OpenAIClient{
		cfg:         cfg,
		client:      client,
		retryPolicy: newRetryPolicy(cfg.MaxAttempts),
		breaker:     apperrors.NewCircuitBreaker("openai", nil),
	}
}

// Generate sends the prompt to OpenAI and returns the reply text.
func (c *OpenAIClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	if !c.IsAvailable() {
		return nil, apperrors.NewBuilder(apperrors.CodeModelUnavailable, "OpenAI API key not configured").
			System().
			WithSuggestion("Set the OPENAI_API_KEY environment variable or api_key in config.toml").
			Build()
	}

	start := time.Now()

	completion, err := apperrors.ExecuteCircuitBreakerWithResult(c.breaker, func() (*openai.ChatCompletion, error) {
		return apperrors.DoWithResult(ctx, c.retryPolicy, func() (*openai.ChatCompletion, error) {
			return c.complete(ctx, req)
		})
	})
	if err != nil {
		return nil, err
	}

	if len(completion.Choices) == 0 {
		return nil, apperrors.New(apperrors.CodeModelInvalidResponse,
			"completion contained no choices", apperrors.CategoryPermanent)
	}

	return &Response{
		Text:       completion.Choices[0].Message.Content,
		Model:      string(completion.Model),
		TokensUsed: int(completion.Usage.TotalTokens),
		DurationMs: time.Since(start).Milliseconds(),
	}, nil
}

// complete performs a single chat completion call.
func (c *OpenAIClient) complete(ctx context.Context, req *Request) (*openai.ChatCompletion, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.cfg.Name),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		if apiErr, ok := err.(*openai.Error); ok {
			return nil, classifyAPIError(apiErr.StatusCode, err)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeModelRequestFailed,
			"OpenAI request failed", apperrors.CategoryTemporary)
	}
	return completion, nil
}

// IsAvailable checks if the client is configured.
func (c *OpenAIClient) IsAvailable() bool {
	return c != nil && c.cfg != nil && c.cfg.APIKey != ""
}

// Name returns the configured model name.
func (c *OpenAIClient) Name() string {
	if c.cfg != nil {
		return c.cfg.Name
	}
	return "openai"
}
