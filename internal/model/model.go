// Package model provides clients for the language models that phrase
// assistant replies.
package model

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/taskpilot-ai/taskpilot/internal/errors"
)

// Model represents a language model client.
type Model interface {
	// Generate runs inference on the model.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// IsAvailable checks if the model is ready to serve requests.
	IsAvailable() bool

	// Name returns the model identifier.
	Name() string
}

// rateLimitRetryAfter is the backoff hint used when the provider does
// not say how long to wait.
const rateLimitRetryAfter = 2 * time.Second

// newRetryPolicy builds the retry policy shared by the provider
// clients. Only temporary and rate-limit failures are retried.
func newRetryPolicy(maxAttempts int) *apperrors.Policy {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &apperrors.Policy{
		MaxAttempts:  maxAttempts,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
		RetryIf: func(err error) bool {
			category := apperrors.GetCategory(err)
			return category == apperrors.CategoryTemporary || category == apperrors.CategoryRateLimit
		},
	}
}

// classifyAPIError maps a provider HTTP status to an error category so
// the retry policy and circuit breaker treat it correctly.
func classifyAPIError(statusCode int, err error) error {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return apperrors.RateLimit(apperrors.CodeModelRateLimit,
			"model API rate limit exceeded", rateLimitRetryAfter)
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return apperrors.NewBuilder(apperrors.CodeModelUnavailable, "model API rejected the credentials").
			User().
			Wrap(err).
			WithSuggestion("Check the configured API key").
			Build()
	case statusCode == http.StatusBadRequest:
		return apperrors.NewBuilder(apperrors.CodeModelRequestFailed, "model API rejected the request").
			User().
			Wrap(err).
			WithSuggestion("Check the model name and request parameters").
			Build()
	case statusCode >= http.StatusInternalServerError:
		return apperrors.Wrap(err, apperrors.CodeModelUnavailable,
			fmt.Sprintf("model API unavailable (status %d)", statusCode), apperrors.CategoryTemporary)
	default:
		return apperrors.Wrap(err, apperrors.CodeModelRequestFailed,
			fmt.Sprintf("model API error (status %d)", statusCode), apperrors.CategoryTemporary)
	}
}
