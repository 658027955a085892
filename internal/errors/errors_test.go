package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "code and message",
			err:  New(CodeBackendUnavailable, "backend request failed", CategoryTemporary),
			want: "[BACKEND_UNAVAILABLE] backend request failed",
		},
		{
			name: "inner error appended",
			err:  Wrap(errors.New("connection refused"), CodeBackendUnavailable, "backend request failed", CategoryTemporary),
			want: "[BACKEND_UNAVAILABLE] backend request failed: connection refused",
		},
		{
			name: "duplicate inner message elided",
			err:  Wrap(errors.New("backend request failed"), CodeBackendUnavailable, "backend request failed", CategoryTemporary),
			want: "[BACKEND_UNAVAILABLE] backend request failed",
		},
		{
			name: "no code",
			err:  &AppError{Message: "plain"},
			want: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeInvalidInput, "nothing", CategoryUser))
}

// Wrapping an AppError carries its handling hints into the new error.
func TestWrap_CarriesHintsForward(t *testing.T) {
	inner := RateLimit(CodeModelRateLimit, "slow down", 2*time.Second)
	wrapped := Wrap(inner, CodeModelRequestFailed, "model call failed", CategoryTemporary)

	assert.True(t, wrapped.Retryable)
	assert.Equal(t, inner.Suggestions, wrapped.Suggestions)
	assert.ErrorIs(t, wrapped, inner)
}

func TestConstructors(t *testing.T) {
	temp := Temporary(CodeModelTimeout, "timed out")
	assert.Equal(t, CategoryTemporary, temp.Category)
	assert.True(t, temp.Retryable)

	perm := Permanent(CodeModelInvalidResponse, "bad response")
	assert.Equal(t, CategoryPermanent, perm.Category)
	assert.False(t, perm.Retryable)

	user := User(CodeToolInvalidParams, "bad params")
	assert.Equal(t, CategoryUser, user.Category)
	assert.False(t, user.Retryable)

	system := System(CodeConfigInvalid, "bad config")
	assert.Equal(t, CategorySystem, system.Category)
	assert.False(t, system.Retryable)

	limited := RateLimit(CodeModelRateLimit, "slow down", 5*time.Second)
	assert.Equal(t, CategoryRateLimit, limited.Category)
	assert.True(t, limited.Retryable)
	assert.Equal(t, 5*time.Second, limited.RetryAfter)
	assert.NotEmpty(t, limited.Suggestions)
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := NewBuilder(CodeBackendUnavailable, "backend request failed").
		Temporary().
		Wrap(cause).
		WithSuggestion("Check that the backend is running").
		WithContext("method", "GET").
		WithRetryAfter(time.Second).
		Build()

	assert.Equal(t, CodeBackendUnavailable, err.Code)
	assert.Equal(t, CategoryTemporary, err.Category)
	assert.True(t, err.Retryable)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"Check that the backend is running"}, err.Suggestions)
	assert.Equal(t, "GET", err.Context["method"])
	assert.Equal(t, time.Second, err.RetryAfter)

	assert.Equal(t, CategoryUser, NewBuilder("X", "x").User().Build().Category)
	assert.Equal(t, CategorySystem, NewBuilder("X", "x").System().Build().Category)
	assert.Equal(t, CategoryPermanent, NewBuilder("X", "x").Permanent().Build().Category)
}

func TestGetCategory(t *testing.T) {
	assert.Equal(t, CategoryTemporary, GetCategory(nil))
	assert.Equal(t, CategoryUser, GetCategory(User(CodeInvalidInput, "nope")))
	assert.Equal(t, CategoryTemporary, GetCategory(errors.New("mystery")))

	wrapped := fmt.Errorf("outer: %w", System(CodeConfigInvalid, "bad"))
	assert.Equal(t, CategorySystem, GetCategory(wrapped))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(Temporary(CodeModelTimeout, "timed out")))
	assert.False(t, IsRetryable(User(CodeInvalidInput, "nope")))
	assert.True(t, IsRetryable(errors.New("mystery")), "unknown errors default to retryable")
}

func TestGetRetryAfter(t *testing.T) {
	assert.Equal(t, time.Duration(0), GetRetryAfter(nil))
	assert.Equal(t, time.Duration(0), GetRetryAfter(errors.New("mystery")))
	assert.Equal(t, 3*time.Second, GetRetryAfter(RateLimit(CodeModelRateLimit, "slow down", 3*time.Second)))
}

func TestFormatUserMessage(t *testing.T) {
	assert.Empty(t, FormatUserMessage(nil))
	assert.Equal(t, "plain failure", FormatUserMessage(errors.New("plain failure")))

	bare := New(CodeConfigInvalid, "config is broken", CategorySystem)
	assert.Equal(t, "config is broken", FormatUserMessage(bare))

	err := NewBuilder(CodeModelUnavailable, "model not reachable").
		WithSuggestion("Check your network").
		WithSuggestion("Try again later").
		Build()
	require.Equal(t,
		"model not reachable\n\nSuggestions:\n  - Check your network\n  - Try again later",
		FormatUserMessage(err))
}
