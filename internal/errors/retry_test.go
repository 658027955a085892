package errors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(maxAttempts int) *Policy {
	return &Policy{
		MaxAttempts:  maxAttempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		RetryIf:      IsRetryable,
	}
}

func TestDo_FirstAttemptSucceeds(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastPolicy(3), func() error {
		attempts++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_RetriesTemporaryFailures(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastPolicy(3), func() error {
		attempts++
		if attempts < 3 {
			return Temporary(CodeModelTimeout, "timed out")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	attempts := 0
	want := User(CodeInvalidInput, "bad input")
	err := Do(context.Background(), fastPolicy(3), func() error {
		attempts++
		return want
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, want)
}

func TestDo_MaxRetriesExceeded(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastPolicy(3), func() error {
		attempts++
		return Temporary(CodeModelTimeout, "timed out")
	})
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Contains(t, err.Error(), "max retries exceeded")
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	err := Do(ctx, fastPolicy(3), func() error {
		cancel()
		return Temporary(CodeModelTimeout, "timed out")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retry canceled")
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	got, err := DoWithResult(context.Background(), fastPolicy(3), func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", Temporary(CodeModelTimeout, "timed out")
		}
		return "answer", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "answer", got)
}

func TestDoWithResult_NonRetryableReturnsZero(t *testing.T) {
	got, err := DoWithResult(context.Background(), fastPolicy(3), func() (string, error) {
		return "partial", User(CodeInvalidInput, "bad input")
	})
	require.Error(t, err)
	assert.Empty(t, got)
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, p.InitialDelay)
	assert.True(t, p.Jitter)
	assert.NotNil(t, p.RetryIf)
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", &CircuitBreakerConfig{
		MaxFailures:      2,
		ResetTimeout:     time.Minute,
		HalfOpenAttempts: 1,
	})

	fail := func() error { return Temporary(CodeBackendUnavailable, "down") }
	require.Error(t, cb.Execute(fail))
	require.Error(t, cb.Execute(fail))
	assert.Equal(t, StateOpen, cb.State())

	calls := 0
	err := cb.Execute(func() error {
		calls++
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker 'test' is open")
	assert.Zero(t, calls, "open breaker must not invoke the function")
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", &CircuitBreakerConfig{
		MaxFailures:      1,
		ResetTimeout:     10 * time.Millisecond,
		HalfOpenAttempts: 1,
	})

	require.Error(t, cb.Execute(func() error { return Temporary(CodeBackendUnavailable, "down") }))
	assert.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := NewCircuitBreaker("test", &CircuitBreakerConfig{
		MaxFailures:      1,
		ResetTimeout:     time.Minute,
		HalfOpenAttempts: 1,
	})

	require.Error(t, cb.Execute(func() error { return Temporary(CodeBackendUnavailable, "down") }))
	assert.Equal(t, StateOpen, cb.State())

	cb.Reset()
	assert.Equal(t, StateClosed, cb.State())
	require.NoError(t, cb.Execute(func() error { return nil }))
}

func TestExecuteCircuitBreakerWithResult(t *testing.T) {
	cb := NewCircuitBreaker("test", nil)

	got, err := ExecuteCircuitBreakerWithResult(cb, func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}
