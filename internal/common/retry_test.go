package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishworks/vestry/internal/service"
)

func fastRetryOpts(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: ErrAPIConnection, Retryable: true}
		}
		return nil
	}, fastRetryOpts(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	permanent := &RetryableError{Err: errors.New("bad request"), Retryable: false}
	err := WithRetry(context.Background(), func() error {
		calls++
		return permanent
	}, fastRetryOpts(5))

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, permanent)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: ErrAPIConnection, Retryable: true}
	}, fastRetryOpts(3))

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, ErrMaxRetries)
}

func TestWithRetry_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error {
		return &RetryableError{Err: ErrAPIConnection, Retryable: true}
	}, fastRetryOpts(3))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(ErrAPIConnection))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestUserError(t *testing.T) {
	err := NewUserError("Snapshot missing.", ErrNoSnapshot)
	assert.ErrorIs(t, err, ErrNoSnapshot)
	assert.Contains(t, err.Error(), "Snapshot missing.")

	bare := NewUserError("Just a message.", nil)
	assert.Equal(t, "Just a message.", bare.Error())
}
