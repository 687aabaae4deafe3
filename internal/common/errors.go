// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Snapshot store errors.
	ErrNotFound         = errors.New("not found")
	ErrNoSnapshot       = errors.New("no snapshot available")
	ErrSnapshotCoverage = errors.New("snapshot does not cover the requested range")

	// Ledger API errors.
	ErrAPIConnection = errors.New("ledger API connection failed")

	// Analysis errors.
	ErrNoEntries = errors.New("no journal entries in range")
	ErrNoRules   = errors.New("no category rules configured")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNoCredentials = errors.New("no API credentials stored")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrAPIConnection) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Check for retryable error type
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
