// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/parishworks/vestry/internal/model"
)

// DateRange represents a time period with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the range, inclusive.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Covers reports whether the range fully contains other.
func (r DateRange) Covers(other DateRange) bool {
	return !r.Start.After(other.Start) && !r.End.Before(other.End)
}

// LedgerSource fetches reference and journal data from the accounting API.
type LedgerSource interface {
	GetJournalEntries(ctx context.Context, from, to time.Time) ([]model.JournalEntry, error)
	GetAccounts(ctx context.Context) ([]model.Account, error)
	GetPeriodLocks(ctx context.Context, from, to time.Time) ([]model.PeriodLock, error)
}

// SnapshotStore persists one pulled dataset for offline analysis. A new
// snapshot replaces the previous one wholesale; analytics never mutate it.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	Migrate(ctx context.Context) error
	Close() error
}

// Snapshot is a cached pull of the ledger API.
type Snapshot struct {
	PulledAt time.Time
	Range    DateRange
	Accounts []model.Account
	Entries  []model.JournalEntry
	Locks    []model.PeriodLock
}

// CredentialStore abstracts where the ledger API key lives. Implementations
// are session-scoped; Clear removes the stored key entirely.
type CredentialStore interface {
	APIKey() (string, error)
	SetAPIKey(key string) error
	Clear() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
