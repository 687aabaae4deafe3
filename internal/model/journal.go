package model

import (
	"strings"
	"time"
)

// JournalLine is one debit-or-credit leg of a journal entry. Well-formed data
// carries exactly one positive side; that is not enforced here.
type JournalLine struct {
	ID          int64
	AccountID   int64
	AccountCode string
	AccountName string
	Description string
	Debit       float64
	Credit      float64
	LineNo      int
}

// JournalEntry is one GL entry as returned by the ledger API.
type JournalEntry struct {
	Date         time.Time
	PostedAt     *time.Time
	LockedAt     *time.Time
	ID           int64
	EntryNo      int64
	Memo         string
	ReferenceNo  string
	SourceModule string
	CurrencyCode string
	Lines        []JournalLine
	IsLocked     bool
}

// Locked reports whether the entry is locked/posted. The explicit flag wins;
// older API versions omit it and only set posted/locked timestamps.
func (e *JournalEntry) Locked() bool {
	if e.IsLocked {
		return true
	}
	return e.PostedAt != nil || e.LockedAt != nil
}

// IsReversal reports whether the entry originated from a reversal, matching
// source_module case-insensitively.
func (e *JournalEntry) IsReversal() bool {
	return IsReversalSource(e.SourceModule)
}

// IsReversalSource reports whether a source_module value marks a reversal.
func IsReversalSource(sourceModule string) bool {
	return strings.Contains(strings.ToLower(sourceModule), "reversal")
}

// PeriodLock is the lock state of one accounting month.
type PeriodLock struct {
	PeriodMonth time.Time // first of month
	Note        string
	IsLocked    bool
	Reopened    bool
}

// Month returns the "YYYY-MM" token for the locked period.
func (p PeriodLock) Month() string {
	return p.PeriodMonth.Format("2006-01")
}
