package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJournalEntryLocked(t *testing.T) {
	posted := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry JournalEntry
		want  bool
	}{
		{name: "explicit flag", entry: JournalEntry{IsLocked: true}, want: true},
		{name: "posted timestamp only", entry: JournalEntry{PostedAt: &posted}, want: true},
		{name: "locked timestamp only", entry: JournalEntry{LockedAt: &posted}, want: true},
		{name: "neither", entry: JournalEntry{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Locked())
		})
	}
}

func TestJournalEntryIsReversal(t *testing.T) {
	assert.True(t, (&JournalEntry{SourceModule: "GL-Reversal"}).IsReversal())
	assert.True(t, (&JournalEntry{SourceModule: "auto_reversal_job"}).IsReversal())
	assert.False(t, (&JournalEntry{SourceModule: "gl"}).IsReversal())
	assert.False(t, (&JournalEntry{}).IsReversal())
}

func TestPeriodLockMonth(t *testing.T) {
	lock := PeriodLock{PeriodMonth: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-12", lock.Month())
}
