package ledger

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/parishworks/vestry/internal/model"
	"github.com/parishworks/vestry/internal/service"
)

// Dataset is one coherent pull of everything an analysis needs.
type Dataset struct {
	From     time.Time
	To       time.Time
	Accounts []model.Account
	Entries  []model.JournalEntry
	Locks    []model.PeriodLock
}

// Reloader serializes competing reloads with generation tokens: every call
// gets a monotonically increasing id, and only the fetch holding the latest
// id may publish its result. Overlapping reloads race freely; losers report
// stale instead of clobbering newer data.
type Reloader struct {
	source  service.LedgerSource
	current *Dataset
	gen     atomic.Uint64
	mu      sync.RWMutex
}

// NewReloader creates a reloader over the given source.
func NewReloader(source service.LedgerSource) *Reloader {
	return &Reloader{source: source}
}

// Reload fetches accounts, journal entries, and period locks for the range.
// The three calls fan out concurrently. The bool result is false when a
// newer reload superseded this one; the dataset is then nil and must be
// discarded.
func (r *Reloader) Reload(ctx context.Context, from, to time.Time) (*Dataset, bool, error) {
	gen := r.gen.Add(1)

	dataset := &Dataset{From: from, To: to}
	errs := make([]error, 3)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		dataset.Accounts, errs[0] = r.source.GetAccounts(ctx)
	}()
	go func() {
		defer wg.Done()
		dataset.Entries, errs[1] = r.source.GetJournalEntries(ctx, from, to)
	}()
	go func() {
		defer wg.Done()
		dataset.Locks, errs[2] = r.source.GetPeriodLocks(ctx, from, to)
	}()
	wg.Wait()

	if r.gen.Load() != gen {
		return nil, false, nil
	}

	for _, err := range errs {
		if err != nil {
			return nil, true, err
		}
	}

	r.mu.Lock()
	r.current = dataset
	r.mu.Unlock()
	return dataset, true, nil
}

// Current returns the most recently published dataset, or nil before the
// first successful reload.
func (r *Reloader) Current() *Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}
