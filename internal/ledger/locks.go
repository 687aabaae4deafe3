package ledger

import (
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/parishworks/vestry/internal/model"
)

// The locks endpoint has shipped three payload shapes over the API's life:
// a bare array of lock rows, the same array wrapped in an envelope, and an
// object keyed by "YYYY-MM". Each shape gets its own decode + normalize
// pass; anything unrecognized degrades to an empty result instead of
// failing the whole reload.

type lockRow struct {
	PeriodMonth string `json:"period_month"`
	Note        string `json:"note"`
	IsLocked    bool   `json:"is_locked"`
	Reopened    bool   `json:"reopened"`
}

type lockEnvelope struct {
	Items []lockRow `json:"items"`
	Locks []lockRow `json:"locks"`
	Data  []lockRow `json:"data"`
}

type lockStatus struct {
	Note     string `json:"note"`
	IsLocked bool   `json:"is_locked"`
	Reopened bool   `json:"reopened"`
}

// UnmarshalJSON accepts either a status object or a bare boolean (the
// oldest keyed shape mapped months straight to locked flags).
func (s *lockStatus) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*s = lockStatus{IsLocked: flag}
		return nil
	}

	type alias lockStatus
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = lockStatus(a)
	return nil
}

// NormalizeLocks converts any known lock payload shape into period locks.
// Unrecognized shapes yield an empty slice.
func NormalizeLocks(raw json.RawMessage) []model.PeriodLock {
	if len(raw) == 0 {
		return []model.PeriodLock{}
	}

	var rows []lockRow
	if err := json.Unmarshal(raw, &rows); err == nil {
		return locksFromRows(rows)
	}

	var envelope lockEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil {
		for _, candidate := range [][]lockRow{envelope.Items, envelope.Locks, envelope.Data} {
			if len(candidate) > 0 {
				return locksFromRows(candidate)
			}
		}
	}

	var keyed map[string]lockStatus
	if err := json.Unmarshal(raw, &keyed); err == nil {
		locks := make([]model.PeriodLock, 0, len(keyed))
		for month, status := range keyed {
			parsed, err := parsePeriodMonth(month)
			if err != nil {
				continue
			}
			locks = append(locks, model.PeriodLock{
				PeriodMonth: parsed,
				Note:        status.Note,
				IsLocked:    status.IsLocked,
				Reopened:    status.Reopened,
			})
		}
		sort.Slice(locks, func(i, j int) bool {
			return locks[i].PeriodMonth.Before(locks[j].PeriodMonth)
		})
		return locks
	}

	slog.Warn("Unrecognized lock status payload shape, treating as empty")
	return []model.PeriodLock{}
}

func locksFromRows(rows []lockRow) []model.PeriodLock {
	locks := make([]model.PeriodLock, 0, len(rows))
	for _, row := range rows {
		parsed, err := parsePeriodMonth(row.PeriodMonth)
		if err != nil {
			continue
		}
		locks = append(locks, model.PeriodLock{
			PeriodMonth: parsed,
			Note:        row.Note,
			IsLocked:    row.IsLocked,
			Reopened:    row.Reopened,
		})
	}
	return locks
}

func parsePeriodMonth(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, &time.ParseError{Layout: "2006-01", Value: s}
}

// ReopenedMonths derives the "YYYY-MM" set of reopened periods. A lock row
// only exists once a month has been locked, so a row that is no longer
// locked marks a reopened month; explicit reopened flags are honored too.
func ReopenedMonths(locks []model.PeriodLock) map[string]bool {
	months := make(map[string]bool)
	for _, lock := range locks {
		if lock.Reopened || !lock.IsLocked {
			months[lock.Month()] = true
		}
	}
	return months
}
