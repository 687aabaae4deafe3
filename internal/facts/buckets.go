// Package facts normalizes raw journal entries into the flat line/unit view
// consumed by the analytics packages.
package facts

import (
	"fmt"
	"time"

	"github.com/parishworks/vestry/internal/model"
)

// BucketOf converts a date into its bucket token under the given grain.
// Day and month tokens reuse the date layout; week tokens use the ISO week
// ("2025-W03"), which sorts correctly as a plain string.
func BucketOf(date time.Time, grain model.Grain) string {
	switch grain {
	case model.GrainDay:
		return date.Format("2006-01-02")
	case model.GrainWeek:
		year, week := date.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return date.Format("2006-01")
	}
}

// CoveredMonths returns every "YYYY-MM" token between from and to inclusive,
// regardless of whether any entry falls in the month.
func CoveredMonths(from, to time.Time) []string {
	if to.Before(from) {
		return nil
	}
	var months []string
	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		months = append(months, cur.Format("2006-01"))
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

// BucketUniverse enumerates every bucket token the range covers under the
// grain, in chronological order. Charts built over this universe are
// zero-filled rather than sparse.
func BucketUniverse(from, to time.Time, grain model.Grain) []string {
	if to.Before(from) {
		return nil
	}
	switch grain {
	case model.GrainMonth:
		return CoveredMonths(from, to)
	case model.GrainDay:
		var days []string
		for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
			days = append(days, cur.Format("2006-01-02"))
		}
		return days
	default:
		var weeks []string
		seen := make(map[string]bool)
		for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
			token := BucketOf(cur, model.GrainWeek)
			if !seen[token] {
				seen[token] = true
				weeks = append(weeks, token)
			}
		}
		return weeks
	}
}

// MonthToken returns the "YYYY-MM" token for a date, independent of grain.
func MonthToken(date time.Time) string {
	return date.Format("2006-01")
}
