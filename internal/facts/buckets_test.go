package facts

import (
	"testing"
	"time"

	"github.com/parishworks/vestry/internal/model"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		name  string
		grain model.Grain
		date  time.Time
		want  string
	}{
		{
			name:  "day grain",
			grain: model.GrainDay,
			date:  date(2025, time.March, 7),
			want:  "2025-03-07",
		},
		{
			name:  "month grain",
			grain: model.GrainMonth,
			date:  date(2025, time.March, 7),
			want:  "2025-03",
		},
		{
			name:  "week grain uses ISO week",
			grain: model.GrainWeek,
			date:  date(2025, time.January, 15),
			want:  "2025-W03",
		},
		{
			name:  "week grain crosses year boundary",
			grain: model.GrainWeek,
			date:  date(2024, time.December, 31),
			want:  "2025-W01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketOf(tt.date, tt.grain))
		})
	}
}

func TestCoveredMonths(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want []string
	}{
		{
			name: "single month",
			from: date(2025, time.January, 1),
			to:   date(2025, time.January, 31),
			want: []string{"2025-01"},
		},
		{
			name: "spans year boundary",
			from: date(2024, time.November, 15),
			to:   date(2025, time.February, 3),
			want: []string{"2024-11", "2024-12", "2025-01", "2025-02"},
		},
		{
			name: "inverted range yields nothing",
			from: date(2025, time.March, 1),
			to:   date(2025, time.February, 1),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoveredMonths(tt.from, tt.to))
		})
	}
}

func TestBucketUniverse(t *testing.T) {
	t.Run("day grain enumerates every calendar day", func(t *testing.T) {
		got := BucketUniverse(date(2025, time.January, 30), date(2025, time.February, 2), model.GrainDay)
		assert.Equal(t, []string{"2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02"}, got)
	})

	t.Run("week grain dedupes and stays ordered", func(t *testing.T) {
		got := BucketUniverse(date(2025, time.January, 6), date(2025, time.January, 19), model.GrainWeek)
		assert.Equal(t, []string{"2025-W02", "2025-W03"}, got)
	})

	t.Run("week tokens sort chronologically as strings", func(t *testing.T) {
		got := BucketUniverse(date(2024, time.December, 23), date(2025, time.January, 12), model.GrainWeek)
		assert.Equal(t, []string{"2024-W52", "2025-W01", "2025-W02"}, got)
		assert.True(t, sortedAscending(got))
	})
}

func sortedAscending(tokens []string) bool {
	for i := 1; i < len(tokens); i++ {
		if tokens[i-1] >= tokens[i] {
			return false
		}
	}
	return true
}
