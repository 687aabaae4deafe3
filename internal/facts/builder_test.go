package facts

import (
	"testing"
	"time"

	"github.com/parishworks/vestry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccounts() []model.Account {
	return []model.Account{
		{ID: 1, Code: "5100", Name: "Utilities Expense", Type: model.AccountTypeExpense},
		{ID: 2, Code: "4100", Name: "Offertory Income", Type: model.AccountTypeRevenue},
		{ID: 3, Code: "1000", Name: "Cash on Hand", Type: model.AccountTypeAsset},
	}
}

func TestBuild_EmptyEntriesStillEnumeratesBuckets(t *testing.T) {
	set := Build(nil, testAccounts(), BuildOptions{
		From:   date(2025, time.January, 1),
		To:     date(2025, time.January, 31),
		Domain: model.DomainExpense,
		Grain:  model.GrainMonth,
	})

	assert.Equal(t, []string{"2025-01"}, set.Buckets)
	assert.Empty(t, set.Lines)
	assert.Empty(t, set.Units)
}

func TestBuild_SignsLinesPerDomain(t *testing.T) {
	entries := []model.JournalEntry{
		{
			ID:   10,
			Date: date(2025, time.January, 5),
			Lines: []model.JournalLine{
				{AccountID: 1, Debit: 150}, // expense
				{AccountID: 2, Credit: 90}, // revenue
				{AccountID: 3, Debit: 60},  // asset, dropped in every domain
			},
		},
	}

	tests := []struct {
		name        string
		domain      model.Domain
		wantAmounts []float64
	}{
		{
			name:        "expense keeps only expense lines",
			domain:      model.DomainExpense,
			wantAmounts: []float64{150},
		},
		{
			name:        "revenue keeps only revenue lines",
			domain:      model.DomainRevenue,
			wantAmounts: []float64{90},
		},
		{
			name:        "all keeps both sides each per its own rule",
			domain:      model.DomainAll,
			wantAmounts: []float64{150, 90},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Build(entries, testAccounts(), BuildOptions{
				From:   date(2025, time.January, 1),
				To:     date(2025, time.January, 31),
				Domain: tt.domain,
				Grain:  model.GrainMonth,
			})

			got := make([]float64, 0, len(set.Lines))
			for _, line := range set.Lines {
				got = append(got, line.Amount)
			}
			assert.Equal(t, tt.wantAmounts, got)

			// One entry, at most one unit.
			require.Len(t, set.Units, 1)
			assert.Equal(t, int64(10), set.Units[0].ID)
			assert.Equal(t, "2025-01", set.Units[0].Bucket)
		})
	}
}

func TestBuild_UnitGatedOnSurvivingLine(t *testing.T) {
	entries := []model.JournalEntry{
		{
			ID:    20,
			Date:  date(2025, time.February, 10),
			Lines: []model.JournalLine{{AccountID: 3, Debit: 100}}, // asset only
		},
	}

	set := Build(entries, testAccounts(), BuildOptions{
		From:   date(2025, time.February, 1),
		To:     date(2025, time.February, 28),
		Domain: model.DomainExpense,
		Grain:  model.GrainMonth,
	})

	assert.Empty(t, set.Lines)
	assert.Empty(t, set.Units, "entry with no surviving line must not create a unit")
}

func TestBuild_AccountSelectionFilter(t *testing.T) {
	entries := []model.JournalEntry{
		{
			ID:   30,
			Date: date(2025, time.March, 3),
			Lines: []model.JournalLine{
				{AccountID: 1, Debit: 40},
				{AccountID: 2, Credit: 75},
			},
		},
	}

	set := Build(entries, testAccounts(), BuildOptions{
		From:       date(2025, time.March, 1),
		To:         date(2025, time.March, 31),
		Domain:     model.DomainAll,
		Grain:      model.GrainMonth,
		AccountIDs: map[int64]bool{2: true},
	})

	require.Len(t, set.Lines, 1)
	assert.Equal(t, int64(2), set.Lines[0].AccountID)
	assert.Equal(t, 75.0, set.Lines[0].Amount)
}

func TestBuild_LockedStatusDerivation(t *testing.T) {
	posted := time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC)

	entries := []model.JournalEntry{
		{ID: 1, Date: date(2025, time.April, 1), IsLocked: true, Lines: []model.JournalLine{{AccountID: 1, Debit: 10}}},
		{ID: 2, Date: date(2025, time.April, 1), PostedAt: &posted, Lines: []model.JournalLine{{AccountID: 1, Debit: 10}}},
		{ID: 3, Date: date(2025, time.April, 1), Lines: []model.JournalLine{{AccountID: 1, Debit: 10}}},
	}

	set := Build(entries, testAccounts(), BuildOptions{
		From:   date(2025, time.April, 1),
		To:     date(2025, time.April, 30),
		Domain: model.DomainExpense,
		Grain:  model.GrainMonth,
	})

	require.Len(t, set.Units, 3)
	assert.True(t, set.Units[0].Locked, "explicit flag")
	assert.True(t, set.Units[1].Locked, "inferred from posted metadata")
	assert.False(t, set.Units[2].Locked)
}

func TestBuild_EntriesOutsideRangeSkipped(t *testing.T) {
	entries := []model.JournalEntry{
		{ID: 1, Date: date(2025, time.May, 30), Lines: []model.JournalLine{{AccountID: 1, Debit: 5}}},
		{ID: 2, Date: date(2025, time.June, 2), Lines: []model.JournalLine{{AccountID: 1, Debit: 5}}},
		{ID: 3, Date: date(2025, time.May, 1), Lines: []model.JournalLine{{AccountID: 1, Debit: 5}}},
		{ID: 4, Date: date(2025, time.May, 31), Lines: []model.JournalLine{{AccountID: 1, Debit: 5}}},
		{ID: 5, Date: date(2025, time.April, 30), Lines: []model.JournalLine{{AccountID: 1, Debit: 5}}},
	}

	set := Build(entries, testAccounts(), BuildOptions{
		From:   date(2025, time.May, 1),
		To:     date(2025, time.May, 31),
		Domain: model.DomainExpense,
		Grain:  model.GrainDay,
	})

	// Both range endpoints are inclusive.
	require.Len(t, set.Units, 3)
	assert.Equal(t, int64(1), set.Units[0].ID)
	assert.Equal(t, int64(3), set.Units[1].ID)
	assert.Equal(t, int64(4), set.Units[2].ID)
	assert.Len(t, set.Buckets, 31)
}
