package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishworks/vestry/internal/model"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		endOfMonth bool
		want       time.Time
		wantErr    bool
	}{
		{
			name:  "full date",
			input: "2025-03-15",
			want:  time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "month start",
			input: "2025-03",
			want:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "month end",
			input:      "2025-02",
			endOfMonth: true,
			want:       time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "not-a-date",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input, tt.endOfMonth)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseRange(t *testing.T) {
	cmd := &cobra.Command{}
	addRangeFlags(cmd)
	require.NoError(t, cmd.Flags().Set("from", "2025-01"))
	require.NoError(t, cmd.Flags().Set("to", "2025-03"))

	from, to, err := parseRange(cmd)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), to)
}

func TestParseRange_Inverted(t *testing.T) {
	cmd := &cobra.Command{}
	addRangeFlags(cmd)
	require.NoError(t, cmd.Flags().Set("from", "2025-06"))
	require.NoError(t, cmd.Flags().Set("to", "2025-01"))

	_, _, err := parseRange(cmd)
	assert.Error(t, err)
}

func TestParseDomain(t *testing.T) {
	for input, want := range map[string]model.Domain{
		"":        model.DomainAll,
		"all":     model.DomainAll,
		"expense": model.DomainExpense,
		"income":  model.DomainRevenue,
		"revenue": model.DomainRevenue,
	} {
		got, err := parseDomain(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := parseDomain("equity")
	assert.Error(t, err)
}

func TestParseGrain(t *testing.T) {
	got, err := parseGrain("")
	require.NoError(t, err)
	assert.Equal(t, model.GrainMonth, got)

	_, err = parseGrain("quarter")
	assert.Error(t, err)
}

func TestProjectionOptions(t *testing.T) {
	cmd := &cobra.Command{}
	addProjectionFlags(cmd)
	require.NoError(t, cmd.Flags().Set("global-pct", "0.05"))
	require.NoError(t, cmd.Flags().Set("category-pct", "utilities=0.1,supplies=-0.02"))
	require.NoError(t, cmd.Flags().Set("compound", "true"))

	opts, err := projectionOptions(cmd)
	require.NoError(t, err)
	assert.Equal(t, 0.05, opts.GlobalPct)
	assert.Equal(t, 0.1, opts.PerCategoryPct["utilities"])
	assert.Equal(t, -0.02, opts.PerCategoryPct["supplies"])
	assert.True(t, opts.Compound)
}

func TestProjectionOptions_BadCategoryPct(t *testing.T) {
	cmd := &cobra.Command{}
	addProjectionFlags(cmd)
	require.NoError(t, cmd.Flags().Set("category-pct", "utilities"))

	_, err := projectionOptions(cmd)
	assert.Error(t, err)
}
