package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPareto(t *testing.T) {
	items := []ParetoItem{
		{Label: "A", Value: 100},
		{Label: "B", Value: 80},
		{Label: "C", Value: 5},
		{Label: "D", Value: 3},
	}

	t.Run("groups tail into Others", func(t *testing.T) {
		points := BuildPareto(items, ParetoOptions{TopN: 2, GroupOthers: true})

		require.Len(t, points, 3)
		assert.Equal(t, "A", points[0].Label)
		assert.Equal(t, "B", points[1].Label)
		assert.Equal(t, "Others", points[2].Label)
		assert.Equal(t, 8.0, points[2].Value)
		assert.InDelta(t, 1.0, points[2].CumPct, 1e-9)
	})

	t.Run("cumulative share is non-decreasing", func(t *testing.T) {
		points := BuildPareto(items, ParetoOptions{TopN: 4})

		require.Len(t, points, 4)
		for i := 1; i < len(points); i++ {
			assert.GreaterOrEqual(t, points[i].CumPct, points[i-1].CumPct)
		}
		assert.InDelta(t, 1.0, points[len(points)-1].CumPct, 1e-9)
	})

	t.Run("min share keeps items beyond topN", func(t *testing.T) {
		points := BuildPareto(items, ParetoOptions{TopN: 1, MinShare: 0.40, GroupOthers: true})

		// B holds a 42.6% share, so it survives the topN cut.
		require.Len(t, points, 3)
		assert.Equal(t, "A", points[0].Label)
		assert.Equal(t, "B", points[1].Label)
		assert.Equal(t, "Others", points[2].Label)
	})

	t.Run("ranks by absolute value", func(t *testing.T) {
		points := BuildPareto([]ParetoItem{
			{Label: "refund", Value: -90},
			{Label: "postage", Value: 10},
		}, ParetoOptions{TopN: 5})

		require.Len(t, points, 2)
		assert.Equal(t, "refund", points[0].Label)
		assert.Equal(t, -90.0, points[0].Value)
		assert.InDelta(t, 0.9, points[0].CumPct, 1e-9)
	})

	t.Run("zero total yields empty series", func(t *testing.T) {
		points := BuildPareto([]ParetoItem{{Label: "A", Value: 0}}, ParetoOptions{TopN: 5})
		assert.Empty(t, points)
	})

	t.Run("custom others label", func(t *testing.T) {
		points := BuildPareto(items, ParetoOptions{TopN: 1, GroupOthers: true, OthersLabel: "Everything else"})
		assert.Equal(t, "Everything else", points[len(points)-1].Label)
	})
}
