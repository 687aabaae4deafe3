package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildXmR(t *testing.T) {
	buckets := []string{"2025-01", "2025-02", "2025-03", "2025-04"}
	values := []float64{10, 12, 8, 50}

	series := BuildXmR(buckets, values)

	assert.InDelta(t, 20.0, series.Mean, 1e-9)

	// Moving ranges: |12-10|=2, |8-12|=4, |50-8|=42; mean = 16.
	require.Len(t, series.Points, 4)
	assert.Equal(t, 0.0, series.Points[0].MovingRange, "first point has no predecessor")
	assert.Equal(t, 2.0, series.Points[1].MovingRange)
	assert.Equal(t, 42.0, series.Points[3].MovingRange)
	assert.InDelta(t, 16.0, series.MRBar, 1e-9)

	assert.InDelta(t, 20+2.66*16, series.XUCL, 1e-9)
	assert.InDelta(t, 20-2.66*16, series.XLCL, 1e-9)
	assert.InDelta(t, 3.267*16, series.MRUCL, 1e-9)

	assert.Empty(t, series.Signals)
	assert.Equal(t, "2025-03", series.Points[2].Bucket)
}

func TestBuildXmR_FlagsOutOfControlPoints(t *testing.T) {
	values := []float64{10, 10, 10, 10, 10, 100}

	series := BuildXmR(nil, values)

	// mr̄ = 90/5 = 18; XUCL = 25 + 47.88 = 72.88 < 100.
	require.Len(t, series.Signals, 1)
	assert.Equal(t, 5, series.Signals[0])
	assert.True(t, series.Points[5].OutOfControl)
	assert.False(t, series.Points[0].OutOfControl)
}

func TestBuildXmR_Degenerate(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		series := BuildXmR(nil, nil)
		assert.Empty(t, series.Points)
		assert.Equal(t, 0.0, series.Mean)
	})

	t.Run("single point has zero moving range", func(t *testing.T) {
		series := BuildXmR([]string{"2025-01"}, []float64{42})
		require.Len(t, series.Points, 1)
		assert.Equal(t, 42.0, series.Mean)
		assert.Equal(t, 0.0, series.MRBar)
		assert.Equal(t, 42.0, series.XUCL)
		assert.Empty(t, series.Signals)
	})
}
