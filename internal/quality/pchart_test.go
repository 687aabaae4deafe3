package quality

import (
	"math"
	"testing"
	"time"

	"github.com/parishworks/vestry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPChart(t *testing.T) {
	rules := model.DefectRules{IncludeReversals: true}
	classifier := classifierWith(rules)

	day := func(d int) time.Time {
		return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
	}

	// Two buckets of ten units each, one reversal defect apiece, plus one
	// empty bucket at the end of the range.
	var units []model.FactUnit
	id := int64(0)
	for d := 1; d <= 2; d++ {
		for i := 0; i < 10; i++ {
			id++
			unit := model.FactUnit{
				ID:     id,
				Bucket: day(d).Format("2006-01-02"),
				Date:   day(d),
				Locked: true,
			}
			if i == 0 {
				unit.SourceModule = "reversal"
			}
			units = append(units, unit)
		}
	}
	buckets := []string{"2025-06-01", "2025-06-02", "2025-06-03"}

	series := BuildPChart(units, buckets, classifier)

	require.Len(t, series.Points, 3)
	assert.InDelta(t, 0.1, series.PBar, 1e-9)

	first := series.Points[0]
	assert.Equal(t, 10, first.Units)
	assert.Equal(t, 1, first.Defects)
	assert.InDelta(t, 0.1, first.P, 1e-9)

	se := math.Sqrt(0.1 * 0.9 / 10)
	assert.InDelta(t, 0.1+3*se, first.UCL, 1e-9)
	assert.Equal(t, 0.0, first.LCL, "negative LCL clamps to zero")

	// Empty bucket: p defaults to zero and limits widen to the n=1 band.
	empty := series.Points[2]
	assert.Equal(t, 0, empty.Units)
	assert.Equal(t, 0.0, empty.P, "empty bucket must not produce NaN")
	assert.False(t, math.IsNaN(empty.UCL))
	assert.Greater(t, empty.UCL, first.UCL)

	for _, point := range series.Points {
		assert.GreaterOrEqual(t, point.LCL, 0.0)
		assert.LessOrEqual(t, point.UCL, 1.0)
		assert.LessOrEqual(t, point.LCL, point.UCL)
	}
}

func TestBuildPChart_NoUnits(t *testing.T) {
	series := BuildPChart(nil, []string{"2025-06"}, classifierWith(model.DefectRules{}))

	require.Len(t, series.Points, 1)
	assert.Equal(t, 0.0, series.PBar)
	assert.Equal(t, 0.0, series.Points[0].P)
	assert.Equal(t, 0.0, series.Points[0].UCL)
	assert.Equal(t, 0.0, series.Points[0].LCL)
}
