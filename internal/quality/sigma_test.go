package quality

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSigmaSummary(t *testing.T) {
	summary := BuildSigmaSummary(100, 3, 12)

	assert.Equal(t, 300, summary.Opportunities)
	assert.InDelta(t, 0.12, summary.DPU, 1e-9)
	assert.InDelta(t, 40_000, summary.DPMO, 1e-6)
	assert.InDelta(t, math.Exp(-0.12), summary.FPY, 1e-9)
	assert.InDelta(t, summary.SigmaShort+1.5, summary.SigmaLong, 1e-9)
}

func TestBuildSigmaSummary_ZeroUnits(t *testing.T) {
	summary := BuildSigmaSummary(0, 1, 0)

	assert.Equal(t, 0.0, summary.DPU)
	assert.Equal(t, 0.0, summary.DPMO)
	assert.InDelta(t, 1.0, summary.FPY, 1e-9)
	assert.False(t, math.IsInf(summary.SigmaShort, 0), "FPY clamp keeps sigma finite")
}

func TestInvNormCDF(t *testing.T) {
	tests := []struct {
		p    float64
		want float64
	}{
		{0.5, 0},
		{0.841344746, 1},       // Φ(1)
		{0.97724986805, 2},     // Φ(2)
		{0.00134989803163, -3}, // Φ(-3)
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, invNormCDF(tt.p), 1e-6)
	}

	assert.True(t, math.IsInf(invNormCDF(0), -1))
	assert.True(t, math.IsInf(invNormCDF(1), 1))
}
