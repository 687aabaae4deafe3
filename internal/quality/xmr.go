package quality

import "math"

// XmR control-chart constants for individuals data (subgroup size 2).
const (
	xmrE2 = 2.66
	xmrD4 = 3.267
)

// XmRPoint is one observation of an individuals/moving-range chart.
type XmRPoint struct {
	Bucket       string
	Value        float64
	MovingRange  float64
	OutOfControl bool
}

// XmRSeries is an individuals/moving-range control chart.
type XmRSeries struct {
	Mean    float64
	MRBar   float64
	XUCL    float64
	XLCL    float64
	MRUCL   float64
	Points  []XmRPoint
	Signals []int // indexes of out-of-control points
}

// BuildXmR computes an X-mR chart over an ordered sequence of per-bucket
// totals. The first moving range is zero and excluded from the MR mean.
// Limits use Wheeler's constants for n=2: x̄ ± 2.66·mr̄ and MR UCL 3.267·mr̄.
func BuildXmR(buckets []string, values []float64) XmRSeries {
	if len(values) == 0 {
		return XmRSeries{}
	}

	series := XmRSeries{Points: make([]XmRPoint, len(values))}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	series.Mean = sum / float64(len(values))

	if len(values) > 1 {
		mrSum := 0.0
		for i := 1; i < len(values); i++ {
			mrSum += math.Abs(values[i] - values[i-1])
		}
		series.MRBar = mrSum / float64(len(values)-1)
	}

	series.XUCL = series.Mean + xmrE2*series.MRBar
	series.XLCL = series.Mean - xmrE2*series.MRBar
	series.MRUCL = xmrD4 * series.MRBar

	for i, v := range values {
		point := XmRPoint{Value: v}
		if i < len(buckets) {
			point.Bucket = buckets[i]
		}
		if i > 0 {
			point.MovingRange = math.Abs(v - values[i-1])
		}
		if v > series.XUCL || v < series.XLCL {
			point.OutOfControl = true
			series.Signals = append(series.Signals, i)
		}
		series.Points[i] = point
	}

	return series
}
