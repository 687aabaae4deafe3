package quality

import (
	"math"

	"github.com/parishworks/vestry/internal/model"
)

// PChartPoint is one bucket of a proportion-defective control chart.
type PChartPoint struct {
	Bucket  string
	Units   int
	Defects int
	P       float64
	UCL     float64
	LCL     float64
}

// PChartSeries is a p-chart with variable-n control limits.
type PChartSeries struct {
	PBar   float64
	Points []PChartPoint
}

// BuildPChart classifies every unit and produces a per-bucket p-chart over
// the given bucket universe. Limits are p̄ ± 3·√(p̄(1−p̄)/n), clamped to
// [0, 1]. Empty buckets yield p = 0 with the widest limits rather than NaN.
func BuildPChart(units []model.FactUnit, buckets []string, classifier *Classifier) PChartSeries {
	unitsPerBucket := make(map[string]int, len(buckets))
	defectsPerBucket := make(map[string]int, len(buckets))

	totalUnits := 0
	totalDefects := 0
	seen := make(map[int64]bool, len(units))

	for _, unit := range units {
		if seen[unit.ID] {
			continue
		}
		seen[unit.ID] = true

		unitsPerBucket[unit.Bucket]++
		totalUnits++
		if _, defective := classifier.Classify(unit); defective {
			defectsPerBucket[unit.Bucket]++
			totalDefects++
		}
	}

	pBar := 0.0
	if totalUnits > 0 {
		pBar = float64(totalDefects) / float64(totalUnits)
	}

	series := PChartSeries{PBar: pBar, Points: make([]PChartPoint, 0, len(buckets))}
	for _, bucket := range buckets {
		n := unitsPerBucket[bucket]
		d := defectsPerBucket[bucket]

		p := 0.0
		if n > 0 {
			p = float64(d) / float64(n)
		}

		// Limits degenerate to the widest band when the bucket is empty.
		nEff := n
		if nEff < 1 {
			nEff = 1
		}
		se := math.Sqrt(math.Max(pBar*(1-pBar)/float64(nEff), 0))

		series.Points = append(series.Points, PChartPoint{
			Bucket:  bucket,
			Units:   n,
			Defects: d,
			P:       p,
			UCL:     math.Min(pBar+3*se, 1),
			LCL:     math.Max(pBar-3*se, 0),
		})
	}

	return series
}
