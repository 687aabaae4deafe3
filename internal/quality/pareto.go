package quality

import (
	"math"
	"sort"
)

// ParetoItem is one input pair for a Pareto breakdown.
type ParetoItem struct {
	Label string
	Value float64
}

// ParetoOptions configures ranking and tail grouping.
type ParetoOptions struct {
	OthersLabel string
	TopN        int
	MinShare    float64
	GroupOthers bool
}

// ParetoPoint is one ranked item with its cumulative share of the total.
type ParetoPoint struct {
	Label  string
	Value  float64
	Share  float64
	CumPct float64
}

// BuildPareto ranks items by absolute value and computes the cumulative
// percentage overlay. Items are kept while fewer than TopN have been taken
// or their share stays at or above MinShare; the remainder is summed into a
// single tail bucket when GroupOthers is set. A zero total yields an empty
// series.
func BuildPareto(items []ParetoItem, opts ParetoOptions) []ParetoPoint {
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	if opts.OthersLabel == "" {
		opts.OthersLabel = "Others"
	}

	ranked := make([]ParetoItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].Value) > math.Abs(ranked[j].Value)
	})

	total := 0.0
	for _, item := range ranked {
		total += math.Abs(item.Value)
	}
	if total == 0 {
		return []ParetoPoint{}
	}

	kept := make([]ParetoItem, 0, len(ranked))
	rest := 0.0
	for i, item := range ranked {
		share := math.Abs(item.Value) / total
		if i < opts.TopN || (opts.MinShare > 0 && share >= opts.MinShare) {
			kept = append(kept, item)
			continue
		}
		rest += item.Value
	}

	if opts.GroupOthers && len(kept) < len(ranked) {
		kept = append(kept, ParetoItem{Label: opts.OthersLabel, Value: rest})
	}

	points := make([]ParetoPoint, 0, len(kept))
	running := 0.0
	for _, item := range kept {
		running += math.Abs(item.Value)
		points = append(points, ParetoPoint{
			Label:  item.Label,
			Value:  item.Value,
			Share:  math.Abs(item.Value) / total,
			CumPct: running / total,
		})
	}

	return points
}
