// Package forecast projects budget matrices from actuals and compares
// matrices cell by cell.
package forecast

import (
	"math"

	"github.com/parishworks/vestry/internal/model"
)

// ProjectionOptions configures a budget projection run.
type ProjectionOptions struct {
	// PerCategoryPct maps row keys to an extra uplift applied on top of
	// GlobalPct for that category only.
	PerCategoryPct map[string]float64
	// MonthlyFactors holds one seasonality multiplier per matrix month;
	// missing or short slices default to 1.0 for the remaining months.
	MonthlyFactors []float64
	GlobalPct      float64
	InflationPct   float64
	// RoundTo rounds every projected cell to the nearest 10/100/1000 when
	// set to one of those values; zero disables rounding.
	RoundTo float64
	// Compound chains each month's base off the previous projected value
	// within the row instead of that month's own actual.
	Compound bool
}

// Project applies uplift, seasonality, inflation, and optional compounding
// to an actuals matrix, producing a budget matrix with the same shape.
// Child rows are projected identically and independently; since parent
// values already include child contributions, parent totals re-derive from
// the parent's own projected values.
func Project(actuals model.ReceiptMatrix, opts ProjectionOptions) model.ReceiptMatrix {
	projected := model.ReceiptMatrix{
		Months:    append([]string(nil), actuals.Months...),
		Rows:      make([]model.ReceiptMatrixRow, len(actuals.Rows)),
		ColTotals: make([]float64, len(actuals.Months)),
	}

	for i, row := range actuals.Rows {
		projected.Rows[i] = projectRow(row, opts)
	}

	for _, row := range projected.Rows {
		for j, v := range row.Values {
			projected.ColTotals[j] += v
		}
		projected.GrandTotal += row.Total
	}

	return projected
}

func projectRow(row model.ReceiptMatrixRow, opts ProjectionOptions) model.ReceiptMatrixRow {
	out := model.ReceiptMatrixRow{
		Key:    row.Key,
		Label:  row.Label,
		Values: make([]float64, len(row.Values)),
	}

	categoryPct := opts.PerCategoryPct[row.Key]

	prev := 0.0
	for j, base := range row.Values {
		if opts.Compound && j > 0 {
			base = prev
		}
		v := base *
			(1 + opts.GlobalPct) *
			(1 + categoryPct) *
			monthlyFactor(opts.MonthlyFactors, j) *
			(1 + opts.InflationPct)
		v = roundTo(v, opts.RoundTo)

		out.Values[j] = v
		out.Total += v
		prev = v
	}

	for _, child := range row.Children {
		out.Children = append(out.Children, projectRow(child, opts))
	}

	return out
}

func monthlyFactor(factors []float64, month int) float64 {
	if month >= len(factors) {
		return 1
	}
	f := factors[month]
	if f == 0 {
		return 1
	}
	return f
}

func roundTo(v, unit float64) float64 {
	switch unit {
	case 10, 100, 1000:
		return math.Round(v/unit) * unit
	default:
		return v
	}
}
