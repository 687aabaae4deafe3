package forecast

import (
	"testing"

	"github.com/parishworks/vestry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoMonthMatrix(values ...float64) model.ReceiptMatrix {
	return model.ReceiptMatrix{
		Months: []string{"2025-01", "2025-02"},
		Rows: []model.ReceiptMatrixRow{
			{Key: "utilities", Label: "Utilities", Values: values, Total: sum(values)},
		},
		ColTotals:  values,
		GrandTotal: sum(values),
	}
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func TestProject_FlatVsCompounding(t *testing.T) {
	actuals := twoMonthMatrix(100, 100)

	t.Run("flat projects each month off its own actual", func(t *testing.T) {
		projected := Project(actuals, ProjectionOptions{GlobalPct: 0.1})

		row := projected.Rows[0]
		assert.InDelta(t, 110.0, row.Values[0], 1e-9)
		assert.InDelta(t, 110.0, row.Values[1], 1e-9)
		assert.InDelta(t, 220.0, projected.GrandTotal, 1e-9)
	})

	t.Run("compounding chains off the previous projected month", func(t *testing.T) {
		projected := Project(actuals, ProjectionOptions{GlobalPct: 0.1, Compound: true})

		row := projected.Rows[0]
		assert.InDelta(t, 110.0, row.Values[0], 1e-9)
		assert.InDelta(t, 121.0, row.Values[1], 1e-9)
	})
}

func TestProject_FactorOrder(t *testing.T) {
	actuals := twoMonthMatrix(100, 200)

	projected := Project(actuals, ProjectionOptions{
		GlobalPct:      0.1,
		PerCategoryPct: map[string]float64{"utilities": 0.2},
		MonthlyFactors: []float64{1.5}, // February falls back to 1.0
		InflationPct:   0.05,
	})

	row := projected.Rows[0]
	assert.InDelta(t, 100*1.1*1.2*1.5*1.05, row.Values[0], 1e-9)
	assert.InDelta(t, 200*1.1*1.2*1.0*1.05, row.Values[1], 1e-9)
}

func TestProject_Rounding(t *testing.T) {
	actuals := twoMonthMatrix(104, 996)

	projected := Project(actuals, ProjectionOptions{RoundTo: 10})

	row := projected.Rows[0]
	assert.Equal(t, 100.0, row.Values[0])
	assert.Equal(t, 1000.0, row.Values[1])
	assert.Equal(t, 1100.0, projected.GrandTotal)
}

func TestProject_ChildrenProjectedIndependently(t *testing.T) {
	actuals := model.ReceiptMatrix{
		Months: []string{"2025-01"},
		Rows: []model.ReceiptMatrixRow{
			{
				Key:    "utilities",
				Values: []float64{300},
				Total:  300,
				Children: []model.ReceiptMatrixRow{
					{Key: "5100", Values: []float64{200}, Total: 200},
					{Key: "5110", Values: []float64{100}, Total: 100},
				},
			},
		},
		ColTotals:  []float64{300},
		GrandTotal: 300,
	}

	projected := Project(actuals, ProjectionOptions{GlobalPct: 0.1})

	row := projected.Rows[0]
	require.Len(t, row.Children, 2)
	assert.InDelta(t, 330.0, row.Total, 1e-9, "parent totals derive from own values only")
	assert.InDelta(t, 220.0, row.Children[0].Total, 1e-9)
	assert.InDelta(t, 110.0, row.Children[1].Total, 1e-9)
	assert.InDelta(t, 330.0, projected.GrandTotal, 1e-9, "children do not double-count into the grand total")
}
