package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishworks/vestry/internal/model"
	"github.com/parishworks/vestry/internal/quality"
)

func TestWriteParetoCSV(t *testing.T) {
	points := []quality.ParetoPoint{
		{Label: "Utilities", Value: 600, Share: 0.6, CumPct: 0.6},
		{Label: "Supplies", Value: 250, Share: 0.25, CumPct: 0.85},
		{Label: "Others", Value: 150, Share: 0.15, CumPct: 1},
	}

	var buf strings.Builder
	require.NoError(t, WriteParetoCSV(&buf, points))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "category,value,pct,cum_pct", lines[0])
	assert.Equal(t, "Utilities,600,0.6,0.6", lines[1])
	assert.Equal(t, "Others,150,0.15,1", lines[3])
}

func TestWriteMatrixCSV(t *testing.T) {
	matrix := &model.ReceiptMatrix{
		Months: []string{"2025-01", "2025-02"},
		Rows: []model.ReceiptMatrixRow{
			{
				Key: "utilities", Label: "Utilities", Values: []float64{300, 200}, Total: 500,
				Children: []model.ReceiptMatrixRow{
					{Key: "5100", Label: "Electric", Values: []float64{300, 200}, Total: 500},
				},
			},
			{Key: "__other__", Label: "Other", Values: []float64{0, 25}, Total: 25},
		},
		ColTotals:  []float64{300, 225},
		GrandTotal: 525,
	}

	var buf strings.Builder
	require.NoError(t, WriteMatrixCSV(&buf, matrix))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "category,2025-01,2025-02,total", lines[0])
	assert.Equal(t, "Utilities,300,200,500", lines[1])
	assert.Equal(t, "- Electric,300,200,500", lines[2])
	assert.NotContains(t, lines[2], `"`)
	assert.Equal(t, "Total,300,225,525", lines[4])
}

func TestWritePChartCSV(t *testing.T) {
	series := quality.PChartSeries{
		PBar: 0.1,
		Points: []quality.PChartPoint{
			{Bucket: "2025-01", Units: 10, Defects: 1, P: 0.1, UCL: 0.38, LCL: 0},
			{Bucket: "2025-02", Units: 0, Defects: 0, P: 0, UCL: 1, LCL: 0},
		},
	}

	var buf strings.Builder
	require.NoError(t, WritePChartCSV(&buf, series))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "period,units,defects,p,ucl,lcl", lines[0])
	assert.Equal(t, "2025-01,10,1,0.1,0.38,0", lines[1])
	assert.Equal(t, "2025-02,0,0,0,1,0", lines[2])
}

func TestWriteXmRCSV(t *testing.T) {
	series := quality.BuildXmR([]string{"2025-01", "2025-02", "2025-03"}, []float64{10, 12, 8})

	var buf strings.Builder
	require.NoError(t, WriteXmRCSV(&buf, series))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "period,value,moving_range,x_ucl,x_lcl,signal", lines[0])

	// First observation has no moving range.
	first := strings.Split(lines[1], ",")
	assert.Equal(t, "", first[2])
	second := strings.Split(lines[2], ",")
	assert.Equal(t, "2", second[2])
}
