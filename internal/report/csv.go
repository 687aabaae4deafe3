// Package report renders analysis results as CSV for download or piping
// into a spreadsheet.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/parishworks/vestry/internal/model"
	"github.com/parishworks/vestry/internal/quality"
)

// WriteParetoCSV writes a ranked Pareto series with the cumulative overlay.
// Columns match the category,count,pct,cum_pct layout reporting tools expect.
func WriteParetoCSV(w io.Writer, points []quality.ParetoPoint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"category", "value", "pct", "cum_pct"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, point := range points {
		record := []string{
			point.Label,
			formatFloat(point.Value),
			formatFloat(point.Share),
			formatFloat(point.CumPct),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %q: %w", point.Label, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMatrixCSV writes a category-by-month matrix. Child rows carry a
// "- " prefix under their parent so labels survive CSV unquoted; a final
// Total row carries the column totals.
func WriteMatrixCSV(w io.Writer, matrix *model.ReceiptMatrix) error {
	cw := csv.NewWriter(w)

	header := append([]string{"category"}, matrix.Months...)
	header = append(header, "total")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range matrix.Rows {
		if err := cw.Write(matrixRecord(row.Label, row.Values, row.Total)); err != nil {
			return fmt.Errorf("failed to write row %q: %w", row.Key, err)
		}
		for _, child := range row.Children {
			if err := cw.Write(matrixRecord("- "+child.Label, child.Values, child.Total)); err != nil {
				return fmt.Errorf("failed to write row %q: %w", child.Key, err)
			}
		}
	}

	if err := cw.Write(matrixRecord("Total", matrix.ColTotals, matrix.GrandTotal)); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// WritePChartCSV writes one row per bucket with the control limits.
func WritePChartCSV(w io.Writer, series quality.PChartSeries) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"period", "units", "defects", "p", "ucl", "lcl"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, point := range series.Points {
		record := []string{
			point.Bucket,
			strconv.Itoa(point.Units),
			strconv.Itoa(point.Defects),
			formatFloat(point.P),
			formatFloat(point.UCL),
			formatFloat(point.LCL),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %q: %w", point.Bucket, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXmRCSV writes one row per bucket with the individuals and moving
// ranges alongside the chart limits.
func WriteXmRCSV(w io.Writer, series quality.XmRSeries) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"period", "value", "moving_range", "x_ucl", "x_lcl", "signal"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, point := range series.Points {
		mr := ""
		if i > 0 {
			mr = formatFloat(point.MovingRange)
		}
		record := []string{
			point.Bucket,
			formatFloat(point.Value),
			mr,
			formatFloat(series.XUCL),
			formatFloat(series.XLCL),
			strconv.FormatBool(point.OutOfControl),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %q: %w", point.Bucket, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func matrixRecord(label string, cells []float64, total float64) []string {
	record := make([]string, 0, len(cells)+2)
	record = append(record, label)
	for _, cell := range cells {
		record = append(record, formatFloat(cell))
	}
	return append(record, formatFloat(total))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
