package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/parishworks/vestry/internal/cli"
	"github.com/parishworks/vestry/internal/common"
	"github.com/parishworks/vestry/internal/forecast"
)

func varianceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variance",
		Short: "Compare actuals against a projected budget",
		Long: `Project a budget from a baseline period, then diff the actual
period against it cell by cell (delta = actual − budget).`,
		RunE: runVariance,
	}

	addRangeFlags(cmd)
	addMatrixFlags(cmd)
	addProjectionFlags(cmd)
	cmd.Flags().String("baseline-from", "", "baseline range start (2006-01-02 or 2006-01)")
	cmd.Flags().String("baseline-to", "", "baseline range end (2006-01-02 or 2006-01)")

	return cmd
}

func runVariance(cmd *cobra.Command, _ []string) error {
	from, to, err := parseRange(cmd)
	if err != nil {
		return err
	}
	baselineFrom, baselineTo, err := parseBaselineRange(cmd, from, to)
	if err != nil {
		return err
	}

	baseline, err := buildMatrixForRange(cmd, baselineFrom, baselineTo)
	if err != nil {
		return err
	}

	opts, err := projectionOptions(cmd)
	if err != nil {
		return err
	}
	budget := forecast.Project(baseline, opts)

	actuals, err := buildMatrixForRange(cmd, from, to)
	if err != nil {
		return err
	}

	// Budget months carry the baseline's labels; align them to the actual
	// months positionally so cells compare month-over-month.
	if len(budget.Months) == len(actuals.Months) {
		budget.Months = actuals.Months
	}

	variance := forecast.Compare(budget, actuals)

	fmt.Println(cli.FormatTitle("Budget Variance"))
	headers := append([]string{"Category"}, variance.Months...)
	headers = append(headers, "Delta", "Pct")
	table := &cli.Table{Headers: headers}

	for _, row := range variance.Rows {
		cells := make([]string, 0, len(row.Cells)+3)
		cells = append(cells, row.Label)
		for _, cell := range row.Cells {
			cells = append(cells, cli.Money(cell.Delta))
		}
		cells = append(cells, cli.Money(row.TotalDelta), cli.Percent(row.TotalPct))
		table.AddRow(cells...)
	}

	totals := make([]string, 0, len(variance.ColDeltas)+3)
	totals = append(totals, "Total")
	for _, delta := range variance.ColDeltas {
		totals = append(totals, cli.Money(delta))
	}
	totals = append(totals, cli.Money(variance.GrandDelta), "")
	table.AddRow(totals...)

	fmt.Print(table.Render())
	return nil
}

// parseBaselineRange defaults to the same-length period immediately before
// the actual range when no explicit baseline is given.
func parseBaselineRange(cmd *cobra.Command, from, to time.Time) (time.Time, time.Time, error) {
	fromStr := flagString(cmd, "baseline-from")
	toStr := flagString(cmd, "baseline-to")

	if fromStr == "" && toStr == "" {
		span := to.Sub(from)
		return from.Add(-span - 24*time.Hour), from.AddDate(0, 0, -1), nil
	}
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, common.NewUserError(
			"Provide both --baseline-from and --baseline-to, or neither.",
			common.ErrInvalidConfig)
	}

	baselineFrom, err := parseDate(fromStr, false)
	if err != nil {
		return time.Time{}, time.Time{}, common.NewUserError(
			fmt.Sprintf("Invalid --baseline-from value %q.", fromStr), err)
	}
	baselineTo, err := parseDate(toStr, true)
	if err != nil {
		return time.Time{}, time.Time{}, common.NewUserError(
			fmt.Sprintf("Invalid --baseline-to value %q.", toStr), err)
	}
	return baselineFrom, baselineTo, nil
}
