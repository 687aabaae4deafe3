package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parishworks/vestry/internal/cli"
	"github.com/parishworks/vestry/internal/common"
	"github.com/parishworks/vestry/internal/forecast"
	"github.com/parishworks/vestry/internal/report"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a budget from actuals",
		Long: `Project next-period budget values from the actuals matrix.

Every cell is scaled by the global uplift, its category uplift, the
month's seasonality factor, and inflation, with optional rounding and
month-over-month compounding. With --target, the global uplift is
solved so the projected grand total hits the target instead.`,
		RunE: runProject,
	}

	addRangeFlags(cmd)
	addMatrixFlags(cmd)
	addProjectionFlags(cmd)
	cmd.Flags().Float64("target", 0, "solve the global uplift for this grand total")
	cmd.Flags().String("format", "table", "output format (table, csv)")

	return cmd
}

// addProjectionFlags registers the projection tuning flags, shared with
// the variance command.
func addProjectionFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("global-pct", 0, "global uplift, e.g. 0.05 for +5%")
	cmd.Flags().Float64("inflation-pct", 0, "inflation applied after category uplifts")
	cmd.Flags().StringSlice("category-pct", nil, "per-category uplift as key=pct, e.g. utilities=0.1")
	cmd.Flags().Float64Slice("monthly-factors", nil, "seasonality multipliers, one per month")
	cmd.Flags().Float64("round-to", 0, "round projected cells to 10, 100, or 1000")
	cmd.Flags().Bool("compound", false, "chain each month off the previous projected value")
}

// projectionOptions reads the tuning flags into a ProjectionOptions.
func projectionOptions(cmd *cobra.Command) (forecast.ProjectionOptions, error) {
	globalPct, _ := cmd.Flags().GetFloat64("global-pct")
	inflationPct, _ := cmd.Flags().GetFloat64("inflation-pct")
	monthlyFactors, _ := cmd.Flags().GetFloat64Slice("monthly-factors")
	roundTo, _ := cmd.Flags().GetFloat64("round-to")
	compound, _ := cmd.Flags().GetBool("compound")

	categoryPcts, _ := cmd.Flags().GetStringSlice("category-pct")
	perCategory := make(map[string]float64, len(categoryPcts))
	for _, pair := range categoryPcts {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return forecast.ProjectionOptions{}, common.NewUserError(
				fmt.Sprintf("Invalid --category-pct value %q; expected key=pct.", pair),
				common.ErrInvalidConfig)
		}
		pct, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return forecast.ProjectionOptions{}, common.NewUserError(
				fmt.Sprintf("Invalid --category-pct value %q: %v.", pair, err),
				common.ErrInvalidConfig)
		}
		perCategory[key] = pct
	}

	return forecast.ProjectionOptions{
		PerCategoryPct: perCategory,
		MonthlyFactors: monthlyFactors,
		GlobalPct:      globalPct,
		InflationPct:   inflationPct,
		RoundTo:        roundTo,
		Compound:       compound,
	}, nil
}

func runProject(cmd *cobra.Command, _ []string) error {
	from, to, err := parseRange(cmd)
	if err != nil {
		return err
	}

	actuals, err := buildMatrixForRange(cmd, from, to)
	if err != nil {
		return err
	}

	opts, err := projectionOptions(cmd)
	if err != nil {
		return err
	}

	if target, _ := cmd.Flags().GetFloat64("target"); target != 0 {
		pct, ok := forecast.SeekGlobalPct(actuals, opts, target)
		if !ok {
			return common.NewUserError(
				fmt.Sprintf("No global uplift in [-50%%, +200%%] reaches a grand total of %s.", cli.Money(target)),
				common.ErrInvalidConfig)
		}
		opts.GlobalPct = pct
		fmt.Println(cli.FormatInfo(fmt.Sprintf("solved global uplift: %s", cli.Percent(pct))))
	}

	projected := forecast.Project(actuals, opts)

	if flagString(cmd, "format") == "csv" {
		return report.WriteMatrixCSV(os.Stdout, &projected)
	}

	fmt.Println(cli.FormatTitle("Projected Budget"))
	printMatrix(&projected)
	return nil
}
