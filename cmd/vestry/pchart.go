package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/parishworks/vestry/internal/cli"
	"github.com/parishworks/vestry/internal/facts"
	"github.com/parishworks/vestry/internal/quality"
	"github.com/parishworks/vestry/internal/report"
)

func pchartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pchart",
		Short: "Defect-rate control chart",
		Long: `Build a p-chart of the defective-entry proportion per period.

Each journal entry in the range is one unit; units are defective when
they breach the unposted SLA, originate from a reversal, or fall in a
reopened month. Control limits vary with the per-period unit count.`,
		RunE: runPChart,
	}

	addRangeFlags(cmd)
	addDefectFlags(cmd)
	cmd.Flags().String("grain", "month", "bucket grain (day, week, month)")
	cmd.Flags().String("domain", "all", "ledger domain (expense, revenue, all)")
	cmd.Flags().String("format", "table", "output format (table, csv)")

	return cmd
}

func runPChart(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	from, to, err := parseRange(cmd)
	if err != nil {
		return err
	}
	grain, err := parseGrain(flagString(cmd, "grain"))
	if err != nil {
		return err
	}
	domain, err := parseDomain(flagString(cmd, "domain"))
	if err != nil {
		return err
	}

	dataset, err := loadDataset(ctx, from, to)
	if err != nil {
		return err
	}

	factSet := facts.Build(dataset.Entries, dataset.Accounts, facts.BuildOptions{
		From:   from,
		To:     to,
		Domain: domain,
		Grain:  grain,
	})

	classifier := defectClassifier(cmd, dataset.Locks)
	series := quality.BuildPChart(factSet.Units, factSet.Buckets, classifier)

	if flagString(cmd, "format") == "csv" {
		return report.WritePChartCSV(os.Stdout, series)
	}

	fmt.Println(cli.FormatTitle("Defect Rate by Period"))
	fmt.Println(cli.SubtitleStyle.Render("mean p = " + cli.Percent(series.PBar)))

	table := &cli.Table{Headers: []string{"Period", "Units", "Defects", "p", "UCL", "LCL", ""}}
	for _, point := range series.Points {
		flag := ""
		if point.Units > 0 && (point.P > point.UCL || point.P < point.LCL) {
			flag = cli.WarningIcon
		}
		table.AddRow(point.Bucket,
			strconv.Itoa(point.Units),
			strconv.Itoa(point.Defects),
			cli.Percent(point.P),
			cli.Percent(point.UCL),
			cli.Percent(point.LCL),
			flag)
	}
	fmt.Print(table.Render())
	return nil
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
