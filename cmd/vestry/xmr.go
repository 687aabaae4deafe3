package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parishworks/vestry/internal/cli"
	"github.com/parishworks/vestry/internal/facts"
	"github.com/parishworks/vestry/internal/quality"
	"github.com/parishworks/vestry/internal/report"
)

func xmrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xmr",
		Short: "Individuals/moving-range chart of period totals",
		Long: `Build an X-mR control chart over the signed amount total of each
period. Useful for spotting unusual swings in giving or spending.`,
		RunE: runXmR,
	}

	addRangeFlags(cmd)
	cmd.Flags().String("grain", "month", "bucket grain (day, week, month)")
	cmd.Flags().String("domain", "expense", "ledger domain (expense, revenue, all)")
	cmd.Flags().String("format", "table", "output format (table, csv)")

	return cmd
}

func runXmR(cmd *cobra.Command, _ []string) error {
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

	totals := make(map[string]float64, len(factSet.Buckets))
	for _, line := range factSet.Lines {
		totals[line.Bucket] += line.Amount
	}
	values := make([]float64, len(factSet.Buckets))
	for i, bucket := range factSet.Buckets {
		values[i] = totals[bucket]
	}

	series := quality.BuildXmR(factSet.Buckets, values)

	if flagString(cmd, "format") == "csv" {
		return report.WriteXmRCSV(os.Stdout, series)
	}

	fmt.Println(cli.FormatTitle("Period Totals (X-mR)"))
	fmt.Println(cli.SubtitleStyle.Render(fmt.Sprintf("mean %s, limits %s to %s",
		cli.Money(series.Mean), cli.Money(series.XLCL), cli.Money(series.XUCL))))

	table := &cli.Table{Headers: []string{"Period", "Value", "MR", ""}}
	for i, point := range series.Points {
		mr := ""
		if i > 0 {
			mr = cli.Money(point.MovingRange)
		}
		flag := ""
		if point.OutOfControl {
			flag = cli.WarningIcon
		}
		table.AddRow(point.Bucket, cli.Money(point.Value), mr, flag)
	}
	fmt.Print(table.Render())

	if len(series.Signals) > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d out-of-control point(s)", len(series.Signals))))
	}
	return nil
}
