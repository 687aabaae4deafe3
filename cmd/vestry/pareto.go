package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parishworks/vestry/internal/cli"
	"github.com/parishworks/vestry/internal/common"
	"github.com/parishworks/vestry/internal/facts"
	"github.com/parishworks/vestry/internal/matrix"
	"github.com/parishworks/vestry/internal/quality"
	"github.com/parishworks/vestry/internal/report"
)

func paretoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pareto",
		Short: "Pareto breakdown of amounts or defects",
		Long: `Rank where the money (or the defects) concentrate.

--by account ranks accounts by signed amount, --by category ranks the
configured matrix categories, --by defects ranks defect types by count.
The tail is grouped into an "Others" bucket.`,
		RunE: runPareto,
	}

	addRangeFlags(cmd)
	addDefectFlags(cmd)
	cmd.Flags().String("by", "account", "ranking dimension (account, category, defects)")
	cmd.Flags().String("domain", "expense", "ledger domain (expense, revenue, all)")
	cmd.Flags().Int("top", 10, "ranked items to keep before grouping the tail")
	cmd.Flags().Float64("min-share", 0, "also keep items at or above this share of the total")
	cmd.Flags().String("format", "table", "output format (table, csv)")

	return cmd
}

func runPareto(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	from, to, err := parseRange(cmd)
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
		Grain:  "month",
	})

	var items []quality.ParetoItem
	by := flagString(cmd, "by")
	switch by {
	case "account":
		totals := make(map[string]float64)
		var order []string
		for _, line := range factSet.Lines {
			label := line.AccountName
			if label == "" {
				label = line.AccountCode
			}
			if _, seen := totals[label]; !seen {
				order = append(order, label)
			}
			totals[label] += line.Amount
		}
		for _, label := range order {
			items = append(items, quality.ParetoItem{Label: label, Value: totals[label]})
		}
	case "category":
		rules, rulesErr := categoryRules()
		if rulesErr != nil {
			return rulesErr
		}
		m := matrix.BuildFromLines(factSet.Lines, matrix.BuildOptions{
			From:            from,
			To:              to,
			Rules:           rules,
			Domain:          domain,
			IncludeUnmapped: true,
		})
		for _, row := range m.Rows {
			items = append(items, quality.ParetoItem{Label: row.Label, Value: row.Total})
		}
	case "defects":
		classifier := defectClassifier(cmd, dataset.Locks)
		tally := classifier.Tally(factSet.Units)
		for defectType, count := range tally.ByType {
			items = append(items, quality.ParetoItem{Label: string(defectType), Value: float64(count)})
		}
	default:
		return common.NewUserError(
			fmt.Sprintf("Unknown --by value %q. Use account, category, or defects.", by),
			common.ErrInvalidConfig)
	}

	topN, _ := cmd.Flags().GetInt("top")
	minShare, _ := cmd.Flags().GetFloat64("min-share")
	points := quality.BuildPareto(items, quality.ParetoOptions{
		TopN:        topN,
		MinShare:    minShare,
		GroupOthers: true,
	})

	if flagString(cmd, "format") == "csv" {
		return report.WriteParetoCSV(os.Stdout, points)
	}

	fmt.Println(cli.FormatTitle("Pareto Breakdown"))
	if len(points) == 0 {
		fmt.Println(cli.FormatInfo("No data in range"))
		return nil
	}

	table := &cli.Table{Headers: []string{"Rank", "Label", "Value", "Share", "Cum %"}}
	for i, point := range points {
		table.AddRow(fmt.Sprintf("%d", i+1), point.Label,
			cli.Money(point.Value), cli.Percent(point.Share), cli.Percent(point.CumPct))
	}
	fmt.Print(table.Render())
	return nil
}
