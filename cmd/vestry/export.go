package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/parishworks/vestry/internal/cli"
	"github.com/parishworks/vestry/internal/config"
	"github.com/parishworks/vestry/internal/facts"
	"github.com/parishworks/vestry/internal/matrix"
	"github.com/parishworks/vestry/internal/quality"
	"github.com/parishworks/vestry/internal/service"
	"github.com/parishworks/vestry/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the quality report to Google Sheets",
		Long: `Build the full report for the range (capability summary, p-chart,
Pareto, receipt matrix) and write it to a Google Sheets spreadsheet.

Run 'vestry auth sheets' first to set up credentials.`,
		RunE: runExport,
	}

	addRangeFlags(cmd)
	addMatrixFlags(cmd)
	addDefectFlags(cmd)
	cmd.Flags().Int("opportunities", 1, "defect opportunities per journal entry")
	cmd.Flags().Int("top", 10, "Pareto items to keep before grouping the tail")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	from, to, err := parseRange(cmd)
	if err != nil {
		return err
	}
	domain, err := parseDomain(flagString(cmd, "domain"))
	if err != nil {
		return err
	}
	rules, err := categoryRules()
	if err != nil {
		return err
	}

	sheetsConfig, err := config.LoadSheetsConfig()
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

	classifier := defectClassifier(cmd, dataset.Locks)
	tally := classifier.Tally(factSet.Units)
	opportunities, _ := cmd.Flags().GetInt("opportunities")
	sigma := quality.BuildSigmaSummary(tally.Units, opportunities, tally.Defects)
	pchart := quality.BuildPChart(factSet.Units, factSet.Buckets, classifier)

	includeUnmapped, _ := cmd.Flags().GetBool("unmapped")
	children, _ := cmd.Flags().GetBool("children")
	m := matrix.BuildFromLines(factSet.Lines, matrix.BuildOptions{
		From:            from,
		To:              to,
		Rules:           rules,
		Domain:          domain,
		IncludeUnmapped: includeUnmapped,
		AccountChildren: children,
	})

	items := make([]quality.ParetoItem, 0, len(m.Rows))
	for _, row := range m.Rows {
		items = append(items, quality.ParetoItem{Label: row.Label, Value: row.Total})
	}
	topN, _ := cmd.Flags().GetInt("top")
	pareto := quality.BuildPareto(items, quality.ParetoOptions{TopN: topN, GroupOthers: true})

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	err = writer.Write(ctx, &sheets.QualityReport{
		Range:  service.DateRange{Start: from, End: to},
		Matrix: &m,
		Pareto: pareto,
		PChart: &pchart,
		Sigma:  &sigma,
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Report exported to Google Sheets"))
	return nil
}
