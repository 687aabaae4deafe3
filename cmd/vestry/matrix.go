package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/parishworks/vestry/internal/cli"
	"github.com/parishworks/vestry/internal/matrix"
	"github.com/parishworks/vestry/internal/model"
	"github.com/parishworks/vestry/internal/report"
)

func matrixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Category-by-month receipt matrix",
		Long: `Aggregate journal lines into the configured categories, one column
per month. Unmatched lines are grouped under "Other" when requested.`,
		RunE: runMatrix,
	}

	addRangeFlags(cmd)
	addMatrixFlags(cmd)
	cmd.Flags().String("format", "table", "output format (table, csv)")

	return cmd
}

// addMatrixFlags registers the matrix-shaping flags shared with the
// forecast commands.
func addMatrixFlags(cmd *cobra.Command) {
	cmd.Flags().String("domain", "expense", "ledger domain (expense, revenue, all)")
	cmd.Flags().Bool("unmapped", true, "include an Other row for unmatched lines")
	cmd.Flags().Bool("children", false, "break categories down into per-account child rows")
}

// buildMatrixForRange loads the dataset for the range and aggregates it
// per the shared matrix flags.
func buildMatrixForRange(cmd *cobra.Command, from, to time.Time) (model.ReceiptMatrix, error) {
	domain, err := parseDomain(flagString(cmd, "domain"))
	if err != nil {
		return model.ReceiptMatrix{}, err
	}
	rules, err := categoryRules()
	if err != nil {
		return model.ReceiptMatrix{}, err
	}

	dataset, err := loadDataset(cmd.Context(), from, to)
	if err != nil {
		return model.ReceiptMatrix{}, err
	}

	includeUnmapped, _ := cmd.Flags().GetBool("unmapped")
	children, _ := cmd.Flags().GetBool("children")

	return matrix.Build(dataset.Entries, dataset.Accounts, matrix.BuildOptions{
		From:            from,
		To:              to,
		Rules:           rules,
		Domain:          domain,
		IncludeUnmapped: includeUnmapped,
		AccountChildren: children,
	}), nil
}

func runMatrix(cmd *cobra.Command, _ []string) error {
	from, to, err := parseRange(cmd)
	if err != nil {
		return err
	}

	m, err := buildMatrixForRange(cmd, from, to)
	if err != nil {
		return err
	}

	if flagString(cmd, "format") == "csv" {
		return report.WriteMatrixCSV(os.Stdout, &m)
	}

	fmt.Println(cli.FormatTitle("Receipts by Category"))
	printMatrix(&m)
	return nil
}

// printMatrix renders a matrix as a table with child rows indented and a
// trailing totals row.
func printMatrix(m *model.ReceiptMatrix) {
	headers := append([]string{"Category"}, m.Months...)
	headers = append(headers, "Total")
	table := &cli.Table{Headers: headers}

	for _, row := range m.Rows {
		table.AddRow(matrixCells(row.Label, row.Values, row.Total)...)
		for _, child := range row.Children {
			table.AddRow(matrixCells("  "+child.Label, child.Values, child.Total)...)
		}
	}
	table.AddRow(matrixCells("Total", m.ColTotals, m.GrandTotal)...)
	fmt.Print(table.Render())
}

func matrixCells(label string, values []float64, total float64) []string {
	cells := make([]string, 0, len(values)+2)
	cells = append(cells, label)
	for _, v := range values {
		cells = append(cells, cli.Money(v))
	}
	return append(cells, cli.Money(total))
}
