package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/parishworks/vestry/internal/cli"
	"github.com/parishworks/vestry/internal/ledger"
)

func locksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locks",
		Short: "Show period lock status",
		Long: `List the accounting period locks in the range and the months derived
as reopened (locked once, open now, or explicitly flagged).`,
		RunE: runLocks,
	}

	addRangeFlags(cmd)
	return cmd
}

func runLocks(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	from, to, err := parseRange(cmd)
	if err != nil {
		return err
	}

	dataset, err := loadDataset(ctx, from, to)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle("Period Locks"))

	table := &cli.Table{Headers: []string{"Month", "Status", "Note"}}
	for _, lock := range dataset.Locks {
		status := cli.FormatWarning("open")
		if lock.IsLocked {
			status = cli.FormatSuccess("locked")
		}
		table.AddRow(lock.Month(), status, lock.Note)
	}
	fmt.Print(table.Render())

	reopened := ledger.ReopenedMonths(dataset.Locks)
	if len(reopened) == 0 {
		fmt.Println(cli.FormatSuccess("No reopened months"))
		return nil
	}

	months := make([]string, 0, len(reopened))
	for month := range reopened {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		fmt.Println(cli.FormatWarning("Reopened: " + month))
	}
	return nil
}
