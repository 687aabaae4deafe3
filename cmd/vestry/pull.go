package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parishworks/vestry/internal/cli"
)

func pullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch ledger data and cache it locally",
		Long: `Fetch journal entries, the chart of accounts, and period-lock status
for a date range, and cache them as the offline snapshot.

Subsequent analysis commands can run against the cache with --offline.`,
		RunE: runPull,
	}

	addRangeFlags(cmd)
	return cmd
}

func runPull(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	from, to, err := parseRange(cmd)
	if err != nil {
		return err
	}

	// pull always goes to the API, even under a persistent --offline.
	viper.Set("ledger.offline", false)

	dataset, err := loadDataset(ctx, from, to)
	if err != nil {
		return err
	}

	slog.Info(cli.FormatSuccess("Snapshot updated"),
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"),
		"entries", len(dataset.Entries),
		"accounts", len(dataset.Accounts),
		"locks", len(dataset.Locks))
	return nil
}
