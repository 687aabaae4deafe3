package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/parishworks/vestry/internal/cli"
	"github.com/parishworks/vestry/internal/facts"
	"github.com/parishworks/vestry/internal/model"
	"github.com/parishworks/vestry/internal/quality"
)

func sigmaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sigma",
		Short: "Six Sigma capability summary",
		Long: `Summarize the bookkeeping process capability over the range: DPU,
DPMO, first-pass yield, and short/long-term sigma levels.`,
		RunE: runSigma,
	}

	addRangeFlags(cmd)
	addDefectFlags(cmd)
	cmd.Flags().Int("opportunities", 1, "defect opportunities per journal entry")
	cmd.Flags().String("domain", "all", "ledger domain (expense, revenue, all)")

	return cmd
}

func runSigma(cmd *cobra.Command, _ []string) error {
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

	classifier := defectClassifier(cmd, dataset.Locks)
	tally := classifier.Tally(factSet.Units)

	opportunities, _ := cmd.Flags().GetInt("opportunities")
	summary := quality.BuildSigmaSummary(tally.Units, opportunities, tally.Defects)

	content := fmt.Sprintf(`Units:            %d
Opportunities:    %d
Defects:          %d
DPU:              %.4f
DPMO:             %.0f
First-pass yield: %s
Sigma (short):    %.2f
Sigma (long):     %.2f`,
		summary.Units, summary.Opportunities, summary.Defects,
		summary.DPU, summary.DPMO, cli.Percent(summary.FPY),
		summary.SigmaShort, summary.SigmaLong)

	period := from.Format("2006-01-02") + " to " + to.Format("2006-01-02")
	fmt.Println(cli.RenderBox("Process Capability "+period, content))

	if tally.Defects > 0 {
		table := &cli.Table{Headers: []string{"Defect Type", "Count"}}
		for _, defectType := range []model.DefectType{model.DefectUnpostedSLA, model.DefectReversal, model.DefectReopenedMonth} {
			if count := tally.ByType[defectType]; count > 0 {
				table.AddRow(string(defectType), strconv.Itoa(count))
			}
		}
		fmt.Print(table.Render())
	}
	return nil
}
