package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/crisissim/internal/persistence"
	"github.com/talgya/crisissim/internal/report"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded runs, or print the report of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Path == "" {
		return errors.New("run history is disabled (set database.path or CRISISSIM_DB_PATH)")
	}

	db, err := persistence.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		run, err := db.GetRun(args[0])
		if err != nil {
			return err
		}
		cycles, err := db.Cycles(run.ID)
		if err != nil {
			return fmt.Errorf("load cycles: %w", err)
		}
		return report.Render(out, cycles, run.Periods)
	}

	runs, err := db.Runs(historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tCYCLES\tSOURCE\tSEED\tPOPULATION")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%s\n",
			r.ID, humanize.Time(r.StartedAt), r.Cycles, r.Source, r.Seed, humanize.Comma(r.TotalPopulation))
	}
	return tw.Flush()
}
