package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/daily-verse-api/internal/verse"
)

var (
	flagStart     string
	flagDays      int
	flagOut       string
	flagOverwrite bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Pre-generate selections for a date range and export them to CSV",
	Long: `Schedule resolves a verse for each date in the range and writes the full
selection table (ordered by date) to the output CSV with columns
date,reference,kjv.

Dates that already have a selection are kept unless --overwrite is given,
in which case selections inside the range are discarded and recomputed in
date order. If the corpus runs out mid-range the remaining dates are left
unscheduled and reported.

Example:
  versectl schedule --start 2025-01-01 --days 30 --out data/schedule.csv`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&flagStart, "start", "", "start date YYYY-MM-DD (required)")
	scheduleCmd.Flags().IntVar(&flagDays, "days", 0, "number of days to schedule (required)")
	scheduleCmd.Flags().StringVar(&flagOut, "out", "", "output CSV path (required)")
	scheduleCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "recompute existing selections in range")
	_ = scheduleCmd.MarkFlagRequired("start")
	_ = scheduleCmd.MarkFlagRequired("days")
	_ = scheduleCmd.MarkFlagRequired("out")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	start, err := time.Parse("2006-01-02", flagStart)
	if err != nil {
		return fmt.Errorf("invalid --start %q (expected YYYY-MM-DD)", flagStart)
	}

	repo, db, cfg, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	selector := verse.NewSelector(repo, cfg.SelectorSeed)

	report, err := selector.ScheduleRange(ctx, start, flagDays, flagOverwrite)
	if err != nil {
		if !errors.Is(err, verse.ErrExhausted) {
			return err
		}
		fmt.Fprintf(os.Stderr, "corpus exhausted: scheduled %d of %d days\n",
			report.Scheduled, report.Scheduled+report.Failed)
	} else {
		fmt.Printf("Scheduled %d days.\n", report.Scheduled)
	}

	if err := exportCSV(ctx, repo, flagOut); err != nil {
		return err
	}
	fmt.Printf("Schedule written to %s\n", flagOut)
	return nil
}

// exportCSV dumps every selection ordered by date, matching the
// date,reference,kjv layout the API uses.
func exportCSV(ctx context.Context, repo verse.Repository, path string) error {
	selections, err := repo.SelectionsByDateAsc(ctx)
	if err != nil {
		return fmt.Errorf("read schedule: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "reference", "kjv"}); err != nil {
		f.Close()
		return err
	}
	for _, s := range selections {
		row := []string{s.Date.Format("2006-01-02"), s.Verse.Ref(), s.Verse.TextKJV}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
