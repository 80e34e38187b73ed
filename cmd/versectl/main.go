// Package main provides versectl, the operator CLI for the daily verse
// corpus and schedule.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/daily-verse-api/internal/database"
	"github.com/taiwoajasa245/daily-verse-api/internal/verse"
	"github.com/taiwoajasa245/daily-verse-api/pkg/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "versectl",
	Short: "Operator tooling for the daily verse corpus and schedule",
	Long: `versectl manages the verse-of-the-day database outside the API server:
bulk-loading the corpus from CSV, pre-generating a schedule of selections,
and resetting selection history after exhaustion.`,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(resetHistoryCmd)
}

// openRepo connects to the database, applies the schema, and returns the
// verse repository. The caller owns closing the returned service.
func openRepo(ctx context.Context) (verse.Repository, database.Service, *config.Config, error) {
	cfg := config.LoadConfig()
	db := database.New(cfg)

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("schema migration failed: %w", err)
	}
	return verse.NewRepository(db), db, cfg, nil
}
