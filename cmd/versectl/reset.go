package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var flagYes bool

var resetHistoryCmd = &cobra.Command{
	Use:   "reset-history",
	Short: "Delete all daily selections",
	Long: `Reset-history deletes every date -> verse binding, making the whole
corpus eligible again. This is the recovery path once the corpus is
exhausted; the selection engine itself never rotates or resets on its own.

Verses are untouched.`,
	RunE: runResetHistory,
}

func init() {
	resetHistoryCmd.Flags().BoolVar(&flagYes, "yes", false, "confirm deletion")
}

func runResetHistory(cmd *cobra.Command, args []string) error {
	if !flagYes {
		return errors.New("refusing to delete selection history without --yes")
	}

	ctx := cmd.Context()
	repo, db, _, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	deleted, err := repo.DeleteAllSelections(ctx)
	if err != nil {
		return fmt.Errorf("reset history: %w", err)
	}

	fmt.Printf("Deleted %d selections.\n", deleted)
	return nil
}
