package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/daily-verse-api/internal/verse"
)

var loadCmd = &cobra.Command{
	Use:   "load <csv>",
	Short: "Bulk-load verses from a CSV file",
	Long: `Load inserts verses from a CSV file into the corpus.

Required columns: book,chapter,verse,text_kjv (any order). Rows whose
(book, chapter, verse) identity already exists are skipped, so re-running
on the same file is safe.

Example:
  versectl load data/verses.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	repo, db, _, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	inserted, err := verse.LoadCSV(ctx, repo, f)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	fmt.Printf("Inserted %d verses.\n", inserted)
	return nil
}
