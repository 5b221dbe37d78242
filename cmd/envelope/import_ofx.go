package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/envelope-budget/envelope/internal/cli"
	"github.com/envelope-budget/envelope/internal/format"
	"github.com/envelope-budget/envelope/internal/model"
	"github.com/envelope-budget/envelope/internal/ofx"
)

func init() {
	importOFXCmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Examples:
  # Import single file
  envelope import-ofx ~/Downloads/chase_jan_2026.qfx

  # Import multiple files
  envelope import-ofx ~/Downloads/chase_*.qfx

  # Import from multiple directories
  envelope import-ofx ~/Downloads/Chase/*.qfx ~/Downloads/Ally/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	importOFXCmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	rootCmd.AddCommand(importOFXCmd)
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	slog.Info("Importing OFX files...",
		"file_count", len(allFiles),
		"dry_run", dryRun)

	bar := progressbar.NewOptions(len(allFiles),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Parsing statements...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	var allTransactions []model.Transaction
	seenHashes := make(map[string]bool)
	fileResults := make(map[string]int)

	parser := ofx.NewParser()

	for _, filePath := range allFiles {
		f, err := os.Open(filePath) // #nosec G304
		if err != nil {
			slog.Error("Failed to open file",
				"file", filePath,
				"error", err)
			_ = bar.Add(1)
			continue
		}

		transactions, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		_ = bar.Add(1)

		if err != nil {
			slog.Error("Failed to parse OFX file",
				"file", filePath,
				"error", err)
			continue
		}

		if len(transactions) == 0 {
			slog.Warn("No transactions found in file",
				"file", filepath.Base(filePath))
			continue
		}

		// Cross-file deduplication; the database dedupes by the same
		// hash on save, this just keeps the counts honest.
		addedCount := 0
		for _, tx := range transactions {
			if !seenHashes[tx.Hash] {
				seenHashes[tx.Hash] = true
				allTransactions = append(allTransactions, tx)
				addedCount++
			}
		}

		fileResults[filepath.Base(filePath)] = addedCount
		slog.Info("Processed file",
			"file", filepath.Base(filePath),
			"transactions_found", len(transactions),
			"added", addedCount,
			"duplicates", len(transactions)-addedCount)
	}

	if len(allTransactions) == 0 {
		slog.Warn("No transactions found in any file")
		return nil
	}

	fmt.Println(cli.StyleTitle("File import summary"))
	for file, count := range fileResults {
		fmt.Printf("  - %s: %d transactions\n", file, count)
	}
	summarizeImport(allTransactions)

	if dryRun {
		fmt.Println(cli.FormatInfo("Dry run complete - no data saved"))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveTransactions(ctx, allTransactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions", len(allTransactions))))
	return nil
}

func summarizeImport(transactions []model.Transaction) {
	var oldest, newest model.Transaction
	total := 0.0

	for i, tx := range transactions {
		if i == 0 || tx.Date.Before(oldest.Date) {
			oldest = tx
		}
		if i == 0 || tx.Date.After(newest.Date) {
			newest = tx
		}
		total += tx.Amount
	}

	fmt.Printf("\nDate range: %s to %s\n", format.Date(oldest.Date), format.Date(newest.Date))
	fmt.Printf("Net amount: %s\n\n", cli.FormatAmount(format.SignedCurrency(total, "$"), total))
}
