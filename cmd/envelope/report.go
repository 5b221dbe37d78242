package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/envelope-budget/envelope/internal/cli"
	"github.com/envelope-budget/envelope/internal/format"
	"github.com/envelope-budget/envelope/internal/report"
)

func reportCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the monthly summary",
		Long: `Derives the month's cash-flow picture: money still free to assign,
the realized bank position, spending per category against its budget,
and the running savings balances.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			monthKey, err := resolveMonth(month)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary, err := report.NewBuilder(store, nil).Build(ctx, monthKey)
			if err != nil {
				return fmt.Errorf("failed to build summary: %w", err)
			}

			renderSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM, default: current)")
	return cmd
}

func renderSummary(summary *report.MonthlySummary) {
	fmt.Println(cli.FormatTitle(format.MonthLabel(summary.Month)))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Money to assign\t%s\n",
		cli.FormatAmount(format.Currency(summary.MoneyToAssign, "$"), summary.MoneyToAssign))
	fmt.Fprintf(w, "Actual in bank\t%s\n",
		cli.FormatAmount(format.Currency(summary.ActualInBank, "$"), summary.ActualInBank))
	fmt.Fprintf(w, "Total savings\t%s\n", format.Currency(summary.TotalSavings, "$"))
	_ = w.Flush()

	if len(summary.Budgets) > 0 {
		fmt.Println()
		fmt.Println(cli.StyleTitle(cli.ChartIcon + " Budgets"))
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Category\tAllocated\tSpent\tRemaining\n")
		for _, line := range summary.Budgets {
			remaining := line.Allocated - line.Spent
			rendered := format.Currency(remaining, "$")
			if remaining < 0 {
				rendered = cli.StyleError(rendered)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				line.Category,
				format.Currency(line.Allocated, "$"),
				format.Currency(line.Spent, "$"),
				rendered)
		}
		_ = w.Flush()
	}

	// Spending outside any budget still deserves a line.
	budgeted := make(map[string]bool, len(summary.Budgets))
	for _, line := range summary.Budgets {
		budgeted[line.Category] = true
	}
	var unbudgeted []string
	for category := range summary.SpentByCategory {
		if !budgeted[category] {
			unbudgeted = append(unbudgeted, category)
		}
	}
	if len(unbudgeted) > 0 {
		sort.Strings(unbudgeted)
		fmt.Println()
		fmt.Println(cli.StyleTitle("Unbudgeted spending"))
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, category := range unbudgeted {
			label := category
			if strings.TrimSpace(label) == "" {
				label = cli.StyleSubtle("(uncategorized)")
			}
			fmt.Fprintf(w, "%s\t%s\n", label, format.Currency(summary.SpentByCategory[category], "$"))
		}
		_ = w.Flush()
	}

	if len(summary.SavingsBalances) > 0 {
		fmt.Println()
		fmt.Println(cli.StyleTitle(cli.SavingsIcon + " Savings balances"))
		categories := make([]string, 0, len(summary.SavingsBalances))
		for category := range summary.SavingsBalances {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, category := range categories {
			fmt.Fprintf(w, "%s\t%s\n", category, format.Currency(summary.SavingsBalances[category], "$"))
		}
		_ = w.Flush()
	}
}
