package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/envelope-budget/envelope/internal/cli"
	"github.com/envelope-budget/envelope/internal/format"
	"github.com/envelope-budget/envelope/internal/model"
	"github.com/envelope-budget/envelope/internal/service"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long: `Transactions realize the plan: negative amounts leave the account,
positive amounts arrive. Use 'envelope import-ofx' to pull them in from
bank statements, or add them by hand here.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(payTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		categoryName string
		categoryType string
		dateFlag     string
		upcoming     bool
		savingsUsed  float64
	)

	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Add a transaction by hand",
		Long: `Adds a manual transaction. The amount is signed: negative for money
leaving the account, positive for money arriving. Use --savings-used
when part of an expense was covered from a savings envelope.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseSignedAmount(args[1])
			if err != nil {
				return err
			}

			date := time.Now()
			if dateFlag != "" {
				date, err = time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateFlag, err)
				}
			}
			date = model.DateOnly(date)

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn := model.Transaction{
				ID:          fmt.Sprintf("manual-%d", time.Now().UnixNano()),
				Date:        date,
				Description: args[0],
				Amount:      amount,
				Status:      model.StatusPaid,
				SourceType:  model.SourceManual,
			}
			if upcoming {
				txn.Status = model.StatusUpcoming
			}

			if categoryName != "" {
				typ, err := parseCategoryType(categoryType)
				if err != nil {
					return err
				}
				cat, err := requireCategory(ctx, store, categoryName, typ)
				if err != nil {
					return err
				}
				txn.Category = cat.Name
				txn.CategoryID = cat.ID
			}

			if cmd.Flags().Changed("savings-used") {
				if savingsUsed < 0 {
					return fmt.Errorf("savings-used must not be negative")
				}
				txn.SavingsAmountUsed = &savingsUsed
			}

			txn.Hash = txn.GenerateHash()

			if err := store.SaveTransactions(ctx, []model.Transaction{txn}); err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}

			rendered := format.SignedCurrency(txn.Amount, "$")
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added transaction %q %s on %s",
				txn.Description, cli.FormatAmount(rendered, txn.Amount), format.Date(txn.Date))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "Category name")
	cmd.Flags().StringVarP(&categoryType, "category-type", "t", "expense", "Category type the name resolves in (income, expense, saving)")
	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Transaction date (YYYY-MM-DD, default: today)")
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "Record as upcoming instead of paid")
	cmd.Flags().Float64Var(&savingsUsed, "savings-used", 0, "Portion of the amount covered from savings")

	return cmd
}

func listTxCmd() *cobra.Command {
	var (
		month  string
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var txns []model.Transaction
			if month != "" {
				monthKey, err := resolveMonth(month)
				if err != nil {
					return err
				}
				txns, err = store.GetTransactionsByMonth(ctx, monthKey)
				if err != nil {
					return fmt.Errorf("failed to get transactions: %w", err)
				}
			} else {
				filter := service.TransactionFilter{Limit: limit}
				if status != "" {
					filter.Status = model.TransactionStatus(status)
				}
				txns, err = store.GetTransactions(ctx, filter)
				if err != nil {
					return fmt.Errorf("failed to get transactions: %w", err)
				}
			}

			if len(txns) == 0 {
				fmt.Println(cli.FormatInfo("No transactions found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tDate\tDescription\tCategory\tAmount\tStatus\n")
			for _, txn := range txns {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					txn.ID, format.Date(txn.Date), txn.Description, txn.Category,
					cli.FormatAmount(format.SignedCurrency(txn.Amount, "$"), txn.Amount),
					string(txn.Status))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Only transactions dated within this month (YYYY-MM)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (upcoming, paid)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of transactions to show")

	return cmd
}

func payTxCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark a transaction as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			status := model.StatusPaid
			if undo {
				status = model.StatusUpcoming
			}

			if err := store.SetTransactionStatus(ctx, args[0], status); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Marked transaction %s as %s", args[0], status)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark as upcoming instead")
	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteTransaction(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %s", args[0])))
			return nil
		},
	}
}

// parseSignedAmount parses a decimal amount keeping its sign.
func parseSignedAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount, nil
}
