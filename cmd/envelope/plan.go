package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/envelope-budget/envelope/internal/cli"
	"github.com/envelope-budget/envelope/internal/format"
	"github.com/envelope-budget/envelope/internal/model"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage the monthly plan",
		Long: `The plan for a month has four sections: expected incomes, expected
invoices, category budgets and savings goals. Each subcommand manages
one section; 'plan rollover' copies a whole month forward.`,
	}

	cmd.AddCommand(planIncomeCmd())
	cmd.AddCommand(planInvoiceCmd())
	cmd.AddCommand(planBudgetCmd())
	cmd.AddCommand(planSavingCmd())
	cmd.AddCommand(planRolloverCmd())

	return cmd
}

func planIncomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Manage expected incomes",
	}

	var month, categoryName, notes string

	addCmd := &cobra.Command{
		Use:   "add <name> <amount>",
		Short: "Add an expected income",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			monthKey, err := resolveMonth(month)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := requireCategory(ctx, store, categoryName, model.CategoryTypeIncome)
			if err != nil {
				return err
			}

			income, err := store.SaveExpectedIncome(ctx, &model.ExpectedIncome{
				Name:       args[0],
				Category:   cat.Name,
				CategoryID: cat.ID,
				Month:      monthKey,
				Amount:     amount,
				Notes:      notes,
			})
			if err != nil {
				return fmt.Errorf("failed to save expected income: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added income %q (%s) to %s",
				income.Name, format.Currency(income.Amount, "$"), format.MonthLabel(monthKey))))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM, default: current)")
	addCmd.Flags().StringVarP(&categoryName, "category", "c", "", "Income category name")
	addCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = addCmd.MarkFlagRequired("category")

	var listMonth string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List expected incomes for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			monthKey, err := resolveMonth(listMonth)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			incomes, err := store.GetExpectedIncomes(ctx, monthKey)
			if err != nil {
				return fmt.Errorf("failed to get expected incomes: %w", err)
			}
			if len(incomes) == 0 {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("No expected incomes for %s.", format.MonthLabel(monthKey))))
				return nil
			}

			fmt.Println(cli.StyleTitle("Expected incomes " + format.MonthLabel(monthKey)))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tName\tCategory\tAmount\tPaid\n")
			for _, income := range incomes {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					income.ID, income.Name, income.Category,
					format.Currency(income.Amount, "$"), paidMark(income.IsPaid))
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVarP(&listMonth, "month", "m", "", "Month (YYYY-MM, default: current)")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(editIncomeCmd())
	cmd.AddCommand(deleteRecordCmd("income", func(cmd *cobra.Command, id int64) error {
		store, err := initStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.DeleteExpectedIncome(cmd.Context(), id)
	}))
	cmd.AddCommand(paidRecordCmd("income", func(cmd *cobra.Command, id int64, paid bool) error {
		store, err := initStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.SetExpectedIncomePaid(cmd.Context(), id, paid)
	}))

	return cmd
}

func planInvoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Manage expected invoices",
	}

	var month, categoryName, notes string

	addCmd := &cobra.Command{
		Use:   "add <name> <amount>",
		Short: "Add an expected invoice",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			monthKey, err := resolveMonth(month)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := requireCategory(ctx, store, categoryName, model.CategoryTypeExpense)
			if err != nil {
				return err
			}

			invoice, err := store.SaveExpectedInvoice(ctx, &model.ExpectedInvoice{
				Name:       args[0],
				Category:   cat.Name,
				CategoryID: cat.ID,
				Month:      monthKey,
				Amount:     amount,
				Notes:      notes,
			})
			if err != nil {
				return fmt.Errorf("failed to save expected invoice: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added invoice %q (%s) to %s",
				invoice.Name, format.Currency(invoice.Amount, "$"), format.MonthLabel(monthKey))))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM, default: current)")
	addCmd.Flags().StringVarP(&categoryName, "category", "c", "", "Expense category name")
	addCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = addCmd.MarkFlagRequired("category")

	var listMonth string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List expected invoices for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			monthKey, err := resolveMonth(listMonth)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			invoices, err := store.GetExpectedInvoices(ctx, monthKey)
			if err != nil {
				return fmt.Errorf("failed to get expected invoices: %w", err)
			}
			if len(invoices) == 0 {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("No expected invoices for %s.", format.MonthLabel(monthKey))))
				return nil
			}

			fmt.Println(cli.StyleTitle("Expected invoices " + format.MonthLabel(monthKey)))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tName\tCategory\tAmount\tPaid\n")
			for _, invoice := range invoices {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					invoice.ID, invoice.Name, invoice.Category,
					format.Currency(invoice.Amount, "$"), paidMark(invoice.IsPaid))
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVarP(&listMonth, "month", "m", "", "Month (YYYY-MM, default: current)")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(editInvoiceCmd())
	cmd.AddCommand(deleteRecordCmd("invoice", func(cmd *cobra.Command, id int64) error {
		store, err := initStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.DeleteExpectedInvoice(cmd.Context(), id)
	}))
	cmd.AddCommand(paidRecordCmd("invoice", func(cmd *cobra.Command, id int64, paid bool) error {
		store, err := initStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.SetExpectedInvoicePaid(cmd.Context(), id, paid)
	}))

	return cmd
}

func planBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage category budgets",
	}

	var month, notes string

	setCmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Allocate a budget to an expense category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			monthKey, err := resolveMonth(month)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := requireCategory(ctx, store, args[0], model.CategoryTypeExpense)
			if err != nil {
				return err
			}

			record := &model.Budget{
				Category:        cat.Name,
				CategoryID:      cat.ID,
				Month:           monthKey,
				AllocatedAmount: amount,
				Notes:           notes,
			}

			// One budget per (category, month): setting again replaces
			// the existing allocation instead of stacking a second row.
			existing, err := store.GetBudgets(ctx, monthKey)
			if err != nil {
				return fmt.Errorf("failed to get budgets: %w", err)
			}
			for i := range existing {
				if existing[i].CategoryID == cat.ID {
					record.ID = existing[i].ID
					break
				}
			}

			budget, err := store.SaveBudget(ctx, record)
			if err != nil {
				return fmt.Errorf("failed to save budget: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Budgeted %s for %q in %s",
				format.Currency(budget.AllocatedAmount, "$"), budget.Category, format.MonthLabel(monthKey))))
			return nil
		},
	}
	setCmd.Flags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM, default: current)")
	setCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	var listMonth string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			monthKey, err := resolveMonth(listMonth)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.GetBudgets(ctx, monthKey)
			if err != nil {
				return fmt.Errorf("failed to get budgets: %w", err)
			}
			if len(budgets) == 0 {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("No budgets for %s.", format.MonthLabel(monthKey))))
				return nil
			}

			fmt.Println(cli.StyleTitle("Budgets " + format.MonthLabel(monthKey)))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tCategory\tAllocated\n")
			for _, budget := range budgets {
				fmt.Fprintf(w, "%d\t%s\t%s\n",
					budget.ID, budget.Category, format.Currency(budget.AllocatedAmount, "$"))
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVarP(&listMonth, "month", "m", "", "Month (YYYY-MM, default: current)")

	cmd.AddCommand(setCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(deleteRecordCmd("budget", func(cmd *cobra.Command, id int64) error {
		store, err := initStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.DeleteBudget(cmd.Context(), id)
	}))

	return cmd
}

func planSavingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saving",
		Short: "Manage savings goals",
	}

	var (
		month, notes string
		target       float64
	)

	addCmd := &cobra.Command{
		Use:   "add <category> <amount>",
		Short: "Add a planned savings contribution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			monthKey, err := resolveMonth(month)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cat, err := requireCategory(ctx, store, args[0], model.CategoryTypeSaving)
			if err != nil {
				return err
			}

			saving := &model.ExpectedSaving{
				Category:   cat.Name,
				CategoryID: cat.ID,
				Month:      monthKey,
				Amount:     amount,
				Notes:      notes,
			}
			if cmd.Flags().Changed("target") {
				saving.Target = &target
			}

			saved, err := store.SaveExpectedSaving(ctx, saving)
			if err != nil {
				return fmt.Errorf("failed to save savings goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Planned %s toward %q in %s",
				format.Currency(saved.Amount, "$"), saved.Category, format.MonthLabel(monthKey))))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM, default: current)")
	addCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	addCmd.Flags().Float64Var(&target, "target", 0, "Overall goal the contributions build toward")

	var listMonth string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List savings goals for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			monthKey, err := resolveMonth(listMonth)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			savings, err := store.GetExpectedSavings(ctx, monthKey)
			if err != nil {
				return fmt.Errorf("failed to get savings goals: %w", err)
			}
			if len(savings) == 0 {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("No savings goals for %s.", format.MonthLabel(monthKey))))
				return nil
			}

			fmt.Println(cli.StyleTitle("Savings goals " + format.MonthLabel(monthKey)))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tCategory\tAmount\tTarget\tPaid\n")
			for _, saving := range savings {
				targetText := cli.StyleSubtle("-")
				if saving.Target != nil {
					targetText = format.Currency(*saving.Target, "$")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					saving.ID, saving.Category,
					format.Currency(saving.Amount, "$"), targetText, paidMark(saving.IsPaid))
			}
			return w.Flush()
		},
	}
	listCmd.Flags().StringVarP(&listMonth, "month", "m", "", "Month (YYYY-MM, default: current)")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(listCmd)
	cmd.AddCommand(editSavingCmd())
	cmd.AddCommand(deleteRecordCmd("saving", func(cmd *cobra.Command, id int64) error {
		store, err := initStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.DeleteExpectedSaving(cmd.Context(), id)
	}))
	cmd.AddCommand(paidRecordCmd("saving", func(cmd *cobra.Command, id int64, paid bool) error {
		store, err := initStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.SetExpectedSavingPaid(cmd.Context(), id, paid)
	}))

	return cmd
}

func planRolloverCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Copy a month's plan into the next month",
		Long: `Copies every expected income, invoice, budget and savings goal from
the given month into the following month. Paid flags reset; savings
targets carry over. The source month is left untouched.`,
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

			if err := store.RolloverMonth(ctx, monthKey); err != nil {
				return fmt.Errorf("failed to roll over month: %w", err)
			}

			next, err := model.NextMonthKey(monthKey)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Rolled %s over into %s",
				format.MonthLabel(monthKey), format.MonthLabel(next))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Source month (YYYY-MM, default: current)")
	return cmd
}

func editIncomeCmd() *cobra.Command {
	var (
		month, name, notes string
		amount             float64
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an expected income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid income ID: %w", err)
			}
			monthKey, err := resolveMonth(month)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			incomes, err := store.GetExpectedIncomes(ctx, monthKey)
			if err != nil {
				return fmt.Errorf("failed to get expected incomes: %w", err)
			}
			income := findIncome(incomes, id)
			if income == nil {
				return fmt.Errorf("no expected income %d in %s", id, monthKey)
			}

			if cmd.Flags().Changed("name") {
				income.Name = name
			}
			if cmd.Flags().Changed("amount") {
				if amount < 0 {
					return fmt.Errorf("amount must not be negative")
				}
				income.Amount = amount
			}
			if cmd.Flags().Changed("notes") {
				income.Notes = notes
			}

			if _, err := store.SaveExpectedIncome(ctx, income); err != nil {
				return fmt.Errorf("failed to save expected income: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated income %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month the income belongs to (YYYY-MM, default: current)")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Float64Var(&amount, "amount", 0, "New amount")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	return cmd
}

func editInvoiceCmd() *cobra.Command {
	var (
		month, name, notes string
		amount             float64
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an expected invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid invoice ID: %w", err)
			}
			monthKey, err := resolveMonth(month)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			invoices, err := store.GetExpectedInvoices(ctx, monthKey)
			if err != nil {
				return fmt.Errorf("failed to get expected invoices: %w", err)
			}
			invoice := findInvoice(invoices, id)
			if invoice == nil {
				return fmt.Errorf("no expected invoice %d in %s", id, monthKey)
			}

			if cmd.Flags().Changed("name") {
				invoice.Name = name
			}
			if cmd.Flags().Changed("amount") {
				if amount < 0 {
					return fmt.Errorf("amount must not be negative")
				}
				invoice.Amount = amount
			}
			if cmd.Flags().Changed("notes") {
				invoice.Notes = notes
			}

			if _, err := store.SaveExpectedInvoice(ctx, invoice); err != nil {
				return fmt.Errorf("failed to save expected invoice: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated invoice %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month the invoice belongs to (YYYY-MM, default: current)")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Float64Var(&amount, "amount", 0, "New amount")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	return cmd
}

func editSavingCmd() *cobra.Command {
	var (
		month, notes   string
		amount, target float64
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a planned savings contribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid saving ID: %w", err)
			}
			monthKey, err := resolveMonth(month)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			savings, err := store.GetExpectedSavings(ctx, monthKey)
			if err != nil {
				return fmt.Errorf("failed to get savings goals: %w", err)
			}
			saving := findSaving(savings, id)
			if saving == nil {
				return fmt.Errorf("no savings goal %d in %s", id, monthKey)
			}

			if cmd.Flags().Changed("amount") {
				if amount < 0 {
					return fmt.Errorf("amount must not be negative")
				}
				saving.Amount = amount
			}
			if cmd.Flags().Changed("target") {
				saving.Target = &target
			}
			if cmd.Flags().Changed("notes") {
				saving.Notes = notes
			}

			if _, err := store.SaveExpectedSaving(ctx, saving); err != nil {
				return fmt.Errorf("failed to save savings goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated saving %d", id)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month the goal belongs to (YYYY-MM, default: current)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "New contribution amount")
	cmd.Flags().Float64Var(&target, "target", 0, "New overall goal")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	return cmd
}

func findIncome(incomes []model.ExpectedIncome, id int64) *model.ExpectedIncome {
	for i := range incomes {
		if incomes[i].ID == id {
			return &incomes[i]
		}
	}
	return nil
}

func findInvoice(invoices []model.ExpectedInvoice, id int64) *model.ExpectedInvoice {
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i]
		}
	}
	return nil
}

func findSaving(savings []model.ExpectedSaving, id int64) *model.ExpectedSaving {
	for i := range savings {
		if savings[i].ID == id {
			return &savings[i]
		}
	}
	return nil
}

// deleteRecordCmd builds the shared "delete <id>" subcommand for a
// planning record family.
func deleteRecordCmd(noun string, del func(cmd *cobra.Command, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete an expected %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid %s ID: %w", noun, err)
			}
			if err := del(cmd, id); err != nil {
				return fmt.Errorf("failed to delete %s: %w", noun, err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %s %d", noun, id)))
			return nil
		},
	}
}

// paidRecordCmd builds the shared "paid <id>" subcommand with an
// --undo flag to clear the flag again.
func paidRecordCmd(noun string, set func(cmd *cobra.Command, id int64, paid bool) error) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "paid <id>",
		Short: fmt.Sprintf("Mark an expected %s as paid", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid %s ID: %w", noun, err)
			}
			if err := set(cmd, id, !undo); err != nil {
				return fmt.Errorf("failed to update %s: %w", noun, err)
			}
			state := "paid"
			if undo {
				state = "unpaid"
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Marked %s %d as %s", noun, id, state)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark as unpaid instead")
	return cmd
}

// parseAmount parses a positive decimal amount.
func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if amount < 0 {
		return 0, fmt.Errorf("amount must not be negative, got %s", raw)
	}
	return amount, nil
}

func paidMark(paid bool) string {
	if paid {
		return cli.StyleSuccess(cli.SuccessIcon)
	}
	return cli.StyleSubtle("·")
}
