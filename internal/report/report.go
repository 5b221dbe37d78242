// Package report assembles the monthly cash-flow picture: it pulls
// record snapshots from storage, runs the pure calculations over them,
// and returns a summary for the presentation layer to render. No
// formatting happens here.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/envelope-budget/envelope/internal/calc"
	"github.com/envelope-budget/envelope/internal/category"
	"github.com/envelope-budget/envelope/internal/model"
	"github.com/envelope-budget/envelope/internal/service"
)

// BudgetLine pairs a category's allocation with what was actually spent.
type BudgetLine struct {
	Category  string
	Allocated float64
	Spent     float64
}

// MonthlySummary is the derived cash-flow picture for one month.
type MonthlySummary struct {
	SpentByCategory map[string]float64
	SavingsBalances map[string]float64
	Month           string
	Budgets         []BudgetLine
	MoneyToAssign   float64
	ActualInBank    float64
	TotalSavings    float64
}

// Builder derives monthly summaries from a storage snapshot.
type Builder struct {
	store service.Storage
	now   func() time.Time
}

// NewBuilder creates a report builder. The now function supplies the
// current-date ceiling for the in-bank calculation; pass nil for
// time.Now.
func NewBuilder(store service.Storage, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{store: store, now: now}
}

// Build computes the summary for the month named by key.
func (b *Builder) Build(ctx context.Context, month string) (*MonthlySummary, error) {
	monthStart, monthEnd, err := model.MonthBounds(month)
	if err != nil {
		return nil, err
	}

	incomes, err := b.store.GetExpectedIncomes(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load expected incomes: %w", err)
	}
	invoices, err := b.store.GetExpectedInvoices(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load expected invoices: %w", err)
	}
	budgets, err := b.store.GetBudgets(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	savings, err := b.store.GetExpectedSavings(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load expected savings: %w", err)
	}
	txns, err := b.store.GetTransactionsByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	balances, err := b.store.SavingsBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load savings balances: %w", err)
	}

	// Resolve display names through the id map so legacy rows with a
	// stale name still report under the category's current name.
	cats, err := b.store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	idToName := category.IDToNameMap(cats)
	for i := range txns {
		txns[i].Category = category.ResolveName(txns[i].Ref(), idToName)
	}

	spent := calc.SpentByCategory(txns)

	summary := &MonthlySummary{
		Month:           month,
		MoneyToAssign:   calc.MoneyToAssign(incomes, invoices, budgets, savings),
		ActualInBank:    calc.ActualInBank(txns, monthStart, monthEnd, b.now()),
		SpentByCategory: spent,
		SavingsBalances: balances,
		TotalSavings:    calc.TotalSavingsBalance(balances),
		Budgets:         budgetLines(budgets, spent, idToName),
	}

	slog.Debug("built monthly summary",
		"month", month,
		"money_to_assign", summary.MoneyToAssign,
		"actual_in_bank", summary.ActualInBank)

	return summary, nil
}

// budgetLines joins allocations with actual spend per category, keeping
// the allocation order.
func budgetLines(budgets []model.Budget, spent map[string]float64, idToName map[int64]string) []BudgetLine {
	lines := make([]BudgetLine, 0, len(budgets))
	for i := range budgets {
		name := category.ResolveName(budgets[i].Ref(), idToName)
		lines = append(lines, BudgetLine{
			Category:  name,
			Allocated: budgets[i].AllocatedAmount,
			Spent:     spent[name],
		})
	}
	return lines
}
