package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelope-budget/envelope/internal/model"
	"github.com/envelope-budget/envelope/internal/testutil"
)

func TestBuilder_Build(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t, testutil.BasicCategories()...)

	now := func() time.Time {
		return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	}

	_, err := store.SaveExpectedIncome(ctx, &model.ExpectedIncome{Name: "Paycheck", Category: "Salary", Amount: 5000, Month: "2026-08"})
	require.NoError(t, err)
	_, err = store.SaveExpectedInvoice(ctx, &model.ExpectedInvoice{Name: "Rent", Category: "Utilities", Amount: 2000, Month: "2026-08"})
	require.NoError(t, err)
	_, err = store.SaveBudget(ctx, &model.Budget{Category: "Groceries", AllocatedAmount: 1500, Month: "2026-08"})
	require.NoError(t, err)
	_, err = store.SaveExpectedSaving(ctx, &model.ExpectedSaving{Category: "Vacation", Amount: 500, Month: "2026-08"})
	require.NoError(t, err)

	day := func(d int) time.Time { return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		{ID: "t1", Amount: 5000, Description: "Paycheck", Category: "Salary", Date: day(1), Status: model.StatusPaid, SourceType: model.SourceIncome},
		{ID: "t2", Amount: -300, Description: "Market", Category: "Groceries", Date: day(3), Status: model.StatusPaid, SourceType: model.SourceManual},
		{ID: "t3", Amount: 400, Description: "Vacation fund", Category: "Vacation", Date: day(5), Status: model.StatusPaid, SourceType: model.SourceSavings},
		// Paid but future-dated: must not count toward the bank position.
		{ID: "t4", Amount: -999, Description: "Pre-dated", Category: "Groceries", Date: day(25), Status: model.StatusPaid, SourceType: model.SourceManual},
	}))

	summary, err := NewBuilder(store, now).Build(ctx, "2026-08")
	require.NoError(t, err)

	assert.Equal(t, "2026-08", summary.Month)
	assert.InDelta(t, 1000.0, summary.MoneyToAssign, 0.001)

	// 5000 income − 300 spent; the savings contribution is not
	// spendable income and t4 is beyond the current-date ceiling.
	assert.InDelta(t, 4700.0, summary.ActualInBank, 0.001)

	// SpentByCategory sees the whole month, ceiling or not.
	assert.InDelta(t, 1299.0, summary.SpentByCategory["Groceries"], 0.001)

	assert.InDelta(t, 400.0, summary.SavingsBalances["Vacation"], 0.001)
	assert.InDelta(t, 400.0, summary.TotalSavings, 0.001)

	require.Len(t, summary.Budgets, 1)
	assert.Equal(t, "Groceries", summary.Budgets[0].Category)
	assert.InDelta(t, 1500.0, summary.Budgets[0].Allocated, 0.001)
	assert.InDelta(t, 1299.0, summary.Budgets[0].Spent, 0.001)
}

func TestBuilder_ResolvesLegacyCategoryNames(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)

	groceries, err := store.CreateCategory(ctx, &model.Category{Name: "Groceries", Type: model.CategoryTypeExpense, IsVisible: true})
	require.NoError(t, err)

	// A migrated row: stale stored name, current id. The id must win.
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		{ID: "t1", Amount: -75, Description: "Market", Category: "Food (old)", CategoryID: groceries.ID,
			Date: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), Status: model.StatusPaid, SourceType: model.SourceManual},
	}))

	summary, err := NewBuilder(store, nil).Build(ctx, "2026-08")
	require.NoError(t, err)

	assert.InDelta(t, 75.0, summary.SpentByCategory["Groceries"], 0.001)
	_, stale := summary.SpentByCategory["Food (old)"]
	assert.False(t, stale)
}

func TestBuilder_InvalidMonth(t *testing.T) {
	store := testutil.SetupTestDB(t)

	_, err := NewBuilder(store, nil).Build(context.Background(), "2026/08")
	require.Error(t, err)
}
