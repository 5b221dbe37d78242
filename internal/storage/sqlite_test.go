package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelope-budget/envelope/internal/model"
	"github.com/envelope-budget/envelope/internal/service"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)

	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	// A second run must be a no-op, not a failure.
	require.NoError(t, store.Migrate(context.Background()))
}

func TestCategoryCRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("create and fetch by id and name", func(t *testing.T) {
		store := createTestStorage(t)

		idx := 2
		cat, err := store.CreateCategory(ctx, &model.Category{
			Name:          "Groceries",
			Type:          model.CategoryTypeExpense,
			Color:         "#4ECDC4",
			Emoji:         "🛒",
			IsVisible:     true,
			OrderIndex:    &idx,
			BudgetEnabled: true,
		})
		require.NoError(t, err)
		assert.NotZero(t, cat.ID)

		byID, err := store.GetCategoryByID(ctx, cat.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, "Groceries", byID.Name)
		assert.Equal(t, model.CategoryTypeExpense, byID.Type)
		require.NotNil(t, byID.OrderIndex)
		assert.Equal(t, 2, *byID.OrderIndex)
		assert.True(t, byID.BudgetEnabled)

		byName, err := store.GetCategoryByName(ctx, "groceries", model.CategoryTypeExpense)
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, cat.ID, byName.ID)
	})

	t.Run("missing category returns nil without error", func(t *testing.T) {
		store := createTestStorage(t)

		cat, err := store.GetCategoryByID(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, cat)
	})

	t.Run("duplicate name within type is rejected case-insensitively", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.CreateCategory(ctx, &model.Category{Name: "Rent", Type: model.CategoryTypeExpense, IsVisible: true})
		require.NoError(t, err)

		_, err = store.CreateCategory(ctx, &model.Category{Name: "RENT", Type: model.CategoryTypeExpense, IsVisible: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateName)

		// Same name under another type is a distinct category.
		_, err = store.CreateCategory(ctx, &model.Category{Name: "Rent", Type: model.CategoryTypeIncome, IsVisible: true})
		require.NoError(t, err)
	})

	t.Run("visibility is a soft toggle", func(t *testing.T) {
		store := createTestStorage(t)

		cat, err := store.CreateCategory(ctx, &model.Category{Name: "Dining", Type: model.CategoryTypeExpense, IsVisible: true})
		require.NoError(t, err)

		require.NoError(t, store.SetCategoryVisibility(ctx, cat.ID, false))

		// Hidden categories are still returned; filtering is a display concern.
		cats, err := store.GetCategories(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.False(t, cats[0].IsVisible)
	})

	t.Run("nil order index survives the round trip", func(t *testing.T) {
		store := createTestStorage(t)

		cat, err := store.CreateCategory(ctx, &model.Category{Name: "Misc", Type: model.CategoryTypeExpense, IsVisible: true})
		require.NoError(t, err)

		got, err := store.GetCategoryByID(ctx, cat.ID)
		require.NoError(t, err)
		assert.Nil(t, got.OrderIndex)

		require.NoError(t, store.SetCategoryOrder(ctx, cat.ID, 5))
		got, err = store.GetCategoryByID(ctx, cat.ID)
		require.NoError(t, err)
		require.NotNil(t, got.OrderIndex)
		assert.Equal(t, 5, *got.OrderIndex)
	})

	t.Run("invalid type is rejected", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.CreateCategory(ctx, &model.Category{Name: "Weird", Type: "mystery"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownType)
	})
}

func TestPlanningRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("expected income lifecycle", func(t *testing.T) {
		store := createTestStorage(t)

		inc, err := store.SaveExpectedIncome(ctx, &model.ExpectedIncome{
			Name: "Paycheck", Category: "Salary", Amount: 5000, Month: "2026-08",
		})
		require.NoError(t, err)
		assert.NotZero(t, inc.ID)

		incomes, err := store.GetExpectedIncomes(ctx, "2026-08")
		require.NoError(t, err)
		require.Len(t, incomes, 1)
		assert.False(t, incomes[0].IsPaid)

		require.NoError(t, store.SetExpectedIncomePaid(ctx, inc.ID, true))
		incomes, err = store.GetExpectedIncomes(ctx, "2026-08")
		require.NoError(t, err)
		assert.True(t, incomes[0].IsPaid)

		inc.Amount = 5200
		_, err = store.SaveExpectedIncome(ctx, inc)
		require.NoError(t, err)
		incomes, err = store.GetExpectedIncomes(ctx, "2026-08")
		require.NoError(t, err)
		assert.InDelta(t, 5200.0, incomes[0].Amount, 0.001)

		require.NoError(t, store.DeleteExpectedIncome(ctx, inc.ID))
		incomes, err = store.GetExpectedIncomes(ctx, "2026-08")
		require.NoError(t, err)
		assert.Empty(t, incomes)
	})

	t.Run("records are scoped to their month", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.SaveExpectedInvoice(ctx, &model.ExpectedInvoice{Name: "Rent", Amount: 1200, Month: "2026-08"})
		require.NoError(t, err)
		_, err = store.SaveExpectedInvoice(ctx, &model.ExpectedInvoice{Name: "Rent", Amount: 1250, Month: "2026-09"})
		require.NoError(t, err)

		aug, err := store.GetExpectedInvoices(ctx, "2026-08")
		require.NoError(t, err)
		require.Len(t, aug, 1)
		assert.InDelta(t, 1200.0, aug[0].Amount, 0.001)
	})

	t.Run("invalid month key is rejected", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.GetBudgets(ctx, "August 2026")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidMonth)
	})

	t.Run("savings target is nullable and persists", func(t *testing.T) {
		store := createTestStorage(t)

		target := 6000.0
		sv, err := store.SaveExpectedSaving(ctx, &model.ExpectedSaving{
			Category: "Vacation", Amount: 500, Month: "2026-08", Target: &target,
		})
		require.NoError(t, err)

		savings, err := store.GetExpectedSavings(ctx, "2026-08")
		require.NoError(t, err)
		require.Len(t, savings, 1)
		require.NotNil(t, savings[0].Target)
		assert.InDelta(t, 6000.0, *savings[0].Target, 0.001)

		_, err = store.SaveExpectedSaving(ctx, &model.ExpectedSaving{
			Category: "Emergency", Amount: 200, Month: "2026-08",
		})
		require.NoError(t, err)

		savings, err = store.GetExpectedSavings(ctx, "2026-08")
		require.NoError(t, err)
		require.Len(t, savings, 2)
		assert.Nil(t, savings[1].Target)
		_ = sv
	})
}

func TestRolloverMonth(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	target := 6000.0
	_, err := store.SaveExpectedIncome(ctx, &model.ExpectedIncome{Name: "Paycheck", Amount: 5000, Month: "2026-08", IsPaid: true})
	require.NoError(t, err)
	_, err = store.SaveExpectedInvoice(ctx, &model.ExpectedInvoice{Name: "Rent", Amount: 1200, Month: "2026-08", IsPaid: true})
	require.NoError(t, err)
	_, err = store.SaveBudget(ctx, &model.Budget{Category: "Groceries", AllocatedAmount: 600, Month: "2026-08"})
	require.NoError(t, err)
	_, err = store.SaveExpectedSaving(ctx, &model.ExpectedSaving{Category: "Vacation", Amount: 500, Month: "2026-08", Target: &target, IsPaid: true})
	require.NoError(t, err)

	require.NoError(t, store.RolloverMonth(ctx, "2026-08"))

	incomes, err := store.GetExpectedIncomes(ctx, "2026-09")
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "Paycheck", incomes[0].Name)
	assert.False(t, incomes[0].IsPaid, "paid flags reset on rollover")

	invoices, err := store.GetExpectedInvoices(ctx, "2026-09")
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.False(t, invoices[0].IsPaid)

	budgets, err := store.GetBudgets(ctx, "2026-09")
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.InDelta(t, 600.0, budgets[0].AllocatedAmount, 0.001)

	savings, err := store.GetExpectedSavings(ctx, "2026-09")
	require.NoError(t, err)
	require.Len(t, savings, 1)
	assert.False(t, savings[0].IsPaid)
	require.NotNil(t, savings[0].Target, "target carries across months")
	assert.InDelta(t, 6000.0, *savings[0].Target, 0.001)

	// Source month is untouched.
	aug, err := store.GetExpectedIncomes(ctx, "2026-08")
	require.NoError(t, err)
	require.Len(t, aug, 1)
	assert.True(t, aug[0].IsPaid)
}

func TestTransactions(t *testing.T) {
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("save fetch and month scoping", func(t *testing.T) {
		store := createTestStorage(t)

		err := store.SaveTransactions(ctx, []model.Transaction{
			{ID: "t1", Amount: 5000, Description: "Paycheck", Category: "Salary", Date: day(1), Status: model.StatusPaid, SourceType: model.SourceIncome},
			{ID: "t2", Amount: -120, Description: "Market", Category: "Groceries", Date: day(3), Status: model.StatusPaid, SourceType: model.SourceManual},
			// Imported dates keep their time of day; a late purchase on
			// the 31st still belongs to August.
			{ID: "t3", Amount: -45, Description: "Dinner", Category: "Groceries", Date: time.Date(2026, 8, 31, 19, 15, 0, 0, time.UTC), Status: model.StatusPaid, SourceType: model.SourceManual},
			// Midnight on the first belongs to September, not August.
			{ID: "t4", Amount: -80, Description: "Power", Category: "Utilities", Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Status: model.StatusUpcoming, SourceType: model.SourceInvoice},
		})
		require.NoError(t, err)

		aug, err := store.GetTransactionsByMonth(ctx, "2026-08")
		require.NoError(t, err)
		require.Len(t, aug, 3)
		for _, txn := range aug {
			assert.NotEqual(t, "t4", txn.ID)
		}

		sep, err := store.GetTransactionsByMonth(ctx, "2026-09")
		require.NoError(t, err)
		require.Len(t, sep, 1)
		assert.Equal(t, "t4", sep[0].ID)
	})

	t.Run("duplicate hashes are ignored on re-import", func(t *testing.T) {
		store := createTestStorage(t)

		txn := model.Transaction{ID: "t1", Amount: -50, Description: "Coffee", Category: "Dining", Date: day(5), Status: model.StatusPaid, SourceType: model.SourceManual}
		require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{txn}))

		dupe := txn
		dupe.ID = "t1-again"
		require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{dupe}))

		txns, err := store.GetTransactionsByMonth(ctx, "2026-08")
		require.NoError(t, err)
		assert.Len(t, txns, 1)
	})

	t.Run("status filter and update", func(t *testing.T) {
		store := createTestStorage(t)

		require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
			{ID: "t1", Amount: -200, Description: "Internet", Category: "Utilities", Date: day(10), Status: model.StatusUpcoming, SourceType: model.SourceInvoice},
		}))

		upcoming, err := store.GetTransactions(ctx, service.TransactionFilter{Status: model.StatusUpcoming})
		require.NoError(t, err)
		require.Len(t, upcoming, 1)

		require.NoError(t, store.SetTransactionStatus(ctx, "t1", model.StatusPaid))

		upcoming, err = store.GetTransactions(ctx, service.TransactionFilter{Status: model.StatusUpcoming})
		require.NoError(t, err)
		assert.Empty(t, upcoming)

		got, err := store.GetTransactionByID(ctx, "t1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.StatusPaid, got.Status)
	})

	t.Run("savings amount used round trips", func(t *testing.T) {
		store := createTestStorage(t)

		used := 150.0
		require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
			{ID: "t1", Amount: -500, Description: "Flights", Category: "Travel", Date: day(12), Status: model.StatusPaid, SourceType: model.SourceManual, SavingsAmountUsed: &used},
		}))

		got, err := store.GetTransactionByID(ctx, "t1")
		require.NoError(t, err)
		require.NotNil(t, got.SavingsAmountUsed)
		assert.InDelta(t, 150.0, *got.SavingsAmountUsed, 0.001)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		store := createTestStorage(t)

		err := store.SaveTransactions(ctx, []model.Transaction{
			{ID: "t1", Amount: 1, Date: day(1), Status: "pending"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestSavingsBalances(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
	}

	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		// Contributions.
		{ID: "s1", Amount: 500, Category: "Vacation", Date: day(1), Status: model.StatusPaid, SourceType: model.SourceSavings},
		{ID: "s2", Amount: 300, Category: "Vacation", Date: day(15), Status: model.StatusPaid, SourceType: model.SourceSavings},
		{ID: "s3", Amount: 1000, Category: "Emergency", Date: day(2), Status: model.StatusPaid, SourceType: model.SourceSavings},
		// Withdrawal.
		{ID: "s4", Amount: -200, Category: "Vacation", Date: day(20), Status: model.StatusPaid, SourceType: model.SourceSavings},
		// Not part of the ledger: unpaid, or not a savings movement.
		{ID: "s5", Amount: 900, Category: "Vacation", Date: day(25), Status: model.StatusUpcoming, SourceType: model.SourceSavings},
		{ID: "t1", Amount: -50, Category: "Groceries", Date: day(3), Status: model.StatusPaid, SourceType: model.SourceManual},
	}))

	balances, err := store.SavingsBalances(ctx)
	require.NoError(t, err)

	require.Len(t, balances, 2)
	assert.InDelta(t, 600.0, balances["Vacation"], 0.001)
	assert.InDelta(t, 1000.0, balances["Emergency"], 0.001)
}

func TestBeginTx(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	t.Run("rollback discards writes", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)

		_, err = tx.SaveExpectedIncome(ctx, &model.ExpectedIncome{Name: "Bonus", Amount: 100, Month: "2026-08"})
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())

		incomes, err := store.GetExpectedIncomes(ctx, "2026-08")
		require.NoError(t, err)
		assert.Empty(t, incomes)
	})

	t.Run("commit persists writes", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)

		_, err = tx.SaveExpectedIncome(ctx, &model.ExpectedIncome{Name: "Bonus", Amount: 100, Month: "2026-08"})
		require.NoError(t, err)
		require.NoError(t, tx.Commit())

		incomes, err := store.GetExpectedIncomes(ctx, "2026-08")
		require.NoError(t, err)
		assert.Len(t, incomes, 1)
	})

	t.Run("nested transactions are rejected", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback() }()

		_, err = tx.BeginTx(ctx)
		require.Error(t, err)
	})
}
