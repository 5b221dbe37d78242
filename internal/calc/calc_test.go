package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelope-budget/envelope/internal/model"
)

func TestMoneyToAssign(t *testing.T) {
	t.Run("income minus invoices budgets and savings", func(t *testing.T) {
		got := MoneyToAssign(
			[]model.ExpectedIncome{{Amount: 5000}},
			[]model.ExpectedInvoice{{Amount: 2000}},
			[]model.Budget{{AllocatedAmount: 1500}},
			[]model.ExpectedSaving{{Amount: 500}},
		)
		assert.InDelta(t, 1000.0, got, 0.001)
	})

	t.Run("empty inputs yield zero", func(t *testing.T) {
		assert.Zero(t, MoneyToAssign(nil, nil, nil, nil))
	})

	t.Run("over-allocation goes negative", func(t *testing.T) {
		got := MoneyToAssign(
			[]model.ExpectedIncome{{Amount: 100}},
			[]model.ExpectedInvoice{{Amount: 250}},
			nil, nil,
		)
		assert.InDelta(t, -150.0, got, 0.001)
	})

	t.Run("monotonic in each input", func(t *testing.T) {
		incomes := []model.ExpectedIncome{{Amount: 3000}}
		invoices := []model.ExpectedInvoice{{Amount: 800}}
		budgets := []model.Budget{{AllocatedAmount: 400}}
		savings := []model.ExpectedSaving{{Amount: 200}}

		base := MoneyToAssign(incomes, invoices, budgets, savings)

		assert.Greater(t, MoneyToAssign(append(incomes, model.ExpectedIncome{Amount: 1}), invoices, budgets, savings), base)
		assert.Less(t, MoneyToAssign(incomes, append(invoices, model.ExpectedInvoice{Amount: 1}), budgets, savings), base)
		assert.Less(t, MoneyToAssign(incomes, invoices, append(budgets, model.Budget{AllocatedAmount: 1}), savings), base)
		assert.Less(t, MoneyToAssign(incomes, invoices, budgets, append(savings, model.ExpectedSaving{Amount: 1})), base)
	})
}

func TestActualInBank(t *testing.T) {
	monthStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)

	paid := func(day int, amount float64) model.Transaction {
		return model.Transaction{
			Date:   time.Date(2026, 8, day, 9, 0, 0, 0, time.UTC),
			Amount: amount,
			Status: model.StatusPaid,
		}
	}

	t.Run("income minus expenses", func(t *testing.T) {
		txns := []model.Transaction{
			paid(1, 5000),
			paid(3, -1200),
			paid(10, -300),
		}
		assert.InDelta(t, 3500.0, ActualInBank(txns, monthStart, monthEnd, now), 0.001)
	})

	t.Run("upcoming transactions are excluded", func(t *testing.T) {
		txn := paid(5, -100)
		txn.Status = model.StatusUpcoming
		assert.Zero(t, ActualInBank([]model.Transaction{txn}, monthStart, monthEnd, now))
	})

	t.Run("future-dated paid transactions are excluded", func(t *testing.T) {
		// Paid and inside month bounds, but dated after the current day.
		txns := []model.Transaction{paid(20, 5000)}
		assert.Zero(t, ActualInBank(txns, monthStart, monthEnd, now))
	})

	t.Run("same-day transaction counts regardless of time of day", func(t *testing.T) {
		txn := model.Transaction{
			Date:   time.Date(2026, 8, 15, 23, 59, 0, 0, time.UTC),
			Amount: 100,
			Status: model.StatusPaid,
		}
		early := time.Date(2026, 8, 15, 0, 1, 0, 0, time.UTC)
		assert.InDelta(t, 100.0, ActualInBank([]model.Transaction{txn}, monthStart, monthEnd, early), 0.001)
	})

	t.Run("transactions outside month bounds are excluded", func(t *testing.T) {
		txns := []model.Transaction{
			{Date: time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC), Amount: 900, Status: model.StatusPaid},
			{Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Amount: 900, Status: model.StatusPaid},
		}
		later := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		assert.Zero(t, ActualInBank(txns, monthStart, monthEnd, later))
	})

	t.Run("savings contributions are not spendable income", func(t *testing.T) {
		txn := paid(2, 400)
		txn.SourceType = model.SourceSavings
		assert.Zero(t, ActualInBank([]model.Transaction{txn}, monthStart, monthEnd, now))
	})

	t.Run("expense portion covered by savings is excluded", func(t *testing.T) {
		used := 150.0
		txn := paid(4, -500)
		txn.SavingsAmountUsed = &used
		// Only 350 was actually drawn from cash.
		assert.InDelta(t, -350.0, ActualInBank([]model.Transaction{txn}, monthStart, monthEnd, now), 0.001)
	})

	t.Run("savings portion above amount is not clamped", func(t *testing.T) {
		used := 700.0
		txn := paid(4, -500)
		txn.SavingsAmountUsed = &used
		// Deliberately unclamped: the per-transaction contribution goes
		// positive when the stored savings portion exceeds the amount.
		assert.InDelta(t, 200.0, ActualInBank([]model.Transaction{txn}, monthStart, monthEnd, now), 0.001)
	})
}

func TestSpentByCategory(t *testing.T) {
	txns := []model.Transaction{
		{Category: "Groceries", Amount: -100},
		{Category: "Groceries", Amount: -50},
		{Category: "Utilities", Amount: -200},
		{Category: "Income", Amount: 5000},
	}

	got := SpentByCategory(txns)

	require.Len(t, got, 2)
	assert.InDelta(t, 150.0, got["Groceries"], 0.001)
	assert.InDelta(t, 200.0, got["Utilities"], 0.001)

	// Positive entries are excluded, not zero-filled.
	_, ok := got["Income"]
	assert.False(t, ok)
}

func TestSpentByCategory_CaseSensitiveKeys(t *testing.T) {
	got := SpentByCategory([]model.Transaction{
		{Category: "groceries", Amount: -10},
		{Category: "Groceries", Amount: -20},
	})
	require.Len(t, got, 2)
	assert.InDelta(t, 10.0, got["groceries"], 0.001)
	assert.InDelta(t, 20.0, got["Groceries"], 0.001)
}

func TestTotalSavingsBalance(t *testing.T) {
	tests := []struct {
		balances map[string]float64
		name     string
		want     float64
	}{
		{name: "empty map", balances: map[string]float64{}, want: 0},
		{name: "nil map", balances: nil, want: 0},
		{name: "sums all values", balances: map[string]float64{"Vacation": 1200, "Emergency": 3000}, want: 4200},
		{name: "negative balances pass through", balances: map[string]float64{"Vacation": -50, "Emergency": 100}, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TotalSavingsBalance(tt.balances), 0.001)
		})
	}
}
