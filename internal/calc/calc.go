// Package calc derives monthly aggregate metrics from raw record
// collections. Every function here is pure: no I/O, no retained state, no
// mutation of inputs. Callers validate record shape before calling; a NaN
// amount propagates through the sums rather than being guarded.
package calc

import (
	"time"

	"github.com/envelope-budget/envelope/internal/model"
)

// MoneyToAssign returns the cash left to allocate for a month: expected
// income minus expected invoices, budget allocations, and planned savings
// contributions. A negative result means over-allocation and is returned
// as-is, never clamped.
func MoneyToAssign(incomes []model.ExpectedIncome, invoices []model.ExpectedInvoice, budgets []model.Budget, savings []model.ExpectedSaving) float64 {
	var total float64
	for i := range incomes {
		total += incomes[i].Amount
	}
	for i := range invoices {
		total -= invoices[i].Amount
	}
	for i := range budgets {
		total -= budgets[i].AllocatedAmount
	}
	for i := range savings {
		total -= savings[i].Amount
	}
	return total
}

// ActualInBank returns the realized net cash position for the month
// bounded by [monthStart, monthEnd], both inclusive. Only paid
// transactions count, and only those dated on or before now (date-only
// comparison): a future-dated transaction already marked paid must not
// inflate today's cash position.
//
// On the income side, contributions funneled into savings are excluded:
// they are not spendable. On the expense side, each transaction
// contributes |amount| minus whatever portion was drawn from a savings
// balance instead of cash. That difference is not clamped at zero; if the
// stored savings portion ever exceeds the amount, the excess flows into
// the aggregate unchanged.
func ActualInBank(txns []model.Transaction, monthStart, monthEnd, now time.Time) float64 {
	ceiling := model.DateOnly(now)
	start := model.DateOnly(monthStart)
	end := model.DateOnly(monthEnd)

	var income, expenses float64
	for i := range txns {
		t := &txns[i]
		if t.Status != model.StatusPaid {
			continue
		}
		d := model.DateOnly(t.Date)
		if d.Before(start) || d.After(end) || d.After(ceiling) {
			continue
		}
		switch {
		case t.Amount > 0 && t.SourceType != model.SourceSavings:
			income += t.Amount
		case t.Amount < 0:
			expenses += -t.Amount - t.SavingsUsed()
		}
	}
	return income - expenses
}

// SpentByCategory accumulates absolute expense amounts keyed by category
// name. Names are compared case-sensitively with no normalization.
// Categories with no expense transactions are absent from the result.
func SpentByCategory(txns []model.Transaction) map[string]float64 {
	spent := make(map[string]float64)
	for i := range txns {
		if txns[i].Amount >= 0 {
			continue
		}
		spent[txns[i].Category] += -txns[i].Amount
	}
	return spent
}

// TotalSavingsBalance sums per-category savings balances. The balances
// themselves come from the storage layer's ledger query; this only folds
// the map.
func TotalSavingsBalance(balances map[string]float64) float64 {
	var total float64
	for _, v := range balances {
		total += v
	}
	return total
}
