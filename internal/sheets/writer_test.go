package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelope-budget/envelope/internal/report"
)

func TestPrepareSummaryData(t *testing.T) {
	summary := &report.MonthlySummary{
		Month:         "2026-08",
		MoneyToAssign: 1000,
		ActualInBank:  4700,
		TotalSavings:  400,
		Budgets: []report.BudgetLine{
			{Category: "Groceries", Allocated: 1500, Spent: 300},
		},
		SpentByCategory: map[string]float64{
			"Groceries": 300,
			"Dining":    450,
		},
		SavingsBalances: map[string]float64{
			"Vacation": 400,
		},
	}

	values := prepareSummaryData(summary)
	require.NotEmpty(t, values)

	assert.Equal(t, []any{"Envelope Budget", "August 2026"}, values[0])
	assert.Contains(t, values, []any{"Money to Assign", 1000.0})
	assert.Contains(t, values, []any{"Actual in Bank", 4700.0})
	assert.Contains(t, values, []any{"Total Savings", 400.0})

	// Budget row carries the computed remainder.
	assert.Contains(t, values, []any{"Groceries", 1500.0, 300.0, 1200.0})

	// Spending rows come back largest first.
	var spendRows [][]any
	inSpend := false
	for _, row := range values {
		if len(row) == 1 && row[0] == "Spending by Category" {
			inSpend = true
			continue
		}
		if inSpend {
			if len(row) == 0 {
				break
			}
			spendRows = append(spendRows, row)
		}
	}
	require.Len(t, spendRows, 3) // header + two categories
	assert.Equal(t, []any{"Dining", 450.0}, spendRows[1])
	assert.Equal(t, []any{"Groceries", 300.0}, spendRows[2])

	assert.Contains(t, values, []any{"Vacation", 400.0})
}

func TestNewWriterRejectsInvalidConfig(t *testing.T) {
	_, err := NewWriter(context.Background(), Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
