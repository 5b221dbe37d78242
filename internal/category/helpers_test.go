package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelope-budget/envelope/internal/model"
)

func intPtr(i int) *int { return &i }

func sampleCategories() []model.Category {
	return []model.Category{
		{ID: 1, Name: "Salary", Type: model.CategoryTypeIncome, OrderIndex: intPtr(0)},
		{ID: 2, Name: "Groceries", Type: model.CategoryTypeExpense, OrderIndex: intPtr(1)},
		{ID: 3, Name: "Utilities", Type: model.CategoryTypeExpense, OrderIndex: intPtr(0)},
		{ID: 4, Name: "Vacation", Type: model.CategoryTypeSaving},
		{ID: 5, Name: "Extra", Type: model.CategoryTypeIncome, OrderIndex: intPtr(1)},
		{ID: 6, Name: "Extra", Type: model.CategoryTypeExpense, OrderIndex: intPtr(2)},
	}
}

func TestFilterByQuery(t *testing.T) {
	cats := sampleCategories()

	t.Run("empty query returns everything in order", func(t *testing.T) {
		got := FilterByQuery(cats, "")
		assert.Equal(t, cats, got)
	})

	t.Run("whitespace query returns everything", func(t *testing.T) {
		got := FilterByQuery(cats, "   ")
		assert.Equal(t, cats, got)
	})

	t.Run("match is case-insensitive substring", func(t *testing.T) {
		got := FilterByQuery(cats, "GROC")
		require.Len(t, got, 1)
		assert.Equal(t, "Groceries", got[0].Name)
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		assert.Empty(t, FilterByQuery(cats, "zzz"))
	})

	t.Run("relative order is preserved", func(t *testing.T) {
		got := FilterByQuery(cats, "extra")
		require.Len(t, got, 2)
		assert.Equal(t, int64(5), got[0].ID)
		assert.Equal(t, int64(6), got[1].ID)
	})
}

func TestGroupByType(t *testing.T) {
	cats := sampleCategories()
	g := GroupByType(cats, "")

	t.Run("partitions are exhaustive and exclusive", func(t *testing.T) {
		assert.Len(t, g.Income, 2)
		assert.Len(t, g.Expense, 3)
		assert.Len(t, g.Saving, 1)
		assert.Equal(t, len(cats), len(g.Income)+len(g.Expense)+len(g.Saving))
	})

	t.Run("partitions sort ascending by order index", func(t *testing.T) {
		// Utilities (0) before Groceries (1) before expense Extra (2).
		require.Len(t, g.Expense, 3)
		assert.Equal(t, "Utilities", g.Expense[0].Name)
		assert.Equal(t, "Groceries", g.Expense[1].Name)
		assert.Equal(t, "Extra", g.Expense[2].Name)
	})

	t.Run("missing order index sorts as zero, stably", func(t *testing.T) {
		mixed := []model.Category{
			{ID: 1, Name: "A", Type: model.CategoryTypeExpense, OrderIndex: intPtr(0)},
			{ID: 2, Name: "B", Type: model.CategoryTypeExpense}, // nil index, also 0
			{ID: 3, Name: "C", Type: model.CategoryTypeExpense, OrderIndex: intPtr(0)},
		}
		got := GroupByType(mixed, "").Expense
		require.Len(t, got, 3)
		assert.Equal(t, []string{"A", "B", "C"}, []string{got[0].Name, got[1].Name, got[2].Name})
	})

	t.Run("regrouping its own output is idempotent", func(t *testing.T) {
		recombined := make([]model.Category, 0, len(cats))
		recombined = append(recombined, g.Income...)
		recombined = append(recombined, g.Expense...)
		recombined = append(recombined, g.Saving...)

		again := GroupByType(recombined, "")
		assert.Equal(t, g, again)
	})

	t.Run("query applies before grouping", func(t *testing.T) {
		got := GroupByType(cats, "extra")
		assert.Len(t, got.Income, 1)
		assert.Len(t, got.Expense, 1)
		assert.Empty(t, got.Saving)
	})
}

func TestValidateName(t *testing.T) {
	assert.True(t, ValidateName("Groceries"))
	assert.True(t, ValidateName("  padded  "))
	assert.False(t, ValidateName(""))
	assert.False(t, ValidateName("   "))
}

func TestIsDuplicate(t *testing.T) {
	cats := sampleCategories()

	t.Run("case-insensitive within type", func(t *testing.T) {
		assert.True(t, IsDuplicate("GROCERIES", model.CategoryTypeExpense, cats, 0))
		assert.True(t, IsDuplicate("groceries", model.CategoryTypeExpense, cats, 0))
	})

	t.Run("same name under another type is not a duplicate", func(t *testing.T) {
		assert.False(t, IsDuplicate("Groceries", model.CategoryTypeIncome, cats, 0))
		assert.True(t, IsDuplicate("Extra", model.CategoryTypeIncome, cats, 0))
		assert.True(t, IsDuplicate("Extra", model.CategoryTypeExpense, cats, 0))
	})

	t.Run("excluded id is ignored when editing", func(t *testing.T) {
		assert.False(t, IsDuplicate("Groceries", model.CategoryTypeExpense, cats, 2))
	})
}

func TestNextOrderIndex(t *testing.T) {
	t.Run("empty list starts at zero", func(t *testing.T) {
		assert.Equal(t, 0, NextOrderIndex(nil))
		assert.Equal(t, 0, NextOrderIndex([]model.Category{}))
	})

	t.Run("max plus one with nil treated as zero", func(t *testing.T) {
		cats := []model.Category{
			{OrderIndex: intPtr(0)},
			{OrderIndex: intPtr(1)},
			{}, // nil index
		}
		assert.Equal(t, 2, NextOrderIndex(cats))
	})

	t.Run("spans all types unless pre-filtered", func(t *testing.T) {
		cats := []model.Category{
			{Type: model.CategoryTypeIncome, OrderIndex: intPtr(7)},
			{Type: model.CategoryTypeExpense, OrderIndex: intPtr(1)},
		}
		assert.Equal(t, 8, NextOrderIndex(cats))

		expenseOnly := FilterByQuery(cats, "")
		expenseOnly = GroupByType(expenseOnly, "").Expense
		assert.Equal(t, 2, NextOrderIndex(expenseOnly))
	})
}
