// Package testutil provides shared test fixtures for packages that need
// a migrated database.
package testutil

import (
	"context"
	"testing"

	"github.com/envelope-budget/envelope/internal/model"
	"github.com/envelope-budget/envelope/internal/storage"
)

// SetupTestDB creates a migrated in-memory database, seeds the given
// categories, and registers cleanup.
func SetupTestDB(t *testing.T, cats ...model.Category) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	for i := range cats {
		if _, err := store.CreateCategory(ctx, &cats[i]); err != nil {
			t.Fatalf("failed to seed category %q: %v", cats[i].Name, err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// BasicCategories returns a small category set covering all three types.
func BasicCategories() []model.Category {
	return []model.Category{
		{Name: "Salary", Type: model.CategoryTypeIncome, IsVisible: true},
		{Name: "Groceries", Type: model.CategoryTypeExpense, IsVisible: true, BudgetEnabled: true},
		{Name: "Utilities", Type: model.CategoryTypeExpense, IsVisible: true, BudgetEnabled: true},
		{Name: "Vacation", Type: model.CategoryTypeSaving, IsVisible: true},
	}
}
