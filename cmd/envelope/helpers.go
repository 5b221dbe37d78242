package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/envelope-budget/envelope/internal/common"
	"github.com/envelope-budget/envelope/internal/config"
	"github.com/envelope-budget/envelope/internal/model"
	"github.com/envelope-budget/envelope/internal/service"
	"github.com/envelope-budget/envelope/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("cannot open database at %s", dbPath), err)
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveMonth normalizes a --month flag value. An empty value means the
// current month.
func resolveMonth(month string) (string, error) {
	if month == "" {
		return time.Now().Format(model.MonthKeyLayout), nil
	}
	if _, err := model.ParseMonthKey(month); err != nil {
		return "", fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}
	return month, nil
}

// parseCategoryType validates a --type flag value.
func parseCategoryType(raw string) (model.CategoryType, error) {
	typ := model.CategoryType(raw)
	if !typ.Valid() {
		return "", fmt.Errorf("invalid category type %q, expected income, expense or saving", raw)
	}
	return typ, nil
}

// requireCategory looks up a category by name and type, with a helpful
// error when it does not exist.
func requireCategory(ctx context.Context, store service.Storage, name string, typ model.CategoryType) (*model.Category, error) {
	cat, err := store.GetCategoryByName(ctx, name, typ)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if cat == nil {
		return nil, common.NewUserError(
			fmt.Sprintf("no %s category named %q; create it with 'envelope categories add'", typ, name),
			common.ErrNotFound)
	}
	return cat, nil
}
