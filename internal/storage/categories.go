package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/envelope-budget/envelope/internal/model"
)

const categoryColumns = `id, name, type, color, emoji, is_visible, order_index, budget_enabled, created_at`

func scanCategory(row interface{ Scan(...any) error }) (*model.Category, error) {
	var cat model.Category
	var orderIndex sql.NullInt64
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Type, &cat.Color, &cat.Emoji,
		&cat.IsVisible, &orderIndex, &cat.BudgetEnabled, &cat.CreatedAt); err != nil {
		return nil, err
	}
	if orderIndex.Valid {
		idx := int(orderIndex.Int64)
		cat.OrderIndex = &idx
	}
	return &cat, nil
}

func orderIndexArg(cat *model.Category) any {
	if cat.OrderIndex == nil {
		return nil
	}
	return *cat.OrderIndex
}

// GetCategories returns all categories, hidden ones included, ordered by
// type then order index. Visibility filtering is a display concern.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	return getCategories(ctx, s.db)
}

// GetCategories returns all categories within a transaction.
func (t *sqliteTransaction) GetCategories(ctx context.Context) ([]model.Category, error) {
	return getCategories(ctx, t.tx)
}

func getCategories(ctx context.Context, q dbtx) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		ORDER BY type, COALESCE(order_index, 0), id`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns a category by id, or nil when absent.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	return getCategoryByID(ctx, s.db, id)
}

// GetCategoryByID returns a category by id within a transaction.
func (t *sqliteTransaction) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	return getCategoryByID(ctx, t.tx, id)
}

func getCategoryByID(ctx context.Context, q dbtx, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	cat, err := scanCategory(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return cat, nil
}

// GetCategoryByName returns a category by (name, type), or nil when
// absent. The lookup is type-scoped because name uniqueness is.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string, categoryType model.CategoryType) (*model.Category, error) {
	return getCategoryByName(ctx, s.db, name, categoryType)
}

// GetCategoryByName returns a category by (name, type) within a transaction.
func (t *sqliteTransaction) GetCategoryByName(ctx context.Context, name string, categoryType model.CategoryType) (*model.Category, error) {
	return getCategoryByName(ctx, t.tx, name, categoryType)
}

func getCategoryByName(ctx context.Context, q dbtx, name string, categoryType model.CategoryType) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = ? COLLATE NOCASE AND type = ?`
	cat, err := scanCategory(q.QueryRowContext(ctx, query, name, categoryType))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return cat, nil
}

// CreateCategory inserts a new category. Name collisions within the same
// type surface as ErrDuplicateName.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, cat *model.Category) (*model.Category, error) {
	return createCategory(ctx, s.db, cat)
}

// CreateCategory inserts a new category within a transaction.
func (t *sqliteTransaction) CreateCategory(ctx context.Context, cat *model.Category) (*model.Category, error) {
	return createCategory(ctx, t.tx, cat)
}

func createCategory(ctx context.Context, q dbtx, cat *model.Category) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategory(cat); err != nil {
		return nil, err
	}

	existing, err := getCategoryByName(ctx, q, cat.Name, cat.Type)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q (%s)", ErrDuplicateName, cat.Name, cat.Type)
	}

	now := time.Now()
	result, err := q.ExecContext(ctx, `
		INSERT INTO categories (name, type, color, emoji, is_visible, order_index, budget_enabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cat.Name, cat.Type, cat.Color, cat.Emoji, cat.IsVisible, orderIndexArg(cat), cat.BudgetEnabled, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	created := *cat
	created.ID = id
	created.CreatedAt = now

	slog.Info("created category", "name", created.Name, "type", created.Type, "id", id)
	return &created, nil
}

// UpdateCategory rewrites a category's editable fields.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, cat *model.Category) error {
	return updateCategory(ctx, s.db, cat)
}

// UpdateCategory rewrites a category's editable fields within a transaction.
func (t *sqliteTransaction) UpdateCategory(ctx context.Context, cat *model.Category) error {
	return updateCategory(ctx, t.tx, cat)
}

func updateCategory(ctx context.Context, q dbtx, cat *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(cat); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `
		UPDATE categories
		SET name = ?, color = ?, emoji = ?, order_index = ?, budget_enabled = ?
		WHERE id = ?`,
		cat.Name, cat.Color, cat.Emoji, orderIndexArg(cat), cat.BudgetEnabled, cat.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category with ID %d not found", cat.ID)
	}
	return nil
}

// SetCategoryVisibility soft-hides or reveals a category. Records keep
// referencing hidden categories; nothing cascades.
func (s *SQLiteStorage) SetCategoryVisibility(ctx context.Context, id int64, visible bool) error {
	return setCategoryVisibility(ctx, s.db, id, visible)
}

// SetCategoryVisibility toggles visibility within a transaction.
func (t *sqliteTransaction) SetCategoryVisibility(ctx context.Context, id int64, visible bool) error {
	return setCategoryVisibility(ctx, t.tx, id, visible)
}

func setCategoryVisibility(ctx context.Context, q dbtx, id int64, visible bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `UPDATE categories SET is_visible = ? WHERE id = ?`, visible, id)
	if err != nil {
		return fmt.Errorf("failed to set category visibility: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category with ID %d not found", id)
	}

	slog.Info("set category visibility", "id", id, "visible", visible)
	return nil
}

// SetCategoryOrder assigns a display order index.
func (s *SQLiteStorage) SetCategoryOrder(ctx context.Context, id int64, orderIndex int) error {
	return setCategoryOrder(ctx, s.db, id, orderIndex)
}

// SetCategoryOrder assigns a display order index within a transaction.
func (t *sqliteTransaction) SetCategoryOrder(ctx context.Context, id int64, orderIndex int) error {
	return setCategoryOrder(ctx, t.tx, id, orderIndex)
}

func setCategoryOrder(ctx context.Context, q dbtx, id int64, orderIndex int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `UPDATE categories SET order_index = ? WHERE id = ?`, orderIndex, id)
	if err != nil {
		return fmt.Errorf("failed to set category order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category with ID %d not found", id)
	}
	return nil
}
