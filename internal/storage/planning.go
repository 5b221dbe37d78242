package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/envelope-budget/envelope/internal/model"
)

// Planning records: expected incomes, expected invoices, budgets, and
// expected savings, all scoped to a YYYY-MM month key. Save methods
// insert when ID is zero and update otherwise.

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// --- expected incomes ---

// GetExpectedIncomes returns the expected incomes planned for a month.
func (s *SQLiteStorage) GetExpectedIncomes(ctx context.Context, month string) ([]model.ExpectedIncome, error) {
	return getExpectedIncomes(ctx, s.db, month)
}

// GetExpectedIncomes returns a month's expected incomes within a transaction.
func (t *sqliteTransaction) GetExpectedIncomes(ctx context.Context, month string) ([]model.ExpectedIncome, error) {
	return getExpectedIncomes(ctx, t.tx, month)
}

func getExpectedIncomes(ctx context.Context, q dbtx, month string) ([]model.ExpectedIncome, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, name, category, category_id, amount, month, is_paid, notes, created_at
		FROM expected_incomes
		WHERE month = ?
		ORDER BY id`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query expected incomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var incomes []model.ExpectedIncome
	for rows.Next() {
		var inc model.ExpectedIncome
		if err := rows.Scan(&inc.ID, &inc.Name, &inc.Category, &inc.CategoryID,
			&inc.Amount, &inc.Month, &inc.IsPaid, &inc.Notes, &inc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expected income: %w", err)
		}
		incomes = append(incomes, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expected incomes: %w", err)
	}
	return incomes, nil
}

// SaveExpectedIncome inserts or updates an expected income.
func (s *SQLiteStorage) SaveExpectedIncome(ctx context.Context, income *model.ExpectedIncome) (*model.ExpectedIncome, error) {
	return saveExpectedIncome(ctx, s.db, income)
}

// SaveExpectedIncome inserts or updates an expected income within a transaction.
func (t *sqliteTransaction) SaveExpectedIncome(ctx context.Context, income *model.ExpectedIncome) (*model.ExpectedIncome, error) {
	return saveExpectedIncome(ctx, t.tx, income)
}

func saveExpectedIncome(ctx context.Context, q dbtx, income *model.ExpectedIncome) (*model.ExpectedIncome, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if income == nil {
		return nil, fmt.Errorf("%w: income", ErrNilParameter)
	}
	if err := validateString(income.Name, "name"); err != nil {
		return nil, err
	}
	if err := validateMonth(income.Month); err != nil {
		return nil, err
	}

	if income.ID == 0 {
		now := time.Now()
		result, err := q.ExecContext(ctx, `
			INSERT INTO expected_incomes (name, category, category_id, amount, month, is_paid, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			income.Name, income.Category, income.CategoryID, income.Amount,
			income.Month, income.IsPaid, income.Notes, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert expected income: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get expected income ID: %w", err)
		}
		saved := *income
		saved.ID = id
		saved.CreatedAt = now
		return &saved, nil
	}

	result, err := q.ExecContext(ctx, `
		UPDATE expected_incomes
		SET name = ?, category = ?, category_id = ?, amount = ?, month = ?, is_paid = ?, notes = ?
		WHERE id = ?`,
		income.Name, income.Category, income.CategoryID, income.Amount,
		income.Month, income.IsPaid, income.Notes, income.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update expected income: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, fmt.Errorf("expected income with ID %d not found", income.ID)
	}
	return income, nil
}

// DeleteExpectedIncome removes an expected income.
func (s *SQLiteStorage) DeleteExpectedIncome(ctx context.Context, id int64) error {
	return deleteRow(ctx, s.db, "expected_incomes", id)
}

// DeleteExpectedIncome removes an expected income within a transaction.
func (t *sqliteTransaction) DeleteExpectedIncome(ctx context.Context, id int64) error {
	return deleteRow(ctx, t.tx, "expected_incomes", id)
}

// SetExpectedIncomePaid toggles the paid flag.
func (s *SQLiteStorage) SetExpectedIncomePaid(ctx context.Context, id int64, paid bool) error {
	return setPaid(ctx, s.db, "expected_incomes", id, paid)
}

// SetExpectedIncomePaid toggles the paid flag within a transaction.
func (t *sqliteTransaction) SetExpectedIncomePaid(ctx context.Context, id int64, paid bool) error {
	return setPaid(ctx, t.tx, "expected_incomes", id, paid)
}

// --- expected invoices ---

// GetExpectedInvoices returns the expected invoices planned for a month.
func (s *SQLiteStorage) GetExpectedInvoices(ctx context.Context, month string) ([]model.ExpectedInvoice, error) {
	return getExpectedInvoices(ctx, s.db, month)
}

// GetExpectedInvoices returns a month's expected invoices within a transaction.
func (t *sqliteTransaction) GetExpectedInvoices(ctx context.Context, month string) ([]model.ExpectedInvoice, error) {
	return getExpectedInvoices(ctx, t.tx, month)
}

func getExpectedInvoices(ctx context.Context, q dbtx, month string) ([]model.ExpectedInvoice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, name, category, category_id, amount, month, is_paid, notes, created_at
		FROM expected_invoices
		WHERE month = ?
		ORDER BY id`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query expected invoices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var invoices []model.ExpectedInvoice
	for rows.Next() {
		var inv model.ExpectedInvoice
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Category, &inv.CategoryID,
			&inv.Amount, &inv.Month, &inv.IsPaid, &inv.Notes, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expected invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expected invoices: %w", err)
	}
	return invoices, nil
}

// SaveExpectedInvoice inserts or updates an expected invoice.
func (s *SQLiteStorage) SaveExpectedInvoice(ctx context.Context, invoice *model.ExpectedInvoice) (*model.ExpectedInvoice, error) {
	return saveExpectedInvoice(ctx, s.db, invoice)
}

// SaveExpectedInvoice inserts or updates an expected invoice within a transaction.
func (t *sqliteTransaction) SaveExpectedInvoice(ctx context.Context, invoice *model.ExpectedInvoice) (*model.ExpectedInvoice, error) {
	return saveExpectedInvoice(ctx, t.tx, invoice)
}

func saveExpectedInvoice(ctx context.Context, q dbtx, invoice *model.ExpectedInvoice) (*model.ExpectedInvoice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, fmt.Errorf("%w: invoice", ErrNilParameter)
	}
	if err := validateString(invoice.Name, "name"); err != nil {
		return nil, err
	}
	if err := validateMonth(invoice.Month); err != nil {
		return nil, err
	}

	if invoice.ID == 0 {
		now := time.Now()
		result, err := q.ExecContext(ctx, `
			INSERT INTO expected_invoices (name, category, category_id, amount, month, is_paid, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			invoice.Name, invoice.Category, invoice.CategoryID, invoice.Amount,
			invoice.Month, invoice.IsPaid, invoice.Notes, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert expected invoice: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get expected invoice ID: %w", err)
		}
		saved := *invoice
		saved.ID = id
		saved.CreatedAt = now
		return &saved, nil
	}

	result, err := q.ExecContext(ctx, `
		UPDATE expected_invoices
		SET name = ?, category = ?, category_id = ?, amount = ?, month = ?, is_paid = ?, notes = ?
		WHERE id = ?`,
		invoice.Name, invoice.Category, invoice.CategoryID, invoice.Amount,
		invoice.Month, invoice.IsPaid, invoice.Notes, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update expected invoice: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, fmt.Errorf("expected invoice with ID %d not found", invoice.ID)
	}
	return invoice, nil
}

// DeleteExpectedInvoice removes an expected invoice.
func (s *SQLiteStorage) DeleteExpectedInvoice(ctx context.Context, id int64) error {
	return deleteRow(ctx, s.db, "expected_invoices", id)
}

// DeleteExpectedInvoice removes an expected invoice within a transaction.
func (t *sqliteTransaction) DeleteExpectedInvoice(ctx context.Context, id int64) error {
	return deleteRow(ctx, t.tx, "expected_invoices", id)
}

// SetExpectedInvoicePaid toggles the paid flag.
func (s *SQLiteStorage) SetExpectedInvoicePaid(ctx context.Context, id int64, paid bool) error {
	return setPaid(ctx, s.db, "expected_invoices", id, paid)
}

// SetExpectedInvoicePaid toggles the paid flag within a transaction.
func (t *sqliteTransaction) SetExpectedInvoicePaid(ctx context.Context, id int64, paid bool) error {
	return setPaid(ctx, t.tx, "expected_invoices", id, paid)
}

// --- budgets ---

// GetBudgets returns the budget allocations for a month.
func (s *SQLiteStorage) GetBudgets(ctx context.Context, month string) ([]model.Budget, error) {
	return getBudgets(ctx, s.db, month)
}

// GetBudgets returns a month's budget allocations within a transaction.
func (t *sqliteTransaction) GetBudgets(ctx context.Context, month string) ([]model.Budget, error) {
	return getBudgets(ctx, t.tx, month)
}

func getBudgets(ctx context.Context, q dbtx, month string) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, category, category_id, allocated_amount, month, notes, created_at
		FROM budgets
		WHERE month = ?
		ORDER BY id`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.CategoryID,
			&b.AllocatedAmount, &b.Month, &b.Notes, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// SaveBudget inserts or updates a budget allocation.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, budget *model.Budget) (*model.Budget, error) {
	return saveBudget(ctx, s.db, budget)
}

// SaveBudget inserts or updates a budget allocation within a transaction.
func (t *sqliteTransaction) SaveBudget(ctx context.Context, budget *model.Budget) (*model.Budget, error) {
	return saveBudget(ctx, t.tx, budget)
}

func saveBudget(ctx context.Context, q dbtx, budget *model.Budget) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if err := validateString(budget.Category, "category"); err != nil {
		return nil, err
	}
	if err := validateMonth(budget.Month); err != nil {
		return nil, err
	}

	if budget.ID == 0 {
		now := time.Now()
		result, err := q.ExecContext(ctx, `
			INSERT INTO budgets (category, category_id, allocated_amount, month, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			budget.Category, budget.CategoryID, budget.AllocatedAmount,
			budget.Month, budget.Notes, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert budget: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get budget ID: %w", err)
		}
		saved := *budget
		saved.ID = id
		saved.CreatedAt = now
		return &saved, nil
	}

	result, err := q.ExecContext(ctx, `
		UPDATE budgets
		SET category = ?, category_id = ?, allocated_amount = ?, month = ?, notes = ?
		WHERE id = ?`,
		budget.Category, budget.CategoryID, budget.AllocatedAmount,
		budget.Month, budget.Notes, budget.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, fmt.Errorf("budget with ID %d not found", budget.ID)
	}
	return budget, nil
}

// DeleteBudget removes a budget allocation.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, id int64) error {
	return deleteRow(ctx, s.db, "budgets", id)
}

// DeleteBudget removes a budget allocation within a transaction.
func (t *sqliteTransaction) DeleteBudget(ctx context.Context, id int64) error {
	return deleteRow(ctx, t.tx, "budgets", id)
}

// --- expected savings ---

// GetExpectedSavings returns the savings contributions planned for a month.
func (s *SQLiteStorage) GetExpectedSavings(ctx context.Context, month string) ([]model.ExpectedSaving, error) {
	return getExpectedSavings(ctx, s.db, month)
}

// GetExpectedSavings returns a month's planned savings within a transaction.
func (t *sqliteTransaction) GetExpectedSavings(ctx context.Context, month string) ([]model.ExpectedSaving, error) {
	return getExpectedSavings(ctx, t.tx, month)
}

func getExpectedSavings(ctx context.Context, q dbtx, month string) ([]model.ExpectedSaving, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, category, category_id, amount, month, target, is_paid, notes, created_at
		FROM expected_savings
		WHERE month = ?
		ORDER BY id`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query expected savings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var savings []model.ExpectedSaving
	for rows.Next() {
		var sv model.ExpectedSaving
		var target sql.NullFloat64
		if err := rows.Scan(&sv.ID, &sv.Category, &sv.CategoryID, &sv.Amount,
			&sv.Month, &target, &sv.IsPaid, &sv.Notes, &sv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expected saving: %w", err)
		}
		if target.Valid {
			v := target.Float64
			sv.Target = &v
		}
		savings = append(savings, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expected savings: %w", err)
	}
	return savings, nil
}

// SaveExpectedSaving inserts or updates a planned savings contribution.
func (s *SQLiteStorage) SaveExpectedSaving(ctx context.Context, saving *model.ExpectedSaving) (*model.ExpectedSaving, error) {
	return saveExpectedSaving(ctx, s.db, saving)
}

// SaveExpectedSaving inserts or updates a planned savings contribution within a transaction.
func (t *sqliteTransaction) SaveExpectedSaving(ctx context.Context, saving *model.ExpectedSaving) (*model.ExpectedSaving, error) {
	return saveExpectedSaving(ctx, t.tx, saving)
}

func saveExpectedSaving(ctx context.Context, q dbtx, saving *model.ExpectedSaving) (*model.ExpectedSaving, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if saving == nil {
		return nil, fmt.Errorf("%w: saving", ErrNilParameter)
	}
	if err := validateString(saving.Category, "category"); err != nil {
		return nil, err
	}
	if err := validateMonth(saving.Month); err != nil {
		return nil, err
	}

	if saving.ID == 0 {
		now := time.Now()
		result, err := q.ExecContext(ctx, `
			INSERT INTO expected_savings (category, category_id, amount, month, target, is_paid, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			saving.Category, saving.CategoryID, saving.Amount, saving.Month,
			nullFloat(saving.Target), saving.IsPaid, saving.Notes, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert expected saving: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get expected saving ID: %w", err)
		}
		saved := *saving
		saved.ID = id
		saved.CreatedAt = now
		return &saved, nil
	}

	result, err := q.ExecContext(ctx, `
		UPDATE expected_savings
		SET category = ?, category_id = ?, amount = ?, month = ?, target = ?, is_paid = ?, notes = ?
		WHERE id = ?`,
		saving.Category, saving.CategoryID, saving.Amount, saving.Month,
		nullFloat(saving.Target), saving.IsPaid, saving.Notes, saving.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update expected saving: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, fmt.Errorf("expected saving with ID %d not found", saving.ID)
	}
	return saving, nil
}

// DeleteExpectedSaving removes a planned savings contribution.
func (s *SQLiteStorage) DeleteExpectedSaving(ctx context.Context, id int64) error {
	return deleteRow(ctx, s.db, "expected_savings", id)
}

// DeleteExpectedSaving removes a planned savings contribution within a transaction.
func (t *sqliteTransaction) DeleteExpectedSaving(ctx context.Context, id int64) error {
	return deleteRow(ctx, t.tx, "expected_savings", id)
}

// SetExpectedSavingPaid toggles the paid flag.
func (s *SQLiteStorage) SetExpectedSavingPaid(ctx context.Context, id int64, paid bool) error {
	return setPaid(ctx, s.db, "expected_savings", id, paid)
}

// SetExpectedSavingPaid toggles the paid flag within a transaction.
func (t *sqliteTransaction) SetExpectedSavingPaid(ctx context.Context, id int64, paid bool) error {
	return setPaid(ctx, t.tx, "expected_savings", id, paid)
}

// --- shared row helpers ---

// deleteRow removes a row by id from one of the planning tables. The
// table name is always a compile-time constant at call sites.
func deleteRow(ctx context.Context, q dbtx, table string, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("row with ID %d not found in %s", id, table)
	}
	return nil
}

// setPaid toggles the is_paid flag on one of the planning tables.
func setPaid(ctx context.Context, q dbtx, table string, id int64, paid bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, fmt.Sprintf(`UPDATE %s SET is_paid = ? WHERE id = ?`, table), paid, id)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("row with ID %d not found in %s", id, table)
	}
	return nil
}

// --- month rollover ---

// RolloverMonth copies a month's planning records into the following
// month with paid flags reset. Savings targets carry over; everything
// else is a fresh copy for the new cycle.
func (s *SQLiteStorage) RolloverMonth(ctx context.Context, fromMonth string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMonth(fromMonth); err != nil {
		return err
	}

	toMonth, err := model.NextMonthKey(fromMonth)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin rollover: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	copies := []struct {
		query string
		label string
	}{
		{
			label: "expected_incomes",
			query: `INSERT INTO expected_incomes (name, category, category_id, amount, month, is_paid, notes, created_at)
				SELECT name, category, category_id, amount, ?, 0, notes, ? FROM expected_incomes WHERE month = ?`,
		},
		{
			label: "expected_invoices",
			query: `INSERT INTO expected_invoices (name, category, category_id, amount, month, is_paid, notes, created_at)
				SELECT name, category, category_id, amount, ?, 0, notes, ? FROM expected_invoices WHERE month = ?`,
		},
		{
			label: "budgets",
			query: `INSERT INTO budgets (category, category_id, allocated_amount, month, notes, created_at)
				SELECT category, category_id, allocated_amount, ?, notes, ? FROM budgets WHERE month = ?`,
		},
		{
			label: "expected_savings",
			query: `INSERT INTO expected_savings (category, category_id, amount, month, target, is_paid, notes, created_at)
				SELECT category, category_id, amount, ?, target, 0, notes, ? FROM expected_savings WHERE month = ?`,
		},
	}

	for _, c := range copies {
		if _, err := tx.ExecContext(ctx, c.query, toMonth, now, fromMonth); err != nil {
			return fmt.Errorf("failed to roll over %s: %w", c.label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rollover: %w", err)
	}

	slog.Info("rolled over planning records", "from", fromMonth, "to", toMonth)
	return nil
}

// RolloverMonth is not supported inside an explicit transaction; it
// manages its own.
func (t *sqliteTransaction) RolloverMonth(_ context.Context, _ string) error {
	return fmt.Errorf("rollover cannot be run within a transaction")
}
