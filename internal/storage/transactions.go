package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/envelope-budget/envelope/internal/model"
	"github.com/envelope-budget/envelope/internal/service"
)

const transactionColumns = `id, hash, amount, description, category, category_id, date, status, source_type, source_id, savings_amount_used, created_at`

func scanTransaction(row interface{ Scan(...any) error }) (*model.Transaction, error) {
	var txn model.Transaction
	var used sql.NullFloat64
	if err := row.Scan(&txn.ID, &txn.Hash, &txn.Amount, &txn.Description,
		&txn.Category, &txn.CategoryID, &txn.Date, &txn.Status,
		&txn.SourceType, &txn.SourceID, &used, &txn.CreatedAt); err != nil {
		return nil, err
	}
	if used.Valid {
		v := used.Float64
		txn.SavingsAmountUsed = &v
	}
	return &txn, nil
}

// SaveTransactions inserts transactions, skipping rows whose content
// hash already exists so repeated imports stay idempotent.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	return saveTransactions(ctx, s.db, transactions)
}

// SaveTransactions inserts transactions within a transaction.
func (t *sqliteTransaction) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	return saveTransactions(ctx, t.tx, transactions)
}

func saveTransactions(ctx context.Context, q dbtx, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	inserted := 0
	for i := range transactions {
		txn := &transactions[i]
		hash := txn.Hash
		if hash == "" {
			hash = txn.GenerateHash()
		}

		result, err := q.ExecContext(ctx, `
			INSERT OR IGNORE INTO transactions
				(id, hash, amount, description, category, category_id, date, status, source_type, source_id, savings_amount_used, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			txn.ID, hash, txn.Amount, txn.Description, txn.Category, txn.CategoryID,
			txn.Date, txn.Status, txn.SourceType, txn.SourceID,
			nullFloat(txn.SavingsAmountUsed), time.Now())
		if err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	slog.Debug("saved transactions", "given", len(transactions), "inserted", inserted)
	return nil
}

// GetTransactions returns transactions matching the filter, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	return getTransactions(ctx, s.db, filter)
}

// GetTransactions returns matching transactions within a transaction.
func (t *sqliteTransaction) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	return getTransactions(ctx, t.tx, filter)
}

func getTransactions(ctx context.Context, q dbtx, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := make([]any, 0, 4)

	if filter.StartDate != nil {
		query += ` AND date >= ?`
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND date <= ?`
		args = append(args, *filter.EndDate)
	}
	if filter.EndExclusive != nil {
		query += ` AND date < ?`
		args = append(args, *filter.EndExclusive)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY date DESC, id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txns, nil
}

// GetTransactionsByMonth returns all transactions dated within a month.
func (s *SQLiteStorage) GetTransactionsByMonth(ctx context.Context, month string) ([]model.Transaction, error) {
	return getTransactionsByMonth(ctx, s.db, month)
}

// GetTransactionsByMonth returns a month's transactions within a transaction.
func (t *sqliteTransaction) GetTransactionsByMonth(ctx context.Context, month string) ([]model.Transaction, error) {
	return getTransactionsByMonth(ctx, t.tx, month)
}

func getTransactionsByMonth(ctx context.Context, q dbtx, month string) ([]model.Transaction, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	start, end, err := model.MonthBounds(month)
	if err != nil {
		return nil, err
	}
	// Cover the whole last day but compare strictly against midnight of
	// the next month, so a transaction dated exactly on that boundary
	// lands in its own month.
	endExclusive := end.AddDate(0, 0, 1)

	return getTransactions(ctx, q, service.TransactionFilter{
		StartDate:    &start,
		EndExclusive: &endExclusive,
	})
}

// GetTransactionByID returns a transaction by id, or nil when absent.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	return getTransactionByID(ctx, s.db, id)
}

// GetTransactionByID returns a transaction by id within a transaction.
func (t *sqliteTransaction) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	return getTransactionByID(ctx, t.tx, id)
}

func getTransactionByID(ctx context.Context, q dbtx, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	txn, err := scanTransaction(q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return txn, nil
}

// SetTransactionStatus moves a transaction between upcoming and paid.
func (s *SQLiteStorage) SetTransactionStatus(ctx context.Context, id string, status model.TransactionStatus) error {
	return setTransactionStatus(ctx, s.db, id, status)
}

// SetTransactionStatus updates status within a transaction.
func (t *sqliteTransaction) SetTransactionStatus(ctx context.Context, id string, status model.TransactionStatus) error {
	return setTransactionStatus(ctx, t.tx, id, status)
}

func setTransactionStatus(ctx context.Context, q dbtx, id string, status model.TransactionStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	switch status {
	case model.StatusUpcoming, model.StatusPaid:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	result, err := q.ExecContext(ctx, `UPDATE transactions SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}
	return nil
}

// DeleteTransaction removes a transaction.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	return deleteTransaction(ctx, s.db, id)
}

// DeleteTransaction removes a transaction within a transaction.
func (t *sqliteTransaction) DeleteTransaction(ctx context.Context, id string) error {
	return deleteTransaction(ctx, t.tx, id)
}

func deleteTransaction(ctx context.Context, q dbtx, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}
	return nil
}

// SavingsBalances computes the running balance per savings category:
// the signed sum of all paid savings movements, keyed by category name.
// Contributions are positive, withdrawals negative. This is the ledger
// the reporting layer feeds into the savings total.
func (s *SQLiteStorage) SavingsBalances(ctx context.Context) (map[string]float64, error) {
	return savingsBalances(ctx, s.db)
}

// SavingsBalances computes savings balances within a transaction.
func (t *sqliteTransaction) SavingsBalances(ctx context.Context) (map[string]float64, error) {
	return savingsBalances(ctx, t.tx)
}

func savingsBalances(ctx context.Context, q dbtx) (map[string]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT category, SUM(amount)
		FROM transactions
		WHERE source_type = ? AND status = ?
		GROUP BY category`,
		model.SourceSavings, model.StatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings balances: %w", err)
	}
	defer func() { _ = rows.Close() }()

	balances := make(map[string]float64)
	for rows.Next() {
		var category string
		var balance float64
		if err := rows.Scan(&category, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan savings balance: %w", err)
		}
		balances[category] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings balances: %w", err)
	}
	return balances, nil
}
