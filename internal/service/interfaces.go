// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/envelope-budget/envelope/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// EndDate is inclusive; EndExclusive compares strictly, which is what
// month scoping needs since stored dates keep their time of day.
type TransactionFilter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	EndExclusive *time.Time
	Status       model.TransactionStatus
	Limit        int
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string, categoryType model.CategoryType) (*model.Category, error)
	CreateCategory(ctx context.Context, cat *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, cat *model.Category) error
	SetCategoryVisibility(ctx context.Context, id int64, visible bool) error
	SetCategoryOrder(ctx context.Context, id int64, orderIndex int) error

	// Planning operations, all scoped to a YYYY-MM month key
	GetExpectedIncomes(ctx context.Context, month string) ([]model.ExpectedIncome, error)
	SaveExpectedIncome(ctx context.Context, income *model.ExpectedIncome) (*model.ExpectedIncome, error)
	DeleteExpectedIncome(ctx context.Context, id int64) error
	SetExpectedIncomePaid(ctx context.Context, id int64, paid bool) error

	GetExpectedInvoices(ctx context.Context, month string) ([]model.ExpectedInvoice, error)
	SaveExpectedInvoice(ctx context.Context, invoice *model.ExpectedInvoice) (*model.ExpectedInvoice, error)
	DeleteExpectedInvoice(ctx context.Context, id int64) error
	SetExpectedInvoicePaid(ctx context.Context, id int64, paid bool) error

	GetBudgets(ctx context.Context, month string) ([]model.Budget, error)
	SaveBudget(ctx context.Context, budget *model.Budget) (*model.Budget, error)
	DeleteBudget(ctx context.Context, id int64) error

	GetExpectedSavings(ctx context.Context, month string) ([]model.ExpectedSaving, error)
	SaveExpectedSaving(ctx context.Context, saving *model.ExpectedSaving) (*model.ExpectedSaving, error)
	DeleteExpectedSaving(ctx context.Context, id int64) error
	SetExpectedSavingPaid(ctx context.Context, id int64, paid bool) error

	// RolloverMonth copies a month's planning records into the next
	// month with paid flags reset. Savings targets carry over.
	RolloverMonth(ctx context.Context, fromMonth string) error

	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionsByMonth(ctx context.Context, month string) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	SetTransactionStatus(ctx context.Context, id string, status model.TransactionStatus) error
	DeleteTransaction(ctx context.Context, id string) error

	// SavingsBalances returns the running balance per savings category:
	// contributions minus withdrawals across all paid transactions.
	SavingsBalances(ctx context.Context) (map[string]float64, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction. It exposes the same
// operations as Storage so callers can run a batch atomically.
type Transaction interface {
	Commit() error
	Rollback() error
	Storage
}
