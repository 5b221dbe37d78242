package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// TransactionStatus indicates whether a transaction has cleared.
type TransactionStatus string

const (
	// StatusUpcoming marks a transaction that is scheduled but not yet paid.
	StatusUpcoming TransactionStatus = "upcoming"
	// StatusPaid marks a realized transaction.
	StatusPaid TransactionStatus = "paid"
)

// SourceType indicates which expected item a transaction realizes, if any.
type SourceType string

const (
	// SourceIncome marks a transaction realizing an expected income.
	SourceIncome SourceType = "income"
	// SourceInvoice marks a transaction realizing an expected invoice.
	SourceInvoice SourceType = "invoice"
	// SourceSavings marks a contribution to or withdrawal from a savings category.
	SourceSavings SourceType = "savings"
	// SourceManual marks a transaction entered directly.
	SourceManual SourceType = "manual"
)

// Transaction represents a realized cash movement. The sign of Amount
// encodes direction: positive is income, negative is expense. Date and
// amount are immutable once paid by convention, not enforcement.
type Transaction struct {
	Date              time.Time
	CreatedAt         time.Time
	ID                string
	Description       string
	Category          string
	Hash              string
	Status            TransactionStatus
	SourceType        SourceType
	SavingsAmountUsed *float64
	CategoryID        int64
	SourceID          int64
	Amount            float64
}

// Ref returns the category addressing fields for resolution.
func (t *Transaction) Ref() CategoryRef {
	return CategoryRef{Category: t.Category, CategoryID: t.CategoryID}
}

// SavingsUsed returns the portion of an expense covered by a savings
// balance, defaulting a missing value to 0 at the point of use.
func (t *Transaction) SavingsUsed() float64 {
	if t.SavingsAmountUsed == nil {
		return 0
	}
	return *t.SavingsAmountUsed
}

// GenerateHash creates a content hash for duplicate detection on import.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.Category)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
