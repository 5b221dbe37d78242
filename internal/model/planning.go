package model

import "time"

// ExpectedIncome is a planned income entry for a month, as opposed to a
// realized transaction. Amounts are unsigned; the record's section carries
// the direction.
type ExpectedIncome struct {
	CreatedAt  time.Time
	Name       string
	Category   string
	Month      string // YYYY-MM
	Notes      string
	CategoryID int64
	ID         int64
	Amount     float64
	IsPaid     bool
}

// Ref returns the category addressing fields for resolution.
func (e *ExpectedIncome) Ref() CategoryRef {
	return CategoryRef{Category: e.Category, CategoryID: e.CategoryID}
}

// ExpectedInvoice is a planned bill for a month.
type ExpectedInvoice struct {
	CreatedAt  time.Time
	Name       string
	Category   string
	Month      string
	Notes      string
	CategoryID int64
	ID         int64
	Amount     float64
	IsPaid     bool
}

// Ref returns the category addressing fields for resolution.
func (e *ExpectedInvoice) Ref() CategoryRef {
	return CategoryRef{Category: e.Category, CategoryID: e.CategoryID}
}

// Budget is the amount allocated to an expense category for one month.
// Conceptually there is one budget per (category, month).
type Budget struct {
	CreatedAt       time.Time
	Category        string
	Month           string
	Notes           string
	CategoryID      int64
	ID              int64
	AllocatedAmount float64
}

// Ref returns the category addressing fields for resolution.
func (b *Budget) Ref() CategoryRef {
	return CategoryRef{Category: b.Category, CategoryID: b.CategoryID}
}

// ExpectedSaving is a planned savings contribution for a month. Target is
// the only field that persists across months: it describes the goal the
// contributions build toward, not the month's amount.
type ExpectedSaving struct {
	CreatedAt  time.Time
	Category   string
	Month      string
	Notes      string
	Target     *float64
	CategoryID int64
	ID         int64
	Amount     float64
	IsPaid     bool
}

// Ref returns the category addressing fields for resolution.
func (e *ExpectedSaving) Ref() CategoryRef {
	return CategoryRef{Category: e.Category, CategoryID: e.CategoryID}
}
