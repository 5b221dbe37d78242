// Package model defines the core domain records used throughout the application.
package model

import "time"

// CategoryType indicates which section of the plan a category belongs to.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income records.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense records.
	CategoryTypeExpense CategoryType = "expense"
	// CategoryTypeSaving represents categories for savings records.
	CategoryTypeSaving CategoryType = "saving"
)

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeSaving:
		return true
	}
	return false
}

// Category represents a user-defined budgeting category. Names are unique
// per type, not globally: "Extra" can exist as both an income and an
// expense category and the two are distinct.
type Category struct {
	CreatedAt     time.Time
	Name          string
	Color         string
	Emoji         string
	Type          CategoryType
	OrderIndex    *int
	ID            int64
	IsVisible     bool
	BudgetEnabled bool
}

// OrderIndexOrZero returns the display order index, defaulting a missing
// index to 0. The default applies only at the point of use; a nil index
// still means "no index" when computing the next available one.
func (c *Category) OrderIndexOrZero() int {
	if c.OrderIndex == nil {
		return 0
	}
	return *c.OrderIndex
}

// CategoryRef is the pair of addressing fields a record carries for its
// category: the legacy display name and the optional canonical id. An ID of
// zero means the record predates the id migration and the name is the
// source of truth.
type CategoryRef struct {
	Category   string
	CategoryID int64
}
