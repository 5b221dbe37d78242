// Package storage provides the SQLite persistence layer for the envelope application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/envelope-budget/envelope/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidMonth  = errors.New("invalid month key")
	ErrInvalidRecord = errors.New("invalid record")
	ErrDuplicateName = errors.New("category name already in use for this type")
	ErrUnknownType   = errors.New("unknown category type")
	ErrInvalidStatus = errors.New("invalid transaction status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateMonth ensures a month key parses as YYYY-MM.
func validateMonth(month string) error {
	if _, err := model.ParseMonthKey(month); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return nil
}

// validateCategory validates a category before writing it.
func validateCategory(cat *model.Category) error {
	if cat == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if strings.TrimSpace(cat.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecord)
	}
	if !cat.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, cat.Type)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i := range transactions {
		if err := validateTransaction(&transactions[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRecord)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	switch txn.Status {
	case model.StatusUpcoming, model.StatusPaid:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, txn.Status)
	}
	return nil
}
