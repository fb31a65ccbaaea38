// Package storage provides the SQLite persistence layer for the fintracker backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/fintracker/internal/common"
	"github.com/Veraticus/fintracker/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidDateRange   = errors.New("start date must be before end date")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidGoal        = errors.New("invalid savings goal")
	ErrUnknownCategory    = errors.New("unknown category")
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

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

// validationError wraps sentinel with a field-level ValidationError so the
// server can answer 400 while callers can still match the sentinel.
func validationError(sentinel error, field, msg string) error {
	return fmt.Errorf("%w: %w", sentinel, common.NewValidationError(field, msg))
}

// validateCategory checks the fields the schema relies on. Names may be empty.
func validateCategory(cat model.Category) error {
	if !cat.Type.Valid() {
		return validationError(ErrInvalidCategory, "type", "unknown category type")
	}
	if cat.Color != "" && !colorPattern.MatchString(cat.Color) {
		return validationError(ErrInvalidCategory, "color", "must look like #RRGGBB")
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn model.Transaction) error {
	if !txn.Type.Valid() {
		return validationError(ErrInvalidTransaction, "type", "unknown transaction type")
	}
	if txn.Amount <= 0 {
		return validationError(ErrInvalidTransaction, "amount", "must be positive")
	}
	if txn.Date.IsZero() {
		return validationError(ErrInvalidTransaction, "date", "missing date")
	}
	if txn.CategoryID <= 0 {
		return validationError(ErrInvalidTransaction, "categoryId", "missing category")
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}
	for i, txn := range transactions {
		if err := validateTransaction(txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateGoal validates a savings goal.
func validateGoal(goal model.SavingsGoal) error {
	if strings.TrimSpace(goal.Name) == "" {
		return validationError(ErrInvalidGoal, "name", "missing name")
	}
	if goal.TargetAmount <= 0 {
		return validationError(ErrInvalidGoal, "targetAmount", "must be positive")
	}
	if goal.CurrentAmount < 0 {
		return validationError(ErrInvalidGoal, "currentAmount", "cannot be negative")
	}
	return nil
}
