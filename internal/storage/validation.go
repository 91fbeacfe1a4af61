// Package storage provides the persistence layer for expense types, with
// interchangeable SQLite and Postgres backends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidExpenseType = errors.New("invalid expense type")
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

// validateExpenseType validates an expense type before insertion.
func validateExpenseType(et *model.ExpenseType) error {
	if et == nil {
		return fmt.Errorf("%w: expense type", ErrNilParameter)
	}
	if strings.TrimSpace(et.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidExpenseType)
	}
	if !et.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidExpenseType, et.Category)
	}
	return nil
}
