// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

// TypeStore defines the contract for expense-type persistence. Both the
// SQLite and Postgres backends implement it; the classifier never knows
// which one is active.
type TypeStore interface {
	// GetExpenseTypeByName returns the active type whose name matches
	// case-insensitively, or nil when there is none.
	GetExpenseTypeByName(ctx context.Context, name string) (*model.ExpenseType, error)
	// GetExpenseTypesByCategory returns active types in a category, ordered by name.
	GetExpenseTypesByCategory(ctx context.Context, category model.Category) ([]model.ExpenseType, error)
	// ListExpenseTypes returns types ordered by category then name.
	ListExpenseTypes(ctx context.Context, activeOnly bool) ([]model.ExpenseType, error)
	// SearchExpenseTypes matches name, description or category by substring.
	SearchExpenseTypes(ctx context.Context, term string) ([]model.ExpenseType, error)
	// CreateExpenseType inserts a new type. A case-insensitive name collision
	// returns common.ErrDuplicateEntry.
	CreateExpenseType(ctx context.Context, et *model.ExpenseType) (*model.ExpenseType, error)
	// SetExpenseTypeActive toggles the active flag.
	SetExpenseTypeActive(ctx context.Context, id int64, active bool) error
	// ExpenseCategories returns the distinct categories with active types.
	ExpenseCategories(ctx context.Context) ([]model.Category, error)

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
