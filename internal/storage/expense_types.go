package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/Garcia3528/notalfiscalIA/internal/common"
	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

const expenseTypeColumns = "id, name, description, category, active, created_at, updated_at"

func scanExpenseType(row interface{ Scan(...any) error }) (*model.ExpenseType, error) {
	var et model.ExpenseType
	err := row.Scan(&et.ID, &et.Name, &et.Description, &et.Category, &et.Active, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &et, nil
}

// GetExpenseTypeByName returns the active type whose name matches
// case-insensitively, or nil when there is none.
func (s *SQLiteStorage) GetExpenseTypeByName(ctx context.Context, name string) (*model.ExpenseType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	// The name column is COLLATE NOCASE, so = is already case-insensitive.
	query := `SELECT ` + expenseTypeColumns + ` FROM expense_types WHERE name = ? AND active = 1`

	et, err := scanExpenseType(s.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense type: %w", err)
	}
	return et, nil
}

// GetExpenseTypesByCategory returns active types in a category, ordered by name.
func (s *SQLiteStorage) GetExpenseTypesByCategory(ctx context.Context, category model.Category) ([]model.ExpenseType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseTypeColumns + ` FROM expense_types
		WHERE category = ? AND active = 1
		ORDER BY name`

	return s.queryExpenseTypes(ctx, query, string(category))
}

// ListExpenseTypes returns types ordered by category then name.
func (s *SQLiteStorage) ListExpenseTypes(ctx context.Context, activeOnly bool) ([]model.ExpenseType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseTypeColumns + ` FROM expense_types`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY category, name`

	return s.queryExpenseTypes(ctx, query)
}

// SearchExpenseTypes matches name, description or category by substring,
// case-insensitively.
func (s *SQLiteStorage) SearchExpenseTypes(ctx context.Context, term string) ([]model.ExpenseType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(term, "term"); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseTypeColumns + ` FROM expense_types
		WHERE (name LIKE ? OR description LIKE ? OR category LIKE ?) AND active = 1
		ORDER BY category, name`

	pattern := "%" + term + "%"
	return s.queryExpenseTypes(ctx, query, pattern, pattern, pattern)
}

// CreateExpenseType inserts a new type. A case-insensitive name collision
// returns common.ErrDuplicateEntry.
func (s *SQLiteStorage) CreateExpenseType(ctx context.Context, et *model.ExpenseType) (*model.ExpenseType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateExpenseType(et); err != nil {
		return nil, err
	}

	query := `INSERT INTO expense_types (name, description, category, active, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)`

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, query, et.Name, et.Description, string(et.Category), now, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, fmt.Errorf("expense type %q: %w", et.Name, common.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create expense type: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get expense type ID: %w", err)
	}

	created := *et
	created.ID = id
	created.Active = true
	created.CreatedAt = now
	created.UpdatedAt = now

	slog.Info("created expense type", "name", created.Name, "category", created.Category, "id", id)
	return &created, nil
}

// SetExpenseTypeActive toggles the active flag.
func (s *SQLiteStorage) SetExpenseTypeActive(ctx context.Context, id int64, active bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	query := `UPDATE expense_types SET active = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, active, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update expense type: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense type %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// ExpenseCategories returns the distinct categories with active types.
func (s *SQLiteStorage) ExpenseCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT DISTINCT category FROM expense_types WHERE active = 1 ORDER BY category`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (s *SQLiteStorage) queryExpenseTypes(ctx context.Context, query string, args ...any) ([]model.ExpenseType, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense types: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var types []model.ExpenseType
	for rows.Next() {
		et, err := scanExpenseType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense type: %w", err)
		}
		types = append(types, *et)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense types: %w", err)
	}
	return types, nil
}
