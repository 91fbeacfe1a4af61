package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver

	"github.com/Garcia3528/notalfiscalIA/internal/common"
	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

// PostgresStorage implements service.TypeStore on Postgres, for deployments
// where several machines share one catalog.
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage connects to the Postgres database at dsn.
func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	if err := validateString(dsn, "dsn"); err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStorage{db: db}, nil
}

// NewPostgresStorageFromDB wraps an existing connection. Used by tests.
func NewPostgresStorageFromDB(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// Close closes the database connection.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the schema if missing. An advisory lock serializes
// concurrent startups against the same database.
func (s *PostgresStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(7453528)); err != nil {
		return fmt.Errorf("failed to acquire schema lock: %w", err)
	}

	const ddl = `
CREATE TABLE IF NOT EXISTS expense_types (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_expense_types_name_ci ON expense_types (LOWER(name));
CREATE INDEX IF NOT EXISTS idx_expense_types_category ON expense_types (category);
`
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to execute schema ddl: %w", err)
	}

	for _, seed := range defaultExpenseTypes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expense_types (name, description, category) VALUES ($1, $2, $3)
			 ON CONFLICT (LOWER(name)) DO NOTHING`,
			seed.name, seed.description, string(seed.category)); err != nil {
			return fmt.Errorf("failed to seed type %q: %w", seed.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// GetExpenseTypeByName returns the active type whose name matches
// case-insensitively, or nil when there is none.
func (s *PostgresStorage) GetExpenseTypeByName(ctx context.Context, name string) (*model.ExpenseType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseTypeColumns + ` FROM expense_types
		WHERE LOWER(name) = LOWER($1) AND active = TRUE`

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
func (s *PostgresStorage) GetExpenseTypesByCategory(ctx context.Context, category model.Category) ([]model.ExpenseType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseTypeColumns + ` FROM expense_types
		WHERE category = $1 AND active = TRUE
		ORDER BY name`

	return s.queryExpenseTypes(ctx, query, string(category))
}

// ListExpenseTypes returns types ordered by category then name.
func (s *PostgresStorage) ListExpenseTypes(ctx context.Context, activeOnly bool) ([]model.ExpenseType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseTypeColumns + ` FROM expense_types`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY category, name`

	return s.queryExpenseTypes(ctx, query)
}

// SearchExpenseTypes matches name, description or category by substring,
// case-insensitively.
func (s *PostgresStorage) SearchExpenseTypes(ctx context.Context, term string) ([]model.ExpenseType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(term, "term"); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseTypeColumns + ` FROM expense_types
		WHERE (name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1) AND active = TRUE
		ORDER BY category, name`

	return s.queryExpenseTypes(ctx, query, "%"+term+"%")
}

// CreateExpenseType inserts a new type. A case-insensitive name collision
// returns common.ErrDuplicateEntry.
func (s *PostgresStorage) CreateExpenseType(ctx context.Context, et *model.ExpenseType) (*model.ExpenseType, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateExpenseType(et); err != nil {
		return nil, err
	}

	query := `INSERT INTO expense_types (name, description, category, active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, $4, $4)
		RETURNING id`

	now := time.Now().UTC()
	var id int64
	err := s.db.QueryRowContext(ctx, query, et.Name, et.Description, string(et.Category), now).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("expense type %q: %w", et.Name, common.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create expense type: %w", err)
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
func (s *PostgresStorage) SetExpenseTypeActive(ctx context.Context, id int64, active bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	query := `UPDATE expense_types SET active = $2, updated_at = $3 WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, active, time.Now().UTC())
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
func (s *PostgresStorage) ExpenseCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT DISTINCT category FROM expense_types WHERE active = TRUE ORDER BY category`

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

func (s *PostgresStorage) queryExpenseTypes(ctx context.Context, query string, args ...any) ([]model.ExpenseType, error) {
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
