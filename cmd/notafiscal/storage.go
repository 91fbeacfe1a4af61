package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Garcia3528/notalfiscalIA/internal/service"
	"github.com/Garcia3528/notalfiscalIA/internal/storage"
)

// createStorage opens the configured backend and brings its schema up to
// date. A postgres:// DSN selects the Postgres store, anything else is
// treated as a SQLite file path.
func createStorage(ctx context.Context) (service.TypeStore, error) {
	dsn := viper.GetString("storage.dsn")
	if dsn == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dsn = filepath.Join(home, ".local", "share", "notafiscal", "notafiscal.db")
	}

	var store service.TypeStore
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		pg, err := storage.NewPostgresStorage(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		store = pg
	} else {
		lite, err := storage.NewSQLiteStorage(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		store = lite
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}
