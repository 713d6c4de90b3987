// Package testutil provides testing utilities for database integration tests.
//
// Database Setup:
//
//	db := testutil.SetupDB(t)
//
// SetupDB opens a fresh temporary SQLite database, applies all embedded
// migrations, and registers cleanup with t.Cleanup, so every test runs
// against its own fully-migrated store.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aikey/vault/internal/database"
)

// SetupDB creates a temporary SQLite database and runs all migrations.
// The database file lives in t.TempDir and is removed when the test finishes.
func SetupDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "vault_test.db")

	db, err := database.Connect(database.Config{Path: dbPath})
	require.NoError(t, err, "failed to open sqlite database")

	err = database.Migrate(db)
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		require.NoError(t, db.Close(), "failed to close database connection")
	})

	return db
}

// SeedProfile inserts a minimal profile row for tests that need to satisfy
// foreign references from keys, bindings or logs.
func SeedProfile(t *testing.T, db *sql.DB, id, name string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO profiles (id, name, color, icon, is_default, is_built_in, created_at, updated_at, key_count, last_used)
		 VALUES (?, ?, '#1976d2', '👤', 0, 0, 0, 0, 0, 0)`,
		id, name,
	)
	require.NoError(t, err, "failed to seed profile")
}
