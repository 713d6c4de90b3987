// Package database provides embedded database connection management and utilities.
package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Config holds database configuration settings.
type Config struct {
	// Path is the SQLite database file path. ":memory:" opens an in-memory
	// database that lives for the duration of the connection.
	Path string
}

// Connect opens the embedded SQLite database with WAL mode, a busy timeout,
// synchronous NORMAL and foreign keys enabled. The connection pool is limited
// to a single connection so that writes never race the single-writer lock.
func Connect(cfg Config) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		cfg.Path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
