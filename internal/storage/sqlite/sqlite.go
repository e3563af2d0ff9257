// Package sqlite provides SQLite persistence using sqlx over the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/bedrockctl/internal/config"
)

// Store wraps a SQLite database handle with health-check and lifecycle methods.
type Store struct {
	db *sqlx.DB
}

// Open opens the SQLite database file from the given configuration.
//
// Precondition: cfg.Path must be non-empty.
// Postcondition: Returns a connected Store or a non-nil error. The store is
// ready for queries upon successful return.
func Open(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	db, err := sqlx.Open("sqlite", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single writer avoids SQLITE_BUSY; the console is single-flow anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Store{db: db}, nil
}

// Health checks that the database is reachable within the given timeout.
//
// Precondition: The store must not be closed.
// Postcondition: Returns nil if the database responds within the timeout.
func (s *Store) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
//
// Postcondition: The store is no longer usable after calling Close.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying sqlx.DB for use by repositories.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// isConstraintError checks if an error is a SQLite uniqueness violation.
func isConstraintError(err error) bool {
	// modernc.org/sqlite errors expose the extended result code;
	// 1555 is SQLITE_CONSTRAINT_PRIMARYKEY, 2067 is SQLITE_CONSTRAINT_UNIQUE.
	var se interface{ Code() int }
	if errors.As(err, &se) {
		return se.Code() == 1555 || se.Code() == 2067
	}
	return false
}
