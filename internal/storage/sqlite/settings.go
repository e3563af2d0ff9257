package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Setting keys used by the console.
const (
	SettingDefaultPlayer = "default_player"
	SettingPlayers       = "players"
	SettingTmuxSession   = "tmux_session"
)

// ErrSettingNotFound is returned when a setting lookup yields no results.
var ErrSettingNotFound = errors.New("setting not found")

// SettingRepository provides key/value settings persistence operations.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a SettingRepository backed by the given handle.
//
// Precondition: db must be a valid, open database handle.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves the value for a setting key.
//
// Postcondition: Returns the value or ErrSettingNotFound.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value,
		`SELECT value FROM settings WHERE setting = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSettingNotFound
		}
		return "", fmt.Errorf("querying setting %q: %w", key, err)
	}
	return value, nil
}

// Set inserts or updates a setting value. Every mutation is persisted
// immediately.
//
// Postcondition: Get(key) returns value.
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (setting, value) VALUES (?, ?)
		 ON CONFLICT (setting) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("upserting setting %q: %w", key, err)
	}
	return nil
}

// All returns every setting as a key/value map.
func (r *SettingRepository) All(ctx context.Context) (map[string]string, error) {
	var rows []struct {
		Setting string `db:"setting"`
		Value   string `db:"value"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT setting, value FROM settings`); err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Setting] = row.Value
	}
	return out, nil
}
