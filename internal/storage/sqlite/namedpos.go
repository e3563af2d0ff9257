package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// NamedPosition maps a user-chosen label to three space-joined coordinates.
type NamedPosition struct {
	Name   string `db:"pos_name"`
	Coords string `db:"pos_value"`
}

// ErrPositionExists is returned when adding a position name that is taken.
var ErrPositionExists = errors.New("position already exists")

// ErrPositionNotFound is returned when a position lookup yields no results.
var ErrPositionNotFound = errors.New("position not found")

// PositionRepository provides named position persistence operations.
type PositionRepository struct {
	db *sqlx.DB
}

// NewPositionRepository creates a PositionRepository backed by the given handle.
//
// Precondition: db must be a valid, open database handle.
func NewPositionRepository(db *sqlx.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// List returns all named positions sorted by name.
func (r *PositionRepository) List(ctx context.Context) ([]NamedPosition, error) {
	var positions []NamedPosition
	err := r.db.SelectContext(ctx, &positions,
		`SELECT pos_name, pos_value FROM named_pos ORDER BY pos_name`)
	if err != nil {
		return nil, fmt.Errorf("querying named positions: %w", err)
	}
	return positions, nil
}

// Get retrieves a named position by name.
//
// Postcondition: Returns the position or ErrPositionNotFound.
func (r *PositionRepository) Get(ctx context.Context, name string) (NamedPosition, error) {
	var pos NamedPosition
	err := r.db.GetContext(ctx, &pos,
		`SELECT pos_name, pos_value FROM named_pos WHERE pos_name = ?`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NamedPosition{}, ErrPositionNotFound
		}
		return NamedPosition{}, fmt.Errorf("querying named position %q: %w", name, err)
	}
	return pos, nil
}

// Add inserts a new named position.
//
// Precondition: coords must be three validated, space-joined coordinate tokens.
// Postcondition: The position exists, or ErrPositionExists if the name is taken.
func (r *PositionRepository) Add(ctx context.Context, name, coords string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO named_pos (pos_name, pos_value) VALUES (?, ?)`, name, coords)
	if err != nil {
		if isConstraintError(err) {
			return ErrPositionExists
		}
		return fmt.Errorf("inserting named position %q: %w", name, err)
	}
	return nil
}

// Delete removes a named position by name.
//
// Postcondition: The position no longer exists, or ErrPositionNotFound is
// returned when it never did.
func (r *PositionRepository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM named_pos WHERE pos_name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting named position %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrPositionNotFound
	}
	return nil
}
