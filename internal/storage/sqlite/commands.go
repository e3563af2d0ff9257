package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ServerCommand is one row of the Bedrock server command reference. The table
// is informational: it feeds tab completion for the sc command.
type ServerCommand struct {
	Name        string `db:"command"`
	Description string `db:"description"`
}

// CommandRepository provides server command reference persistence operations.
type CommandRepository struct {
	db *sqlx.DB
}

// NewCommandRepository creates a CommandRepository backed by the given handle.
//
// Precondition: db must be a valid, open database handle.
func NewCommandRepository(db *sqlx.DB) *CommandRepository {
	return &CommandRepository{db: db}
}

// List returns the command reference sorted by command name.
func (r *CommandRepository) List(ctx context.Context) ([]ServerCommand, error) {
	var commands []ServerCommand
	err := r.db.SelectContext(ctx, &commands,
		`SELECT command, description FROM commands ORDER BY command`)
	if err != nil {
		return nil, fmt.Errorf("querying server commands: %w", err)
	}
	return commands, nil
}

// Upsert inserts or updates a command reference row.
//
// Precondition: cmd.Name must be non-empty.
func (r *CommandRepository) Upsert(ctx context.Context, cmd ServerCommand) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO commands (command, description) VALUES (?, ?)
		 ON CONFLICT (command) DO UPDATE SET description = excluded.description`,
		cmd.Name, cmd.Description)
	if err != nil {
		return fmt.Errorf("upserting server command %q: %w", cmd.Name, err)
	}
	return nil
}
