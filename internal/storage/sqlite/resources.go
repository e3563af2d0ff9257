package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/cory-johannsen/bedrockctl/internal/catalog"
)

// resourceRow mirrors one row of the resources table.
type resourceRow struct {
	ResourceType string         `db:"resource_type"`
	Location     string         `db:"resource_location"`
	Name         string         `db:"name"`
	MaxLevel     sql.NullInt64  `db:"enchantment_max_level"`
	AppliesTo    sql.NullString `db:"enchantment_applies_to"`
}

// ResourceRepository provides reference catalog persistence operations.
type ResourceRepository struct {
	db *sqlx.DB
}

// NewResourceRepository creates a ResourceRepository backed by the given handle.
//
// Precondition: db must be a valid, open database handle.
func NewResourceRepository(db *sqlx.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// List loads every catalog entry in insertion (rowid) order. Load order is
// the order every catalog scan preserves, so it is part of the contract.
//
// Postcondition: Returns entries in stable load order, or a non-nil error.
func (r *ResourceRepository) List(ctx context.Context) ([]catalog.ResourceEntry, error) {
	var rows []resourceRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT resource_type, resource_location, name,
		        enchantment_max_level, enchantment_applies_to
		 FROM resources ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying resources: %w", err)
	}

	entries := make([]catalog.ResourceEntry, 0, len(rows))
	for _, row := range rows {
		cat, err := catalog.ParseCategory(row.ResourceType)
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", row.Location, err)
		}
		entry := catalog.ResourceEntry{
			ID:          row.Location,
			DisplayName: row.Name,
			Category:    cat,
		}
		if row.MaxLevel.Valid {
			entry.MaxLevel = int(row.MaxLevel.Int64)
		}
		if row.AppliesTo.Valid {
			entry.AppliesTo = catalog.ParseAppliesTo(row.AppliesTo.String)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Upsert inserts or replaces a catalog entry keyed by category and id.
//
// Precondition: entry must pass entry.Validate().
// Postcondition: The row exists with the given values.
func (r *ResourceRepository) Upsert(ctx context.Context, entry catalog.ResourceEntry) error {
	var maxLevel sql.NullInt64
	if entry.MaxLevel > 0 {
		maxLevel = sql.NullInt64{Int64: int64(entry.MaxLevel), Valid: true}
	}
	var appliesTo sql.NullString
	if len(entry.AppliesTo) > 0 {
		appliesTo = sql.NullString{String: strings.Join(entry.AppliesTo, ","), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO resources (resource_type, resource_location, name,
		                        enchantment_max_level, enchantment_applies_to)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (resource_type, resource_location) DO UPDATE SET
		   name = excluded.name,
		   enchantment_max_level = excluded.enchantment_max_level,
		   enchantment_applies_to = excluded.enchantment_applies_to`,
		entry.Category.String(), entry.ID, entry.DisplayName, maxLevel, appliesTo)
	if err != nil {
		return fmt.Errorf("upserting resource %q: %w", entry.ID, err)
	}
	return nil
}
