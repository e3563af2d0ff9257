package importer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/bedrockctl/internal/storage/sqlite"
)

// Importer writes seed data into the store. Every write is an upsert, so
// re-running an import is idempotent.
type Importer struct {
	resources *sqlite.ResourceRepository
	commands  *sqlite.CommandRepository
	settings  *sqlite.SettingRepository
	logger    *zap.Logger
}

// New constructs an Importer over the given repositories.
//
// Precondition: all arguments must be non-nil.
func New(
	resources *sqlite.ResourceRepository,
	commands *sqlite.CommandRepository,
	settings *sqlite.SettingRepository,
	logger *zap.Logger,
) *Importer {
	return &Importer{
		resources: resources,
		commands:  commands,
		settings:  settings,
		logger:    logger,
	}
}

// Run upserts all seed data into the store.
//
// Postcondition: Every entry, command, and setting in seed exists in the
// store, or an error names the first failing row.
func (imp *Importer) Run(ctx context.Context, seed *SeedData) error {
	start := time.Now()

	for _, entry := range seed.Entries {
		if err := imp.resources.Upsert(ctx, entry); err != nil {
			return fmt.Errorf("importing resource %q: %w", entry.ID, err)
		}
	}
	for _, cmd := range seed.Commands {
		if err := imp.commands.Upsert(ctx, cmd); err != nil {
			return fmt.Errorf("importing command %q: %w", cmd.Name, err)
		}
	}
	for key, value := range seed.Settings {
		if err := imp.settings.Set(ctx, key, value); err != nil {
			return fmt.Errorf("importing setting %q: %w", key, err)
		}
	}

	imp.logger.Info("seed import complete",
		zap.Int("resources", len(seed.Entries)),
		zap.Int("commands", len(seed.Commands)),
		zap.Int("settings", len(seed.Settings)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
