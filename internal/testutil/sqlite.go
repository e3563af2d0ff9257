// Package testutil provides test helpers: a migrated temp-file SQLite store
// and a recording transport.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cory-johannsen/bedrockctl/internal/config"
	"github.com/cory-johannsen/bedrockctl/internal/storage/sqlite"
)

// TestStore wraps a migrated temp-file SQLite store with its repositories.
type TestStore struct {
	Store     *sqlite.Store
	Resources *sqlite.ResourceRepository
	Settings  *sqlite.SettingRepository
	Positions *sqlite.PositionRepository
	Commands  *sqlite.CommandRepository
	Path      string
}

// NewStore creates a migrated SQLite store in a test temp directory.
//
// Postcondition: Returns an open store at the latest schema version, cleaned
// up with the test, or fails the test.
func NewStore(t *testing.T) *TestStore {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	path := filepath.Join(t.TempDir(), "data.sqlite")
	if err := sqlite.Migrate(path); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	store, err := sqlite.Open(ctx, config.StorageConfig{Path: path})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	t.Logf("test store ready [%s]", time.Since(start))

	return &TestStore{
		Store:     store,
		Resources: sqlite.NewResourceRepository(store.DB()),
		Settings:  sqlite.NewSettingRepository(store.DB()),
		Positions: sqlite.NewPositionRepository(store.DB()),
		Commands:  sqlite.NewCommandRepository(store.DB()),
		Path:      path,
	}
}
