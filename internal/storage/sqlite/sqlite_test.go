package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/bedrockctl/internal/catalog"
	"github.com/cory-johannsen/bedrockctl/internal/storage/sqlite"
	"github.com/cory-johannsen/bedrockctl/internal/testutil"
)

func TestStoreHealth(t *testing.T) {
	ts := testutil.NewStore(t)
	assert.NoError(t, ts.Store.Health(context.Background(), 5*time.Second))
}

func TestMigrateIsIdempotent(t *testing.T) {
	ts := testutil.NewStore(t)
	// A second run against an up-to-date schema is not an error.
	assert.NoError(t, sqlite.Migrate(ts.Path))
}

func TestResourceListEmpty(t *testing.T) {
	ts := testutil.NewStore(t)
	entries, err := ts.Resources.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResourceUpsertAndList(t *testing.T) {
	ts := testutil.NewStore(t)
	ctx := context.Background()

	entries := []catalog.ResourceEntry{
		{ID: "stone", DisplayName: "Stone", Category: catalog.CategoryBlock},
		{ID: "sharpness", DisplayName: "Sharpness", Category: catalog.CategoryEnchantment, MaxLevel: 5, AppliesTo: []string{"sword", "axe"}},
		{ID: "speed", DisplayName: "Speed", Category: catalog.CategoryEffect},
	}
	for _, e := range entries {
		require.NoError(t, ts.Resources.Upsert(ctx, e))
	}

	got, err := ts.Resources.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Insertion order is preserved.
	assert.Equal(t, "stone", got[0].ID)
	assert.Equal(t, catalog.CategoryBlock, got[0].Category)
	assert.Zero(t, got[0].MaxLevel)
	assert.Nil(t, got[0].AppliesTo)

	assert.Equal(t, "sharpness", got[1].ID)
	assert.Equal(t, 5, got[1].MaxLevel)
	assert.Equal(t, []string{"sword", "axe"}, got[1].AppliesTo)
}

func TestResourceUpsertReplacesByKey(t *testing.T) {
	ts := testutil.NewStore(t)
	ctx := context.Background()

	require.NoError(t, ts.Resources.Upsert(ctx, catalog.ResourceEntry{
		ID: "stone", DisplayName: "Stone", Category: catalog.CategoryBlock,
	}))
	require.NoError(t, ts.Resources.Upsert(ctx, catalog.ResourceEntry{
		ID: "stone", DisplayName: "Smooth Stone", Category: catalog.CategoryBlock,
	}))

	got, err := ts.Resources.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Smooth Stone", got[0].DisplayName)
}

func TestResourceSameIDAcrossCategories(t *testing.T) {
	ts := testutil.NewStore(t)
	ctx := context.Background()

	// The primary key is (resource_type, resource_location): one id may exist
	// in two categories.
	require.NoError(t, ts.Resources.Upsert(ctx, catalog.ResourceEntry{
		ID: "redstone", DisplayName: "Redstone Block", Category: catalog.CategoryBlock,
	}))
	require.NoError(t, ts.Resources.Upsert(ctx, catalog.ResourceEntry{
		ID: "redstone", DisplayName: "Redstone Dust", Category: catalog.CategoryItem,
	}))

	got, err := ts.Resources.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSettingGetMissing(t *testing.T) {
	ts := testutil.NewStore(t)
	_, err := ts.Settings.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, sqlite.ErrSettingNotFound)
}

func TestSettingSetAndGet(t *testing.T) {
	ts := testutil.NewStore(t)
	ctx := context.Background()

	require.NoError(t, ts.Settings.Set(ctx, sqlite.SettingDefaultPlayer, "steve"))
	got, err := ts.Settings.Get(ctx, sqlite.SettingDefaultPlayer)
	require.NoError(t, err)
	assert.Equal(t, "steve", got)

	// Set overwrites.
	require.NoError(t, ts.Settings.Set(ctx, sqlite.SettingDefaultPlayer, "alex"))
	got, err = ts.Settings.Get(ctx, sqlite.SettingDefaultPlayer)
	require.NoError(t, err)
	assert.Equal(t, "alex", got)
}

func TestSettingAll(t *testing.T) {
	ts := testutil.NewStore(t)
	ctx := context.Background()

	require.NoError(t, ts.Settings.Set(ctx, sqlite.SettingDefaultPlayer, "steve"))
	require.NoError(t, ts.Settings.Set(ctx, sqlite.SettingTmuxSession, "bedrock"))

	all, err := ts.Settings.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		sqlite.SettingDefaultPlayer: "steve",
		sqlite.SettingTmuxSession:   "bedrock",
	}, all)
}

func TestPositionLifecycle(t *testing.T) {
	ts := testutil.NewStore(t)
	ctx := context.Background()

	positions, err := ts.Positions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, positions)

	require.NoError(t, ts.Positions.Add(ctx, "home", "100 64 -200"))

	pos, err := ts.Positions.Get(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, sqlite.NamedPosition{Name: "home", Coords: "100 64 -200"}, pos)

	require.NoError(t, ts.Positions.Delete(ctx, "home"))
	_, err = ts.Positions.Get(ctx, "home")
	assert.ErrorIs(t, err, sqlite.ErrPositionNotFound)
}

func TestPositionAddDuplicate(t *testing.T) {
	ts := testutil.NewStore(t)
	ctx := context.Background()

	require.NoError(t, ts.Positions.Add(ctx, "home", "1 2 3"))
	err := ts.Positions.Add(ctx, "home", "4 5 6")
	assert.ErrorIs(t, err, sqlite.ErrPositionExists)

	// The original value survives the rejected insert.
	pos, err := ts.Positions.Get(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, "1 2 3", pos.Coords)
}

func TestPositionDeleteMissing(t *testing.T) {
	ts := testutil.NewStore(t)
	err := ts.Positions.Delete(context.Background(), "nowhere")
	assert.ErrorIs(t, err, sqlite.ErrPositionNotFound)
}

func TestPositionListSortedByName(t *testing.T) {
	ts := testutil.NewStore(t)
	ctx := context.Background()

	require.NoError(t, ts.Positions.Add(ctx, "spawn", "0 64 0"))
	require.NoError(t, ts.Positions.Add(ctx, "base", "10 70 -30"))
	require.NoError(t, ts.Positions.Add(ctx, "mine", "-200 12 80"))

	positions, err := ts.Positions.List(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 3)
	assert.Equal(t, "base", positions[0].Name)
	assert.Equal(t, "mine", positions[1].Name)
	assert.Equal(t, "spawn", positions[2].Name)
}

func TestCommandUpsertAndList(t *testing.T) {
	ts := testutil.NewStore(t)
	ctx := context.Background()

	require.NoError(t, ts.Commands.Upsert(ctx, sqlite.ServerCommand{Name: "say", Description: "Broadcast a message"}))
	require.NoError(t, ts.Commands.Upsert(ctx, sqlite.ServerCommand{Name: "list", Description: "List players"}))
	require.NoError(t, ts.Commands.Upsert(ctx, sqlite.ServerCommand{Name: "say", Description: "Broadcast a message to all players"}))

	commands, err := ts.Commands.List(ctx)
	require.NoError(t, err)
	require.Len(t, commands, 2)
	assert.Equal(t, "list", commands[0].Name)
	assert.Equal(t, "say", commands[1].Name)
	assert.Equal(t, "Broadcast a message to all players", commands[1].Description)
}
