package terminal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/bedrockctl/internal/catalog"
	"github.com/cory-johannsen/bedrockctl/internal/console/command"
	"github.com/cory-johannsen/bedrockctl/internal/storage/sqlite"
	"github.com/cory-johannsen/bedrockctl/internal/testutil"
)

func testCompleter(t *testing.T) (*Completer, *testutil.TestStore) {
	t.Helper()
	cat := catalog.New([]catalog.ResourceEntry{
		{ID: "stone", DisplayName: "Stone", Category: catalog.CategoryBlock},
		{ID: "cobblestone", DisplayName: "Cobblestone", Category: catalog.CategoryBlock},
		{ID: "diamond_sword", DisplayName: "Diamond Sword", Category: catalog.CategoryItem},
		{ID: "speed", DisplayName: "Speed", Category: catalog.CategoryEffect},
		{ID: "sharpness", DisplayName: "Sharpness", Category: catalog.CategoryEnchantment, MaxLevel: 3, AppliesTo: []string{"sword"}},
	})
	store := testutil.NewStore(t)
	serverCommands := []sqlite.ServerCommand{
		{Name: "list", Description: "List players"},
		{Name: "say", Description: "Broadcast"},
	}
	return NewCompleter(cat, command.DefaultRegistry(), store.Settings, store.Positions, serverCommands), store
}

func TestCompleteIgnoresNonTab(t *testing.T) {
	c, _ := testCompleter(t)
	_, _, ok := c.Complete("hel", 3, 'x')
	assert.False(t, ok)
}

func TestCompleteUniqueCommandAddsSpace(t *testing.T) {
	c, _ := testCompleter(t)
	line, pos, ok := c.Complete("hel", 3, '\t')
	require.True(t, ok)
	assert.Equal(t, "help ", line)
	assert.Equal(t, 5, pos)
}

func TestCompleteExtendsToCommonPrefix(t *testing.T) {
	c, _ := testCompleter(t)
	// "effect" and "effectclear" share the prefix "effect".
	line, pos, ok := c.Complete("eff", 3, '\t')
	require.True(t, ok)
	assert.Equal(t, "effect", line)
	assert.Equal(t, 6, pos)
}

func TestCompleteNoMatch(t *testing.T) {
	c, _ := testCompleter(t)
	_, _, ok := c.Complete("zzz", 3, '\t')
	assert.False(t, ok)
}

func TestCompleteNoProgressOnAmbiguousPrefix(t *testing.T) {
	c, _ := testCompleter(t)
	// Already at the common prefix of effect/effectclear.
	_, _, ok := c.Complete("effect", 6, '\t')
	assert.False(t, ok)
}

func TestCompleteItemSlot(t *testing.T) {
	c, _ := testCompleter(t)
	line, _, ok := c.Complete("give steve diam", 15, '\t')
	require.True(t, ok)
	assert.Equal(t, "give steve diamond_sword ", line)
}

func TestCompleteItemSlotCaseInsensitive(t *testing.T) {
	c, _ := testCompleter(t)
	line, _, ok := c.Complete("give steve DIAM", 15, '\t')
	require.True(t, ok)
	assert.Equal(t, "give steve diamond_sword ", line)
}

func TestCompletePlayerSlotFromSettings(t *testing.T) {
	c, store := testCompleter(t)
	ctx := context.Background()
	require.NoError(t, store.Settings.Set(ctx, sqlite.SettingDefaultPlayer, "steve"))
	require.NoError(t, store.Settings.Set(ctx, sqlite.SettingPlayers, "alex,steve"))

	line, _, ok := c.Complete("give al", 7, '\t')
	require.True(t, ok)
	assert.Equal(t, "give alex ", line)
}

func TestCompletePlayerSlotTracksMutations(t *testing.T) {
	c, store := testCompleter(t)

	// No players yet: nothing to complete.
	_, _, ok := c.Complete("give st", 7, '\t')
	assert.False(t, ok)

	// Candidates are read live, so a new player appears immediately.
	require.NoError(t, store.Settings.Set(context.Background(), sqlite.SettingPlayers, "steve"))
	line, _, ok := c.Complete("give st", 7, '\t')
	require.True(t, ok)
	assert.Equal(t, "give steve ", line)
}

func TestCompleteEnchantmentSlot(t *testing.T) {
	c, _ := testCompleter(t)
	line, _, ok := c.Complete("enchant steve sha", 17, '\t')
	require.True(t, ok)
	assert.Equal(t, "enchant steve sharpness ", line)
}

func TestCompleteEnchantLevels(t *testing.T) {
	c, _ := testCompleter(t)
	// Levels 1..3 for sharpness; "2" narrows to a unique match.
	line, _, ok := c.Complete("enchant steve sharpness 2", 25, '\t')
	require.True(t, ok)
	assert.Equal(t, "enchant steve sharpness 2 ", line)
}

func TestCompleteEffectDurationPresets(t *testing.T) {
	c, _ := testCompleter(t)
	line, _, ok := c.Complete("effect steve speed 12", 21, '\t')
	require.True(t, ok)
	assert.Equal(t, "effect steve speed 1200 ", line)
}

func TestCompleteServerCommands(t *testing.T) {
	c, _ := testCompleter(t)
	line, _, ok := c.Complete("sc li", 5, '\t')
	require.True(t, ok)
	assert.Equal(t, "sc list ", line)
}

func TestCompleteTeleportDestinations(t *testing.T) {
	c, store := testCompleter(t)
	ctx := context.Background()
	require.NoError(t, store.Positions.Add(ctx, "home", "1 2 3"))
	require.NoError(t, store.Settings.Set(ctx, sqlite.SettingPlayers, "alex"))

	line, _, ok := c.Complete("tp steve ho", 11, '\t')
	require.True(t, ok)
	assert.Equal(t, "tp steve home ", line)

	line, _, ok = c.Complete("tp steve @a", 11, '\t')
	require.True(t, ok)
	assert.Equal(t, "tp steve @alex ", line)
}

func TestCompleteSubcommands(t *testing.T) {
	c, _ := testCompleter(t)

	line, _, ok := c.Complete("namedpos a", 10, '\t')
	require.True(t, ok)
	assert.Equal(t, "namedpos add ", line)

	line, _, ok = c.Complete("player l", 8, '\t')
	require.True(t, ok)
	assert.Equal(t, "player list ", line)
}

func TestCompleteNamedPosDelNames(t *testing.T) {
	c, store := testCompleter(t)
	require.NoError(t, store.Positions.Add(context.Background(), "home", "1 2 3"))

	line, _, ok := c.Complete("namedpos del h", 14, '\t')
	require.True(t, ok)
	assert.Equal(t, "namedpos del home ", line)
}

func TestCompletePreservesSuffix(t *testing.T) {
	c, _ := testCompleter(t)
	// Cursor in the middle of the line: text after the cursor is untouched.
	line, pos, ok := c.Complete("hel extra", 3, '\t')
	require.True(t, ok)
	assert.Equal(t, "help  extra", line)
	assert.Equal(t, 5, pos)
}
