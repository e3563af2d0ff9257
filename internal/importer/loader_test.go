package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/bedrockctl/internal/catalog"
)

const sampleSeed = `
catalog:
  blocks:
    - id: stone
      name: Stone
  items:
    - id: diamond_sword
      name: Diamond Sword
  effects:
    - id: speed
      name: Speed
  enchantments:
    - id: sharpness
      name: Sharpness
      max_level: 5
      applies_to: [sword, axe]
    - id: mending
      name: Mending
      applies_to: [any]
commands:
  - name: say
    description: Broadcast a message
settings:
  default_player: steve
`

func TestLoadBytes(t *testing.T) {
	seed, err := LoadBytes([]byte(sampleSeed))
	require.NoError(t, err)

	require.Len(t, seed.Entries, 5)
	assert.Equal(t, "stone", seed.Entries[0].ID)
	assert.Equal(t, catalog.CategoryBlock, seed.Entries[0].Category)
	assert.Equal(t, catalog.CategoryItem, seed.Entries[1].Category)
	assert.Equal(t, catalog.CategoryEffect, seed.Entries[2].Category)

	sharpness := seed.Entries[3]
	assert.Equal(t, 5, sharpness.MaxLevel)
	assert.Equal(t, []string{"sword", "axe"}, sharpness.AppliesTo)

	// A missing max_level defaults to 1 for enchantments.
	assert.Equal(t, 1, seed.Entries[4].MaxLevel)

	require.Len(t, seed.Commands, 1)
	assert.Equal(t, "say", seed.Commands[0].Name)

	assert.Equal(t, map[string]string{"default_player": "steve"}, seed.Settings)
}

func TestLoadBytesInvalidYAML(t *testing.T) {
	_, err := LoadBytes([]byte("catalog: [unclosed"))
	assert.Error(t, err)
}

func TestLoadBytesInvalidEntry(t *testing.T) {
	_, err := LoadBytes([]byte(`
catalog:
  blocks:
    - id: ""
      name: Nameless
`))
	assert.Error(t, err)
}

func TestLoadBytesEmptyCommandName(t *testing.T) {
	_, err := LoadBytes([]byte(`
commands:
  - name: "  "
    description: Broken
`))
	assert.Error(t, err)
}

func TestLoadDirMergesFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(`
catalog:
  blocks:
    - id: stone
      name: Stone
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte(`
commands:
  - name: list
    description: List players
settings:
  tmux_session: bedrock
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("not yaml"), 0644))

	seed, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, seed.Entries, 1)
	assert.Len(t, seed.Commands, 1)
	assert.Equal(t, "bedrock", seed.Settings["tmux_session"])
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	assert.Error(t, err)
}

func TestLoadDirFailsFast(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("catalog: [unclosed"), 0644))
	_, err := LoadDir(dir)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/seed.yaml")
	assert.Error(t, err)
}
