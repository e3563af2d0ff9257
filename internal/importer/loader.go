// Package importer loads YAML catalog seed files and writes them to the
// store: the reference catalog, the Bedrock command reference, and optional
// initial settings.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/bedrockctl/internal/catalog"
	"github.com/cory-johannsen/bedrockctl/internal/storage/sqlite"
)

// yamlSeedFile is the top-level YAML structure for catalog seed files.
type yamlSeedFile struct {
	Catalog  yamlCatalog         `yaml:"catalog"`
	Commands []yamlServerCommand `yaml:"commands"`
	Settings map[string]string   `yaml:"settings"`
}

// yamlCatalog groups resources by category.
type yamlCatalog struct {
	Blocks       []yamlResource `yaml:"blocks"`
	Items        []yamlResource `yaml:"items"`
	Effects      []yamlResource `yaml:"effects"`
	Enchantments []yamlResource `yaml:"enchantments"`
}

// yamlResource is the YAML representation of one catalog entry.
type yamlResource struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	MaxLevel  int      `yaml:"max_level"`
	AppliesTo []string `yaml:"applies_to"`
}

// yamlServerCommand is the YAML representation of one command reference row.
type yamlServerCommand struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// SeedData is the converted, validated content of one or more seed files.
type SeedData struct {
	Entries  []catalog.ResourceEntry
	Commands []sqlite.ServerCommand
	Settings map[string]string
}

// LoadFile reads and validates a single catalog seed YAML file.
//
// Precondition: path must point to a valid YAML seed file.
// Postcondition: Returns validated seed data or a non-nil error naming the
// file and offending entry.
func LoadFile(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	seed, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return seed, nil
}

// LoadBytes parses and validates seed data from YAML bytes.
//
// Postcondition: Returns validated seed data or a non-nil error.
func LoadBytes(data []byte) (*SeedData, error) {
	var file yamlSeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing seed YAML: %w", err)
	}

	seed := &SeedData{Settings: file.Settings}

	groups := []struct {
		category  catalog.Category
		resources []yamlResource
	}{
		{catalog.CategoryBlock, file.Catalog.Blocks},
		{catalog.CategoryItem, file.Catalog.Items},
		{catalog.CategoryEffect, file.Catalog.Effects},
		{catalog.CategoryEnchantment, file.Catalog.Enchantments},
	}
	for _, group := range groups {
		for _, res := range group.resources {
			entry := catalog.ResourceEntry{
				ID:          res.ID,
				DisplayName: res.Name,
				Category:    group.category,
				MaxLevel:    res.MaxLevel,
				AppliesTo:   res.AppliesTo,
			}
			if group.category == catalog.CategoryEnchantment && entry.MaxLevel < 1 {
				entry.MaxLevel = 1
			}
			if err := entry.Validate(); err != nil {
				return nil, fmt.Errorf("invalid %s entry: %w", group.category, err)
			}
			seed.Entries = append(seed.Entries, entry)
		}
	}

	for _, cmd := range file.Commands {
		if strings.TrimSpace(cmd.Name) == "" {
			return nil, fmt.Errorf("invalid command entry: name must not be empty")
		}
		seed.Commands = append(seed.Commands, sqlite.ServerCommand{
			Name:        cmd.Name,
			Description: cmd.Description,
		})
	}

	return seed, nil
}

// LoadDir loads every YAML file in a directory, merging results in file-name
// order. The first invalid file fails the load.
//
// Precondition: dir must be a valid directory path.
// Postcondition: Returns merged seed data or the first error encountered.
func LoadDir(dir string) (*SeedData, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading seed directory %s: %w", dir, err)
	}

	merged := &SeedData{Settings: make(map[string]string)}
	files := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		seed, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		merged.Entries = append(merged.Entries, seed.Entries...)
		merged.Commands = append(merged.Commands, seed.Commands...)
		for k, v := range seed.Settings {
			merged.Settings[k] = v
		}
		files++
	}

	if files == 0 {
		return nil, fmt.Errorf("no seed files found in %s", dir)
	}
	return merged, nil
}
