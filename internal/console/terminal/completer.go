package terminal

import (
	"context"
	"strconv"
	"strings"

	"github.com/cory-johannsen/bedrockctl/internal/catalog"
	"github.com/cory-johannsen/bedrockctl/internal/console/command"
	"github.com/cory-johannsen/bedrockctl/internal/console/handlers"
	"github.com/cory-johannsen/bedrockctl/internal/storage/sqlite"
)

// Canned completion values for the effect command.
var (
	effectDurations  = []string{"30", "60", "300", "600", "1200", "3600"}
	effectAmplifiers = []string{"0", "1", "2", "4", "9"}
	coordTemplates   = []string{"0 0 0", "0 64 0", "~ ~ ~", "~ ~+10 ~", "~ ~-10 ~", "~-10 ~ ~", "~+10 ~ ~"}
)

// Completer computes tab completions for the interactive prompt. Player and
// position candidates are read live from the stores so completions track
// player/namedpos mutations made during the session; the server command
// reference is a startup snapshot since the table never changes.
type Completer struct {
	catalog        *catalog.Catalog
	registry       *command.Registry
	settings       handlers.SettingsStore
	positions      handlers.PositionStore
	serverCommands []sqlite.ServerCommand
}

// NewCompleter creates a Completer over the given collaborators.
//
// Precondition: catalog and registry must be non-nil.
func NewCompleter(
	cat *catalog.Catalog,
	registry *command.Registry,
	settings handlers.SettingsStore,
	positions handlers.PositionStore,
	serverCommands []sqlite.ServerCommand,
) *Completer {
	return &Completer{
		catalog:        cat,
		registry:       registry,
		settings:       settings,
		positions:      positions,
		serverCommands: serverCommands,
	}
}

// Complete is an x/term AutoCompleteCallback. On tab it completes the word
// before the cursor against the candidate set for that argument slot: a
// unique match completes fully (plus a trailing space), several matches
// extend to their longest common prefix.
func (c *Completer) Complete(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' {
		return "", 0, false
	}

	prefix := line[:pos]
	suffix := line[pos:]
	words := strings.Fields(prefix)

	trailingSpace := prefix == "" || strings.HasSuffix(prefix, " ")
	current := ""
	wordStart := len(prefix)
	if !trailingSpace && len(words) > 0 {
		current = words[len(words)-1]
		wordStart = len(prefix) - len(current)
	}
	slot := len(words)
	if !trailingSpace && slot > 0 {
		slot--
	}

	var matches []string
	lowered := strings.ToLower(current)
	for _, cand := range c.candidates(words, slot) {
		if strings.HasPrefix(strings.ToLower(cand), lowered) {
			matches = append(matches, cand)
		}
	}
	if len(matches) == 0 {
		return "", 0, false
	}

	completion := longestCommonPrefix(matches)
	if len(matches) == 1 {
		completion += " "
	} else if completion == current {
		return "", 0, false
	}

	newLine := prefix[:wordStart] + completion + suffix
	return newLine, wordStart + len(completion), true
}

// candidates returns the completion candidates for the given argument slot.
func (c *Completer) candidates(words []string, slot int) []string {
	if slot == 0 {
		var names []string
		for _, cmd := range c.registry.Commands() {
			names = append(names, cmd.Name)
		}
		return names
	}

	switch words[0] {
	case "give", "enchant", "effect", "effectclear", "maxenchant", "tp":
		if slot == 1 {
			return c.playerNames()
		}
		switch words[0] {
		case "give":
			if slot == 2 {
				return c.resourceIDs(catalog.CategoryBlock, catalog.CategoryItem)
			}
		case "enchant":
			if slot == 2 {
				return c.resourceIDs(catalog.CategoryEnchantment)
			}
			if slot == 3 && len(words) > 2 {
				return c.enchantLevels(words[2])
			}
		case "effect":
			if slot == 2 {
				return c.resourceIDs(catalog.CategoryEffect)
			}
			if slot == 3 {
				return effectDurations
			}
			if slot == 4 {
				return effectAmplifiers
			}
		case "tp":
			if slot == 2 {
				var out []string
				out = append(out, c.positionNames()...)
				for _, player := range c.playerNames() {
					out = append(out, "@"+player)
				}
				out = append(out, coordTemplates...)
				return out
			}
		}

	case "qg":
		if slot == 1 {
			return c.resourceIDs(catalog.CategoryBlock, catalog.CategoryItem)
		}

	case "sc":
		if slot == 1 {
			var names []string
			for _, sc := range c.serverCommands {
				names = append(names, sc.Name)
			}
			return names
		}

	case "namedpos":
		if slot == 1 {
			return []string{"list", "add", "del"}
		}
		if slot == 2 && len(words) > 1 && words[1] == "del" {
			return c.positionNames()
		}

	case "player":
		if slot == 1 {
			return []string{"list", "add", "del"}
		}
		if slot == 2 && len(words) > 1 && words[1] == "del" {
			return c.playerNames()
		}
	}
	return nil
}

// playerNames returns the default player followed by the tracked player list.
func (c *Completer) playerNames() []string {
	if c.settings == nil {
		return nil
	}
	ctx := context.Background()
	var names []string
	if def, err := c.settings.Get(ctx, sqlite.SettingDefaultPlayer); err == nil && def != "" {
		names = append(names, def)
	}
	if value, err := c.settings.Get(ctx, sqlite.SettingPlayers); err == nil {
		for _, player := range strings.Split(value, ",") {
			if player != "" && !contains(names, player) {
				names = append(names, player)
			}
		}
	}
	return names
}

func (c *Completer) positionNames() []string {
	if c.positions == nil {
		return nil
	}
	positions, err := c.positions.List(context.Background())
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(positions))
	for _, pos := range positions {
		names = append(names, pos.Name)
	}
	return names
}

func (c *Completer) resourceIDs(categories ...catalog.Category) []string {
	entries := c.catalog.Entries(categories...)
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	return ids
}

// enchantLevels returns "1".."max" for the typed enchantment, or nil when it
// does not resolve.
func (c *Completer) enchantLevels(enchantment string) []string {
	entry, ok := c.catalog.Resolve(enchantment, catalog.CategoryEnchantment)
	if !ok {
		return nil
	}
	levels := make([]string, 0, entry.MaxLevel)
	for level := 1; level <= entry.MaxLevel; level++ {
		levels = append(levels, strconv.Itoa(level))
	}
	return levels
}

func longestCommonPrefix(values []string) string {
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
