package catalog

import (
	"sort"
	"strings"
)

// DefaultSuggestionLimit caps how many near-miss suggestions a lookup
// produces when no exact match exists.
const DefaultSuggestionLimit = 5

// Catalog is the immutable, load-ordered reference table of game resources.
// It is safe for concurrent reads; it is never mutated after New returns.
type Catalog struct {
	entries []ResourceEntry
	// index maps category -> lowercased id -> position in entries.
	index map[Category]map[string]int
}

// New builds a catalog from entries in load order. Duplicate ids within a
// category keep the first occurrence. Enchantments without a positive
// MaxLevel are normalized to 1.
//
// Postcondition: the returned catalog preserves the input order for every
// scan-based operation (Suggest, EnchantmentsFor, Entries).
func New(entries []ResourceEntry) *Catalog {
	c := &Catalog{
		entries: make([]ResourceEntry, 0, len(entries)),
		index:   make(map[Category]map[string]int),
	}
	for _, e := range entries {
		if e.Category == CategoryEnchantment && e.MaxLevel < 1 {
			e.MaxLevel = 1
		}
		key := strings.ToLower(e.ID)
		byID, ok := c.index[e.Category]
		if !ok {
			byID = make(map[string]int)
			c.index[e.Category] = byID
		}
		if _, exists := byID[key]; exists {
			continue
		}
		c.entries = append(c.entries, e)
		byID[key] = len(c.entries) - 1
	}
	return c
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int { return len(c.entries) }

// Resolve looks up a user-typed token within the given categories,
// comparing case-insensitively. When the token exists in more than one of
// the categories, the entry earliest in load order wins.
//
// Postcondition: on success the returned entry carries the catalog's
// canonical id casing, never the caller's.
func (c *Catalog) Resolve(token string, categories ...Category) (ResourceEntry, bool) {
	key := strings.ToLower(token)
	best := -1
	for _, cat := range categories {
		if pos, ok := c.index[cat][key]; ok && (best == -1 || pos < best) {
			best = pos
		}
	}
	if best == -1 {
		return ResourceEntry{}, false
	}
	return c.entries[best], true
}

// Suggest collects entries from the given categories whose id contains the
// lowercased token as a substring. Collection walks the catalog in load
// order and stops as soon as limit entries are gathered; an empty result is
// valid. A non-positive limit falls back to DefaultSuggestionLimit.
func (c *Catalog) Suggest(token string, limit int, categories ...Category) []ResourceEntry {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	needle := strings.ToLower(token)
	var out []ResourceEntry
	for _, e := range c.entries {
		if !categoryIn(e.Category, categories) {
			continue
		}
		if strings.Contains(strings.ToLower(e.ID), needle) {
			out = append(out, e)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

// EnchantmentsFor returns every enchantment applicable to the given item
// type, in load order. The "any" tag matches every item type.
func (c *Catalog) EnchantmentsFor(itemType string) []ResourceEntry {
	var out []ResourceEntry
	for _, e := range c.entries {
		if e.AppliesToItemType(itemType) {
			out = append(out, e)
		}
	}
	return out
}

// ItemTypes returns the sorted distinct applies_to tags across all
// enchantments, keeping the stored casing of the first occurrence.
func (c *Catalog) ItemTypes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range c.entries {
		if e.Category != CategoryEnchantment {
			continue
		}
		for _, tag := range e.AppliesTo {
			key := strings.ToLower(tag)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

// Entries returns the catalog entries for the given categories in load
// order. With no categories it returns every entry. The returned slice is
// a copy.
func (c *Catalog) Entries(categories ...Category) []ResourceEntry {
	var out []ResourceEntry
	for _, e := range c.entries {
		if len(categories) == 0 || categoryIn(e.Category, categories) {
			out = append(out, e)
		}
	}
	return out
}

func categoryIn(c Category, set []Category) bool {
	for _, cat := range set {
		if c == cat {
			return true
		}
	}
	return false
}
