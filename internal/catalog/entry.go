// Package catalog provides the reference catalog of known game resources:
// blocks, items, effects, and enchantments. The catalog is loaded once at
// startup and is immutable afterward; all lookups compare resource ids
// case-insensitively and return the catalog's canonical casing.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies the kind of a catalog resource.
type Category string

// Category constants for ResourceEntry.Category. Values match the
// resource_type column of the backing store.
const (
	CategoryBlock       Category = "block"
	CategoryItem        Category = "item"
	CategoryEffect      Category = "effect"
	CategoryEnchantment Category = "enchantment"
)

// validCategories is the set of known resource categories.
var validCategories = map[Category]bool{
	CategoryBlock:       true,
	CategoryItem:        true,
	CategoryEffect:      true,
	CategoryEnchantment: true,
}

// ParseCategory converts a stored resource_type value into a Category.
//
// Postcondition: returns a valid Category or a non-nil error.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !validCategories[c] {
		return "", fmt.Errorf("unknown resource category %q", s)
	}
	return c, nil
}

// Title returns the display form of the category, e.g. "Block".
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// String returns the stored form of the category.
func (c Category) String() string { return string(c) }

// AnyItemType is the sentinel applies_to tag marking an enchantment as
// applicable to every item type.
const AnyItemType = "any"

// ResourceEntry is one row of the reference catalog.
type ResourceEntry struct {
	// ID is the canonical resource identifier, unique within a category.
	// The stored casing is authoritative: it replaces whatever casing the
	// user typed once a lookup succeeds.
	ID string
	// DisplayName is the human-readable resource name.
	DisplayName string
	// Category is the resource kind.
	Category Category
	// MaxLevel is the maximum enchantment level. Only meaningful for
	// enchantments; entries loaded without one default to 1.
	MaxLevel int
	// AppliesTo lists the item-type tags an enchantment applies to, in
	// stored order with original casing. Only meaningful for enchantments.
	AppliesTo []string
}

// ParseAppliesTo splits a stored comma-separated applies_to value into
// trimmed tags, dropping empties.
func ParseAppliesTo(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// AppliesToItemType reports whether the entry is an enchantment applicable
// to the given item type. Matching is case-insensitive tag equality; the
// "any" tag matches every item type.
func (e ResourceEntry) AppliesToItemType(itemType string) bool {
	if e.Category != CategoryEnchantment {
		return false
	}
	for _, tag := range e.AppliesTo {
		if strings.EqualFold(tag, AnyItemType) || strings.EqualFold(tag, itemType) {
			return true
		}
	}
	return false
}

// Validate checks that the entry satisfies its invariants.
//
// Postcondition: returns nil iff the entry is well formed.
func (e ResourceEntry) Validate() error {
	var errs []error
	if strings.TrimSpace(e.ID) == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if strings.TrimSpace(e.DisplayName) == "" {
		errs = append(errs, errors.New("DisplayName must not be empty"))
	}
	if !validCategories[e.Category] {
		errs = append(errs, fmt.Errorf("Category must be one of block, item, effect, enchantment; got %q", e.Category))
	}
	if e.MaxLevel < 0 {
		errs = append(errs, fmt.Errorf("MaxLevel must be >= 0, got %d", e.MaxLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("resource %q: %v", e.ID, errs)
	}
	return nil
}
