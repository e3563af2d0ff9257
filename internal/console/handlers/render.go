package handlers

import (
	"fmt"
	"io"

	"github.com/rodaine/table"

	"github.com/cory-johannsen/bedrockctl/internal/catalog"
)

// newTable builds a plain table writing to the console output.
func newTable(out io.Writer, headers ...string) table.Table {
	cols := make([]interface{}, len(headers))
	for i, h := range headers {
		cols[i] = h
	}
	return table.New(cols...).WithWriter(out)
}

// printSuggestions renders near-miss catalog entries, if any.
func (c *Console) printSuggestions(suggestions []catalog.ResourceEntry) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(c.out, "Did you mean one of these?")
	t := newTable(c.out, "Resource", "Name", "Details")
	for _, entry := range suggestions {
		t.AddRow(entry.ID, entry.DisplayName, suggestionDetail(entry))
	}
	t.Print()
}

// suggestionDetail is the category-specific extra column for a suggestion.
func suggestionDetail(entry catalog.ResourceEntry) string {
	switch entry.Category {
	case catalog.CategoryEnchantment:
		return fmt.Sprintf("Max Level: %d", entry.MaxLevel)
	case catalog.CategoryBlock, catalog.CategoryItem:
		return entry.Category.Title()
	default:
		return ""
	}
}
