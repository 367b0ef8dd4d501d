package translate

import (
	"docs-support/internal/document"
	"docs-support/internal/extract"
)

// Table returns a translated copy of a codelist table. Every header is looked
// up, and every non-empty cell in a column named by headers (defaulting to
// Title, Description and Extension) is looked up. Cells whose lookup misses
// keep their original value.
func Table(t *document.Table, lookup Lookup, headers []string) *document.Table {
	if headers == nil {
		headers = extract.TranslatableCodelistHeaders
	}

	translatable := make(map[int]bool)
	for i, field := range t.Fields {
		for _, h := range headers {
			if field == h {
				translatable[i] = true
				break
			}
		}
	}

	out := t.Clone()
	for i, field := range out.Fields {
		if translated, ok := lookup.Get(field); ok {
			out.Fields[i] = translated
		}
	}
	for _, row := range out.Rows {
		for j := range row {
			if !translatable[j] || row[j] == "" {
				continue
			}
			if translated, ok := lookup.Get(row[j]); ok {
				row[j] = translated
			}
		}
	}
	return out
}
