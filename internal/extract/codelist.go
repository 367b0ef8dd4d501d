package extract

import (
	"io"
	"strings"

	"docs-support/internal/document"
	"docs-support/internal/textutil"
)

// Codelists extracts each header of a codelist CSV file, then every
// Title, Description and Extension cell value.
func Codelists(r io.Reader, opts Options) ([]Message, error) {
	t, err := document.ReadTable(r)
	if err != nil {
		return nil, err
	}

	var msgs []Message
	for _, field := range t.Fields {
		text := strings.TrimSpace(field)
		if text == "" {
			continue
		}
		msgs = append(msgs, Message{Line: t.HeaderLine, Marker: MarkerCodelist, Text: text})
	}

	if opts.HeadersOnly {
		return msgs, nil
	}

	translatable := make(map[int]string)
	for i, field := range t.Fields {
		name := strings.TrimSpace(field)
		if containsString(TranslatableCodelistHeaders, name) {
			translatable[i] = name
		}
	}

	for i, row := range t.Rows {
		for j, cell := range row {
			name, ok := translatable[j]
			if !ok || !textutil.IsTranslatable(cell) {
				continue
			}
			msgs = append(msgs, Message{
				Line:     t.RowLines[i],
				Marker:   MarkerCodelist,
				Text:     strings.TrimSpace(cell),
				Comments: []string{name},
			})
		}
	}

	return msgs, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
