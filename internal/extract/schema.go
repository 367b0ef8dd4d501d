package extract

import (
	"fmt"
	"io"
	"strings"

	"docs-support/internal/document"
	"docs-support/internal/textutil"
)

// Schema extracts the title and description string values of a JSON Schema
// file, depth-first in document order. Each message carries the JSON Pointer
// of the value as its comment.
func Schema(r io.Reader, opts Options) ([]Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	v, err := document.Parse(data)
	if err != nil {
		return nil, err
	}

	var msgs []Message
	gatherText(v, "", &msgs)
	return msgs, nil
}

func gatherText(v *document.Value, pointer string, msgs *[]Message) {
	switch v.Kind {
	case document.Array:
		for i := range v.Items {
			gatherText(&v.Items[i], fmt.Sprintf("%s/%d", pointer, i), msgs)
		}
	case document.Object:
		for i := range v.Members {
			m := &v.Members[i]
			childPointer := pointer + "/" + m.Key
			if containsString(TranslatableSchemaKeywords, m.Key) &&
				m.Value.Kind == document.String && textutil.IsTranslatable(m.Value.Str) {
				*msgs = append(*msgs, Message{
					Line:     m.Value.Line,
					Marker:   MarkerSchema,
					Text:     strings.TrimSpace(m.Value.Str),
					Comments: []string{childPointer},
				})
			}
			gatherText(&m.Value, childPointer, msgs)
		}
	}
}
