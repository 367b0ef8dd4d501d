package translate

import (
	"strings"

	"docs-support/internal/document"
	"docs-support/internal/extract"
)

// Options adjusts schema translation.
type Options struct {
	// Keywords are the object keys whose string values are translated;
	// defaults to title and description.
	Keywords []string
	// Version and Language, when set, expand the {{version}} and {{lang}}
	// placeholders in translated values.
	Version  string
	Language string
}

// Schema returns a translated copy of a JSON Schema document. String values
// under the translatable keys are looked up depth-first in document order;
// everything else is copied unchanged.
func Schema(v *document.Value, lookup Lookup, opts Options) *document.Value {
	keywords := opts.Keywords
	if keywords == nil {
		keywords = extract.TranslatableSchemaKeywords
	}

	out := v.Clone()
	walkSchema(out, keywords, lookup, opts)
	return out
}

func walkSchema(v *document.Value, keywords []string, lookup Lookup, opts Options) {
	switch v.Kind {
	case document.Array:
		for i := range v.Items {
			walkSchema(&v.Items[i], keywords, lookup, opts)
		}
	case document.Object:
		for i := range v.Members {
			m := &v.Members[i]
			if m.Value.Kind == document.String && keywordMatch(keywords, m.Key) {
				s := m.Value.Str
				if translated, ok := lookup.Get(s); ok {
					s = translated
				}
				m.Value.Str = expandPlaceholders(s, opts)
			}
			walkSchema(&m.Value, keywords, lookup, opts)
		}
	}
}

func keywordMatch(keywords []string, key string) bool {
	for _, k := range keywords {
		if k == key {
			return true
		}
	}
	return false
}

func expandPlaceholders(s string, opts Options) string {
	if opts.Version != "" {
		s = strings.ReplaceAll(s, "{{version}}", opts.Version)
	}
	if opts.Language != "" {
		s = strings.ReplaceAll(s, "{{lang}}", opts.Language)
	}
	return s
}
