// Package translate produces translated copies of codelist CSV and JSON
// Schema documents. Only human-readable string leaves change; structure,
// ordering and non-string values pass through untouched, and the input
// document is never mutated.
package translate

// Lookup maps a source string to its target-language string. A miss is not
// an error; the original text passes through verbatim.
type Lookup interface {
	Get(source string) (translated string, ok bool)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(string) (string, bool)

func (f LookupFunc) Get(s string) (string, bool) { return f(s) }

// Map is a plain in-memory Lookup.
type Map map[string]string

func (m Map) Get(s string) (string, bool) {
	v, ok := m[s]
	return v, ok
}
