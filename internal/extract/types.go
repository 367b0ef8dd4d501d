// Package extract produces translatable messages from codelist CSV and JSON
// Schema files, the two formats the generic documentation tooling does not
// know how to scan.
package extract

import "io"

// Format selects the extractor for an input file. The caller sets it
// explicitly; nothing is inferred from file names or content.
type Format int

const (
	FormatCodelist Format = iota
	FormatSchema
)

// Markers identify which extractor produced a message, so the message-catalog
// tool can route it.
const (
	MarkerCodelist = "codelists_text"
	MarkerSchema   = "jsonschema_text"
)

// TranslatableCodelistHeaders are the codelist columns whose cell values are
// extracted and translated.
var TranslatableCodelistHeaders = []string{"Title", "Description", "Extension"}

// TranslatableSchemaKeywords are the JSON Schema keys whose string values are
// extracted and translated.
var TranslatableSchemaKeywords = []string{"title", "description"}

// Message is one translatable text fragment found in an input file.
type Message struct {
	// Line is the 1-based line in the source file where the field begins.
	Line int
	// Marker identifies the extractor that produced the message.
	Marker string
	// Text is the extracted string, whitespace-trimmed.
	Text string
	// Comments carry context for translators (column name, JSON Pointer).
	Comments []string
}

// Options adjusts extraction behavior.
type Options struct {
	// HeadersOnly limits codelist extraction to the header row. Used for
	// codelists whose values must not be translated (e.g. currency codes).
	HeadersOnly bool
}

// Func is the extraction entry point handed to the host catalog tool.
type Func func(r io.Reader, opts Options) ([]Message, error)

// New returns the extraction function for a format, or nil for an unknown
// format.
func New(format Format) Func {
	switch format {
	case FormatCodelist:
		return Codelists
	case FormatSchema:
		return Schema
	}
	return nil
}
