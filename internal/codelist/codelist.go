package codelist

import (
	"io"
	"strings"

	"docs-support/internal/document"
)

// Codelist is a named collection of code rows. A name starting with "+" or
// "-" marks a patch that adds codes to or removes codes from another
// codelist.
type Codelist struct {
	Name string
	Rows []*Code
}

// New creates an empty codelist.
func New(name string) *Codelist {
	return &Codelist{Name: name}
}

// Read parses a codelist CSV file. Rows carry no extension name until
// Extend or the caller assigns one.
func Read(name string, r io.Reader) (*Codelist, error) {
	t, err := document.ReadTable(r)
	if err != nil {
		return nil, err
	}

	cl := New(name)
	for _, row := range t.Rows {
		code := &Code{}
		for j, cell := range row {
			if j < len(t.Fields) {
				code.fields = append(code.fields, Field{Name: t.Fields[j], Value: cell})
			}
		}
		cl.Rows = append(cl.Rows, code)
	}
	return cl, nil
}

// Extend appends rows to the codelist, marking each with the extension it
// came from.
func (cl *Codelist) Extend(rows []*Code, extensionName string) {
	for _, row := range rows {
		code := row.Clone()
		code.ExtensionName = extensionName
		cl.Rows = append(cl.Rows, code)
	}
}

// AddExtensionColumn writes each row's extension name into the named column.
func (cl *Codelist) AddExtensionColumn(fieldName string) {
	for _, row := range cl.Rows {
		row.Set(fieldName, row.ExtensionName)
	}
}

// RemoveDeprecatedCodes removes the Deprecated column from every row and
// drops rows whose value was non-empty, returning the dropped codes.
func (cl *Codelist) RemoveDeprecatedCodes() []string {
	var removed []string
	kept := cl.Rows[:0]
	for _, row := range cl.Rows {
		deprecated, _ := row.Pop("Deprecated")
		if deprecated != "" {
			code, _ := row.Get("Code")
			removed = append(removed, code)
			continue
		}
		kept = append(kept, row)
	}
	cl.Rows = kept
	return removed
}

// Codes returns the Code value of every row.
func (cl *Codelist) Codes() []string {
	codes := make([]string, 0, len(cl.Rows))
	for _, row := range cl.Rows {
		code, _ := row.Get("Code")
		codes = append(codes, code)
	}
	return codes
}

// HasCode reports whether any row has the given Code value.
func (cl *Codelist) HasCode(code string) bool {
	for _, row := range cl.Rows {
		if v, _ := row.Get("Code"); v == code {
			return true
		}
	}
	return false
}

// Fieldnames returns every field name used by any row, in first-seen order.
// Rows need not all share the same fields.
func (cl *Codelist) Fieldnames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, row := range cl.Rows {
		for _, f := range row.fields {
			if !seen[f.Name] {
				seen[f.Name] = true
				names = append(names, f.Name)
			}
		}
	}
	return names
}

// Basename returns the name of the codelist a patch modifies, or the
// codelist's own name when it is not a patch.
func (cl *Codelist) Basename() string {
	if cl.IsPatch() {
		return cl.Name[1:]
	}
	return cl.Name
}

// IsPatch reports whether the codelist modifies another codelist.
func (cl *Codelist) IsPatch() bool {
	return strings.HasPrefix(cl.Name, "+") || strings.HasPrefix(cl.Name, "-")
}

// IsAddend reports whether the codelist adds codes to another codelist.
func (cl *Codelist) IsAddend() bool { return strings.HasPrefix(cl.Name, "+") }

// IsSubtrahend reports whether the codelist removes codes from another
// codelist.
func (cl *Codelist) IsSubtrahend() bool { return strings.HasPrefix(cl.Name, "-") }

// Write emits the codelist as CSV. The header is the union of all row
// fields; rows missing a field leave the cell empty.
func (cl *Codelist) Write(w io.Writer) error {
	fields := cl.Fieldnames()
	t := document.Table{Fields: fields}
	for _, row := range cl.Rows {
		record := make([]string, len(fields))
		for i, name := range fields {
			record[i], _ = row.Get(name)
		}
		t.Rows = append(t.Rows, record)
	}
	return t.Write(w)
}
