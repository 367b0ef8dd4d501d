package document

import (
	"encoding/csv"
	"errors"
	"io"
)

// Table is the in-memory form of a tabular (CSV) file. The first record is
// the header; rows keep the cell order of the source file.
type Table struct {
	Fields []string
	Rows   [][]string

	// HeaderLine is the 1-based line of the header record; RowLines holds
	// the 1-based line where each row record begins.
	HeaderLine int
	RowLines   []int
}

// ReadTable parses CSV input. Records with a mismatched field count or other
// CSV syntax problems surface as a *ParseError.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	var t Table
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, tableParseError(err)
		}

		line, _ := cr.FieldPos(0)
		if t.Fields == nil {
			t.Fields = record
			t.HeaderLine = line
			continue
		}
		t.Rows = append(t.Rows, record)
		t.RowLines = append(t.RowLines, line)
	}

	return &t, nil
}

// Write emits the table as CSV with LF line endings, header first.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Fields); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Fields:     append([]string(nil), t.Fields...),
		HeaderLine: t.HeaderLine,
		RowLines:   append([]int(nil), t.RowLines...),
	}
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

func tableParseError(err error) error {
	var ce *csv.ParseError
	if errors.As(err, &ce) {
		return &ParseError{Line: ce.Line, Column: ce.Column, Offset: -1, Err: ce.Err}
	}
	return &ParseError{Offset: -1, Err: err}
}
