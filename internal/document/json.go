package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Kind discriminates the JSON value variants.
type Kind int

const (
	Object Kind = iota
	Array
	String
	Number
	Bool
	Null
)

// Value is the in-memory form of a hierarchical (JSON) file. Object member
// order matches the source file, and Line records where each value begins,
// so extraction positions map back to the file.
type Value struct {
	Kind    Kind
	Members []Member // Object
	Items   []Value  // Array
	Str     string   // String
	Num     string   // Number, literal as written
	B       bool     // Bool
	Line    int      // 1-based
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Parse decodes JSON input, preserving object key order. Truncated or
// otherwise invalid input returns a *ParseError locating the problem.
func Parse(data []byte) (*Value, error) {
	p := &jsonParser{
		dec:   json.NewDecoder(bytes.NewReader(data)),
		lines: newlineOffsets(data),
	}
	p.dec.UseNumber()

	v, err := p.value()
	if err != nil {
		return nil, p.wrap(err)
	}
	if _, err := p.dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, p.wrap(err)
	}
	return &v, nil
}

type jsonParser struct {
	dec   *json.Decoder
	lines []int
}

func (p *jsonParser) value() (Value, error) {
	tok, err := p.dec.Token()
	if errors.Is(err, io.EOF) {
		return Value{}, io.ErrUnexpectedEOF
	}
	if err != nil {
		return Value{}, err
	}
	line := p.lineAt(p.dec.InputOffset())

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			v := Value{Kind: Object, Line: line}
			for p.dec.More() {
				keyTok, err := p.dec.Token()
				if err != nil {
					return Value{}, unexpectedEOF(err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				child, err := p.value()
				if err != nil {
					return Value{}, err
				}
				v.Members = append(v.Members, Member{Key: key, Value: child})
			}
			if _, err := p.dec.Token(); err != nil { // consume '}'
				return Value{}, unexpectedEOF(err)
			}
			return v, nil
		default: // '['
			v := Value{Kind: Array, Line: line}
			for p.dec.More() {
				child, err := p.value()
				if err != nil {
					return Value{}, err
				}
				v.Items = append(v.Items, child)
			}
			if _, err := p.dec.Token(); err != nil { // consume ']'
				return Value{}, unexpectedEOF(err)
			}
			return v, nil
		}
	case string:
		return Value{Kind: String, Str: t, Line: line}, nil
	case json.Number:
		return Value{Kind: Number, Num: t.String(), Line: line}, nil
	case bool:
		return Value{Kind: Bool, B: t, Line: line}, nil
	default: // nil
		return Value{Kind: Null, Line: line}, nil
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (p *jsonParser) wrap(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	offset := p.dec.InputOffset()
	var se *json.SyntaxError
	if errors.As(err, &se) {
		offset = se.Offset
	}
	return &ParseError{Line: p.lineAt(offset), Offset: offset, Err: err}
}

// lineAt returns the 1-based line containing the byte just before offset.
// JSON tokens never span lines, so the line at the decoder's post-token
// offset is the line where the token begins.
func (p *jsonParser) lineAt(offset int64) int {
	return sort.SearchInts(p.lines, int(offset)) + 1
}

func newlineOffsets(data []byte) []int {
	var offsets []int
	for i, b := range data {
		if b == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// Clone returns a deep copy of the value.
func (v *Value) Clone() *Value {
	out := *v
	if v.Members != nil {
		out.Members = make([]Member, len(v.Members))
		for i, m := range v.Members {
			out.Members[i] = Member{Key: m.Key, Value: *m.Value.Clone()}
		}
	}
	if v.Items != nil {
		out.Items = make([]Value, len(v.Items))
		for i := range v.Items {
			out.Items[i] = *v.Items[i].Clone()
		}
	}
	return &out
}

// Encode writes the value as JSON with two-space indentation, preserving
// member order and leaving non-ASCII text unescaped.
func (v *Value) Encode(w io.Writer) error {
	var buf bytes.Buffer
	v.encode(&buf, 0)
	_, err := w.Write(buf.Bytes())
	return err
}

func (v *Value) encode(buf *bytes.Buffer, depth int) {
	switch v.Kind {
	case Object:
		if len(v.Members) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, m := range v.Members {
			writeIndent(buf, depth+1)
			quoteJSONString(buf, m.Key)
			buf.WriteString(": ")
			m.Value.encode(buf, depth+1)
			if i < len(v.Members)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
	case Array:
		if len(v.Items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i := range v.Items {
			writeIndent(buf, depth+1)
			v.Items[i].encode(buf, depth+1)
			if i < len(v.Items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
	case String:
		quoteJSONString(buf, v.Str)
	case Number:
		buf.WriteString(v.Num)
	case Bool:
		if v.B {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Null:
		buf.WriteString("null")
	}
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

func quoteJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
