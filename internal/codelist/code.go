// Package codelist models codelist CSV files and the codes they contain,
// including the +name.csv / -name.csv patch naming used by extensions.
package codelist

// Field is one named cell of a code row.
type Field struct {
	Name  string
	Value string
}

// Code is a single codelist row: ordered field/value pairs plus the name of
// the extension the code originates from.
type Code struct {
	ExtensionName string
	fields        []Field
}

// NewCode builds a code from ordered fields.
func NewCode(extensionName string, fields ...Field) *Code {
	return &Code{ExtensionName: extensionName, fields: append([]Field(nil), fields...)}
}

// Get returns the value of a field.
func (c *Code) Get(name string) (string, bool) {
	for _, f := range c.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Set updates a field, appending it when absent.
func (c *Code) Set(name, value string) {
	for i, f := range c.fields {
		if f.Name == name {
			c.fields[i].Value = value
			return
		}
	}
	c.fields = append(c.fields, Field{Name: name, Value: value})
}

// Pop removes a field, returning its value.
func (c *Code) Pop(name string) (string, bool) {
	for i, f := range c.fields {
		if f.Name == name {
			c.fields = append(c.fields[:i], c.fields[i+1:]...)
			return f.Value, true
		}
	}
	return "", false
}

// Len returns the number of fields.
func (c *Code) Len() int { return len(c.fields) }

// Fields returns a copy of the ordered fields.
func (c *Code) Fields() []Field {
	return append([]Field(nil), c.fields...)
}

// Equal reports whether two codes have the same fields, in the same order,
// and the same extension name.
func (c *Code) Equal(other *Code) bool {
	if c.ExtensionName != other.ExtensionName || len(c.fields) != len(other.fields) {
		return false
	}
	for i, f := range c.fields {
		if other.fields[i] != f {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the code.
func (c *Code) Clone() *Code {
	return NewCode(c.ExtensionName, c.fields...)
}
