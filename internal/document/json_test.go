package document

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := []byte(`{
  "title": "Hello",
  "amount": 42,
  "active": true,
  "empty": null,
  "tags": ["a", "b"]
}`)

	v, err := Parse(input)
	require.NoError(t, err)

	require.Equal(t, Object, v.Kind)
	require.Len(t, v.Members, 5)

	// Member order matches the source.
	assert.Equal(t, "title", v.Members[0].Key)
	assert.Equal(t, "amount", v.Members[1].Key)
	assert.Equal(t, "active", v.Members[2].Key)
	assert.Equal(t, "empty", v.Members[3].Key)
	assert.Equal(t, "tags", v.Members[4].Key)

	assert.Equal(t, String, v.Members[0].Value.Kind)
	assert.Equal(t, "Hello", v.Members[0].Value.Str)
	assert.Equal(t, 2, v.Members[0].Value.Line)

	assert.Equal(t, Number, v.Members[1].Value.Kind)
	assert.Equal(t, "42", v.Members[1].Value.Num)
	assert.Equal(t, 3, v.Members[1].Value.Line)

	assert.Equal(t, Bool, v.Members[2].Value.Kind)
	assert.True(t, v.Members[2].Value.B)

	assert.Equal(t, Null, v.Members[3].Value.Kind)

	require.Equal(t, Array, v.Members[4].Value.Kind)
	require.Len(t, v.Members[4].Value.Items, 2)
	assert.Equal(t, "a", v.Members[4].Value.Items[0].Str)
}

func TestParseTruncated(t *testing.T) {
	_, err := Parse([]byte("{\n  \"title\": \"He"))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Positive(t, pe.Offset)
}

func TestParseTrailingData(t *testing.T) {
	_, err := Parse([]byte(`{"a": 1} {"b": 2}`))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
}

func TestEncode(t *testing.T) {
	input := []byte(`{
  "title": "Café",
  "amount": 42.5,
  "nested": {
    "description": "line\nbreak",
    "flags": [true, false, null]
  },
  "empty": {},
  "none": []
}`)

	v, err := Parse(input)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, v.Encode(&buf))

	expected := `{
  "title": "Café",
  "amount": 42.5,
  "nested": {
    "description": "line\nbreak",
    "flags": [
      true,
      false,
      null
    ]
  },
  "empty": {},
  "none": []
}`
	assert.Equal(t, expected, buf.String())
}

func TestClone(t *testing.T) {
	v, err := Parse([]byte(`{"title": "Hello", "items": [{"description": "World"}]}`))
	require.NoError(t, err)

	clone := v.Clone()
	clone.Members[0].Value.Str = "changed"
	clone.Members[1].Value.Items[0].Members[0].Value.Str = "changed"

	assert.Equal(t, "Hello", v.Members[0].Value.Str)
	assert.Equal(t, "World", v.Members[1].Value.Items[0].Members[0].Value.Str)
}
