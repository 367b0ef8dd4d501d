package extract

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePOT(t *testing.T) {
	msgs := []Message{
		{Line: 1, Marker: MarkerCodelist, Text: "Title"},
		{Line: 2, Marker: MarkerCodelist, Text: "Open tender", Comments: []string{"Title"}},
		{Line: 3, Marker: MarkerCodelist, Text: "Open tender", Comments: []string{"Description"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePOT(&buf, "codelists/method.csv", msgs))

	expected := `#: codelists/method.csv:1
msgid "Title"
msgstr ""

#. Title
#. Description
#: codelists/method.csv:2 codelists/method.csv:3
msgid "Open tender"
msgstr ""

`
	assert.Equal(t, expected, buf.String())
}

func TestWritePOTEscapes(t *testing.T) {
	msgs := []Message{
		{Line: 7, Marker: MarkerSchema, Text: "a \"quoted\"\nvalue", Comments: []string{"/title"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePOT(&buf, "schema.json", msgs))

	expected := "#. /title\n#: schema.json:7\nmsgid \"a \\\"quoted\\\"\\nvalue\"\nmsgstr \"\"\n\n"
	assert.Equal(t, expected, buf.String())
}
