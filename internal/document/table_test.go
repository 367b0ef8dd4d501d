package document

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	input := "Code,Title\nfoo,Foo\nbar,Bar\n"

	table, err := ReadTable(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Code", "Title"}, table.Fields)
	assert.Equal(t, [][]string{{"foo", "Foo"}, {"bar", "Bar"}}, table.Rows)
	assert.Equal(t, 1, table.HeaderLine)
	assert.Equal(t, []int{2, 3}, table.RowLines)
}

func TestReadTableEmpty(t *testing.T) {
	table, err := ReadTable(strings.NewReader(""))
	require.NoError(t, err)

	assert.Nil(t, table.Fields)
	assert.Empty(t, table.Rows)
}

func TestReadTableMalformed(t *testing.T) {
	// Bare quote inside a field on line 2.
	_, err := ReadTable(strings.NewReader("a,b\nc\"d,e\n"))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}

func TestReadTableFieldCountMismatch(t *testing.T) {
	_, err := ReadTable(strings.NewReader("a,b\nc\n"))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}

func TestTableWrite(t *testing.T) {
	table := &Table{
		Fields: []string{"Code", "Title"},
		Rows:   [][]string{{"foo", "Foo"}, {"bar", "with, comma"}},
	}

	var buf bytes.Buffer
	require.NoError(t, table.Write(&buf))

	assert.Equal(t, "Code,Title\nfoo,Foo\nbar,\"with, comma\"\n", buf.String())
}

func TestTableClone(t *testing.T) {
	table, err := ReadTable(strings.NewReader("Code,Title\nfoo,Foo\n"))
	require.NoError(t, err)

	clone := table.Clone()
	clone.Fields[0] = "changed"
	clone.Rows[0][1] = "changed"

	assert.Equal(t, "Code", table.Fields[0])
	assert.Equal(t, "Foo", table.Rows[0][1])
}
