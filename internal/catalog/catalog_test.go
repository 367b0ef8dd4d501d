package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "codelists.fr.toml", "\"Hello\" = \"Bonjour\"\n\"Open tender\" = \"Appel d'offres ouvert\"\n")

	cat, err := Load(dir, "codelists", "fr")
	require.NoError(t, err)

	translated, ok := cat.Get("Hello")
	assert.True(t, ok)
	assert.Equal(t, "Bonjour", translated)

	translated, ok = cat.Get("Open tender")
	assert.True(t, ok)
	assert.Equal(t, "Appel d'offres ouvert", translated)

	_, ok = cat.Get("Missing")
	assert.False(t, ok)

	_, ok = cat.Get("")
	assert.False(t, ok)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "schema.es.json", `{"Hello": "Hola"}`)

	cat, err := Load(dir, "schema", "es")
	require.NoError(t, err)

	translated, ok := cat.Get("Hello")
	assert.True(t, ok)
	assert.Equal(t, "Hola", translated)
}

func TestLoadSourceLanguageFallback(t *testing.T) {
	cat, err := Load(t.TempDir(), "codelists", "en")
	require.NoError(t, err)

	// Every lookup misses, so source text passes through untranslated.
	_, ok := cat.Get("Hello")
	assert.False(t, ok)
}

func TestLoadMissingCatalog(t *testing.T) {
	_, err := Load(t.TempDir(), "codelists", "fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no message catalog")
}

func TestLoadInvalidLanguage(t *testing.T) {
	_, err := Load(t.TempDir(), "codelists", "not a language!")
	require.Error(t, err)
}
