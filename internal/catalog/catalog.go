// Package catalog loads compiled message catalogs and exposes them as a
// translation lookup keyed by source string.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// SourceLanguage is the language the documentation is authored in. Builds in
// this language run with an empty catalog so every lookup misses and the
// source text passes through.
const SourceLanguage = "en"

// Catalog is a message catalog for one gettext domain and language. It
// implements translate.Lookup.
type Catalog struct {
	localizer *i18n.Localizer
}

// Load reads <domain>.<lang>.toml or <domain>.<lang>.json from localeDir.
// A missing catalog is an error except for the source language, which falls
// back to an empty catalog.
func Load(localeDir, domain, lang string) (*Catalog, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	loaded := false
	for _, ext := range []string{"toml", "json"} {
		path := filepath.Join(localeDir, fmt.Sprintf("%s.%s.%s", domain, lang, ext))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := bundle.LoadMessageFile(path); err != nil {
			return nil, fmt.Errorf("load message file %s: %w", path, err)
		}
		log.Info().Str("path", path).Str("language", lang).Msg("Loaded message catalog")
		loaded = true
	}

	if !loaded {
		if lang == SourceLanguage {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("no message catalog for domain %q, language %q in %s", domain, lang, localeDir)
	}

	return &Catalog{localizer: i18n.NewLocalizer(bundle, lang)}, nil
}

// Get returns the translation for a source string. A miss returns ok=false;
// the caller keeps the original text.
func (c *Catalog) Get(source string) (string, bool) {
	if c.localizer == nil || source == "" {
		return "", false
	}
	translated, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: source})
	if err != nil || translated == "" {
		return "", false
	}
	return translated, true
}
