// Package profile merges extension schema patches and codelist patches into
// a documentation profile built on a released version of the standard.
package profile

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/rs/zerolog/log"

	"docs-support/internal/codelist"
	"docs-support/internal/registry"
	"docs-support/internal/textutil"
)

// DefaultStandardBaseURL serves versioned zip archives of the standard.
const DefaultStandardBaseURL = "https://codeload.github.com/open-contracting/standard/zip/"

// CoreExtensionName labels codes that belong to the standard itself.
const CoreExtensionName = "OCDS Core"

// ExtensionVersion selects one extension version to merge into the profile.
// Order matters: patches apply in the order listed.
type ExtensionVersion struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
}

// Builder assembles a profile from a standard version and an ordered list of
// extension versions.
type Builder struct {
	standardVersion   string
	extensionVersions []ExtensionVersion
	registry          *registry.Registry
	standardBaseURL   string

	// Contents of the standard's schema directory, keyed by path relative
	// to it, populated once from the zip download.
	fileCache map[string]string
	fileOrder []string
}

// NewBuilder creates a profile builder. An empty standardBaseURL uses the
// default zip host.
func NewBuilder(reg *registry.Registry, standardVersion string, extensions []ExtensionVersion, standardBaseURL string) *Builder {
	if standardBaseURL == "" {
		standardBaseURL = DefaultStandardBaseURL
	}
	return &Builder{
		standardVersion:   standardVersion,
		extensionVersions: extensions,
		registry:          reg,
		standardBaseURL:   standardBaseURL,
		fileCache:         make(map[string]string),
	}
}

// Extensions resolves the configured extension versions against the
// registry, in configuration order.
func (b *Builder) Extensions(ctx context.Context) ([]registry.Extension, error) {
	exts := make([]registry.Extension, 0, len(b.extensionVersions))
	for _, ev := range b.extensionVersions {
		ext, err := b.registry.Get(ev.ID, ev.Version)
		if err != nil {
			return nil, err
		}
		exts = append(exts, ext)
	}
	return exts, nil
}

// ReleaseSchemaPatch returns the consolidated release schema patch: every
// extension's release-schema.json combined as RFC 7386 merge patches.
// Explicit nulls survive, so the consolidated patch still deletes the fields
// the extensions delete.
func (b *Builder) ReleaseSchemaPatch(ctx context.Context) ([]byte, error) {
	exts, err := b.Extensions(ctx)
	if err != nil {
		return nil, err
	}

	patch := []byte("{}")
	for _, ext := range exts {
		data, err := b.registry.Remote(ctx, ext, "release-schema.json")
		if err != nil {
			return nil, err
		}
		patch, err = jsonpatch.MergeMergePatches(patch, data)
		if err != nil {
			return nil, fmt.Errorf("combine release schema patch of %s: %w", ext.ID, err)
		}
		log.Info().Str("extension", ext.ID).Msg("Merged release schema patch")
	}
	return patch, nil
}

// PatchedReleaseSchema returns the standard's release schema with the
// consolidated patch applied. Null'ed fields are removed.
func (b *Builder) PatchedReleaseSchema(ctx context.Context) ([]byte, error) {
	schema, err := b.standardFileContents(ctx, "release-schema.json")
	if err != nil {
		return nil, err
	}
	patch, err := b.ReleaseSchemaPatch(ctx)
	if err != nil {
		return nil, err
	}
	patched, err := jsonpatch.MergePatch([]byte(schema), patch)
	if err != nil {
		return nil, fmt.Errorf("apply release schema patch: %w", err)
	}
	return patched, nil
}

// CodelistPatches returns the codelist patches and new codelists within the
// extensions, with deprecated codes removed and an Extension column added.
//
// New codelists and replacements must be identical across extensions; +/-
// patches are merged across extensions. A replacement that is consistent
// with its own +/- patches supersedes them: the additions must already be in
// the replacement and the removals must not be.
func (b *Builder) CodelistPatches(ctx context.Context) ([]*codelist.Codelist, error) {
	exts, err := b.Extensions(ctx)
	if err != nil {
		return nil, err
	}

	var lists []*codelist.Codelist
	index := make(map[string]*codelist.Codelist)
	originals := make(map[string]string)

	for _, ext := range exts {
		meta, err := b.registry.Metadata(ctx, ext)
		if err != nil {
			return nil, err
		}
		extensionName := meta.Name["en"]

		for _, name := range meta.Codelists {
			content, err := b.registry.Remote(ctx, ext, "codelists/"+name)
			if err != nil {
				return nil, err
			}

			cl, err := b.readCodelist(name, content, extensionName)
			if err != nil {
				return nil, err
			}

			existing, seen := index[name]
			switch {
			case !seen:
				index[name] = cl
				originals[name] = textutil.Hash(string(content))
				lists = append(lists, cl)
			case cl.IsPatch():
				existing.Rows = append(existing.Rows, cl.Rows...)
			case originals[name] != textutil.Hash(string(content)):
				return nil, fmt.Errorf("codelist %s is different across extensions", name)
			}
		}
	}

	return dropSupersededPatches(lists, index)
}

// dropSupersededPatches removes +name/-name patches whose base codelist is
// replaced outright, after checking the replacement is consistent with them.
func dropSupersededPatches(lists []*codelist.Codelist, index map[string]*codelist.Codelist) ([]*codelist.Codelist, error) {
	var out []*codelist.Codelist
	for _, cl := range lists {
		if cl.IsPatch() {
			if replacement, ok := index[cl.Basename()]; ok {
				for _, code := range cl.Codes() {
					if cl.IsAddend() && !replacement.HasCode(code) {
						return nil, fmt.Errorf("%s added by %s, but not in %s", code, cl.Name, cl.Basename())
					}
					if cl.IsSubtrahend() && replacement.HasCode(code) {
						return nil, fmt.Errorf("%s removed by %s, but in %s", code, cl.Name, cl.Basename())
					}
				}
				if cl.IsAddend() {
					log.Info().Msgf("%s has the codes added by %s, ignoring %s", cl.Basename(), cl.Name, cl.Name)
				} else {
					log.Info().Msgf("%s has no codes removed by %s, ignoring %s", cl.Basename(), cl.Name, cl.Name)
				}
				continue
			}
		}
		out = append(out, cl)
	}
	return out, nil
}

// PatchedCodelists returns the standard's codelists with the extensions'
// patches applied: additions append rows, removals drop codes, and plain
// names replace whole codelists or introduce new ones.
func (b *Builder) PatchedCodelists(ctx context.Context) ([]*codelist.Codelist, error) {
	lists, err := b.StandardCodelists(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*codelist.Codelist, len(lists))
	for _, cl := range lists {
		index[cl.Name] = cl
	}

	patches, err := b.CodelistPatches(ctx)
	if err != nil {
		return nil, err
	}

	for _, patch := range patches {
		switch {
		case patch.IsAddend():
			base, ok := index[patch.Basename()]
			if !ok {
				return nil, fmt.Errorf("base codelist for %s is missing", patch.Name)
			}
			// Rows may not all share the same columns; Write handles that.
			base.Rows = append(base.Rows, patch.Rows...)
		case patch.IsSubtrahend():
			base, ok := index[patch.Basename()]
			if !ok {
				return nil, fmt.Errorf("base codelist for %s is missing", patch.Name)
			}
			removed := make(map[string]bool)
			for _, code := range patch.Codes() {
				removed[code] = true
			}
			kept := base.Rows[:0]
			for _, row := range base.Rows {
				if code, _ := row.Get("Code"); !removed[code] {
					kept = append(kept, row)
				}
			}
			base.Rows = kept
		case index[patch.Name] != nil:
			index[patch.Name].Rows = patch.Rows
		default:
			index[patch.Name] = patch
			lists = append(lists, patch)
		}
	}

	return lists, nil
}

// StandardCodelists returns the codelists within the standard, with
// deprecated codes removed and the Extension column set to the core name.
func (b *Builder) StandardCodelists(ctx context.Context) ([]*codelist.Codelist, error) {
	if err := b.ensureStandardCache(ctx); err != nil {
		return nil, err
	}

	var lists []*codelist.Codelist
	for _, p := range b.fileOrder {
		name := p[strings.LastIndex(p, "/")+1:]
		if name == "" || !strings.Contains(p, "codelists/") {
			continue
		}
		cl, err := b.readCodelist(name, []byte(b.fileCache[p]), CoreExtensionName)
		if err != nil {
			return nil, err
		}
		lists = append(lists, cl)
	}
	return lists, nil
}

// readCodelist parses codelist content, drops deprecated codes, and stamps
// every row with the extension it came from.
func (b *Builder) readCodelist(name string, content []byte, extensionName string) (*codelist.Codelist, error) {
	cl, err := codelist.Read(name, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse codelist %s: %w", name, err)
	}
	for _, row := range cl.Rows {
		row.ExtensionName = extensionName
	}
	for _, code := range cl.RemoveDeprecatedCodes() {
		log.Info().Msgf("... skipping deprecated code %s in %s", code, name)
	}
	cl.AddExtensionColumn("Extension")
	return cl, nil
}

// standardFileContents returns one file of the standard's schema directory.
func (b *Builder) standardFileContents(ctx context.Context, basename string) (string, error) {
	if err := b.ensureStandardCache(ctx); err != nil {
		return "", err
	}
	content, ok := b.fileCache[basename]
	if !ok {
		return "", fmt.Errorf("file %s not found in standard %s", basename, b.standardVersion)
	}
	return content, nil
}

// ensureStandardCache downloads the standard zip once and caches the schema
// directory's files.
func (b *Builder) ensureStandardCache(ctx context.Context) error {
	if len(b.fileCache) > 0 {
		return nil
	}

	data, err := b.registry.Fetch(ctx, b.standardBaseURL+b.standardVersion)
	if err != nil {
		return fmt.Errorf("download standard %s: %w", b.standardVersion, err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("open standard zip: %w", err)
	}
	if len(zr.File) == 0 {
		return fmt.Errorf("standard zip for %s is empty", b.standardVersion)
	}

	// The archive has a single top-level directory; schema files live under
	// <top>/standard/schema/.
	prefix := zr.File[0].Name + "standard/schema/"
	for _, f := range zr.File[1:] {
		if !strings.HasPrefix(f.Name, prefix) || f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open %s in standard zip: %w", f.Name, err)
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("read %s in standard zip: %w", f.Name, err)
		}
		key := f.Name[len(prefix):]
		b.fileCache[key] = buf.String()
		b.fileOrder = append(b.fileOrder, key)
	}

	log.Info().Int("files", len(b.fileOrder)).Str("version", b.standardVersion).Msg("Cached standard schema files")
	return nil
}
