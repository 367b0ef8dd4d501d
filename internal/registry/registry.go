// Package registry reads the extension registry: the published CSV of
// extension versions and the files each extension serves from its base URL.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"docs-support/internal/document"
)

// DefaultBaseURL is the published extension registry.
const DefaultBaseURL = "https://raw.githubusercontent.com/open-contracting/extension_registry/master/"

// Extension is one row of the registry.
type Extension struct {
	ID          string
	Date        string
	Version     string
	BaseURL     string
	DownloadURL string
}

// Metadata is the subset of an extension's extension.json the build needs.
type Metadata struct {
	Name      map[string]string `json:"name"`
	Codelists []string          `json:"codelists"`
}

// Registry is a parsed extension registry plus the HTTP client used to fetch
// extension files.
type Registry struct {
	extensions []Extension
	client     *http.Client
}

// New downloads and parses <baseURL>/extension_versions.csv.
func New(ctx context.Context, baseURL string) (*Registry, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	r := &Registry{
		client: &http.Client{Timeout: 30 * time.Second},
	}

	body, err := r.get(ctx, baseURL+"extension_versions.csv")
	if err != nil {
		return nil, fmt.Errorf("fetch extension registry: %w", err)
	}

	t, err := document.ReadTable(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse extension registry: %w", err)
	}

	column := make(map[string]int)
	for i, field := range t.Fields {
		column[field] = i
	}
	cell := func(row []string, name string) string {
		if i, ok := column[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	for _, row := range t.Rows {
		r.extensions = append(r.extensions, Extension{
			ID:          cell(row, "Id"),
			Date:        cell(row, "Date"),
			Version:     cell(row, "Version"),
			BaseURL:     cell(row, "Base URL"),
			DownloadURL: cell(row, "Download URL"),
		})
	}

	log.Info().Int("extensions", len(r.extensions)).Msg("Loaded extension registry")
	return r, nil
}

// All returns every registered extension version, in registry order.
func (r *Registry) All() []Extension {
	return append([]Extension(nil), r.extensions...)
}

// Get returns the extension with the given identifier and version.
func (r *Registry) Get(id, version string) (Extension, error) {
	for _, ext := range r.extensions {
		if ext.ID == id && ext.Version == version {
			return ext, nil
		}
	}
	return Extension{}, fmt.Errorf("extension %s version %s not found in registry", id, version)
}

// Remote fetches a file relative to the extension's base URL.
func (r *Registry) Remote(ctx context.Context, ext Extension, path string) ([]byte, error) {
	body, err := r.get(ctx, ext.BaseURL+path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s for extension %s: %w", path, ext.ID, err)
	}
	return body, nil
}

// Metadata fetches and decodes the extension's extension.json.
func (r *Registry) Metadata(ctx context.Context, ext Extension) (*Metadata, error) {
	body, err := r.Remote(ctx, ext, "extension.json")
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("decode extension.json for %s: %w", ext.ID, err)
	}
	return &meta, nil
}

// Fetch performs a plain GET, for callers that hold an absolute URL such as
// the standard zip download.
func (r *Registry) Fetch(ctx context.Context, url string) ([]byte, error) {
	return r.get(ctx, url)
}

func (r *Registry) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}
