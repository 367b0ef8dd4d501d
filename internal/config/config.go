package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"docs-support/internal/profile"
)

// DefaultFile is the build configuration read when no --config flag is set.
const DefaultFile = "docs-support.yaml"

// Config is the shared build configuration for the documentation toolchain.
// Values come from the YAML build file, overridden by environment variables
// (a .env file is honored).
type Config struct {
	// Domain is the gettext domain of the message catalogs.
	Domain string `yaml:"domain"`
	// Language is the build's target language (ISO 639-1 or BCP 47).
	Language string `yaml:"language"`
	// LocaleDir holds the per-language message catalogs.
	LocaleDir string `yaml:"locale_dir"`
	// Version replaces {{version}} placeholders in translated schema text.
	Version string `yaml:"version"`

	// ProfileID names the profile being built.
	ProfileID string `yaml:"profile_id"`
	// StandardVersion is the standard release the profile builds on.
	StandardVersion string `yaml:"standard_version"`
	// RegistryBaseURL overrides the extension registry location.
	RegistryBaseURL string `yaml:"registry_base_url"`
	// StandardBaseURL overrides the standard zip download location.
	StandardBaseURL string `yaml:"standard_base_url"`
	// Extensions lists the extension versions to merge, in order.
	Extensions []profile.ExtensionVersion `yaml:"extensions"`

	// WorkerCount bounds how many files are processed at once.
	WorkerCount int `yaml:"worker_count"`
}

// Load reads the build configuration. An empty path falls back to
// DefaultFile when it exists; a missing default is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		Domain:      "codelists",
		Language:    "en",
		LocaleDir:   "locale",
		Version:     "latest",
		WorkerCount: 4,
	}

	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.Domain = getEnv("GETTEXT_DOMAIN", cfg.Domain)
	cfg.Language = getEnv("DOCS_LANGUAGE", cfg.Language)
	cfg.LocaleDir = getEnv("LOCALE_DIR", cfg.LocaleDir)
	cfg.Version = getEnv("DOCS_VERSION", cfg.Version)
	cfg.StandardVersion = getEnv("STANDARD_VERSION", cfg.StandardVersion)
	cfg.RegistryBaseURL = getEnv("REGISTRY_BASE_URL", cfg.RegistryBaseURL)
	cfg.StandardBaseURL = getEnv("STANDARD_BASE_URL", cfg.StandardBaseURL)
	cfg.WorkerCount = getEnvInt("WORKER_COUNT", cfg.WorkerCount)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
