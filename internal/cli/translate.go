package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"docs-support/internal/catalog"
	"docs-support/internal/config"
	"docs-support/internal/document"
	"docs-support/internal/translate"
	"docs-support/internal/worker"
)

func translateCodelistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate-codelists <sourcedir> <builddir>",
		Short: "Write translated copies of the codelist CSV files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslateCodelists(configPath(cmd), args[0], args[1])
		},
	}
}

func translateSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate-schema <sourcedir> <builddir> <file>...",
		Short: "Write translated copies of the JSON Schema files",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslateSchema(configPath(cmd), args[0], args[1], args[2:])
		},
	}
}

func runTranslateCodelists(cfgPath, sourceDir, buildDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.LocaleDir, cfg.Domain, cfg.Language)
	if err != nil {
		return err
	}

	files, err := filepath.Glob(filepath.Join(sourceDir, "*.csv"))
	if err != nil {
		return fmt.Errorf("list codelists: %w", err)
	}

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return fmt.Errorf("create build directory: %w", err)
	}

	log.Info().Str("source", sourceDir).Str("language", cfg.Language).Msg("Translating codelists")

	pool := worker.NewPool[string, string](cfg.WorkerCount,
		func(ctx context.Context, path string) (string, error) {
			return translateCodelistFile(path, buildDir, cat)
		},
	)

	for _, task := range pool.Execute(ctx, files) {
		if task.Err != nil {
			return fmt.Errorf("translate %s: %w", task.Input, task.Err)
		}
	}

	log.Info().Int("files", len(files)).Str("build", buildDir).Msg("Codelists translated")
	return nil
}

func translateCodelistFile(path, buildDir string, lookup translate.Lookup) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	t, err := document.ReadTable(f)
	f.Close()
	if err != nil {
		return "", err
	}

	translated := translate.Table(t, lookup, nil)

	var buf bytes.Buffer
	if err := translated.Write(&buf); err != nil {
		return "", err
	}

	outPath := filepath.Join(buildDir, filepath.Base(path))
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return outPath, nil
}

func runTranslateSchema(cfgPath, sourceDir, buildDir string, files []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.LocaleDir, cfg.Domain, cfg.Language)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return fmt.Errorf("create build directory: %w", err)
	}

	log.Info().Str("source", sourceDir).Str("language", cfg.Language).Msg("Translating schema")

	opts := translate.Options{Version: cfg.Version, Language: cfg.Language}
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(sourceDir, name))
		if err != nil {
			return fmt.Errorf("read schema %s: %w", name, err)
		}
		v, err := document.Parse(data)
		if err != nil {
			return fmt.Errorf("parse schema %s: %w", name, err)
		}

		translated := translate.Schema(v, cat, opts)

		var buf bytes.Buffer
		if err := translated.Encode(&buf); err != nil {
			return fmt.Errorf("encode schema %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(buildDir, name), buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write schema %s: %w", name, err)
		}
	}

	log.Info().Int("files", len(files)).Str("build", buildDir).Msg("Schema translated")
	return nil
}
