package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"docs-support/internal/config"
	"docs-support/internal/profile"
	"docs-support/internal/registry"
)

func buildProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-profile <schemadir>",
		Short: "Merge the configured extensions into the profile's schema and codelists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codelistsDir, _ := cmd.Flags().GetString("codelists-dir")
			return runBuildProfile(configPath(cmd), args[0], codelistsDir)
		},
	}

	cmd.Flags().String("codelists-dir", "", "Directory for compiled codelists (default <schemadir>/../compiledCodelists)")

	return cmd
}

func runBuildProfile(cfgPath, schemaDir, codelistsDir string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if cfg.ProfileID == "" {
		return fmt.Errorf("profile_id is not set in the build configuration")
	}
	if codelistsDir == "" {
		codelistsDir = filepath.Join(schemaDir, "..", "compiledCodelists")
	}

	reg, err := registry.New(ctx, cfg.RegistryBaseURL)
	if err != nil {
		return err
	}

	builder := profile.NewBuilder(reg, cfg.StandardVersion, cfg.Extensions, cfg.StandardBaseURL)

	schema, err := builder.PatchedReleaseSchema(ctx)
	if err != nil {
		return err
	}
	schemaPath := filepath.Join(schemaDir, cfg.ProfileID+"-release-schema.json")
	if err := writeJSON(schemaPath, schema); err != nil {
		return err
	}

	patch, err := builder.ReleaseSchemaPatch(ctx)
	if err != nil {
		return err
	}
	patchPath := filepath.Join(schemaDir, cfg.ProfileID+"-extension.json")
	if err := writeJSON(patchPath, patch); err != nil {
		return err
	}

	codelists, err := builder.PatchedCodelists(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(codelistsDir, 0755); err != nil {
		return fmt.Errorf("create codelists directory: %w", err)
	}
	for _, cl := range codelists {
		var buf bytes.Buffer
		if err := cl.Write(&buf); err != nil {
			return fmt.Errorf("write codelist %s: %w", cl.Name, err)
		}
		if err := os.WriteFile(filepath.Join(codelistsDir, cl.Name), buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write codelist %s: %w", cl.Name, err)
		}
	}

	log.Info().
		Str("profile", cfg.ProfileID).
		Int("codelists", len(codelists)).
		Str("schema", schemaPath).
		Msg("Profile built")
	return nil
}

func writeJSON(path string, data []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("indent %s: %w", path, err)
	}
	buf.WriteByte('\n')
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
