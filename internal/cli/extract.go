package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"docs-support/internal/extract"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file>...",
		Short: "Extract translatable messages as a POT fragment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			headersOnly, _ := cmd.Flags().GetBool("headers-only")
			output, _ := cmd.Flags().GetString("output")
			return runExtract(format, headersOnly, output, args)
		},
	}

	cmd.Flags().String("format", "", "Input format: codelist or schema")
	cmd.Flags().Bool("headers-only", false, "Extract only codelist headers")
	cmd.Flags().String("output", "", "Write POT output to a file instead of stdout")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

func runExtract(format string, headersOnly bool, output string, files []string) error {
	var fn extract.Func
	switch format {
	case "codelist":
		fn = extract.New(extract.FormatCodelist)
	case "schema":
		fn = extract.New(extract.FormatSchema)
	default:
		return fmt.Errorf("unknown format %q (want codelist or schema)", format)
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	opts := extract.Options{HeadersOnly: headersOnly}
	total := 0
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		msgs, err := fn(f, opts)
		f.Close()
		if err != nil {
			return fmt.Errorf("extract %s: %w", path, err)
		}
		if err := extract.WritePOT(out, path, msgs); err != nil {
			return fmt.Errorf("write POT for %s: %w", path, err)
		}
		total += len(msgs)
	}

	log.Info().Int("files", len(files)).Int("messages", total).Msg("Extraction complete")
	return nil
}
