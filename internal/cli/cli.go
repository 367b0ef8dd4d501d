package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "docs-support",
		Short: "Documentation-build support utilities",
		Long: `Support utilities for a documentation build: extraction of translatable
messages from codelist CSV and JSON Schema files, translated copies of those
files for a localized build, and profile assembly from schema extensions.`,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to the build configuration file")

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(translateCodelistsCmd())
	rootCmd.AddCommand(translateSchemaCmd())
	rootCmd.AddCommand(buildProfileCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
