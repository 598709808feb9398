// Package main provides the main entry point for the lingopher translation CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"lingopher/cmd/translate/commands"
	"lingopher/internal/config"
	"lingopher/internal/observability"
	"lingopher/internal/version"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.OpenTelemetry.ServiceVersion == "" {
		cfg.OpenTelemetry.ServiceVersion = version.Version
	}

	// Setup observability (tracing/metrics/logging)
	tp, mp, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "lingopher-cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.TelemetryShutdownTimeout)
		defer cancel()
		// Only the standard SDK provider owns resources to flush.
		if sdkTP, ok := tp.(*sdktrace.TracerProvider); ok {
			if err := sdkTP.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "Error shutting down tracer provider", map[string]interface{}{"error": err.Error(), "provider": "tracer"})
			}
		}
		if mp != nil {
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "Error shutting down meter provider", map[string]interface{}{"error": err.Error(), "provider": "meter"})
			}
		}
	}()

	// Create the root command
	rootCmd := &cobra.Command{
		Use:   "translate",
		Short: "Lingopher translation service client",
		Long: `Lingopher translation service client

Translates text through the Lingopher API. Store your auth key once with
the configure command, or export LINGOPHER_AUTH_KEY.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,

		Run: func(cmd *cobra.Command, _ []string) {
			// Show help if no subcommand provided
			if err := cmd.Help(); err != nil {
				fmt.Printf("Error showing help: %v\n", err)
			}
		},
	}

	rootCmd.AddCommand(commands.TextCommand(cfg, logger))
	rootCmd.AddCommand(commands.LanguagesCommand(cfg, logger))
	rootCmd.AddCommand(commands.UsageCommand(cfg, logger))
	rootCmd.AddCommand(commands.ConfigureCommand(cfg, logger))

	// Execute the command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
