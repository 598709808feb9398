package commands

import (
	"context"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lingopher/apierror"
	"lingopher/internal/config"
	"lingopher/internal/observability"
)

// ConfigureCommand returns the command that writes the config file.
func ConfigureCommand(cfg *config.Config, logger *observability.Logger) *cobra.Command {
	var serverURL string
	var defaultTarget string

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store the auth key and defaults in the config file",
		Long: `Store the auth key and defaults in the config file.

This command will:
- Prompt for the auth key without echoing it
- Write the configuration to ` + config.DefaultConfigFileName + ` in your home directory, readable only by you

Values already in the file are kept unless overridden here.`,
		RunE: runConfigure(cfg, logger, &serverURL, &defaultTarget),
	}

	cmd.Flags().StringVar(&serverURL, "server-url", "", "API base URL (omit for the production endpoint)")
	cmd.Flags().StringVar(&defaultTarget, "default-target", "", "Default target language for the text command")

	return cmd
}

// runConfigure prompts for the auth key and saves the configuration.
func runConfigure(cfg *config.Config, logger *observability.Logger, serverURL, defaultTarget *string) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()

		// Prompt for the auth key securely
		fmt.Print("Enter auth key: ")
		keyBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // New line after hidden input
		if err != nil {
			return apierror.WrapErrorf(apierror.ErrInternal, "failed to read auth key: %v", err)
		}

		authKey := strings.TrimSpace(string(keyBytes))
		if authKey == "" {
			return apierror.Errorf(apierror.ErrorCodeInvalidInput, "auth key must not be empty")
		}

		cfg.AuthKey = authKey
		if *serverURL != "" {
			cfg.ServerURL = *serverURL
		}
		if *defaultTarget != "" {
			cfg.Defaults.TargetLang = *defaultTarget
		}

		path := config.DefaultConfigPath()
		if err := cfg.Save(path); err != nil {
			logger.Error(ctx, "Failed to write config file", err, map[string]interface{}{"path": path})
			return err
		}

		fmt.Printf("Configuration written to %s (auth key %s)\n", path, maskAuthKey(authKey))
		logger.Info(ctx, "Configuration updated", map[string]interface{}{"path": path})
		return nil
	}
}
