package commands

import (
	"context"
	"strings"

	"lingopher/internal/config"
	"lingopher/internal/observability"
	"lingopher/translator"
)

// newClient builds a Translator from the loaded CLI configuration.
func newClient(cfg *config.Config, logger *observability.Logger) (*translator.Translator, error) {
	clientCfg := translator.Config{
		AuthKey:       cfg.AuthKey,
		ServerURL:     cfg.ServerURL,
		MaxConcurrent: cfg.MaxConcurrent,
		Logger:        logger,
	}
	if cfg.MaxRetries > 0 {
		clientCfg.MaxRetries = translator.Int(cfg.MaxRetries)
	}
	return translator.New(clientCfg)
}

// commandContext bounds a command so a wedged service cannot hang the CLI.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), config.CLIRequestTimeout)
}

// maskAuthKey masks the auth key for display, keeping just enough of the
// ends to recognize which key it is.
func maskAuthKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
