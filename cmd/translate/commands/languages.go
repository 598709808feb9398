package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lingopher/apierror"
	"lingopher/internal/config"
	"lingopher/internal/observability"
	"lingopher/internal/wire"
	"lingopher/translator"
)

// LanguagesCommand returns the language listing command.
func LanguagesCommand(cfg *config.Config, logger *observability.Logger) *cobra.Command {
	var languageType string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List languages the service supports",
		Long: `List languages the service supports.

With --type target (the default) the listing includes which languages
support the formality option.`,
		RunE: runLanguages(cfg, logger, &languageType),
	}

	cmd.Flags().StringVar(&languageType, "type", wire.LanguageTypeTarget, "Which set to list: source or target")

	return cmd
}

// runLanguages fetches and prints the requested language set.
func runLanguages(cfg *config.Config, logger *observability.Logger, languageType *string) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) (err error) {
		ctx, cancel := commandContext()
		defer cancel()
		ctx, span := observability.TraceCLIFunction(ctx, "languages")
		defer observability.FinishSpan(span, &err)

		client, err := newClient(cfg, logger)
		if err != nil {
			return err
		}

		var languages []translator.Language
		switch *languageType {
		case wire.LanguageTypeSource:
			languages, err = client.SourceLanguages(ctx)
		case wire.LanguageTypeTarget:
			languages, err = client.TargetLanguages(ctx)
		default:
			return apierror.Errorf(apierror.ErrorCodeInvalidInput,
				"type must be source or target, got %q", *languageType)
		}
		if err != nil {
			logger.Error(ctx, "Failed to list languages", err, map[string]interface{}{
				"type": *languageType,
			})
			return err
		}

		fmt.Printf("%-10s %-30s %s\n", "CODE", "NAME", "FORMALITY")
		for _, language := range languages {
			formality := ""
			if language.SupportsFormality {
				formality = "yes"
			}
			fmt.Printf("%-10s %-30s %s\n", language.Code, language.Name, formality)
		}

		logger.Info(ctx, "Listed languages", map[string]interface{}{
			"type":  *languageType,
			"total": len(languages),
		})
		return nil
	}
}
