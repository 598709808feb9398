package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lingopher/internal/config"
	"lingopher/internal/observability"
)

// UsageCommand returns the account usage command.
func UsageCommand(cfg *config.Config, logger *observability.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show account character usage",
		Long:  `Show how many characters the account has translated this billing period and the account limit.`,
		RunE:  runUsage(cfg, logger),
	}
}

// runUsage fetches and prints the account consumption.
func runUsage(cfg *config.Config, logger *observability.Logger) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) (err error) {
		ctx, cancel := commandContext()
		defer cancel()
		ctx, span := observability.TraceCLIFunction(ctx, "usage")
		defer observability.FinishSpan(span, &err)

		client, err := newClient(cfg, logger)
		if err != nil {
			return err
		}

		usage, err := client.Usage(ctx)
		if err != nil {
			logger.Error(ctx, "Failed to fetch usage", err, nil)
			return err
		}

		fmt.Printf("Characters used: %d\n", usage.CharacterCount)
		if usage.CharacterLimit > 0 {
			percent := float64(usage.CharacterCount) / float64(usage.CharacterLimit) * 100
			fmt.Printf("Character limit: %d (%.1f%% used)\n", usage.CharacterLimit, percent)
		} else {
			fmt.Println("Character limit: unlimited")
		}
		if usage.LimitReached() {
			fmt.Println("Warning: the character quota is exhausted; translation calls will fail until it resets.")
		}
		return nil
	}
}
