// Package commands provides the CLI commands for the lingopher client.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lingopher/apierror"
	"lingopher/internal/config"
	"lingopher/internal/observability"
	"lingopher/translator"
)

// textOptions holds the translation flags for the text command.
type textOptions struct {
	sourceLang         string
	targetLang         string
	formality          string
	splitSentences     string
	tagHandling        string
	preserveFormatting bool
	outlineDetection   bool
	nonSplittingTags   []string
	splittingTags      []string
	ignoreTags         []string
	showDetected       bool
}

// TextCommand returns the text translation command.
func TextCommand(cfg *config.Config, logger *observability.Logger) *cobra.Command {
	opts := &textOptions{}

	cmd := &cobra.Command{
		Use:   "text [text]...",
		Short: "Translate one or more texts",
		Long: `Translate one or more texts into the target language.

Each argument is one text; results print in input order, one per line.
Without arguments the text is read from stdin. The target language comes
from --target or the configured default. Without --source the service
detects the source language per text.`,
		Args: cobra.ArbitraryArgs,
		RunE: runText(cfg, logger, opts),
	}

	cmd.Flags().StringVarP(&opts.sourceLang, "source", "s", "", "Source language code (omit to auto-detect)")
	cmd.Flags().StringVarP(&opts.targetLang, "target", "t", "", "Target language code")
	cmd.Flags().StringVar(&opts.formality, "formality", "", "Formality: less, default, more, prefer_less or prefer_more")
	cmd.Flags().StringVar(&opts.splitSentences, "split-sentences", "", "Sentence splitting: off, on, nonewlines or default")
	cmd.Flags().StringVar(&opts.tagHandling, "tag-handling", "", "Markup handling: xml or html")
	cmd.Flags().BoolVar(&opts.preserveFormatting, "preserve-formatting", false, "Keep the input formatting untouched")
	cmd.Flags().BoolVar(&opts.outlineDetection, "outline-detection", true, "Detect XML structure automatically")
	cmd.Flags().StringSliceVar(&opts.nonSplittingTags, "non-splitting-tags", nil, "Tags that never split sentences")
	cmd.Flags().StringSliceVar(&opts.splittingTags, "splitting-tags", nil, "Tags that always split sentences")
	cmd.Flags().StringSliceVar(&opts.ignoreTags, "ignore-tags", nil, "Tags whose content is not translated")
	cmd.Flags().BoolVar(&opts.showDetected, "show-detected", false, "Prefix each result with the detected source language")

	return cmd
}

// runText executes the translation and prints one result per line.
func runText(cfg *config.Config, logger *observability.Logger, opts *textOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx, cancel := commandContext()
		defer cancel()

		texts := args
		if len(texts) == 0 {
			text, err := readStdinText(cmd)
			if err != nil {
				return err
			}
			texts = []string{text}
		}

		ctx, span := observability.TraceCLIFunction(ctx, "text",
			observability.AttributeTextCount(len(texts)))
		defer observability.FinishSpan(span, &err)

		targetLang := opts.targetLang
		if targetLang == "" {
			targetLang = cfg.Defaults.TargetLang
		}
		if targetLang == "" {
			return apierror.Errorf(apierror.ErrorCodeInvalidInput,
				"target language is required: pass --target or configure a default")
		}
		sourceLang := opts.sourceLang
		if sourceLang == "" {
			sourceLang = cfg.Defaults.SourceLang
		}

		client, err := newClient(cfg, logger)
		if err != nil {
			return err
		}

		results, err := client.TranslateTexts(ctx, texts, sourceLang, targetLang,
			opts.translateOptions(cmd, cfg))
		if err != nil {
			logger.Error(ctx, "Translation failed", err, map[string]interface{}{
				"text_count":  len(texts),
				"target_lang": targetLang,
			})
			return err
		}

		for _, result := range results {
			if opts.showDetected {
				fmt.Printf("[%s] %s\n", result.DetectedSourceLang, result.Text)
			} else {
				fmt.Println(result.Text)
			}
		}
		return nil
	}
}

// translateOptions assembles the library options from the flags. Boolean
// options ride along only when their flag was set explicitly, so the service
// defaults stay in charge otherwise.
func (o *textOptions) translateOptions(cmd *cobra.Command, cfg *config.Config) *translator.TranslateOptions {
	formality := o.formality
	if formality == "" {
		formality = cfg.Defaults.Formality
	}

	opts := &translator.TranslateOptions{
		Formality:        translator.Formality(formality),
		SplitSentences:   translator.SplitSentences(o.splitSentences),
		TagHandling:      translator.TagHandling(o.tagHandling),
		NonSplittingTags: o.nonSplittingTags,
		SplittingTags:    o.splittingTags,
		IgnoreTags:       o.ignoreTags,
	}
	if cmd.Flags().Changed("preserve-formatting") {
		opts.PreserveFormatting = translator.Bool(o.preserveFormatting)
	}
	if cmd.Flags().Changed("outline-detection") {
		opts.OutlineDetection = translator.Bool(o.outlineDetection)
	}
	return opts
}

// readStdinText reads the full standard input as a single text to translate.
func readStdinText(cmd *cobra.Command) (string, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", apierror.WrapErrorf(apierror.ErrInternal, "failed to read stdin: %v", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", apierror.Errorf(apierror.ErrorCodeInvalidInput,
			"texts parameter must contain at least one non-empty string")
	}
	return text, nil
}
