// Package translator is the public client for the Lingopher translation
// service. A Translator validates input locally, normalizes language codes,
// maps options onto wire parameters, and retries rate-limited or transiently
// failing requests with exponential backoff before surfacing an error.
//
// One Translator is safe for concurrent use; every call carries its own
// retry state.
package translator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"

	"lingopher/apierror"
	"lingopher/internal/config"
	"lingopher/internal/lang"
	"lingopher/internal/observability"
	"lingopher/internal/retry"
	"lingopher/internal/transport"
	"lingopher/internal/wire"
)

var validate = validator.New()

// Config configures a Translator. AuthKey is the only required field; zero
// values elsewhere select the documented defaults (production server URL,
// 30s HTTP timeout, 5 retries with backoff doubling from 1s to a 60s cap,
// unlimited concurrency).
type Config struct {
	// AuthKey authenticates every request.
	AuthKey string `validate:"required"`
	// ServerURL overrides the production endpoint, e.g. for a sandbox.
	ServerURL string `validate:"omitempty,url"`
	// HTTPTimeout bounds a single HTTP attempt, not the whole retried call.
	HTTPTimeout time.Duration `validate:"omitempty,gt=0"`
	// MaxRetries is the number of retries after the first attempt. Nil keeps
	// the default; use Int(0) to disable retrying.
	MaxRetries *int `validate:"omitempty,gte=0"`
	// BackoffInitial is the delay before the first retry.
	BackoffInitial time.Duration `validate:"omitempty,gt=0"`
	// BackoffMax caps the exponentially growing delay.
	BackoffMax time.Duration `validate:"omitempty,gt=0"`
	// MaxConcurrent caps in-flight requests across all calls on this
	// Translator. Zero means no cap.
	MaxConcurrent int `validate:"gte=0"`
	// Logger receives structured client logs. Nil disables logging.
	Logger *observability.Logger `validate:"-"`
	// HTTPClient replaces the built-in instrumented client, for callers with
	// their own proxy or TLS needs.
	HTTPClient *http.Client `validate:"-"`
}

// Int returns a pointer to v, for Config fields where zero is meaningful.
func Int(v int) *int {
	return &v
}

// Translation is the result for one input text. DetectedSourceLang reflects
// the service's own detection and is present even when the source language
// was supplied explicitly.
type Translation struct {
	Text               string
	DetectedSourceLang string
}

// Language describes one language the service supports.
type Language struct {
	Code              string
	Name              string
	SupportsFormality bool
}

// Usage reports account consumption for the current billing period.
type Usage struct {
	CharacterCount int64
	CharacterLimit int64
}

// LimitReached reports whether the character quota is spent.
func (u *Usage) LimitReached() bool {
	return u.CharacterLimit > 0 && u.CharacterCount >= u.CharacterLimit
}

// Translator talks to the translation service. Construct it with New; the
// zero value is not usable.
type Translator struct {
	sender transport.Sender
	engine *retry.Engine
	logger *observability.Logger
	sem    chan struct{}
	now    func() time.Time
}

// New creates a Translator from cfg. It fails with a CONFIG_INVALID error
// when cfg violates its constraints; no network I/O happens here.
func New(cfg Config) (*Translator, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, apierror.NewWithCause(apierror.ErrorCodeConfigInvalid, apierror.SeverityError,
			"Client configuration invalid", err.Error(), err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.NewLogger(nil)
	}

	serverURL := cfg.ServerURL
	if serverURL == "" {
		serverURL = config.DefaultServerURL
	}
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = config.DefaultHTTPTimeout
	}

	var sender transport.Sender
	if cfg.HTTPClient != nil {
		sender = transport.NewHTTPSenderWithClient(serverURL, cfg.AuthKey, cfg.HTTPClient, logger)
	} else {
		sender = transport.NewHTTPSender(serverURL, cfg.AuthKey, timeout, logger)
	}
	return newTranslator(cfg, sender, logger, nil), nil
}

// newTranslator wires a Translator onto an explicit sender and clock. Tests
// use it to substitute a transport stub and a virtual clock.
func newTranslator(cfg Config, sender transport.Sender, logger *observability.Logger, clock retry.Clock) *Translator {
	if logger == nil {
		logger = observability.NewLogger(nil)
	}

	retryCfg := retry.DefaultConfig()
	if cfg.MaxRetries != nil {
		retryCfg.MaxRetries = *cfg.MaxRetries
	}
	if cfg.BackoffInitial > 0 {
		retryCfg.BackoffInitial = cfg.BackoffInitial
	}
	if cfg.BackoffMax > 0 {
		retryCfg.BackoffMax = cfg.BackoffMax
	}

	var engine *retry.Engine
	if clock != nil {
		engine = retry.NewEngineWithClock(retryCfg, logger, clock)
	} else {
		engine = retry.NewEngine(retryCfg, logger)
	}

	var sem chan struct{}
	if cfg.MaxConcurrent > 0 {
		sem = make(chan struct{}, cfg.MaxConcurrent)
	}

	return &Translator{
		sender: sender,
		engine: engine,
		logger: logger,
		sem:    sem,
		now:    time.Now,
	}
}

// TranslateText translates a single text into targetLang. Pass an empty
// sourceLang to let the service detect the source language.
func (t *Translator) TranslateText(ctx context.Context, text, sourceLang, targetLang string, opts *TranslateOptions) (*Translation, error) {
	results, err := t.TranslateTexts(ctx, []string{text}, sourceLang, targetLang, opts)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// TranslateTexts translates a batch of texts into targetLang, returning one
// result per input in input order. Validation is all-or-nothing: any invalid
// text, language code, or option fails the whole call before network I/O.
func (t *Translator) TranslateTexts(ctx context.Context, texts []string, sourceLang, targetLang string, opts *TranslateOptions) (result0 []Translation, err error) {
	ctx, span := observability.TraceTranslatorFunction(ctx, "translate_texts",
		observability.AttributeSourceLang(sourceLang),
		observability.AttributeTargetLang(targetLang),
		observability.AttributeTextCount(len(texts)),
	)
	defer observability.FinishSpan(span, &err)

	params, err := buildTranslateParams(texts, sourceLang, targetLang, opts)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	resp, err := t.do(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   wire.EndpointTranslate,
		Params: params,
	})
	if err != nil {
		return nil, err
	}

	decoded, err := wire.DecodeTranslations(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(decoded.Translations) != len(texts) {
		return nil, apierror.New(apierror.ErrorCodeResponseInvalid, apierror.SeverityError,
			"Service response failed validation",
			fmt.Sprintf("expected %d translations, got %d", len(texts), len(decoded.Translations)))
	}

	results := make([]Translation, len(decoded.Translations))
	for i, tr := range decoded.Translations {
		results[i] = Translation{
			Text:               tr.Text,
			DetectedSourceLang: tr.DetectedSourceLanguage,
		}
	}

	t.logger.Debug(ctx, "Translation completed", map[string]interface{}{
		"text_count":  len(texts),
		"target_lang": targetLang,
		"duration":    time.Since(startTime).String(),
	})
	return results, nil
}

// buildTranslateParams runs the pre-network pipeline: text validation,
// language normalization, option mapping. It short-circuits on the first
// failure so no partial request is ever assembled.
func buildTranslateParams(texts []string, sourceLang, targetLang string, opts *TranslateOptions) (url.Values, error) {
	if err := validateTexts(texts); err != nil {
		return nil, err
	}

	params := url.Values{}
	for _, text := range texts {
		params.Add(wire.ParamText, text)
	}

	if sourceLang != "" {
		normalized, err := lang.Normalize(sourceLang, lang.Source)
		if err != nil {
			return nil, err
		}
		params.Set(wire.ParamSourceLang, normalized)
	}

	normalized, err := lang.Normalize(targetLang, lang.Target)
	if err != nil {
		return nil, err
	}
	params.Set(wire.ParamTargetLang, normalized)

	if err := opts.encode(params); err != nil {
		return nil, err
	}
	return params, nil
}

// SourceLanguages lists the languages the service can translate from.
func (t *Translator) SourceLanguages(ctx context.Context) ([]Language, error) {
	return t.languages(ctx, wire.LanguageTypeSource)
}

// TargetLanguages lists the languages the service can translate into,
// including which of them support the formality option.
func (t *Translator) TargetLanguages(ctx context.Context) ([]Language, error) {
	return t.languages(ctx, wire.LanguageTypeTarget)
}

func (t *Translator) languages(ctx context.Context, languageType string) (result0 []Language, err error) {
	ctx, span := observability.TraceTranslatorFunction(ctx, "languages")
	defer observability.FinishSpan(span, &err)

	params := url.Values{}
	params.Set(wire.ParamType, languageType)

	resp, err := t.do(ctx, &transport.Request{
		Method: http.MethodGet,
		Path:   wire.EndpointLanguages,
		Params: params,
	})
	if err != nil {
		return nil, err
	}

	infos, err := wire.DecodeLanguages(resp.Body)
	if err != nil {
		return nil, err
	}
	languages := make([]Language, len(infos))
	for i, info := range infos {
		languages[i] = Language{
			Code:              info.Language,
			Name:              info.Name,
			SupportsFormality: info.SupportsFormality,
		}
	}
	return languages, nil
}

// Usage reports the account's character consumption and limit.
func (t *Translator) Usage(ctx context.Context) (result0 *Usage, err error) {
	ctx, span := observability.TraceTranslatorFunction(ctx, "usage")
	defer observability.FinishSpan(span, &err)

	resp, err := t.do(ctx, &transport.Request{
		Method: http.MethodGet,
		Path:   wire.EndpointUsage,
		Params: url.Values{},
	})
	if err != nil {
		return nil, err
	}

	decoded, err := wire.DecodeUsage(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Usage{
		CharacterCount: decoded.CharacterCount,
		CharacterLimit: decoded.CharacterLimit,
	}, nil
}

// do sends req through the retry engine and returns the successful response.
func (t *Translator) do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	if err := t.acquire(ctx); err != nil {
		return nil, err
	}
	defer t.release()

	var success *transport.Response
	err := t.engine.Execute(ctx, func(ctx context.Context, attempt int) retry.Outcome {
		resp, sendErr := t.sender.Send(ctx, req)
		out := t.classify(resp, sendErr)
		if out.Verdict == retry.VerdictSuccess {
			success = resp
		}
		return out
	})
	if err != nil {
		return nil, err
	}
	return success, nil
}

// acquire takes a concurrency slot, waiting until one frees up or ctx ends.
func (t *Translator) acquire(ctx context.Context) error {
	if t.sem == nil {
		return nil
	}
	select {
	case t.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return apierror.NewWithCause(apierror.ErrorCodeCancelled, apierror.SeverityInfo,
			"Operation cancelled", "waiting for a request slot", ctx.Err())
	}
}

func (t *Translator) release() {
	if t.sem != nil {
		<-t.sem
	}
}
