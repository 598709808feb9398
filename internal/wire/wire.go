// Package wire defines the Lingopher HTTP API surface: endpoint paths,
// form parameter names, and the request/response payload types. Parameter
// names here are the single source of truth; validation error messages quote
// them so callers see the exact field the service would have rejected.
package wire

import (
	"encoding/json"
	"strings"
)

// API endpoint paths, relative to the configured base URL.
const (
	EndpointTranslate = "/v2/translate"
	EndpointLanguages = "/v2/languages"
	EndpointUsage     = "/v2/usage"
)

// Form and query parameter names understood by the service.
const (
	ParamText               = "text"
	ParamSourceLang         = "source_lang"
	ParamTargetLang         = "target_lang"
	ParamFormality          = "formality"
	ParamSplitSentences     = "split_sentences"
	ParamPreserveFormatting = "preserve_formatting"
	ParamTagHandling        = "tag_handling"
	ParamOutlineDetection   = "outline_detection"
	ParamNonSplittingTags   = "non_splitting_tags"
	ParamSplittingTags      = "splitting_tags"
	ParamIgnoreTags         = "ignore_tags"

	// ParamType selects the language list variant on the languages endpoint.
	ParamType = "type"
)

// Values accepted by the languages endpoint's type parameter.
const (
	LanguageTypeSource = "source"
	LanguageTypeTarget = "target"
)

// Boolean form values. The service expects numeric flags, not true/false.
const (
	BoolTrue  = "1"
	BoolFalse = "0"
)

// Translation is a single element of a translate response.
type Translation struct {
	DetectedSourceLanguage string `json:"detected_source_language"`
	Text                   string `json:"text"`
}

// TranslationsResponse is the body of a successful translate call.
type TranslationsResponse struct {
	Translations []Translation `json:"translations"`
}

// LanguageInfo describes one language supported by the service.
type LanguageInfo struct {
	Language          string `json:"language"`
	Name              string `json:"name"`
	SupportsFormality bool   `json:"supports_formality,omitempty"`
}

// UsageResponse is the body of a usage call.
type UsageResponse struct {
	CharacterCount int64 `json:"character_count"`
	CharacterLimit int64 `json:"character_limit"`
}

// errorResponse is the shape of error bodies the service produces.
type errorResponse struct {
	Message string `json:"message"`
}

// maxRawErrorLen caps how much of a non-JSON error body is surfaced.
const maxRawErrorLen = 200

// ErrorMessage extracts the service-supplied message from an error response
// body. Non-JSON bodies are surfaced as-is, trimmed and capped, so the caller
// still sees what the service actually said.
func ErrorMessage(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		return resp.Message
	}
	raw := strings.TrimSpace(string(body))
	if len(raw) > maxRawErrorLen {
		raw = raw[:maxRawErrorLen]
	}
	return raw
}
