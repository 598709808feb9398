package wire

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"lingopher/apierror"
)

// JSON Schema definitions for response bodies. The service is remote and
// versioned independently of this client, so every body is validated against
// the documented shape before decoding; a schema violation surfaces as a
// response-validation error rather than a local decode panic.
const (
	translationsSchema = `{
		"type": "object",
		"properties": {
			"translations": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"detected_source_language": {"type": "string"},
						"text": {"type": "string"}
					},
					"required": ["detected_source_language", "text"]
				}
			}
		},
		"required": ["translations"]
	}`

	languagesSchema = `{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"language": {"type": "string"},
				"name": {"type": "string"},
				"supports_formality": {"type": "boolean"}
			},
			"required": ["language", "name"]
		}
	}`

	usageSchema = `{
		"type": "object",
		"properties": {
			"character_count": {"type": "integer"},
			"character_limit": {"type": "integer"}
		},
		"required": ["character_count", "character_limit"]
	}`
)

func validateSchema(schema string, body []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		return apierror.NewWithCause(apierror.ErrorCodeResponseInvalid, apierror.SeverityError,
			"Service response failed validation", "response is not valid JSON", err)
	}

	if !result.Valid() {
		var errorMessages []string
		for _, e := range result.Errors() {
			errorMessages = append(errorMessages, e.String())
		}
		return apierror.New(apierror.ErrorCodeResponseInvalid, apierror.SeverityError,
			"Service response failed validation", strings.Join(errorMessages, "; "))
	}

	return nil
}

// DecodeTranslations validates and decodes a translate response body.
func DecodeTranslations(body []byte) (*TranslationsResponse, error) {
	if err := validateSchema(translationsSchema, body); err != nil {
		return nil, err
	}

	var resp TranslationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apierror.NewWithCause(apierror.ErrorCodeResponseInvalid, apierror.SeverityError,
			"Service response failed validation", "translations body did not decode", err)
	}
	return &resp, nil
}

// DecodeLanguages validates and decodes a languages response body.
func DecodeLanguages(body []byte) ([]LanguageInfo, error) {
	if err := validateSchema(languagesSchema, body); err != nil {
		return nil, err
	}

	var langs []LanguageInfo
	if err := json.Unmarshal(body, &langs); err != nil {
		return nil, apierror.NewWithCause(apierror.ErrorCodeResponseInvalid, apierror.SeverityError,
			"Service response failed validation", "languages body did not decode", err)
	}
	return langs, nil
}

// DecodeUsage validates and decodes a usage response body.
func DecodeUsage(body []byte) (*UsageResponse, error) {
	if err := validateSchema(usageSchema, body); err != nil {
		return nil, err
	}

	var usage UsageResponse
	if err := json.Unmarshal(body, &usage); err != nil {
		return nil, apierror.NewWithCause(apierror.ErrorCodeResponseInvalid, apierror.SeverityError,
			"Service response failed validation", "usage body did not decode", err)
	}
	return &usage, nil
}
