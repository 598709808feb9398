// Package lang normalizes and validates language codes before they reach the
// wire. Normalization is pure: the same input always canonicalizes to the
// same output, and canonical forms pass through unchanged.
//
// Source codes canonicalize to a bare lowercase language ("EN-us" -> "en");
// target codes keep their regional variant, lowercase language, uppercase
// region ("pt-br" -> "pt-BR"). Both "-" and "_" separators are accepted on
// input; "-" is canonical.
package lang

import (
	"strings"

	"lingopher/apierror"
	"lingopher/internal/wire"
)

// Role says which side of a translation a code is used for. Source and
// target accept different code sets, so validation is role-specific.
type Role int

const (
	// Source identifies the language being translated from.
	Source Role = iota
	// Target identifies the language being translated into.
	Target
)

// Param returns the wire parameter name for the role, used verbatim in
// validation error messages.
func (r Role) Param() string {
	if r == Target {
		return wire.ParamTargetLang
	}
	return wire.ParamSourceLang
}

// sourceCodes are the languages the service can translate from.
var sourceCodes = map[string]struct{}{
	"bg": {}, "cs": {}, "da": {}, "de": {}, "el": {}, "en": {}, "es": {},
	"et": {}, "fi": {}, "fr": {}, "hu": {}, "id": {}, "it": {}, "ja": {},
	"ko": {}, "lt": {}, "lv": {}, "nb": {}, "nl": {}, "pl": {}, "pt": {},
	"ro": {}, "ru": {}, "sk": {}, "sl": {}, "sv": {}, "tr": {}, "uk": {},
	"zh": {},
}

// targetCodes are the languages the service can translate into. Bare "en"
// and "pt" are absent here on purpose: they are deprecated as targets and
// handled separately so callers get a pointed message.
var targetCodes = map[string]struct{}{
	"bg": {}, "cs": {}, "da": {}, "de": {}, "el": {}, "es": {}, "et": {},
	"fi": {}, "fr": {}, "hu": {}, "id": {}, "it": {}, "ja": {}, "ko": {},
	"lt": {}, "lv": {}, "nb": {}, "nl": {}, "pl": {}, "ro": {}, "ru": {},
	"sk": {}, "sl": {}, "sv": {}, "tr": {}, "uk": {}, "zh": {},
	"en-GB": {}, "en-US": {}, "pt-BR": {}, "pt-PT": {},
}

// deprecatedTargets maps retired bare target codes to the regional variants
// that replaced them.
var deprecatedTargets = map[string][]string{
	"en": {"en-GB", "en-US"},
	"pt": {"pt-BR", "pt-PT"},
}

// canonicalize folds case and separators without consulting the supported
// tables: lowercase language, uppercase region, "-" separator.
func canonicalize(code string) (language, region string) {
	code = strings.TrimSpace(code)
	code = strings.ReplaceAll(code, "_", "-")

	language, region, found := strings.Cut(code, "-")
	language = strings.ToLower(language)
	if !found {
		return language, ""
	}
	return language, strings.ToUpper(region)
}

// Normalize canonicalizes code for the given role and verifies the service
// supports it. The returned code is what goes on the wire. Errors name the
// role's wire parameter; deprecated bare targets are reported as deprecated,
// not merely unsupported.
func Normalize(code string, role Role) (string, error) {
	language, region := canonicalize(code)
	if language == "" {
		return "", apierror.Errorf(apierror.ErrorCodeInvalidLanguage,
			"%s must be a non-empty language code", role.Param())
	}

	if role == Source {
		// The service detects regional variants itself; sources are generic.
		if _, ok := sourceCodes[language]; !ok {
			return "", apierror.Errorf(apierror.ErrorCodeInvalidLanguage,
				"%s %q is not a supported language code", role.Param(), code)
		}
		return language, nil
	}

	if region == "" {
		if replacements, ok := deprecatedTargets[language]; ok {
			return "", apierror.Errorf(apierror.ErrorCodeDeprecatedLanguage,
				"%s %q is deprecated, use %s instead", role.Param(), language,
				strings.Join(replacements, " or "))
		}
		if _, ok := targetCodes[language]; !ok {
			return "", apierror.Errorf(apierror.ErrorCodeInvalidLanguage,
				"%s %q is not a supported language code", role.Param(), code)
		}
		return language, nil
	}

	canonical := language + "-" + region
	if _, ok := targetCodes[canonical]; !ok {
		return "", apierror.Errorf(apierror.ErrorCodeInvalidLanguage,
			"%s %q is not a supported language code", role.Param(), code)
	}
	return canonical, nil
}

// IsSupported reports whether code normalizes cleanly for the role.
func IsSupported(code string, role Role) bool {
	_, err := Normalize(code, role)
	return err == nil
}
