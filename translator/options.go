package translator

import (
	"net/url"
	"strings"

	"lingopher/apierror"
	"lingopher/internal/wire"
)

// Formality controls the register of the translated text. Not every target
// language supports it; TargetLanguages reports which ones do.
type Formality string

const (
	FormalityLess       Formality = "less"
	FormalityDefault    Formality = "default"
	FormalityMore       Formality = "more"
	FormalityPreferLess Formality = "prefer_less"
	FormalityPreferMore Formality = "prefer_more"
)

// SplitSentences controls how input is segmented before translation.
type SplitSentences string

const (
	SplitSentencesOff        SplitSentences = "off"
	SplitSentencesOn         SplitSentences = "on"
	SplitSentencesNoNewlines SplitSentences = "nonewlines"
	SplitSentencesDefault    SplitSentences = "default"
)

// TagHandling selects markup-aware translation.
type TagHandling string

const (
	TagHandlingXML  TagHandling = "xml"
	TagHandlingHTML TagHandling = "html"
)

// TranslateOptions tunes a translate call. The zero value sends nothing and
// leaves every behavior at the service default. Enum fields are
// case-insensitive; values outside the enumerated sets fail validation before
// any request is sent.
type TranslateOptions struct {
	Formality          Formality
	SplitSentences     SplitSentences
	PreserveFormatting *bool
	TagHandling        TagHandling
	OutlineDetection   *bool
	NonSplittingTags   []string
	SplittingTags      []string
	IgnoreTags         []string
}

// Bool returns a pointer to v, for the optional boolean fields of
// TranslateOptions.
func Bool(v bool) *bool {
	return &v
}

var formalityValues = map[string]struct{}{
	string(FormalityLess):       {},
	string(FormalityDefault):    {},
	string(FormalityMore):       {},
	string(FormalityPreferLess): {},
	string(FormalityPreferMore): {},
}

// encode validates every set option and writes its wire form into params.
// Unset options are omitted entirely so the service default applies.
func (o *TranslateOptions) encode(params url.Values) error {
	if o == nil {
		return nil
	}

	if o.Formality != "" {
		value := strings.ToLower(string(o.Formality))
		if _, ok := formalityValues[value]; !ok {
			return apierror.Errorf(apierror.ErrorCodeInvalidOption,
				"%s %q is not one of less, default, more, prefer_less or prefer_more",
				wire.ParamFormality, string(o.Formality))
		}
		params.Set(wire.ParamFormality, value)
	}

	if o.SplitSentences != "" {
		switch strings.ToLower(string(o.SplitSentences)) {
		case string(SplitSentencesOff):
			params.Set(wire.ParamSplitSentences, wire.BoolFalse)
		case string(SplitSentencesOn), string(SplitSentencesDefault):
			params.Set(wire.ParamSplitSentences, wire.BoolTrue)
		case string(SplitSentencesNoNewlines):
			params.Set(wire.ParamSplitSentences, "nonewlines")
		default:
			return apierror.Errorf(apierror.ErrorCodeInvalidOption,
				"%s mode %q is not one of off, on, nonewlines or default",
				wire.ParamSplitSentences, string(o.SplitSentences))
		}
	}

	if o.PreserveFormatting != nil {
		params.Set(wire.ParamPreserveFormatting, wireBool(*o.PreserveFormatting))
	}

	if o.TagHandling != "" {
		value := strings.ToLower(string(o.TagHandling))
		if value != string(TagHandlingXML) && value != string(TagHandlingHTML) {
			return apierror.Errorf(apierror.ErrorCodeInvalidOption,
				"%s %q is not one of xml or html",
				wire.ParamTagHandling, string(o.TagHandling))
		}
		params.Set(wire.ParamTagHandling, value)
	}

	if o.OutlineDetection != nil {
		params.Set(wire.ParamOutlineDetection, wireBool(*o.OutlineDetection))
	}

	if err := encodeTagList(params, wire.ParamNonSplittingTags, o.NonSplittingTags); err != nil {
		return err
	}
	if err := encodeTagList(params, wire.ParamSplittingTags, o.SplittingTags); err != nil {
		return err
	}
	return encodeTagList(params, wire.ParamIgnoreTags, o.IgnoreTags)
}

// encodeTagList serializes a tag-name list as the comma-joined wire form.
func encodeTagList(params url.Values, param string, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return apierror.Errorf(apierror.ErrorCodeInvalidOption,
				"%s must not contain empty tag names", param)
		}
	}
	params.Set(param, strings.Join(tags, ","))
	return nil
}

func wireBool(v bool) string {
	if v {
		return wire.BoolTrue
	}
	return wire.BoolFalse
}
