package translator

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingopher/apierror"
)

func TestOptions_EncodeNilAndZero(t *testing.T) {
	params := url.Values{}
	var opts *TranslateOptions
	require.NoError(t, opts.encode(params))
	assert.Empty(t, params)

	params = url.Values{}
	require.NoError(t, (&TranslateOptions{}).encode(params))
	assert.Empty(t, params, "unset options must not produce wire parameters")
}

func TestOptions_EncodeValid(t *testing.T) {
	tests := []struct {
		name string
		opts TranslateOptions
		want url.Values
	}{
		{
			name: "formality lowercased",
			opts: TranslateOptions{Formality: "Prefer_Less"},
			want: url.Values{"formality": {"prefer_less"}},
		},
		{
			name: "formality default is sent",
			opts: TranslateOptions{Formality: FormalityDefault},
			want: url.Values{"formality": {"default"}},
		},
		{
			name: "split sentences off",
			opts: TranslateOptions{SplitSentences: SplitSentencesOff},
			want: url.Values{"split_sentences": {"0"}},
		},
		{
			name: "split sentences on",
			opts: TranslateOptions{SplitSentences: SplitSentencesOn},
			want: url.Values{"split_sentences": {"1"}},
		},
		{
			name: "split sentences default maps to on",
			opts: TranslateOptions{SplitSentences: SplitSentencesDefault},
			want: url.Values{"split_sentences": {"1"}},
		},
		{
			name: "split sentences nonewlines case-insensitive",
			opts: TranslateOptions{SplitSentences: "NoNewlines"},
			want: url.Values{"split_sentences": {"nonewlines"}},
		},
		{
			name: "preserve formatting true",
			opts: TranslateOptions{PreserveFormatting: Bool(true)},
			want: url.Values{"preserve_formatting": {"1"}},
		},
		{
			name: "preserve formatting false is still sent",
			opts: TranslateOptions{PreserveFormatting: Bool(false)},
			want: url.Values{"preserve_formatting": {"0"}},
		},
		{
			name: "tag handling uppercased input",
			opts: TranslateOptions{TagHandling: "XML"},
			want: url.Values{"tag_handling": {"xml"}},
		},
		{
			name: "outline detection disabled",
			opts: TranslateOptions{TagHandling: TagHandlingXML, OutlineDetection: Bool(false)},
			want: url.Values{"tag_handling": {"xml"}, "outline_detection": {"0"}},
		},
		{
			name: "single tag",
			opts: TranslateOptions{IgnoreTags: []string{"code"}},
			want: url.Values{"ignore_tags": {"code"}},
		},
		{
			name: "tag lists comma-joined",
			opts: TranslateOptions{
				TagHandling:      TagHandlingXML,
				NonSplittingTags: []string{"a", "b"},
				SplittingTags:    []string{"p", "br"},
				IgnoreTags:       []string{"code", "pre"},
			},
			want: url.Values{
				"tag_handling":       {"xml"},
				"non_splitting_tags": {"a,b"},
				"splitting_tags":     {"p,br"},
				"ignore_tags":        {"code,pre"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := url.Values{}
			require.NoError(t, tt.opts.encode(params))
			assert.Equal(t, tt.want, params)
		})
	}
}

func TestOptions_EncodeInvalid(t *testing.T) {
	tests := []struct {
		name        string
		opts        TranslateOptions
		wantMessage string
	}{
		{
			name:        "unknown formality",
			opts:        TranslateOptions{Formality: "casual"},
			wantMessage: "formality",
		},
		{
			name:        "unknown split sentences mode",
			opts:        TranslateOptions{SplitSentences: "auto"},
			wantMessage: "split_sentences",
		},
		{
			name:        "unknown tag handling",
			opts:        TranslateOptions{TagHandling: "markdown"},
			wantMessage: "tag_handling",
		},
		{
			name:        "empty tag name",
			opts:        TranslateOptions{IgnoreTags: []string{"code", " "}},
			wantMessage: "ignore_tags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.encode(url.Values{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMessage)
			assert.Equal(t, apierror.ErrorCodeInvalidOption, apierror.GetErrorCode(err))
		})
	}
}
