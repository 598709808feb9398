package apierror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		expected string
	}{
		{
			name: "error with details",
			apiError: &APIError{
				Code:     ErrorCodeInvalidLanguage,
				Severity: SeverityWarn,
				Message:  "Unsupported language code",
				Details:  "source_lang 'xx' is not supported",
			},
			expected: "INVALID_LANGUAGE: Unsupported language code - source_lang 'xx' is not supported",
		},
		{
			name: "error without details",
			apiError: &APIError{
				Code:     ErrorCodeRateLimit,
				Severity: SeverityWarn,
				Message:  "Rate limit exceeded",
			},
			expected: "RATE_LIMIT_EXCEEDED: Rate limit exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.apiError.Error())
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	apiErr := &APIError{
		Code:     ErrorCodeNetwork,
		Severity: SeverityError,
		Message:  "Network error",
		Cause:    cause,
	}

	assert.Equal(t, cause, apiErr.Unwrap())
}

func TestAPIError_Is(t *testing.T) {
	err1 := &APIError{Code: ErrorCodeRateLimit}
	err2 := &APIError{Code: ErrorCodeRateLimit}
	err3 := &APIError{Code: ErrorCodeServerError}

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.False(t, err1.Is(errors.New("regular error")))
}

func TestErrorsIs_Sentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel *APIError
		matches  bool
	}{
		{
			name:     "rate limit error matches sentinel",
			err:      New(ErrorCodeRateLimit, SeverityWarn, "too many requests", ""),
			sentinel: ErrRateLimit,
			matches:  true,
		},
		{
			name:     "server error matches sentinel",
			err:      New(ErrorCodeServerError, SeverityError, "upstream exploded", "status 503"),
			sentinel: ErrServerError,
			matches:  true,
		},
		{
			name:     "validation error does not match rate limit",
			err:      New(ErrorCodeInvalidInput, SeverityWarn, "texts parameter empty", ""),
			sentinel: ErrRateLimit,
			matches:  false,
		},
		{
			name:     "cancelled matches cancelled",
			err:      NewWithCause(ErrorCodeCancelled, SeverityInfo, "cancelled", "", errors.New("context canceled")),
			sentinel: ErrCancelled,
			matches:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, errors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestNew(t *testing.T) {
	err := New(ErrorCodeInvalidOption, SeverityWarn, "Invalid translation option", "formality 'casual' is not supported")

	assert.Equal(t, ErrorCodeInvalidOption, err.Code)
	assert.Equal(t, SeverityWarn, err.Severity)
	assert.Equal(t, "Invalid translation option", err.Message)
	assert.Equal(t, "formality 'casual' is not supported", err.Details)
	assert.Nil(t, err.Cause)
}

func TestNewWithCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewWithCause(ErrorCodeNetwork, SeverityError, "request failed", "no response received", cause)

	assert.Equal(t, ErrorCodeNetwork, err.Code)
	assert.Equal(t, SeverityError, err.Severity)
	assert.Equal(t, "request failed", err.Message)
	assert.Equal(t, "no response received", err.Details)
	assert.Equal(t, cause, err.Cause)
}

func TestWrapError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		result := WrapError(nil, "context")
		assert.Nil(t, result)
	})

	t.Run("APIError wrapping preserves code and status", func(t *testing.T) {
		original := &APIError{
			Code:       ErrorCodeRateLimit,
			Severity:   SeverityWarn,
			Message:    "Rate limit exceeded",
			StatusCode: 429,
		}

		wrapped := WrapError(original, "translate request failed")

		apiErr, ok := wrapped.(*APIError)
		assert.True(t, ok)
		assert.Equal(t, ErrorCodeRateLimit, apiErr.Code)
		assert.Equal(t, SeverityWarn, apiErr.Severity)
		assert.Equal(t, "translate request failed", apiErr.Message)
		assert.Contains(t, apiErr.Details, "Rate limit exceeded")
		assert.Equal(t, 429, apiErr.StatusCode)
		assert.Equal(t, original, apiErr.Cause)
	})

	t.Run("regular error wrapping", func(t *testing.T) {
		original := errors.New("connection reset by peer")
		wrapped := WrapError(original, "sending request")

		apiErr, ok := wrapped.(*APIError)
		assert.True(t, ok)
		assert.Equal(t, ErrorCodeInternal, apiErr.Code)
		assert.Equal(t, SeverityError, apiErr.Severity)
		assert.Equal(t, "sending request", apiErr.Message)
		assert.Equal(t, "connection reset by peer", apiErr.Details)
		assert.Equal(t, original, apiErr.Cause)
	})
}

func TestWrapErrorf(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, WrapErrorf(nil, "context %d", 1))
	})

	t.Run("with %w verb", func(t *testing.T) {
		original := errors.New("boom")
		wrapped := WrapErrorf(original, "attempt %d failed: %w", 3, original)

		apiErr, ok := wrapped.(*APIError)
		assert.True(t, ok)
		assert.Contains(t, apiErr.Message, "attempt 3 failed")
		assert.True(t, errors.Is(wrapped, original))
	})

	t.Run("preserves APIError code", func(t *testing.T) {
		original := New(ErrorCodeServerError, SeverityError, "bad gateway", "")
		wrapped := WrapErrorf(original, "attempt %d", 2)

		apiErr, ok := wrapped.(*APIError)
		assert.True(t, ok)
		assert.Equal(t, ErrorCodeServerError, apiErr.Code)
		assert.Equal(t, "attempt 2", apiErr.Message)
	})
}

func TestErrorf(t *testing.T) {
	err := Errorf(ErrorCodeInvalidInput, "texts parameter must not contain empty string at index %d", 2)

	apiErr, ok := err.(*APIError)
	assert.True(t, ok)
	assert.Equal(t, ErrorCodeInvalidInput, apiErr.Code)
	assert.Contains(t, apiErr.Message, "texts parameter")
	assert.Contains(t, apiErr.Message, "index 2")
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"network error", New(ErrorCodeNetwork, SeverityWarn, "timeout", ""), true},
		{"rate limit", New(ErrorCodeRateLimit, SeverityWarn, "429", ""), true},
		{"server error", New(ErrorCodeServerError, SeverityError, "503", ""), true},
		{"fatal server error", New(ErrorCodeServerError, SeverityFatal, "500 permanent", ""), false},
		{"request rejected", New(ErrorCodeRequestRejected, SeverityError, "400", ""), false},
		{"auth failed", New(ErrorCodeAuthFailed, SeverityError, "403", ""), false},
		{"validation", New(ErrorCodeInvalidInput, SeverityWarn, "empty", ""), false},
		{"cancelled", New(ErrorCodeCancelled, SeverityInfo, "ctx", ""), false},
		{"plain error", errors.New("whatever"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(New(ErrorCodeInvalidInput, SeverityWarn, "", "")))
	assert.True(t, IsValidation(New(ErrorCodeInvalidLanguage, SeverityWarn, "", "")))
	assert.True(t, IsValidation(New(ErrorCodeDeprecatedLanguage, SeverityWarn, "", "")))
	assert.True(t, IsValidation(New(ErrorCodeInvalidOption, SeverityWarn, "", "")))
	assert.False(t, IsValidation(New(ErrorCodeRateLimit, SeverityWarn, "", "")))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestStatusCodeOf(t *testing.T) {
	withStatus := &APIError{Code: ErrorCodeServerError, StatusCode: 502}
	assert.Equal(t, 502, StatusCodeOf(withStatus))
	assert.Equal(t, 0, StatusCodeOf(errors.New("no status")))
	assert.Equal(t, 0, StatusCodeOf(New(ErrorCodeInvalidInput, SeverityWarn, "", "")))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrorCodeRateLimit, GetErrorCode(New(ErrorCodeRateLimit, SeverityWarn, "", "")))
	assert.Equal(t, ErrorCodeInternal, GetErrorCode(errors.New("plain")))
}

func TestGetErrorSeverity(t *testing.T) {
	assert.Equal(t, SeverityInfo, GetErrorSeverity(New(ErrorCodeCancelled, SeverityInfo, "", "")))
	assert.Equal(t, SeverityError, GetErrorSeverity(errors.New("plain")))
}

func TestAsError(t *testing.T) {
	var target *APIError
	assert.True(t, AsError(New(ErrorCodeQuotaExceeded, SeverityWarn, "quota", ""), &target))
	assert.Equal(t, ErrorCodeQuotaExceeded, target.Code)

	var missing *APIError
	assert.False(t, AsError(errors.New("plain"), &missing))
	assert.Nil(t, missing)
}
