// Package apierror provides structured error types for the Lingopher client.
// Callers can distinguish failure kinds with errors.Is against the sentinel
// values or by inspecting the Code of an *APIError.
package apierror

import (
	"fmt"
	"strings"
)

// ErrorCode identifies a class of client or server failure.
type ErrorCode string

const (
	// Validation error codes

	// ErrorCodeInvalidInput indicates that the provided input is invalid
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorCodeInvalidLanguage indicates an unsupported language code
	ErrorCodeInvalidLanguage ErrorCode = "INVALID_LANGUAGE"
	// ErrorCodeDeprecatedLanguage indicates a deprecated target language code
	ErrorCodeDeprecatedLanguage ErrorCode = "DEPRECATED_LANGUAGE"
	// ErrorCodeInvalidOption indicates an invalid translation option value
	ErrorCodeInvalidOption ErrorCode = "INVALID_OPTION"
	// ErrorCodeConfigInvalid indicates that the client configuration is invalid
	ErrorCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Transport and server error codes

	// ErrorCodeNetwork indicates that the request never produced an HTTP response
	ErrorCodeNetwork ErrorCode = "NETWORK_ERROR"
	// ErrorCodeRateLimit indicates that the service rejected the request with HTTP 429
	ErrorCodeRateLimit ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrorCodeServerError indicates a 5xx response from the service
	ErrorCodeServerError ErrorCode = "SERVER_ERROR"
	// ErrorCodeRequestRejected indicates a non-retryable 4xx response
	ErrorCodeRequestRejected ErrorCode = "REQUEST_REJECTED"
	// ErrorCodeAuthFailed indicates that the authentication key was refused
	ErrorCodeAuthFailed ErrorCode = "AUTH_FAILED"
	// ErrorCodeQuotaExceeded indicates that the account character quota is spent
	ErrorCodeQuotaExceeded ErrorCode = "QUOTA_EXCEEDED"
	// ErrorCodeResponseInvalid indicates a response body that failed schema validation
	ErrorCodeResponseInvalid ErrorCode = "RESPONSE_INVALID"

	// Retry lifecycle error codes

	// ErrorCodeRetryExhausted indicates that the retry budget ran out
	ErrorCodeRetryExhausted ErrorCode = "RETRY_EXHAUSTED"
	// ErrorCodeCancelled indicates that the caller's context ended the operation
	ErrorCodeCancelled ErrorCode = "CANCELLED"

	// ErrorCodeInternal indicates a failure inside the client itself
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// SeverityLevel represents the severity of an error for logging and monitoring
type SeverityLevel string

const (
	// SeverityInfo indicates informational errors
	SeverityInfo SeverityLevel = "info"
	// SeverityWarn indicates warning-level errors
	SeverityWarn SeverityLevel = "warn"
	// SeverityError indicates error-level issues
	SeverityError SeverityLevel = "error"
	// SeverityFatal indicates fatal errors that require immediate attention
	SeverityFatal SeverityLevel = "fatal"
)

// APIError is the structured error returned by every operation of this module.
// StatusCode is zero when the failure happened before an HTTP response existed.
type APIError struct {
	Code       ErrorCode
	Severity   SeverityLevel
	Message    string
	Details    string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *APIError) Is(target error) bool {
	if apiErr, ok := target.(*APIError); ok {
		return e.Code == apiErr.Code
	}
	return false
}

// Sentinel values for errors.Is comparisons. Each operation error carries one
// of these codes.
var (
	ErrInvalidInput = &APIError{
		Code:     ErrorCodeInvalidInput,
		Severity: SeverityWarn,
		Message:  "Invalid input",
	}

	ErrInvalidLanguage = &APIError{
		Code:     ErrorCodeInvalidLanguage,
		Severity: SeverityWarn,
		Message:  "Unsupported language code",
	}

	ErrDeprecatedLanguage = &APIError{
		Code:     ErrorCodeDeprecatedLanguage,
		Severity: SeverityWarn,
		Message:  "Deprecated target language code",
	}

	ErrInvalidOption = &APIError{
		Code:     ErrorCodeInvalidOption,
		Severity: SeverityWarn,
		Message:  "Invalid translation option",
	}

	ErrConfigInvalid = &APIError{
		Code:     ErrorCodeConfigInvalid,
		Severity: SeverityError,
		Message:  "Client configuration invalid",
	}

	ErrNetwork = &APIError{
		Code:     ErrorCodeNetwork,
		Severity: SeverityWarn,
		Message:  "Network error",
	}

	ErrRateLimit = &APIError{
		Code:       ErrorCodeRateLimit,
		Severity:   SeverityWarn,
		Message:    "Rate limit exceeded",
		StatusCode: 429,
	}

	ErrServerError = &APIError{
		Code:     ErrorCodeServerError,
		Severity: SeverityError,
		Message:  "Service returned a server error",
	}

	ErrRequestRejected = &APIError{
		Code:     ErrorCodeRequestRejected,
		Severity: SeverityError,
		Message:  "Service rejected the request",
	}

	ErrAuthFailed = &APIError{
		Code:       ErrorCodeAuthFailed,
		Severity:   SeverityError,
		Message:    "Authentication failed",
		StatusCode: 403,
	}

	ErrQuotaExceeded = &APIError{
		Code:       ErrorCodeQuotaExceeded,
		Severity:   SeverityWarn,
		Message:    "Character quota exceeded",
		StatusCode: 456,
	}

	ErrResponseInvalid = &APIError{
		Code:     ErrorCodeResponseInvalid,
		Severity: SeverityError,
		Message:  "Service response failed validation",
	}

	ErrRetryExhausted = &APIError{
		Code:     ErrorCodeRetryExhausted,
		Severity: SeverityError,
		Message:  "Retry budget exhausted",
	}

	ErrCancelled = &APIError{
		Code:     ErrorCodeCancelled,
		Severity: SeverityInfo,
		Message:  "Operation cancelled",
	}

	ErrInternal = &APIError{
		Code:     ErrorCodeInternal,
		Severity: SeverityError,
		Message:  "Internal client error",
	}
)

// New creates a new APIError with the specified code, severity, message and details
func New(code ErrorCode, severity SeverityLevel, message, details string) *APIError {
	return &APIError{
		Code:     code,
		Severity: severity,
		Message:  message,
		Details:  details,
	}
}

// NewWithCause creates a new APIError with an underlying cause
func NewWithCause(code ErrorCode, severity SeverityLevel, message, details string, cause error) *APIError {
	return &APIError{
		Code:     code,
		Severity: severity,
		Message:  message,
		Details:  details,
		Cause:    cause,
	}
}

// WrapError wraps an error with additional context, preserving APIError structure if possible
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}

	// If it's already an APIError, wrap it with additional details
	if apiErr, ok := err.(*APIError); ok {
		return &APIError{
			Code:       apiErr.Code,
			Severity:   apiErr.Severity,
			Message:    context,
			Details:    apiErr.Error(),
			StatusCode: apiErr.StatusCode,
			Cause:      apiErr,
		}
	}

	// For regular errors, create a generic internal error wrapper
	return &APIError{
		Code:     ErrorCodeInternal,
		Severity: SeverityError,
		Message:  context,
		Details:  err.Error(),
		Cause:    err,
	}
}

// WrapErrorf wraps an error with formatted context, preserving APIError structure if possible
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	// Handle %w verb for error wrapping by using fmt.Errorf
	if strings.Contains(format, "%w") {
		wrappedErr := fmt.Errorf(format, args...)

		if apiErr, ok := err.(*APIError); ok {
			return &APIError{
				Code:       apiErr.Code,
				Severity:   apiErr.Severity,
				Message:    wrappedErr.Error(),
				Details:    apiErr.Error(),
				StatusCode: apiErr.StatusCode,
				Cause:      wrappedErr,
			}
		}

		return &APIError{
			Code:     ErrorCodeInternal,
			Severity: SeverityError,
			Message:  wrappedErr.Error(),
			Details:  err.Error(),
			Cause:    wrappedErr,
		}
	}

	context := fmt.Sprintf(format, args...)
	if apiErr, ok := err.(*APIError); ok {
		return &APIError{
			Code:       apiErr.Code,
			Severity:   apiErr.Severity,
			Message:    context,
			Details:    apiErr.Error(),
			StatusCode: apiErr.StatusCode,
			Cause:      apiErr,
		}
	}

	return &APIError{
		Code:     ErrorCodeInternal,
		Severity: SeverityError,
		Message:  context,
		Details:  err.Error(),
		Cause:    err,
	}
}

// Errorf creates a new validation error with formatted context
func Errorf(code ErrorCode, format string, args ...interface{}) error {
	return &APIError{
		Code:     code,
		Severity: SeverityWarn,
		Message:  fmt.Sprintf(format, args...),
	}
}

// AsError attempts to convert an error to an APIError
func AsError(err error, target **APIError) bool {
	if apiErr, ok := err.(*APIError); ok {
		*target = apiErr
		return true
	}
	return false
}

// GetErrorCode returns the error code from an error if it's an APIError, otherwise returns a default code
func GetErrorCode(err error) ErrorCode {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Code
	}
	return ErrorCodeInternal
}

// GetErrorSeverity returns the severity level from an error if it's an APIError, otherwise returns error
func GetErrorSeverity(err error) SeverityLevel {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Severity
	}
	return SeverityError
}

// IsRetryable reports whether the operation that produced err may be attempted
// again: transport failures, rate limiting and server-side errors are
// transient, everything else is final.
func IsRetryable(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		switch apiErr.Code {
		case ErrorCodeNetwork, ErrorCodeRateLimit, ErrorCodeServerError:
			return apiErr.Severity != SeverityFatal
		}
	}
	return false
}

// IsValidation reports whether err was produced client-side before any
// network attempt.
func IsValidation(err error) bool {
	switch GetErrorCode(err) {
	case ErrorCodeInvalidInput, ErrorCodeInvalidLanguage,
		ErrorCodeDeprecatedLanguage, ErrorCodeInvalidOption,
		ErrorCodeConfigInvalid:
		return true
	}
	return false
}

// StatusCodeOf returns the HTTP status associated with err, or zero when the
// failure happened before a response existed.
func StatusCodeOf(err error) int {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode
	}
	return 0
}
