package translator

import (
	"errors"
	"fmt"
	"net/http"

	"lingopher/apierror"
	"lingopher/internal/retry"
	"lingopher/internal/transport"
	"lingopher/internal/wire"
)

// classify turns one transport attempt into a retry verdict. Network failures
// and 429/5xx statuses are retryable, cancellation and every other 4xx are
// fatal, 2xx succeeds. The 429 outcome carries the Retry-After hint and the
// rate-limited mark so the engine applies the wait floor.
func (t *Translator) classify(resp *transport.Response, err error) retry.Outcome {
	if err != nil {
		if errors.Is(err, apierror.ErrCancelled) {
			return retry.Outcome{Verdict: retry.VerdictFatal, Err: err}
		}
		return retry.Outcome{Verdict: retry.VerdictRetryable, Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return retry.Outcome{Verdict: retry.VerdictSuccess}

	case resp.StatusCode == http.StatusTooManyRequests:
		return retry.Outcome{
			Verdict:     retry.VerdictRetryable,
			Err:         statusError(resp),
			RetryAfter:  transport.RetryAfter(resp.Header, t.now()),
			RateLimited: true,
		}

	case resp.StatusCode >= 500:
		return retry.Outcome{Verdict: retry.VerdictRetryable, Err: statusError(resp)}

	default:
		return retry.Outcome{Verdict: retry.VerdictFatal, Err: statusError(resp)}
	}
}

// statusError builds the error for a non-2xx response. The service's own
// message becomes the error message verbatim, so parameter names it reports
// (target_lang, formality, ...) stay visible to the caller.
func statusError(resp *transport.Response) error {
	message := wire.ErrorMessage(resp.Body)
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	if message == "" {
		message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	details := fmt.Sprintf("HTTP %d", resp.StatusCode)

	var apiErr *apierror.APIError
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		apiErr = apierror.New(apierror.ErrorCodeRateLimit, apierror.SeverityWarn, message, details)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		apiErr = apierror.New(apierror.ErrorCodeAuthFailed, apierror.SeverityError, message, details)
	case resp.StatusCode == statusQuotaExceeded:
		apiErr = apierror.New(apierror.ErrorCodeQuotaExceeded, apierror.SeverityError, message, details)
	case resp.StatusCode >= 500:
		apiErr = apierror.New(apierror.ErrorCodeServerError, apierror.SeverityWarn, message, details)
	default:
		apiErr = apierror.New(apierror.ErrorCodeRequestRejected, apierror.SeverityError, message, details)
	}
	apiErr.StatusCode = resp.StatusCode
	return apiErr
}

// statusQuotaExceeded is the service's non-standard status for a spent
// character quota.
const statusQuotaExceeded = 456
