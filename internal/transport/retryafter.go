package transport

import (
	"net/http"
	"strconv"
	"time"
)

// RetryAfter parses a Retry-After header into a wait duration. It accepts
// the delta-seconds form and the HTTP-date form; the date form is resolved
// against now. Absent or unparseable headers, and dates already in the past,
// yield zero.
func RetryAfter(h http.Header, now time.Time) time.Duration {
	value := h.Get("Retry-After")
	if value == "" {
		return 0
	}

	// Try to parse as seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	// Try to parse as HTTP date
	if t, err := http.ParseTime(value); err == nil {
		if wait := t.Sub(now); wait > 0 {
			return wait
		}
	}

	return 0
}
