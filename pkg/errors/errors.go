package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Is checks if an error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// HTTPError is an error carrying the agent's HTTP response status and,
// for rate limits, the server-supplied retry delay in seconds.
type HTTPError struct {
	StatusCode int
	Body       string
	RetryAfter int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("agent returned %d: %s", e.StatusCode, e.Body)
}

// IsRetryable classifies an agent-call error.
// Auth failures are never retried; rate limits are retryable after the
// supplied delay; network errors and 5xx responses are retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode == http.StatusUnauthorized,
			httpErr.StatusCode == http.StatusForbidden:
			return false
		case httpErr.StatusCode == http.StatusTooManyRequests:
			return true
		case httpErr.StatusCode >= 500:
			return true
		default:
			return false
		}
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Unclassified transport failures (connection refused, DNS) arrive as
	// *url.Error wrapping syscall errors; treat them as retryable.
	return true
}

// RetryAfter returns the server-mandated delay in seconds for rate-limit
// errors, or 0 when the caller may retry immediately.
func RetryAfter(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		return httpErr.RetryAfter
	}
	return 0
}
