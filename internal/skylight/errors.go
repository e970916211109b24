package skylight

import (
	"errors"
	"fmt"
)

// The dispatcher classifies every failure exactly once at the network
// boundary. Endpoint wrappers propagate these errors unchanged; the
// tool layer is the only consumer that turns them into user-facing text.

// AuthError means the API rejected our credentials (HTTP 401) or the
// login exchange itself failed. Recoverable: a re-login may fix it.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NotFoundError means the requested resource does not exist (HTTP 404).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// RateLimitError means the API asked us to slow down (HTTP 429).
// RetryAfter is the server-provided wait in seconds, 0 when absent.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited by the Skylight API, retry after %d seconds", e.RetryAfter)
	}
	return "rate limited by the Skylight API"
}

// APIError is any other non-2xx response. The body is truncated to
// bodySnippetLimit bytes before it gets here.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("Skylight API returned %d", e.StatusCode)
	}
	return fmt.Sprintf("Skylight API returned %d: %s", e.StatusCode, e.Body)
}

// ParseError means a 2xx response body was not in the expected shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("unexpected response shape: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// Recoverable reports whether retrying the same operation later could
// plausibly succeed: auth failures may self-heal via re-login, rate
// limits clear after a wait, and 5xx statuses are transient server
// trouble. Not-found and parse failures are final.
func Recoverable(err error) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return true
	}
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}
