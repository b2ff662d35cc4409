package meetup

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth is returned when the API key is rejected (HTTP 401/403).
	// The orchestrator aborts the whole run on it.
	ErrAuth = errors.New("meetup: authentication failed")

	// ErrNotFound is returned when a group urlname does not exist.
	ErrNotFound = errors.New("meetup: group not found")

	// ErrRateLimited is returned on HTTP 429. Retryable.
	ErrRateLimited = errors.New("meetup: rate limited")

	// ErrTransient is returned on 5xx responses and transport failures.
	// Retryable.
	ErrTransient = errors.New("meetup: transient error")
)

// APIError carries the HTTP status and response body of a failed call,
// wrapping one of the sentinel errors above for errors.Is matching.
type APIError struct {
	StatusCode int
	Body       string
	kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v: API returned %d: %s", e.kind, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// classifyStatus maps a non-2xx HTTP status onto the error taxonomy.
func classifyStatus(status int, body string) error {
	kind := ErrTransient

	switch {
	case status == 401 || status == 403:
		kind = ErrAuth
	case status == 404:
		kind = ErrNotFound
	case status == 429:
		kind = ErrRateLimited
	}

	return &APIError{StatusCode: status, Body: body, kind: kind}
}

// Retryable reports whether an error is worth retrying with backoff.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransient) || errors.Is(err, ErrRateLimited)
}
