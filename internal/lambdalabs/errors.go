package lambdalabs

import (
	"errors"
	"fmt"
)

// Sentinel errors for API error classification. The client wraps these so
// callers can handle error categories uniformly without inspecting status
// codes themselves.
var (
	// ErrUnauthorized indicates the request was rejected due to an
	// invalid, expired, or missing API key.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the API throttled the request.
	ErrRateLimited = errors.New("rate limited")
)

// APIError is returned for any non-2xx response from the Lambda Labs API.
// Body holds the raw response body; for permission failures it usually
// contains the API's explanation and is worth logging in full.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lambdalabs: unexpected status %d", e.StatusCode)
}

// Unwrap maps well-known status codes onto the sentinel errors above.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 401, 403:
		return ErrUnauthorized
	case 429:
		return ErrRateLimited
	default:
		return nil
	}
}
