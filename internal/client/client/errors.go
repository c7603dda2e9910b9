package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors callers can match with errors.Is. APIError bridges to
// these through its Is method, so both styles work:
//
//	errors.Is(err, client.ErrUnauthorized)
//	var apiErr *client.APIError; errors.As(err, &apiErr)
var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTimeout      = errors.New("request timeout")
)

// APIError is the structured failure value produced by the dispatcher.
//
// StatusCode conventions:
//   - 0:   transport failure before any HTTP response (DNS, refused, TLS)
//   - 408: the configured timeout elapsed before the transport completed
//   - any other value: the HTTP status returned by the backend
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api error: %s", e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Is maps status codes onto the package sentinels for errors.Is matching.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrTimeout:
		return e.StatusCode == http.StatusRequestTimeout
	case ErrUnavailable:
		return e.StatusCode == 0
	}
	return false
}
