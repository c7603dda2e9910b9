package client

import (
	"context"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single request attempt when RequestConfig.Timeout
// is not set.
const DefaultTimeout = 30 * time.Second

// RequestConfig describes one HTTP call. The zero value means: authenticated
// request, no body, no extra headers, DefaultTimeout.
type RequestConfig struct {
	// Body is JSON-encoded when non-nil; omitted entirely otherwise.
	Body any

	// Headers are merged after the computed defaults, Authorization
	// included, so a caller-supplied header wins on key collision.
	// Deliberate: some endpoints need to override Content-Type.
	Headers map[string]string

	// Query is serialized into the URL query string. Entries with a nil
	// value are omitted.
	Query map[string]any

	// NoAuth skips attaching the Authorization header. The response is
	// still subject to the same 401 handling as authenticated calls.
	NoAuth bool

	// Timeout bounds total wall-clock time for one attempt.
	Timeout time.Duration
}

// Response is the envelope returned for every completed HTTP exchange.
// Body holds the raw bytes; JSON decoding into the caller's out value
// happens before Response is returned.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client is the transport contract consumed by the resource services.
// The concrete implementation is HTTPClient.
type Client interface {
	Request(ctx context.Context, method, endpoint string, cfg *RequestConfig, out any) (*Response, error)
	Get(ctx context.Context, endpoint string, cfg *RequestConfig, out any) (*Response, error)
	Post(ctx context.Context, endpoint string, cfg *RequestConfig, out any) (*Response, error)
	Put(ctx context.Context, endpoint string, cfg *RequestConfig, out any) (*Response, error)
	Patch(ctx context.Context, endpoint string, cfg *RequestConfig, out any) (*Response, error)
	Delete(ctx context.Context, endpoint string, cfg *RequestConfig, out any) (*Response, error)

	SaveTokens(ctx context.Context, accessToken, refreshToken string)
	ClearTokens(ctx context.Context)
	IsAuthenticated() bool
}
