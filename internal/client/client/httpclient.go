package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gigline/internal/client/credentials"
	"github.com/dmitrijs2005/gigline/internal/common"
	"github.com/dmitrijs2005/gigline/internal/logging"
	"github.com/google/uuid"
)

const (
	apiPathPrefix   = "/api/" + common.APIVersion
	refreshEndpoint = "/auth/refresh/"
)

// HTTPClient talks to the GigLine REST backend. It owns no global state:
// base URL, credential store, HTTP transport and logger are all injected.
//
// Safe for concurrent use. On a 401 it performs at most one
// refresh-and-retry cycle per original call; concurrent refreshes are
// serialized so parallel 401s share a single refresh request.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	creds      *credentials.Store
	log        logging.Logger
	timeout    time.Duration

	refreshMu sync.Mutex
}

type Option func(*HTTPClient)

// WithHTTPClient substitutes the underlying transport (tests, proxies).
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTimeout overrides the default per-request deadline. Individual
// requests can still override it through RequestConfig.Timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// New builds an HTTPClient against baseURL (scheme://host[:port], no path).
// Per-request deadlines are enforced through contexts, so the underlying
// http.Client carries no timeout of its own.
func New(baseURL string, creds *credentials.Store, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		creds:      creds,
		log:        logging.NewNop(),
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request dispatches one HTTP call described by cfg and decodes the
// response into out (pass nil to skip decoding).
//
// On 2xx the response envelope is returned. On 401 with a refresh token
// held, the refresh protocol runs and the identical request is retried
// exactly once; any further 401 is surfaced as an error. Every failure is
// an *APIError: 408 for timeouts, 0 for transport errors, the backend
// status otherwise.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, cfg *RequestConfig, out any) (*Response, error) {
	if cfg == nil {
		cfg = &RequestConfig{}
	}

	for attempt := 0; ; attempt++ {
		resp, err := c.do(ctx, method, endpoint, cfg)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if err := decodeBody(resp, out); err != nil {
				return nil, fmt.Errorf("failed to decode response: %w", err)
			}
			return resp, nil
		}

		// A 401 triggers one refresh-and-retry cycle per original call,
		// regardless of cfg.NoAuth: the status code, not caller intent,
		// is what the backend reported.
		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 && c.creds.RefreshToken() != "" {
			if c.tryRefresh(ctx) {
				c.log.Debug(ctx, "retrying request with refreshed token", "method", method, "endpoint", endpoint)
				continue
			}
		}

		return nil, apiErrorFromResponse(resp)
	}
}

func (c *HTTPClient) Get(ctx context.Context, endpoint string, cfg *RequestConfig, out any) (*Response, error) {
	return c.Request(ctx, http.MethodGet, endpoint, cfg, out)
}

func (c *HTTPClient) Post(ctx context.Context, endpoint string, cfg *RequestConfig, out any) (*Response, error) {
	return c.Request(ctx, http.MethodPost, endpoint, cfg, out)
}

func (c *HTTPClient) Put(ctx context.Context, endpoint string, cfg *RequestConfig, out any) (*Response, error) {
	return c.Request(ctx, http.MethodPut, endpoint, cfg, out)
}

func (c *HTTPClient) Patch(ctx context.Context, endpoint string, cfg *RequestConfig, out any) (*Response, error) {
	return c.Request(ctx, http.MethodPatch, endpoint, cfg, out)
}

func (c *HTTPClient) Delete(ctx context.Context, endpoint string, cfg *RequestConfig, out any) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, endpoint, cfg, out)
}

// SaveTokens stores a new token pair. An empty refreshToken preserves the
// previously stored refresh token.
func (c *HTTPClient) SaveTokens(ctx context.Context, accessToken, refreshToken string) {
	c.creds.Save(ctx, accessToken, refreshToken)
}

func (c *HTTPClient) ClearTokens(ctx context.Context) {
	c.creds.Clear(ctx)
}

func (c *HTTPClient) IsAuthenticated() bool {
	return c.creds.IsAuthenticated()
}

// do performs a single attempt: build URL and headers, send, slurp the
// body. It never touches the credential store. Transport failures and
// timeouts come back as *APIError; an HTTP response of any status is a
// successful attempt.
func (c *HTTPClient) do(ctx context.Context, method, endpoint string, cfg *RequestConfig) (*Response, error) {
	u := c.baseURL + apiPathPrefix + endpoint
	if q := encodeQuery(cfg.Query); q != "" {
		u = u + "?" + q
	}

	var bodyReader io.Reader
	if cfg.Body != nil {
		encoded, err := json.Marshal(cfg.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.APIVersionHeaderName, common.APIVersion)
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if !cfg.NoAuth {
		if token := c.creds.AccessToken(); token != "" {
			req.Header.Set("Authorization", common.AuthorizationScheme+" "+token)
		}
	}

	// Caller headers are merged last and win on key collision,
	// Authorization included.
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, normalizeTransportError(err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, normalizeTransportError(err)
	}

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: body}, nil
}

// tryRefresh exchanges the held refresh token for a new access token and
// persists the result. Any failure burns the refresh token: credentials are
// cleared and false is returned. One-shot; the refresh call itself is never
// retried.
//
// Refreshes are serialized. A caller that waited on the mutex while another
// refresh completed skips the network call and reuses the fresh token.
func (c *HTTPClient) tryRefresh(ctx context.Context) bool {
	staleAccess := c.creds.AccessToken()

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current := c.creds.AccessToken(); current != "" && current != staleAccess {
		return true
	}

	refreshToken := c.creds.RefreshToken()
	if refreshToken == "" {
		return false
	}

	cfg := &RequestConfig{
		Body:   map[string]string{"refresh_token": refreshToken},
		NoAuth: true,
	}
	resp, err := c.do(ctx, http.MethodPost, refreshEndpoint, cfg)
	if err != nil {
		c.log.Warn(ctx, "token refresh failed", "error", err)
		c.creds.Clear(ctx)
		return false
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn(ctx, "token refresh rejected", "status", resp.StatusCode)
		c.creds.Clear(ctx)
		return false
	}

	var refreshed struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(resp.Body, &refreshed); err != nil || refreshed.Token == "" {
		c.log.Warn(ctx, "token refresh returned unusable body", "error", err)
		c.creds.Clear(ctx)
		return false
	}

	c.creds.Save(ctx, refreshed.Token, refreshed.RefreshToken)
	c.log.Debug(ctx, "access token refreshed")
	return true
}

// encodeQuery serializes query parameters, omitting nil-valued entries.
func encodeQuery(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range params {
		if v == nil {
			continue
		}
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// decodeBody interprets the response body according to its declared content
// type: JSON is decoded into out, anything else is handed over as raw text
// (out must then be a *string).
func decodeBody(resp *Response, out any) error {
	if out == nil {
		return nil
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if len(resp.Body) == 0 {
			return nil
		}
		return json.Unmarshal(resp.Body, out)
	}
	if s, ok := out.(*string); ok {
		*s = string(resp.Body)
		return nil
	}
	return fmt.Errorf("cannot decode %q response into %T", resp.Header.Get("Content-Type"), out)
}

// normalizeTransportError maps a timeout onto the unified 408 error and any
// other transport failure onto status 0, independent of the transport's own
// error shape.
func normalizeTransportError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{StatusCode: http.StatusRequestTimeout, Message: "Request timeout"}
	}
	return &APIError{StatusCode: 0, Message: err.Error()}
}

// apiErrorFromResponse derives the error message from the parsed body's
// "message" or "error" field, falling back to a generic string.
func apiErrorFromResponse(resp *Response) *APIError {
	message := "Request failed"

	var parsed map[string]any
	if err := json.Unmarshal(resp.Body, &parsed); err == nil {
		if m, ok := parsed["message"].(string); ok && m != "" {
			message = m
		} else if m, ok := parsed["error"].(string); ok && m != "" {
			message = m
		}
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message, Body: resp.Body}
}
