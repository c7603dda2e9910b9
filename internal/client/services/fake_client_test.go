package services

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/gigline/internal/client/client"
)

// fakeCall records one dispatched request for later assertions.
type fakeCall struct {
	Method   string
	Endpoint string
	Cfg      *client.RequestConfig
}

// fakeClient implements client.Client for unit-testing services. Responses
// are produced by Handle; when Handle is nil every call succeeds with an
// empty 200.
type fakeClient struct {
	Handle func(method, endpoint string, cfg *client.RequestConfig, out any) (*client.Response, error)

	Calls []fakeCall

	SavedAccess  string
	SavedRefresh string
	Cleared      bool
	Authed       bool
}

func (f *fakeClient) Request(ctx context.Context, method, endpoint string, cfg *client.RequestConfig, out any) (*client.Response, error) {
	f.Calls = append(f.Calls, fakeCall{Method: method, Endpoint: endpoint, Cfg: cfg})
	if f.Handle != nil {
		return f.Handle(method, endpoint, cfg, out)
	}
	return &client.Response{StatusCode: http.StatusOK}, nil
}

func (f *fakeClient) Get(ctx context.Context, endpoint string, cfg *client.RequestConfig, out any) (*client.Response, error) {
	return f.Request(ctx, http.MethodGet, endpoint, cfg, out)
}

func (f *fakeClient) Post(ctx context.Context, endpoint string, cfg *client.RequestConfig, out any) (*client.Response, error) {
	return f.Request(ctx, http.MethodPost, endpoint, cfg, out)
}

func (f *fakeClient) Put(ctx context.Context, endpoint string, cfg *client.RequestConfig, out any) (*client.Response, error) {
	return f.Request(ctx, http.MethodPut, endpoint, cfg, out)
}

func (f *fakeClient) Patch(ctx context.Context, endpoint string, cfg *client.RequestConfig, out any) (*client.Response, error) {
	return f.Request(ctx, http.MethodPatch, endpoint, cfg, out)
}

func (f *fakeClient) Delete(ctx context.Context, endpoint string, cfg *client.RequestConfig, out any) (*client.Response, error) {
	return f.Request(ctx, http.MethodDelete, endpoint, cfg, out)
}

func (f *fakeClient) SaveTokens(ctx context.Context, accessToken, refreshToken string) {
	f.SavedAccess = accessToken
	f.SavedRefresh = refreshToken
	f.Authed = true
}

func (f *fakeClient) ClearTokens(ctx context.Context) {
	f.Cleared = true
	f.Authed = false
}

func (f *fakeClient) IsAuthenticated() bool { return f.Authed }

// respondJSON is a Handle helper: unmarshal v into out and return a 200.
func respondJSON(v any, out any) (*client.Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return nil, err
		}
	}
	return &client.Response{StatusCode: http.StatusOK, Body: body}, nil
}
