package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/gigline/internal/client/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func newClient(t *testing.T, baseURL string) (*HTTPClient, *credentials.Store) {
	t.Helper()
	creds := credentials.NewStore(nil, nil, nil)
	return New(baseURL, creds), creds
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ---- request building ----

func TestRequest_AttachesTokenWhenHeld(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	c, creds := newClient(t, srv.URL)
	creds.Save(context.Background(), "abc", "")

	_, err := c.Get(context.Background(), "/jobs/", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Token abc", gotAuth)
}

func TestRequest_NoTokenMeansNoAuthorizationHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)

	_, err := c.Get(context.Background(), "/jobs/", nil, nil)
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestRequest_NoAuthSkipsHeaderEvenWithToken(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	c, creds := newClient(t, srv.URL)
	creds.Save(context.Background(), "abc", "")

	_, err := c.Get(context.Background(), "/health/", &RequestConfig{NoAuth: true}, nil)
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestRequest_URLPrefixAndStandardHeaders(t *testing.T) {
	var gotPath, gotVersion, gotAccept string
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.Header.Get("X-API-Version")
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)

	_, err := c.Get(context.Background(), "/jobs/42/", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/jobs/42/", gotPath)
	assert.Equal(t, "v1", gotVersion)
	assert.Equal(t, "application/json", gotAccept)
	assert.NotEmpty(t, gotRequestID)
}

func TestRequest_CallerHeadersWinOnCollision(t *testing.T) {
	var gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)

	cfg := &RequestConfig{Headers: map[string]string{"Content-Type": "text/plain"}}
	_, err := c.Get(context.Background(), "/jobs/", cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", gotCT)
}

func TestRequest_CallerAuthorizationWinsOverStoredToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	c, creds := newClient(t, srv.URL)
	creds.Save(context.Background(), "stored-token", "r1")

	cfg := &RequestConfig{Headers: map[string]string{"Authorization": "Bearer one-off"}}
	_, err := c.Get(context.Background(), "/jobs/", cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer one-off", gotAuth)
}

func TestRequest_QueryParamsOmitNilValues(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)

	cfg := &RequestConfig{Query: map[string]any{"city": "Riga", "page": 2, "category": nil}}
	_, err := c.Get(context.Background(), "/jobs/", cfg, nil)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "city=Riga")
	assert.Contains(t, gotQuery, "page=2")
	assert.NotContains(t, gotQuery, "category")
}

func TestRequest_BodyIsJSONEncoded(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(t, w, http.StatusCreated, map[string]any{"id": "j1"})
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)

	_, err := c.Post(context.Background(), "/jobs/", &RequestConfig{Body: map[string]string{"title": "Fix a sink"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Fix a sink", gotBody["title"])
}

// ---- response handling ----

func TestRequest_DecodesJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"id": 42, "title": "Move a piano"})
	}))
	defer srv.Close()

	c, creds := newClient(t, srv.URL)
	creds.Save(context.Background(), "valid", "")

	var out struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	resp, err := c.Get(context.Background(), "/jobs/42/", nil, &out)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 42, out.ID)
	assert.Equal(t, "Move a piano", out.Title)
}

func TestRequest_NonJSONResponseReturnedAsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "pong")
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)

	var out string
	_, err := c.Get(context.Background(), "/health/", &RequestConfig{NoAuth: true}, &out)
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
}

func TestRequest_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		wantMsg string
	}{
		{"message field", map[string]string{"message": "job not found"}, "job not found"},
		{"error field", map[string]string{"error": "bad category"}, "bad category"},
		{"fallback", map[string]int{"code": 7}, "Request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusNotFound, tt.body)
			}))
			defer srv.Close()

			c, _ := newClient(t, srv.URL)

			_, err := c.Get(context.Background(), "/jobs/nope/", nil, nil)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.NotEmpty(t, apiErr.Body)
		})
	}
}

// ---- refresh-and-retry protocol ----

func TestRequest_RefreshThenRetrySucceeds(t *testing.T) {
	var refreshCalls, jobCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs/42/", func(w http.ResponseWriter, r *http.Request) {
		jobCalls.Add(1)
		if r.Header.Get("Authorization") != "Token new" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"id": 42})
	})
	mux.HandleFunc("/api/v1/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "old-r", body["refresh_token"])
		writeJSON(t, w, http.StatusOK, map[string]string{"token": "new", "refresh_token": "new-r"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, creds := newClient(t, srv.URL)
	creds.Save(context.Background(), "old", "old-r")

	var out struct {
		ID int `json:"id"`
	}
	_, err := c.Get(context.Background(), "/jobs/42/", nil, &out)
	require.NoError(t, err)

	assert.Equal(t, 42, out.ID)
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), jobCalls.Load())
	assert.Equal(t, "new", creds.AccessToken())
	assert.Equal(t, "new-r", creds.RefreshToken())
}

func TestRequest_RefreshFailureSurfaces401AndClearsTokens(t *testing.T) {
	var jobCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs/42/", func(w http.ResponseWriter, r *http.Request) {
		jobCalls.Add(1)
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
	})
	mux.HandleFunc("/api/v1/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]string{"error": "refresh token expired"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, creds := newClient(t, srv.URL)
	creds.Save(context.Background(), "old", "burned")

	_, err := c.Get(context.Background(), "/jobs/42/", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	assert.Equal(t, int32(1), jobCalls.Load(), "no retry after failed refresh")
	assert.False(t, c.IsAuthenticated())
	assert.Empty(t, creds.RefreshToken())
}

func TestRequest_NoRefreshTokenMeansNoRefreshCall(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	})
	mux.HandleFunc("/api/v1/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(t, w, http.StatusOK, map[string]string{"token": "x"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, creds := newClient(t, srv.URL)
	creds.Save(context.Background(), "stale", "")

	_, err := c.Get(context.Background(), "/jobs/", nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(0), refreshCalls.Load())
}

func TestRequest_Second401AfterRefreshIsNotRetriedAgain(t *testing.T) {
	var refreshCalls, jobCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs/", func(w http.ResponseWriter, r *http.Request) {
		jobCalls.Add(1)
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "still no"})
	})
	mux.HandleFunc("/api/v1/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(t, w, http.StatusOK, map[string]string{"token": "fresh", "refresh_token": "fresh-r"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, creds := newClient(t, srv.URL)
	creds.Save(context.Background(), "old", "old-r")

	_, err := c.Get(context.Background(), "/jobs/", nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	assert.Equal(t, int32(1), refreshCalls.Load(), "retry bound is one refresh per call")
	assert.Equal(t, int32(2), jobCalls.Load())
}

func TestRequest_401OnNoAuthRequestStillTriggersRefresh(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/public/", func(w http.ResponseWriter, r *http.Request) {
		if refreshCalls.Load() == 0 {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "nope"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true})
	})
	mux.HandleFunc("/api/v1/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(t, w, http.StatusOK, map[string]string{"token": "fresh"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, creds := newClient(t, srv.URL)
	creds.Save(context.Background(), "tok", "ref")

	_, err := c.Get(context.Background(), "/public/", &RequestConfig{NoAuth: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestRequest_Concurrent401sShareOneRefresh(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Token fresh" {
			writeJSON(t, w, http.StatusOK, map[string]any{"ok": true})
			return
		}
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "expired"})
	})
	mux.HandleFunc("/api/v1/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		time.Sleep(50 * time.Millisecond) // widen the race window
		writeJSON(t, w, http.StatusOK, map[string]string{"token": "fresh", "refresh_token": "fresh-r"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, creds := newClient(t, srv.URL)
	creds.Save(context.Background(), "stale", "stale-r")

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = c.Get(context.Background(), "/jobs/", nil, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), refreshCalls.Load())
}

// ---- timeouts and transport failures ----

func TestRequest_TimeoutYields408AndLeavesCredentialsAlone(t *testing.T) {
	started := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-r.Context().Done()
	}))
	defer srv.Close()

	c, creds := newClient(t, srv.URL)
	creds.Save(context.Background(), "tok", "ref")

	_, err := c.Post(context.Background(), "/jobs/", &RequestConfig{Timeout: 100 * time.Millisecond}, nil)
	require.Error(t, err)
	<-started

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusRequestTimeout, apiErr.StatusCode)
	assert.Equal(t, "Request timeout", apiErr.Message)
	assert.True(t, errors.Is(err, ErrTimeout))

	assert.Equal(t, "tok", creds.AccessToken())
	assert.Equal(t, "ref", creds.RefreshToken())
}

func TestRequest_TransportFailureYieldsStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c, _ := newClient(t, srv.URL)

	_, err := c.Get(context.Background(), "/jobs/", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

// ---- sugar methods ----

func TestSugarMethods_UseExpectedVerbs(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method)
		writeJSON(t, w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	c, _ := newClient(t, srv.URL)
	ctx := context.Background()

	_, _ = c.Get(ctx, "/x/", nil, nil)
	_, _ = c.Post(ctx, "/x/", nil, nil)
	_, _ = c.Put(ctx, "/x/", nil, nil)
	_, _ = c.Patch(ctx, "/x/", nil, nil)
	_, _ = c.Delete(ctx, "/x/", nil, nil)

	assert.Equal(t, []string{"GET", "POST", "PUT", "PATCH", "DELETE"}, got)
}
