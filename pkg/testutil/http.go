// Package testutil builds requests against the registry router in handler
// tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequestOption decorates a test request.
type RequestOption func(*http.Request)

// AsUser authenticates the request with HTTP Basic credentials.
func AsUser(name, password string) RequestOption {
	return func(r *http.Request) {
		if name != "" {
			r.SetBasicAuth(name, password)
		}
	}
}

// WithHeader sets a header when value is non-empty.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		if value != "" {
			r.Header.Set(key, value)
		}
	}
}

// Request builds a request. A nil body sends none; anything else is sent as
// JSON.
func Request(t *testing.T, method, path string, body any, opts ...RequestOption) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	return req
}

// Serve runs req through handler.
func Serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// DecodeJSON decodes the recorded response body into a T.
func DecodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out), "decode response: %s", rr.Body.String())
	return out
}
