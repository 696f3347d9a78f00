package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	"smp/pkg/requestcontext"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	t.Run("reuses caller id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, "req-123")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", rr.Header().Get(HeaderRequestID))
	})

	t.Run("generates when missing or oversized", func(t *testing.T) {
		for _, header := range []string{"", strings.Repeat("x", maxRequestIDLength+1)} {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set(HeaderRequestID, header)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, r)
			assert.Len(t, seen, 36)
			assert.Equal(t, seen, rr.Header().Get(HeaderRequestID))
		}
	})
}

func TestRecovery(t *testing.T) {
	h := Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), string(dErrors.CodeInternal))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/iso6523-actorid-upis::9915:test", nil))

	out := buf.String()
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, `"method":"PUT"`)
	assert.Contains(t, out, `"request_id"`)
	assert.NotContains(t, out, `"user_agent"`)
}

func TestLogger_FlagsBots(t *testing.T) {
	var buf bytes.Buffer
	h := Logger(slog.New(slog.NewJSONHandler(&buf, nil)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Contains(t, buf.String(), `"user_agent":{`)
	assert.Contains(t, buf.String(), `"bot":true`)
}

func TestLatency_NilMetrics(t *testing.T) {
	h := Latency(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireUser(t *testing.T) {
	alice := id.NewUserID()
	auth := AuthenticatorFunc(func(_ context.Context, name, password string) (id.UserID, error) {
		switch {
		case name == "alice" && password == "secret":
			return alice, nil
		case name == "broken":
			return id.UserID{}, dErrors.New(dErrors.CodeBackend, "store down")
		default:
			return id.UserID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
	})

	var seen id.UserID
	h := RequireUser(auth, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		user     string
		password string
		basic    bool
		status   int
	}{
		{name: "valid credentials", user: "alice", password: "secret", basic: true, status: http.StatusNoContent},
		{name: "wrong password", user: "alice", password: "nope", basic: true, status: http.StatusUnauthorized},
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "store failure", user: "broken", password: "x", basic: true, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = id.UserID{}
			r := httptest.NewRequest(http.MethodPut, "/", nil)
			if tt.basic {
				r.SetBasicAuth(tt.user, tt.password)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, r)
			require.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, alice, seen)
			} else {
				assert.True(t, seen.IsNil())
			}
			if tt.status == http.StatusUnauthorized {
				assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
