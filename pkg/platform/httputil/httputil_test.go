package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "smp/pkg/domain-errors"
)

type redirectBody struct {
	TargetHref string `json:"target_href"`
}

func (b *redirectBody) Validate() error {
	b.TargetHref = strings.TrimSpace(b.TargetHref)
	if b.TargetHref == "" {
		return dErrors.New(dErrors.CodeValidation, "target_href is required")
	}
	return nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteError(t *testing.T) {
	t.Run("client errors carry their message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "service group %s not found", "iso6523-actorid-upis::0088:123"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		body := decodeError(t, w)
		assert.Equal(t, "not_found", body.Error)
		assert.Contains(t, body.ErrorDescription, "0088:123")
	})

	t.Run("backend failures hide their message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeBackend, "load service group"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "backend_error", body.Error)
		assert.Empty(t, body.ErrorDescription)
	})

	t.Run("uncoded errors are internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_error", decodeError(t, w).Error)
	})
}

func TestStatusFor(t *testing.T) {
	cases := map[dErrors.Code]int{
		dErrors.CodeValidation:         http.StatusBadRequest,
		dErrors.CodeInvalidInput:       http.StatusBadRequest,
		dErrors.CodeForbidden:          http.StatusForbidden,
		dErrors.CodeNotFound:           http.StatusNotFound,
		dErrors.CodeAlreadyExists:      http.StatusConflict,
		dErrors.CodeInvariantViolation: http.StatusConflict,
		dErrors.CodeUnauthorized:       http.StatusUnauthorized,
		dErrors.CodeLocator:            http.StatusBadGateway,
		dErrors.CodeTimeout:            http.StatusGatewayTimeout,
		dErrors.CodeInconsistentState:  http.StatusInternalServerError,
		dErrors.CodeNotInitialized:     http.StatusServiceUnavailable,
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusFor(code), "StatusFor(%s)", code)
	}
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	decode := func(body string) (*redirectBody, *httptest.ResponseRecorder, bool) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/p/services/d", strings.NewReader(body))
		got, ok := DecodeAndPrepare[redirectBody](w, r, logger, context.Background(), "req-1")
		return got, w, ok
	}

	t.Run("valid body is normalised", func(t *testing.T) {
		got, _, ok := decode(`{"target_href":"  https://smp.example.org  "}`)
		require.True(t, ok)
		assert.Equal(t, "https://smp.example.org", got.TargetHref)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, w, ok := decode(`{"target_href":"https://smp.example.org","owner":"x"}`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decodeError(t, w).Error)
	})

	t.Run("validation failure is written", func(t *testing.T) {
		_, w, ok := decode(`{"target_href":" "}`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_error", decodeError(t, w).Error)
	})
}
