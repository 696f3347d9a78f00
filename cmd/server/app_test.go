package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smp/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildApp_Defaults(t *testing.T) {
	ctx := context.Background()
	a, err := buildApp(ctx, config.Defaults(), discardLogger(), appMetrics{})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"backend":"memory"`)

	rr = httptest.NewRecorder()
	a.router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/iso6523-actorid-upis::9915:app", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	require.NoError(t, a.Close(ctx))
	assert.Empty(t, a.managers.BackendID())
}

func TestBuildApp_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		errMsg string
	}{
		{
			name:   "unknown backend",
			mutate: func(c *config.Config) { c.Backend.ID = "cassandra" },
			errMsg: "known backends: memory, file, redis, sql",
		},
		{
			name: "locator without absolute url",
			mutate: func(c *config.Config) {
				c.Locator.Enabled = true
				c.Locator.URL = "sml.example.com"
				c.Locator.SMPID = "SMP-1"
			},
			errMsg: "locator",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(&cfg)
			_, err := buildApp(context.Background(), cfg, discardLogger(), appMetrics{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
