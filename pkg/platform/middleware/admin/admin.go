// Package admin guards operator-only routes with a shared token.
package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "smp/pkg/domain-errors"
	"smp/pkg/platform/httputil"
	"smp/pkg/requestcontext"
)

// HeaderAdminToken carries the operator token.
const HeaderAdminToken = "X-Admin-Token"

// RequireAdminToken rejects requests whose X-Admin-Token does not match
// expectedToken. An empty expectedToken disables the routes entirely.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if expectedToken == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin routes are disabled"))
				return
			}
			token := r.Header.Get(HeaderAdminToken)
			if subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestcontext.RequestID(ctx),
					"client_ip", requestcontext.ClientIP(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
