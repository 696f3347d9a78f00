package middleware

import (
	"context"
	"log/slog"
	"net/http"

	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
	"smp/pkg/platform/httputil"
	"smp/pkg/requestcontext"
)

// Authenticator checks a user name and password and returns the user's ID.
// It fails with CodeUnauthorized for unknown users and wrong passwords.
type Authenticator interface {
	Authenticate(ctx context.Context, name, password string) (id.UserID, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, name, password string) (id.UserID, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, name, password string) (id.UserID, error) {
	return f(ctx, name, password)
}

// RequireUser authenticates the request with HTTP Basic credentials and
// stores the user ID in the context for requestcontext.UserID.
func RequireUser(authenticator Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			name, password, ok := r.BasicAuth()
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing credentials",
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("WWW-Authenticate", `Basic realm="smp"`)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			userID, err := authenticator.Authenticate(ctx, name, password)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
					logger.WarnContext(ctx, "unauthorized access - invalid credentials",
						"user_name", name,
						"request_id", requestcontext.RequestID(ctx),
					)
					w.Header().Set("WWW-Authenticate", `Basic realm="smp"`)
					httputil.WriteError(w, err)
					return
				}
				logger.ErrorContext(ctx, "failed to authenticate user",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(ctx, userID)))
		})
	}
}
