// Package requestcontext carries request-scoped values from the HTTP
// middleware into the registry service without importing net/http.
//
// Middleware sets the values once per request:
//
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//	ctx = requestcontext.WithUserID(ctx, userID)
//
// The service reads them when it authorises a change or emits an audit event.
// Tests pin the clock with WithTime.
package requestcontext

import (
	"context"
	"time"

	id "smp/pkg/domain"
)

// key is a distinct context key per carried value.
type key int

const (
	keyUserID key = iota
	keyClientIP
	keyRequestID
	keyRequestTime
)

func value[T any](ctx context.Context, k key) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

// UserID is the authenticated registry user, or the nil id for anonymous
// callers.
func UserID(ctx context.Context) id.UserID {
	v, _ := value[id.UserID](ctx, keyUserID)
	return v
}

func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, keyUserID, userID)
}

// ClientIP is the caller address resolved by the metadata middleware.
func ClientIP(ctx context.Context) string {
	v, _ := value[string](ctx, keyClientIP)
	return v
}

func WithClientIP(ctx context.Context, clientIP string) context.Context {
	return context.WithValue(ctx, keyClientIP, clientIP)
}

func RequestID(ctx context.Context) string {
	v, _ := value[string](ctx, keyRequestID)
	return v
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// Now is the time the request arrived. Outside a request (CLI, background
// compensation) it is the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := value[time.Time](ctx, keyRequestTime); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, keyRequestTime, t)
}
