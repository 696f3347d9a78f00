package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "smp/pkg/domain"
)

func TestAccessors(t *testing.T) {
	ctx := context.Background()
	assert.True(t, UserID(ctx).IsNil())
	assert.Empty(t, ClientIP(ctx))
	assert.Empty(t, RequestID(ctx))

	user := id.NewUserID()
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	ctx = WithUserID(ctx, user)
	ctx = WithClientIP(ctx, "192.0.2.10")
	ctx = WithRequestID(ctx, "req-42")
	ctx = WithTime(ctx, at)

	assert.Equal(t, user, UserID(ctx))
	assert.Equal(t, "192.0.2.10", ClientIP(ctx))
	assert.Equal(t, "req-42", RequestID(ctx))
	assert.Equal(t, at, Now(ctx))
}

func TestKeysDoNotCollide(t *testing.T) {
	ctx := WithClientIP(context.Background(), "198.51.100.1")
	assert.Empty(t, RequestID(ctx))

	type foreignKey int
	ctx = context.WithValue(ctx, foreignKey(keyRequestID), "spoofed")
	assert.Empty(t, RequestID(ctx))
}

func TestNowFallsBackToWallClock(t *testing.T) {
	before := time.Now()
	got := Now(context.Background())
	assert.False(t, got.Before(before))
}
