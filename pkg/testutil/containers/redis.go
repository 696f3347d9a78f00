//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"smp/internal/platform/config"
	platformredis "smp/internal/platform/redis"
)

// RedisContainer is a throwaway Redis server for the "redis" backend tests.
type RedisContainer struct {
	Container *tcredis.RedisContainer
	URL       string
	admin     *redis.Client
}

// NewRedisContainer starts Redis and connects through the same Open path the
// backend uses. Cleanup is left to Ryuk since the container is shared.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	url, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("redis connection string: %v", err)
	}
	admin, err := platformredis.Open(ctx, config.RedisBackend{URL: url})
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("open redis: %v", err)
	}
	return &RedisContainer{Container: container, URL: url, admin: admin}
}

// Backend returns backend settings pointing at the container.
func (r *RedisContainer) Backend(keyPrefix string) config.RedisBackend {
	return config.RedisBackend{URL: r.URL, KeyPrefix: keyPrefix}
}

// Reset drops every key so each contract test starts from an empty registry.
func (r *RedisContainer) Reset(ctx context.Context) error {
	return r.admin.FlushDB(ctx).Err()
}
