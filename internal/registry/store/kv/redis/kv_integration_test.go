//go:build integration

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	platformredis "smp/internal/platform/redis"
	"smp/internal/registry/backend"
	"smp/internal/registry/store/kv"
	kvredis "smp/internal/registry/store/kv/redis"
	"smp/internal/registry/store/storetest"
	"smp/pkg/testutil/containers"
)

// TestContract runs the manager contract against a real Redis server. Each
// test gets its own client because the provider closes it.
func TestContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	storetest.Run(t, func(t *testing.T) backend.Provider {
		ctx := context.Background()
		require.NoError(t, rc.Reset(ctx))
		cfg := rc.Backend("smp:")
		client, err := platformredis.Open(ctx, cfg)
		require.NoError(t, err)
		return kv.NewProvider(kvredis.NewKVStore(client, cfg.KeyPrefix), logger)
	})
}
