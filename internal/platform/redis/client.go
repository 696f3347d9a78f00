// Package redis opens the go-redis connection used by the "redis" backend.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"smp/internal/platform/config"
	"smp/pkg/platform/sentinel"
)

// Open parses the backend URL and pings the server once. A server that does
// not answer is reported as sentinel.ErrUnavailable so that backend
// initialisation surfaces it as a storage outage rather than a config error.
func Open(ctx context.Context, cfg config.RedisBackend) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("backend.redis.url is required")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("backend.redis.url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis at %s: %w", opts.Addr, errors.Join(sentinel.ErrUnavailable, err))
	}
	return client, nil
}
