// Package redis is the document-database kv engine (backend id "redis").
// Every bucket is one Redis hash; Update runs under WATCH on all bucket keys,
// commits its writes in a single MULTI/EXEC and retries a lost commit a few
// times.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"smp/internal/platform/config"
	platformredis "smp/internal/platform/redis"
	"smp/internal/registry/backend"
	"smp/internal/registry/store/kv"
	"smp/pkg/platform/sentinel"
)

// BackendID selects this engine in configuration.
const BackendID = "redis"

// Register installs the engine in a backend registry.
func Register(r backend.Registrar) error {
	return r.Register(BackendID, func(ctx context.Context, cfg config.Backend, logger *slog.Logger) (backend.Provider, error) {
		client, err := platformredis.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return kv.NewProvider(NewKVStore(client, cfg.Redis.KeyPrefix), logger), nil
	})
}

// reader is the read surface shared by *redis.Client and *redis.Tx.
type reader interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// KVStore is a kv.Store on Redis hashes.
type KVStore struct {
	client *redis.Client
	prefix string
}

var _ kv.Store = (*KVStore)(nil)

func NewKVStore(client *redis.Client, keyPrefix string) *KVStore {
	return &KVStore{client: client, prefix: keyPrefix}
}

func (s *KVStore) hashKey(bucket []byte) string {
	return s.prefix + string(bucket)
}

// View reads straight from the server. Reads are not isolated from
// concurrent writers; each Get sees the latest committed value.
func (s *KVStore) View(ctx context.Context, fn func(kv.Tx) error) error {
	return fn(&Tx{ctx: ctx, store: s, reader: s.client})
}

// maxTxAttempts bounds how often Update re-runs fn after a concurrent write
// invalidated its WATCH.
const maxTxAttempts = 3

// Update runs fn under optimistic locking. Writes are buffered and applied
// atomically; if another client changed any bucket meanwhile the commit is
// aborted and fn runs again against fresh state. After maxTxAttempts lost
// commits Update returns sentinel.ErrConflict and nothing is written.
func (s *KVStore) Update(ctx context.Context, fn func(kv.Tx) error) error {
	keys := make([]string, 0, len(kv.Buckets()))
	for _, b := range kv.Buckets() {
		keys = append(keys, s.hashKey(b))
	}
	var err error
	for range maxTxAttempts {
		err = s.client.Watch(ctx, func(rtx *redis.Tx) error {
			return s.commit(ctx, rtx, fn)
		}, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("redis transaction aborted after %d attempts: %w", maxTxAttempts, sentinel.ErrConflict)
}

func (s *KVStore) commit(ctx context.Context, rtx *redis.Tx, fn func(kv.Tx) error) error {
	tx := &Tx{ctx: ctx, store: s, reader: rtx, writable: true, pending: map[string]map[string]*string{}}
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.pending) == 0 {
		return nil
	}
	_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for hash, fields := range tx.pending {
			for field, value := range fields {
				if value == nil {
					pipe.HDel(ctx, hash, field)
				} else {
					pipe.HSet(ctx, hash, field, *value)
				}
			}
		}
		return nil
	})
	return err
}

// Close closes the client.
func (s *KVStore) Close() error {
	return s.client.Close()
}

// Tx buffers writes until commit and overlays them on reads.
type Tx struct {
	ctx      context.Context
	store    *KVStore
	reader   reader
	writable bool
	pending  map[string]map[string]*string
}

func (t *Tx) Context() context.Context { return t.ctx }

func (t *Tx) Bucket(name []byte) (kv.Bucket, error) {
	return &Bucket{tx: t, hash: t.store.hashKey(name)}, nil
}

// Bucket is one Redis hash seen through a transaction.
type Bucket struct {
	tx   *Tx
	hash string
}

func (b *Bucket) pendingValue(field string) (*string, bool) {
	fields, ok := b.tx.pending[b.hash]
	if !ok {
		return nil, false
	}
	v, ok := fields[field]
	return v, ok
}

func (b *Bucket) Get(key []byte) ([]byte, error) {
	if v, ok := b.pendingValue(string(key)); ok {
		if v == nil {
			return nil, kv.ErrKeyNotFound
		}
		return []byte(*v), nil
	}
	val, err := b.tx.reader.HGet(b.tx.ctx, b.hash, string(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, kv.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("hget %s: %w", b.hash, err)
	}
	return val, nil
}

func (b *Bucket) set(key []byte, value *string) error {
	if !b.tx.writable {
		return kv.ErrTxNotWritable
	}
	fields, ok := b.tx.pending[b.hash]
	if !ok {
		fields = map[string]*string{}
		b.tx.pending[b.hash] = fields
	}
	fields[string(key)] = value
	return nil
}

func (b *Bucket) Put(key, value []byte) error {
	v := string(value)
	return b.set(key, &v)
}

func (b *Bucket) Delete(key []byte) error {
	return b.set(key, nil)
}

// ForEach loads the whole hash, applies pending writes and visits matching
// keys in ascending order.
func (b *Bucket) ForEach(prefix []byte, fn func(k, v []byte) error) error {
	all, err := b.tx.reader.HGetAll(b.tx.ctx, b.hash).Result()
	if err != nil {
		return fmt.Errorf("hgetall %s: %w", b.hash, err)
	}
	for field, value := range b.tx.pending[b.hash] {
		if value == nil {
			delete(all, field)
		} else {
			all[field] = *value
		}
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fn([]byte(k), []byte(all[k])); err != nil {
			return err
		}
	}
	return nil
}
