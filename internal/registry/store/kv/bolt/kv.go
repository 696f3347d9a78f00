// Package bolt is the file-backed kv engine (backend id "file") built on bbolt.
package bolt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"smp/internal/platform/config"
	"smp/internal/registry/backend"
	"smp/internal/registry/store/kv"
	"smp/pkg/platform/sentinel"
)

// BackendID selects this engine in configuration.
const BackendID = "file"

// Register installs the engine in a backend registry.
func Register(r backend.Registrar) error {
	return r.Register(BackendID, func(ctx context.Context, cfg config.Backend, logger *slog.Logger) (backend.Provider, error) {
		store := NewKVStore(cfg.File.Path, WithLogger(logger), WithOpenTimeout(cfg.File.OpenTimeout))
		if err := store.Open(ctx); err != nil {
			return nil, err
		}
		return kv.NewProvider(store, logger), nil
	})
}

// KVStore is a kv.Store backed by a bbolt file.
type KVStore struct {
	path        string
	openTimeout time.Duration
	db          *bolt.DB
	logger      *slog.Logger
}

var _ kv.Store = (*KVStore)(nil)

type Option func(*KVStore)

func WithLogger(logger *slog.Logger) Option {
	return func(s *KVStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithOpenTimeout(d time.Duration) Option {
	return func(s *KVStore) {
		if d > 0 {
			s.openTimeout = d
		}
	}
}

// NewKVStore returns a store for the file at path. Call Open before use.
func NewKVStore(path string, opts ...Option) *KVStore {
	s := &KVStore{
		path:        path,
		openTimeout: time.Second,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates the file if it does not exist and ensures every bucket.
func (s *KVStore) Open(ctx context.Context) error {
	if s.path == "" {
		return errors.New("bolt: file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create directory for %s: %w", s.path, err)
	}

	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: s.openTimeout})
	if errors.Is(err, bolt.ErrTimeout) {
		return fmt.Errorf("bolt file %s is locked by another process: %w", s.path, sentinel.ErrUnavailable)
	}
	if err != nil {
		return fmt.Errorf("open bolt file %s: %w", s.path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range kv.Buckets() {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return err
	}
	s.db = db

	s.logger.InfoContext(ctx, "bolt store opened", "path", s.path)
	return nil
}

// Close the bolt database.
func (s *KVStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// View opens a read-only transaction.
func (s *KVStore) View(ctx context.Context, fn func(kv.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *bolt.Tx) error {
		return fn(&Tx{tx: tx, ctx: ctx})
	})
}

// Update opens a read-write transaction. bbolt rolls it back if fn fails.
func (s *KVStore) Update(ctx context.Context, fn func(kv.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(&Tx{tx: tx, ctx: ctx})
	})
}

// Tx is a light wrapper around a bbolt transaction.
type Tx struct {
	tx  *bolt.Tx
	ctx context.Context
}

func (tx *Tx) Context() context.Context { return tx.ctx }

// Bucket retrieves the bucket named name, creating it in writable transactions.
func (tx *Tx) Bucket(name []byte) (kv.Bucket, error) {
	if bkt := tx.tx.Bucket(name); bkt != nil {
		return &Bucket{bucket: bkt}, nil
	}
	if !tx.tx.Writable() {
		return nil, fmt.Errorf("bucket %s does not exist", name)
	}
	bkt, err := tx.tx.CreateBucketIfNotExists(name)
	if err != nil {
		return nil, err
	}
	return &Bucket{bucket: bkt}, nil
}

// Bucket implements kv.Bucket.
type Bucket struct {
	bucket *bolt.Bucket
}

func (b *Bucket) Get(key []byte) ([]byte, error) {
	val := b.bucket.Get(key)
	if val == nil {
		return nil, kv.ErrKeyNotFound
	}
	return val, nil
}

func (b *Bucket) Put(key, value []byte) error {
	err := b.bucket.Put(key, value)
	if errors.Is(err, bolt.ErrTxNotWritable) {
		return kv.ErrTxNotWritable
	}
	return err
}

func (b *Bucket) Delete(key []byte) error {
	err := b.bucket.Delete(key)
	if errors.Is(err, bolt.ErrTxNotWritable) {
		return kv.ErrTxNotWritable
	}
	return err
}

func (b *Bucket) ForEach(prefix []byte, fn func(k, v []byte) error) error {
	c := b.bucket.Cursor()
	var k, v []byte
	if len(prefix) == 0 {
		k, v = c.First()
	} else {
		k, v = c.Seek(prefix)
	}
	for ; k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}
