// Package inmem is the in-memory kv engine (backend id "memory").
package inmem

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/btree"

	"smp/internal/platform/config"
	"smp/internal/registry/backend"
	"smp/internal/registry/store/kv"
)

// BackendID selects this engine in configuration.
const BackendID = "memory"

// Register installs the engine in a backend registry.
func Register(r backend.Registrar) error {
	return r.Register(BackendID, func(_ context.Context, _ config.Backend, logger *slog.Logger) (backend.Provider, error) {
		return kv.NewProvider(NewKVStore(), logger), nil
	})
}

type item struct {
	key   []byte
	value []byte
}

func less(a, b item) bool {
	return bytes.Compare(a.key, b.key) < 0
}

type snapshot map[string]*btree.BTreeG[item]

// KVStore is an in-memory btree backed kv.Store. Readers work on an immutable
// snapshot; a writer works on copy-on-write clones of the trees it touches and
// publishes them only when its function succeeds, so a failed Update leaves
// no trace.
type KVStore struct {
	writer  sync.Mutex
	current atomic.Pointer[snapshot]
}

var _ kv.Store = (*KVStore)(nil)

// NewKVStore creates an empty store with every registry bucket.
func NewKVStore() *KVStore {
	s := &KVStore{}
	snap := snapshot{}
	for _, name := range kv.Buckets() {
		snap[string(name)] = btree.NewG(2, less)
	}
	s.current.Store(&snap)
	return s
}

// View runs fn against the latest published snapshot.
func (s *KVStore) View(ctx context.Context, fn func(kv.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&Tx{ctx: ctx, snap: *s.current.Load()})
}

// Update runs fn exclusively and publishes its writes if it returns nil.
func (s *KVStore) Update(ctx context.Context, fn func(kv.Tx) error) error {
	s.writer.Lock()
	defer s.writer.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &Tx{ctx: ctx, snap: *s.current.Load(), writable: true, dirty: map[string]*btree.BTreeG[item]{}}
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.dirty) == 0 {
		return nil
	}
	next := make(snapshot, len(tx.snap))
	for name, tree := range tx.snap {
		next[name] = tree
	}
	for name, tree := range tx.dirty {
		next[name] = tree
	}
	s.current.Store(&next)
	return nil
}

func (s *KVStore) Close() error { return nil }

// Tx is an in-memory transaction.
type Tx struct {
	ctx      context.Context
	snap     snapshot
	writable bool
	dirty    map[string]*btree.BTreeG[item]
}

func (t *Tx) Context() context.Context { return t.ctx }

// Bucket returns the bucket named name, creating it on first write.
func (t *Tx) Bucket(name []byte) (kv.Bucket, error) {
	return &Bucket{tx: t, name: string(name)}, nil
}

func (t *Tx) tree(name string) *btree.BTreeG[item] {
	if tree, ok := t.dirty[name]; ok {
		return tree
	}
	return t.snap[name]
}

// writableTree clones the bucket's tree on first write in this transaction.
func (t *Tx) writableTree(name string) (*btree.BTreeG[item], error) {
	if !t.writable {
		return nil, kv.ErrTxNotWritable
	}
	if tree, ok := t.dirty[name]; ok {
		return tree, nil
	}
	var tree *btree.BTreeG[item]
	if base, ok := t.snap[name]; ok {
		tree = base.Clone()
	} else {
		tree = btree.NewG(2, less)
	}
	t.dirty[name] = tree
	return tree, nil
}

// Bucket implements kv.Bucket over one tree of the transaction.
type Bucket struct {
	tx   *Tx
	name string
}

func (b *Bucket) Get(key []byte) ([]byte, error) {
	tree := b.tx.tree(b.name)
	if tree == nil {
		return nil, kv.ErrKeyNotFound
	}
	it, ok := tree.Get(item{key: key})
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	return it.value, nil
}

func (b *Bucket) Put(key, value []byte) error {
	tree, err := b.tx.writableTree(b.name)
	if err != nil {
		return err
	}
	tree.ReplaceOrInsert(item{key: bytes.Clone(key), value: bytes.Clone(value)})
	return nil
}

func (b *Bucket) Delete(key []byte) error {
	tree, err := b.tx.writableTree(b.name)
	if err != nil {
		return err
	}
	tree.Delete(item{key: key})
	return nil
}

func (b *Bucket) ForEach(prefix []byte, fn func(k, v []byte) error) error {
	tree := b.tx.tree(b.name)
	if tree == nil {
		return nil
	}
	var err error
	tree.AscendGreaterOrEqual(item{key: prefix}, func(it item) bool {
		if !bytes.HasPrefix(it.key, prefix) {
			return false
		}
		err = fn(it.key, it.value)
		return err == nil
	})
	return err
}
