package bolt

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smp/internal/registry/backend"
	"smp/internal/registry/store/kv"
	"smp/internal/registry/store/storetest"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func openStore(t *testing.T, path string) *KVStore {
	t.Helper()
	store := NewKVStore(path, WithLogger(discard))
	require.NoError(t, store.Open(context.Background()))
	return store
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) backend.Provider {
		return kv.NewProvider(openStore(t, filepath.Join(t.TempDir(), "smp.db")), discard)
	})
}

func TestOpen_RequiresPath(t *testing.T) {
	err := NewKVStore("").Open(context.Background())
	assert.Error(t, err)
}

// TestReopen_KeepsData verifies committed writes survive closing the file.
func TestReopen_KeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "smp.db")
	bucket := []byte("settings")

	store := openStore(t, path)
	require.NoError(t, store.Update(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket(bucket)
		require.NoError(t, err)
		return b.Put([]byte("k"), []byte("v"))
	}))
	require.NoError(t, store.Close())

	store = openStore(t, path)
	defer store.Close()
	require.NoError(t, store.View(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket(bucket)
		require.NoError(t, err)
		v, err := b.Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, "v", string(v))
		return nil
	}))
}

func TestUpdate_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "smp.db"))
	defer store.Close()
	bucket := []byte("users")
	boom := errors.New("boom")

	err := store.Update(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket(bucket)
		require.NoError(t, err)
		require.NoError(t, b.Put([]byte("k"), []byte("v")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, store.View(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket(bucket)
		require.NoError(t, err)
		_, err = b.Get([]byte("k"))
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
		return nil
	}))
}
