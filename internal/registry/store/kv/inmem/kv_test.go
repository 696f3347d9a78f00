package inmem

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smp/internal/registry/backend"
	"smp/internal/registry/store/kv"
	"smp/internal/registry/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) backend.Provider {
		return kv.NewProvider(NewKVStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	})
}

var testBucket = []byte("servicegroups")

// TestUpdate_FailedFunctionLeavesNoTrace verifies that writes made before an
// error inside Update are never published.
func TestUpdate_FailedFunctionLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()
	boom := errors.New("boom")

	err := store.Update(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket(testBucket)
		require.NoError(t, err)
		require.NoError(t, b.Put([]byte("a"), []byte("1")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = store.View(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket(testBucket)
		require.NoError(t, err)
		_, err = b.Get([]byte("a"))
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
		return nil
	})
	require.NoError(t, err)
}

// TestView_ReadsStableSnapshot verifies a reader does not observe a write that
// commits while it is still running.
func TestView_ReadsStableSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()

	err := store.View(ctx, func(tx kv.Tx) error {
		updateErr := store.Update(ctx, func(wtx kv.Tx) error {
			b, err := wtx.Bucket(testBucket)
			require.NoError(t, err)
			return b.Put([]byte("k"), []byte("v"))
		})
		require.NoError(t, updateErr)

		b, err := tx.Bucket(testBucket)
		require.NoError(t, err)
		_, err = b.Get([]byte("k"))
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestView_RejectsWrites(t *testing.T) {
	store := NewKVStore()
	err := store.View(context.Background(), func(tx kv.Tx) error {
		b, err := tx.Bucket(testBucket)
		require.NoError(t, err)
		return b.Put([]byte("k"), []byte("v"))
	})
	assert.ErrorIs(t, err, kv.ErrTxNotWritable)
}

func TestForEach_PrefixOrder(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()
	require.NoError(t, store.Update(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket(testBucket)
		require.NoError(t, err)
		for _, k := range []string{"b\x00two", "a\x00x", "b\x00one", "c"} {
			require.NoError(t, b.Put([]byte(k), []byte(k)))
		}
		return nil
	}))

	var seen []string
	require.NoError(t, store.View(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket(testBucket)
		require.NoError(t, err)
		return b.ForEach([]byte("b\x00"), func(k, _ []byte) error {
			seen = append(seen, string(k))
			return nil
		})
	}))
	assert.Equal(t, []string{"b\x00one", "b\x00two"}, seen)
}

func TestUpdate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewKVStore().Update(ctx, func(kv.Tx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
