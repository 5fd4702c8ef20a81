package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Put(ctx, "replays/M1-0-10.json", []byte(`{"frames":[]}`), "application/json")
	require.NoError(t, err)

	data, err := store.Get(ctx, "replays/M1-0-10.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"frames":[]}`), data)
}

func TestBadgerStoreMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "replays/absent.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadgerStoreOverwriteLastWriteWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("one"), ""))
	require.NoError(t, store.Put(ctx, "k", []byte("two"), ""))

	data, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}
