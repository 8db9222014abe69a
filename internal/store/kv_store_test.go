package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/cartwise/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestKVStoreSetAndGet(t *testing.T) {
	kv := NewKVStore(openTestDB(t))
	ctx := context.Background()

	err := kv.Set(ctx, "shopping-lists", []byte(`[{"id":"1","name":"Feira"}]`))
	require.NoError(t, err)

	value, ok, err := kv.Get(ctx, "shopping-lists")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"1","name":"Feira"}]`, string(value))
}

func TestKVStoreGet_Missing(t *testing.T) {
	kv := NewKVStore(openTestDB(t))

	value, ok, err := kv.Get(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestKVStoreSet_Overwrites(t *testing.T) {
	kv := NewKVStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "active-list-id", []byte(`"a"`)))
	require.NoError(t, kv.Set(ctx, "active-list-id", []byte(`"b"`)))

	value, ok, err := kv.Get(ctx, "active-list-id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"b"`, string(value))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestKVStoreRemove(t *testing.T) {
	kv := NewKVStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "price-comparator", []byte(`[]`)))
	require.NoError(t, kv.Remove(ctx, "price-comparator"))

	_, ok, err := kv.Get(ctx, "price-comparator")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent key is a no-op.
	assert.NoError(t, kv.Remove(ctx, "price-comparator"))
}

func TestKVStoreKeys(t *testing.T) {
	kv := NewKVStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "shopping-lists", []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, "active-list-id", []byte(`"pão"`)))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	// Results should be alphabetical
	assert.Equal(t, "active-list-id", keys[0].Key)
	assert.Equal(t, len(`"pão"`), keys[0].Size)
	assert.Equal(t, "shopping-lists", keys[1].Key)
	assert.Equal(t, 2, keys[1].Size)
	assert.False(t, keys[1].UpdatedAt.IsZero())
}
