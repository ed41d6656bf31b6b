package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache, layering
// cache wraps the way a block and its transactions do.
func TestBTreeCacheGetSet(t *testing.T) {
	// base is the root of our data, we can layer on top and
	// all queries should work
	base := BTreeCacheable{EmptyKVStore{}}.CacheWrap()

	k, v := []byte("user:alice"), []byte("registered")
	assertMissing(t, base, k)
	require.NoError(t, base.Set(k, v))
	assertValue(t, base, k, v)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertValue(t, cache, k, v)

	// writing more data is only visible in the cache
	k2, v2 := []byte("lock:1"), []byte("active")
	assertMissing(t, cache, k2)
	require.NoError(t, cache.Set(k2, v2))
	assertValue(t, cache, k2, v2)
	assertMissing(t, base, k2)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assertValue(t, base, k, v)
	assertValue(t, base, k2, v2)

	// we can discard one
	k3, v3 := []byte("schedule:1"), []byte("active")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	require.NoError(t, c2.Delete(k))
	assertValue(t, c2, k3, v3)
	assertMissing(t, c2, k)
	c2.Discard()
	assertMissing(t, base, k3)
	assertValue(t, base, k, v)

	// and a deleted key shadows the backing value until written
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k2))
	assertMissing(t, c3, k2)
	assertValue(t, base, k2, v2)
	require.NoError(t, c3.Write())
	assertMissing(t, base, k2)
}

func TestBTreeCacheRejectsNilKey(t *testing.T) {
	db := MemStore()
	assert.Error(t, db.Set(nil, []byte("x")))
	assert.Error(t, db.Delete(nil))
}

func TestLogableStore(t *testing.T) {
	db, ops := LogableStore()
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	require.NoError(t, db.Delete([]byte("b")))
	require.NoError(t, db.Set([]byte("a"), []byte("2")))

	got := ops.ShowOps()
	require.Len(t, got, 3)
	assert.True(t, got[0].IsSetOp())
	assert.False(t, got[1].IsSetOp())
	assert.Equal(t, []byte("b"), got[1].Key())
	assert.Equal(t, []byte("2"), got[2].Value())
}

func assertValue(t *testing.T, db KVStore, key, want []byte) {
	t.Helper()
	got, err := db.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	has, err := db.Has(key)
	require.NoError(t, err)
	assert.True(t, has)
}

func assertMissing(t *testing.T, db KVStore, key []byte) {
	t.Helper()
	got, err := db.Get(key)
	require.NoError(t, err)
	assert.Nil(t, got)
	has, err := db.Has(key)
	require.NoError(t, err)
	assert.False(t, has)
}
