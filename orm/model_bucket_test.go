package orm

import (
	"testing"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/store"
	"github.com/nestera-labs/nestera/weavetest/assert"
)

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("notes", &note{})

	owner := nestera.NewCondition("test", "owner", []byte("a")).Address()
	n := &note{Owner: owner, Amount: 1000, Created: 1600000000, Title: "rent", Closed: true}
	assert.Nil(t, b.Put(db, IDKey(1), n))

	var got note
	assert.Nil(t, b.One(db, IDKey(1), &got))
	assert.Equal(t, *n, got)

	ok, err := b.Has(db, IDKey(1))
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	ok, err = b.Has(db, IDKey(2))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestModelBucketErrors(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("notes", &note{})

	assert.IsErr(t, errors.ErrNotFound, b.One(db, IDKey(1), &note{}))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, nil, &note{}))
	assert.IsErr(t, errors.ErrInvalidAmount, b.Put(db, IDKey(1), &note{Amount: -1}))
	assert.IsErr(t, errors.ErrHuman, b.Put(db, nil, &note{}))
	assert.IsErr(t, errors.ErrInvalidType, b.Put(db, IDKey(1), &IDList{}))
	assert.IsErr(t, errors.ErrInvalidType, b.One(db, IDKey(1), &IDList{}))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, IDKey(1)))

	assert.Nil(t, b.Put(db, IDKey(1), &note{Amount: 1}))
	assert.Nil(t, b.Delete(db, IDKey(1)))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, IDKey(1), &note{}))
}

func TestModelBucketsDoNotCollide(t *testing.T) {
	db := store.MemStore()
	a := NewModelBucket("alpha", &note{})
	b := NewModelBucket("beta", &note{})

	assert.Nil(t, a.Put(db, IDKey(1), &note{Amount: 1}))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, IDKey(1), &note{}))
}

func TestInvalidBucketName(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("x", &note{}) })
	assert.Panics(t, func() { NewModelBucket("With:Colon", &note{}) })
}
