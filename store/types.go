package store

import "github.com/nestera-labs/nestera"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = nestera.ReadOnlyKVStore
	SetDeleter       = nestera.SetDeleter
	KVStore          = nestera.KVStore
	CacheableKVStore = nestera.CacheableKVStore
	KVCacheWrap      = nestera.KVCacheWrap
	CommitKVStore    = nestera.CommitKVStore
	CommitID         = nestera.CommitID
)

// Batch can write multiple ops atomically to an underlying KVStore
type Batch interface {
	SetDeleter
	Write() error
}
