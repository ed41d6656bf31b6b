package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

// IDList is an ordered list of record ids.
type IDList struct {
	IDs []uint64 `protobuf:"varint,1,rep,packed,name=ids,proto3" json:"ids,omitempty"`
}

var _ Model = (*IDList)(nil)

func (m *IDList) Reset()         { *m = IDList{} }
func (m *IDList) String() string { return proto.CompactTextString(m) }
func (*IDList) ProtoMessage()    {}

// Validate ensures no id is zero.
func (m *IDList) Validate() error {
	for i, id := range m.IDs {
		if id == 0 {
			return errors.Wrapf(errors.ErrInvalidModel, "zero id at position %d", i)
		}
	}
	return nil
}

// IDIndex is an append-only secondary index, mapping a key (ie. an owner
// address) to the ids of records in creation order. Ids are never removed.
type IDIndex struct {
	b ModelBucket
}

// NewIDIndex returns an index stored in a bucket of given name.
func NewIDIndex(name string) IDIndex {
	return IDIndex{b: NewModelBucket(name, &IDList{})}
}

// Append adds id at the end of the list stored under key.
func (x IDIndex) Append(db nestera.KVStore, key []byte, id uint64) error {
	ids, err := x.List(db, key)
	if err != nil {
		return err
	}
	return x.b.Put(db, key, &IDList{IDs: append(ids, id)})
}

// List returns all ids stored under key. A missing key is an empty list.
func (x IDIndex) List(db nestera.ReadOnlyKVStore, key []byte) ([]uint64, error) {
	var list IDList
	switch err := x.b.One(db, key, &list); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return list.IDs, nil
}
