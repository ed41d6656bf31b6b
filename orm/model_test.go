package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

// note is a record used only in tests. It covers the field kinds the
// ledger records use.
type note struct {
	Owner   nestera.Address  `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"owner,omitempty"`
	Amount  int64            `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
	Created nestera.UnixTime `protobuf:"varint,3,opt,name=created,proto3,casttype=github.com/nestera-labs/nestera.UnixTime" json:"created,omitempty"`
	Title   string           `protobuf:"bytes,4,opt,name=title,proto3" json:"title,omitempty"`
	Closed  bool             `protobuf:"varint,5,opt,name=closed,proto3" json:"closed,omitempty"`
}

func (m *note) Reset()         { *m = note{} }
func (m *note) String() string { return proto.CompactTextString(m) }
func (*note) ProtoMessage()    {}

func (m *note) Validate() error {
	if m.Amount < 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "negative")
	}
	return nil
}
