package user

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera/orm"
)

// User aggregates all commitments of a single address.
type User struct {
	// TotalBalance is the sum of all active commitment amounts.
	TotalBalance int64 `protobuf:"varint,1,opt,name=total_balance,json=totalBalance,proto3" json:"total_balance"`
	// CommitmentCount is the number of instruments ever created.
	CommitmentCount uint32 `protobuf:"varint,2,opt,name=commitment_count,json=commitmentCount,proto3" json:"commitment_count"`
}

func (m *User) Reset()         { *m = User{} }
func (m *User) String() string { return proto.CompactTextString(m) }
func (*User) ProtoMessage()    {}

var _ orm.Model = (*User)(nil)

// Validate accepts any balance. A negative balance is possible after a
// reset registration followed by the settlement of an older instrument.
func (m *User) Validate() error {
	return nil
}

// NewBucket returns a bucket for users keyed by their address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("user", &User{})
}
