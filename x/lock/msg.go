package lock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

const (
	pathCreateMsg   = "lock/create"
	pathWithdrawMsg = "lock/withdraw"
)

// CreateMsg locks an amount of the owner for given duration.
type CreateMsg struct {
	Owner    nestera.Address      `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"owner"`
	Amount   int64                `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
	Duration nestera.UnixDuration `protobuf:"varint,3,opt,name=duration,proto3,casttype=github.com/nestera-labs/nestera.UnixDuration" json:"duration"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

// WithdrawMsg settles a matured deposit.
type WithdrawMsg struct {
	Owner  nestera.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"owner"`
	LockID uint64          `protobuf:"varint,2,opt,name=lock_id,json=lockId,proto3" json:"lock_id"`
}

func (m *WithdrawMsg) Reset()         { *m = WithdrawMsg{} }
func (m *WithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*WithdrawMsg) ProtoMessage()    {}

var _ nestera.Msg = (*CreateMsg)(nil)
var _ nestera.Msg = (*WithdrawMsg)(nil)

// Path fulfills nestera.Msg interface to allow routing
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Path fulfills nestera.Msg interface to allow routing
func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

// Validate checks only the owner. Amount and duration are checked by the
// controller, so that their errors are reported in a fixed order.
func (m *CreateMsg) Validate() error {
	return errors.AppendField(nil, "Owner", m.Owner.Validate())
}

func (m *WithdrawMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if m.LockID == 0 {
		errs = errors.AppendField(errs, "LockID", errors.ErrEmpty)
	}
	return errs
}
