package flexi

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

const (
	pathDepositMsg  = "flexi/deposit"
	pathWithdrawMsg = "flexi/withdraw"
)

// DepositMsg adds to the flexible balance of the owner.
type DepositMsg struct {
	Owner  nestera.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"owner"`
	Amount int64           `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (m *DepositMsg) Reset()         { *m = DepositMsg{} }
func (m *DepositMsg) String() string { return proto.CompactTextString(m) }
func (*DepositMsg) ProtoMessage()    {}

// WithdrawMsg takes from the flexible balance of the owner.
type WithdrawMsg struct {
	Owner  nestera.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"owner"`
	Amount int64           `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (m *WithdrawMsg) Reset()         { *m = WithdrawMsg{} }
func (m *WithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*WithdrawMsg) ProtoMessage()    {}

var _ nestera.Msg = (*DepositMsg)(nil)
var _ nestera.Msg = (*WithdrawMsg)(nil)

// Path fulfills nestera.Msg interface to allow routing
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Path fulfills nestera.Msg interface to allow routing
func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (m *DepositMsg) Validate() error {
	return validateAmount(m.Owner, m.Amount)
}

func (m *WithdrawMsg) Validate() error {
	return validateAmount(m.Owner, m.Amount)
}

func validateAmount(owner nestera.Address, amount int64) error {
	var errs error
	errs = errors.AppendField(errs, "Owner", owner.Validate())
	if amount <= 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInvalidAmount, "must be positive"))
	}
	return errs
}
