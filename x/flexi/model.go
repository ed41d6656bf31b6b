package flexi

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
)

// Account is the flexible balance of a single address.
type Account struct {
	Balance           int64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance"`
	LifetimeDeposited int64 `protobuf:"varint,2,opt,name=lifetime_deposited,json=lifetimeDeposited,proto3" json:"lifetime_deposited"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

var _ orm.Model = (*Account)(nil)

func (m *Account) Validate() error {
	var errs error
	if m.Balance < 0 {
		errs = errors.AppendField(errs, "Balance", errors.ErrInvalidAmount)
	}
	if m.LifetimeDeposited < m.Balance {
		errs = errors.Append(errs, errors.Field("LifetimeDeposited", errors.ErrInvalidState, "less than balance"))
	}
	return errs
}

// NewBucket returns a bucket for accounts keyed by owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("flexi", &Account{})
}
