package lock

import (
	"math/big"

	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
)

const (
	// SecondsPerYear is the length of an interest period.
	SecondsPerYear = 365 * 24 * 3600

	// DefaultRateBps is the annual rate used when no configuration was
	// provided, in basis points.
	DefaultRateBps = 800

	bpsDenominator = 10000
)

// LockedDeposit is a single amount locked until maturity.
type LockedDeposit struct {
	ID           uint64           `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Owner        nestera.Address  `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"owner"`
	Amount       int64            `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	RateBps      uint32           `protobuf:"varint,4,opt,name=rate_bps,json=rateBps,proto3" json:"rate_bps"`
	StartTime    nestera.UnixTime `protobuf:"varint,5,opt,name=start_time,json=startTime,proto3,casttype=github.com/nestera-labs/nestera.UnixTime" json:"start_time"`
	MaturityTime nestera.UnixTime `protobuf:"varint,6,opt,name=maturity_time,json=maturityTime,proto3,casttype=github.com/nestera-labs/nestera.UnixTime" json:"maturity_time"`
	Withdrawn    bool             `protobuf:"varint,7,opt,name=withdrawn,proto3" json:"withdrawn"`
}

func (m *LockedDeposit) Reset()         { *m = LockedDeposit{} }
func (m *LockedDeposit) String() string { return proto.CompactTextString(m) }
func (*LockedDeposit) ProtoMessage()    {}

var _ orm.Model = (*LockedDeposit)(nil)

func (m *LockedDeposit) Validate() error {
	var errs error
	if m.ID == 0 {
		errs = errors.AppendField(errs, "ID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if m.Amount <= 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	errs = errors.AppendField(errs, "StartTime", m.StartTime.Validate())
	if m.MaturityTime <= m.StartTime {
		errs = errors.Append(errs, errors.Field("MaturityTime", errors.ErrInvalidDuration, "must be after start time"))
	}
	return errs
}

// IsMatured returns true if the deposit can be withdrawn at given time.
func (m *LockedDeposit) IsMatured(now nestera.UnixTime) bool {
	return now >= m.MaturityTime
}

// Years returns the number of full years between start and maturity.
func (m *LockedDeposit) Years() int64 {
	return int64(m.MaturityTime-m.StartTime) / SecondsPerYear
}

// Interest returns amount * rate * full years / 10000. Partial years earn
// nothing.
func (m *LockedDeposit) Interest() (int64, error) {
	interest := big.NewInt(m.Amount)
	interest.Mul(interest, big.NewInt(int64(m.RateBps)))
	interest.Mul(interest, big.NewInt(m.Years()))
	interest.Quo(interest, big.NewInt(bpsDenominator))
	if !interest.IsInt64() {
		return 0, errors.Wrap(errors.ErrOverflow, "interest")
	}
	return interest.Int64(), nil
}

// Payout returns the amount together with the interest.
func (m *LockedDeposit) Payout() (int64, error) {
	interest, err := m.Interest()
	if err != nil {
		return 0, err
	}
	payout := m.Amount + interest
	if payout < m.Amount {
		return 0, errors.Wrap(errors.ErrOverflow, "payout")
	}
	return payout, nil
}

// Configuration holds the program wide lock rate.
type Configuration struct {
	RateBps uint32 `protobuf:"varint,1,opt,name=rate_bps,json=rateBps,proto3" json:"rate_bps"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) Validate() error {
	if m.RateBps > bpsDenominator {
		return errors.Field("RateBps", errors.ErrInvalidInput, "at most %d", bpsDenominator)
	}
	return nil
}

// NewBucket returns a bucket for locked deposits keyed by id.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("lock", &LockedDeposit{})
}
