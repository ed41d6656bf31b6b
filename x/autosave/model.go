package autosave

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
)

// Schedule is a recurring deposit into the owner flexible balance.
type Schedule struct {
	ID                uint64               `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Owner             nestera.Address      `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"owner"`
	Amount            int64                `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	IntervalSeconds   nestera.UnixDuration `protobuf:"varint,4,opt,name=interval_seconds,json=intervalSeconds,proto3,casttype=github.com/nestera-labs/nestera.UnixDuration" json:"interval_seconds"`
	NextExecutionTime nestera.UnixTime     `protobuf:"varint,5,opt,name=next_execution_time,json=nextExecutionTime,proto3,casttype=github.com/nestera-labs/nestera.UnixTime" json:"next_execution_time"`
	Active            bool                 `protobuf:"varint,6,opt,name=active,proto3" json:"active"`
}

func (m *Schedule) Reset()         { *m = Schedule{} }
func (m *Schedule) String() string { return proto.CompactTextString(m) }
func (*Schedule) ProtoMessage()    {}

var _ orm.Model = (*Schedule)(nil)

func (m *Schedule) Validate() error {
	var errs error
	if m.ID == 0 {
		errs = errors.AppendField(errs, "ID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if m.Amount <= 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	if m.IntervalSeconds <= 0 {
		errs = errors.AppendField(errs, "IntervalSeconds", errors.ErrInvalidTimestamp)
	}
	return errs
}

// IsDue returns true if the schedule is active and can be executed at
// given time.
func (m *Schedule) IsDue(now nestera.UnixTime) bool {
	return m.Active && now >= m.NextExecutionTime
}

// NewBucket returns a bucket for schedules keyed by id.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("autosave", &Schedule{})
}
