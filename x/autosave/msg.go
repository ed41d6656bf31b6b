package autosave

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

const (
	pathCreateMsg  = "autosave/create"
	pathExecuteMsg = "autosave/execute"
	pathCancelMsg  = "autosave/cancel"
)

// CreateMsg creates a new schedule. The first execution happens at
// StartTime, which may be in the past or in the future.
type CreateMsg struct {
	Owner           nestera.Address      `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"owner"`
	Amount          int64                `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
	IntervalSeconds nestera.UnixDuration `protobuf:"varint,3,opt,name=interval_seconds,json=intervalSeconds,proto3,casttype=github.com/nestera-labs/nestera.UnixDuration" json:"interval_seconds"`
	StartTime       nestera.UnixTime     `protobuf:"varint,4,opt,name=start_time,json=startTime,proto3,casttype=github.com/nestera-labs/nestera.UnixTime" json:"start_time"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

// ExecuteMsg executes a due schedule. It can be sent by anyone.
type ExecuteMsg struct {
	ScheduleID uint64 `protobuf:"varint,1,opt,name=schedule_id,json=scheduleId,proto3" json:"schedule_id"`
}

func (m *ExecuteMsg) Reset()         { *m = ExecuteMsg{} }
func (m *ExecuteMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteMsg) ProtoMessage()    {}

// CancelMsg deactivates a schedule for good.
type CancelMsg struct {
	Owner      nestera.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"owner"`
	ScheduleID uint64          `protobuf:"varint,2,opt,name=schedule_id,json=scheduleId,proto3" json:"schedule_id"`
}

func (m *CancelMsg) Reset()         { *m = CancelMsg{} }
func (m *CancelMsg) String() string { return proto.CompactTextString(m) }
func (*CancelMsg) ProtoMessage()    {}

var _ nestera.Msg = (*CreateMsg)(nil)
var _ nestera.Msg = (*ExecuteMsg)(nil)
var _ nestera.Msg = (*CancelMsg)(nil)

func (CreateMsg) Path() string  { return pathCreateMsg }
func (ExecuteMsg) Path() string { return pathExecuteMsg }
func (CancelMsg) Path() string  { return pathCancelMsg }

// Validate checks only the owner. Amount and interval are checked by the
// controller, so that their errors are reported in a fixed order.
func (m *CreateMsg) Validate() error {
	return errors.AppendField(nil, "Owner", m.Owner.Validate())
}

func (m *ExecuteMsg) Validate() error {
	if m.ScheduleID == 0 {
		return errors.Field("ScheduleID", errors.ErrEmpty, "required")
	}
	return nil
}

func (m *CancelMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if m.ScheduleID == 0 {
		errs = errors.AppendField(errs, "ScheduleID", errors.ErrEmpty)
	}
	return errs
}
