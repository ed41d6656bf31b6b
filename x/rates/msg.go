package rates

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/x/gov"
)

const pathUpdateMsg = "rates/update"

// UpdateMsg applies a rate change or pause directly. Only the admin can
// send it, and only before governance is active.
type UpdateMsg struct {
	Caller nestera.Address   `protobuf:"bytes,1,opt,name=caller,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"caller"`
	Action *gov.ActionRecord `protobuf:"bytes,2,opt,name=action,proto3" json:"action"`
}

func (m *UpdateMsg) Reset()         { *m = UpdateMsg{} }
func (m *UpdateMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateMsg) ProtoMessage()    {}

var _ nestera.Msg = (*UpdateMsg)(nil)

// Path fulfills nestera.Msg interface to allow routing
func (UpdateMsg) Path() string {
	return pathUpdateMsg
}

func (m *UpdateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Caller", m.Caller.Validate())
	if m.Action == nil {
		errs = errors.AppendField(errs, "Action", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Action", m.Action.Validate())
	}
	return errs
}
