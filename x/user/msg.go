package user

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

const pathRegisterUserMsg = "user/register"

// RegisterUserMsg registers the signer address as a participant.
type RegisterUserMsg struct {
	Address nestera.Address `protobuf:"bytes,1,opt,name=address,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"address"`
}

func (m *RegisterUserMsg) Reset()         { *m = RegisterUserMsg{} }
func (m *RegisterUserMsg) String() string { return proto.CompactTextString(m) }
func (*RegisterUserMsg) ProtoMessage()    {}

var _ nestera.Msg = (*RegisterUserMsg)(nil)

// Path fulfills nestera.Msg interface to allow routing
func (RegisterUserMsg) Path() string {
	return pathRegisterUserMsg
}

// Validate ensures the address is well formed.
func (m *RegisterUserMsg) Validate() error {
	return errors.AppendField(nil, "Address", m.Address.Validate())
}
