package gov

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

const (
	pathVotingConfigMsg   = "gov/voting_config"
	pathActivateMsg       = "gov/activate"
	pathCreateProposalMsg = "gov/create_proposal"
	pathVoteMsg           = "gov/vote"
	pathExecuteMsg        = "gov/execute"
)

// VotingConfigMsg initializes the voting rules.
type VotingConfigMsg struct {
	Admin  nestera.Address `protobuf:"bytes,1,opt,name=admin,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"admin"`
	Config *VotingConfig   `protobuf:"bytes,2,opt,name=config,proto3" json:"config"`
}

func (m *VotingConfigMsg) Reset()         { *m = VotingConfigMsg{} }
func (m *VotingConfigMsg) String() string { return proto.CompactTextString(m) }
func (*VotingConfigMsg) ProtoMessage()    {}

// ActivateMsg activates governance.
type ActivateMsg struct {
	Admin nestera.Address `protobuf:"bytes,1,opt,name=admin,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"admin"`
}

func (m *ActivateMsg) Reset()         { *m = ActivateMsg{} }
func (m *ActivateMsg) String() string { return proto.CompactTextString(m) }
func (*ActivateMsg) ProtoMessage()    {}

// CreateProposalMsg creates a text proposal, or an action proposal if
// Action is set.
type CreateProposalMsg struct {
	Creator     nestera.Address `protobuf:"bytes,1,opt,name=creator,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"creator"`
	Description string          `protobuf:"bytes,2,opt,name=description,proto3" json:"description"`
	Action      *ActionRecord   `protobuf:"bytes,3,opt,name=action,proto3" json:"action,omitempty"`
}

func (m *CreateProposalMsg) Reset()         { *m = CreateProposalMsg{} }
func (m *CreateProposalMsg) String() string { return proto.CompactTextString(m) }
func (*CreateProposalMsg) ProtoMessage()    {}

// VoteMsg casts a vote on a proposal.
type VoteMsg struct {
	Voter      nestera.Address `protobuf:"bytes,1,opt,name=voter,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"voter"`
	ProposalID uint64          `protobuf:"varint,2,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id"`
	Option     VoteOption      `protobuf:"varint,3,opt,name=option,proto3,casttype=VoteOption" json:"option"`
}

func (m *VoteMsg) Reset()         { *m = VoteMsg{} }
func (m *VoteMsg) String() string { return proto.CompactTextString(m) }
func (*VoteMsg) ProtoMessage()    {}

// ExecuteMsg executes an accepted proposal. It can be sent by anyone.
type ExecuteMsg struct {
	ProposalID uint64 `protobuf:"varint,1,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id"`
}

func (m *ExecuteMsg) Reset()         { *m = ExecuteMsg{} }
func (m *ExecuteMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteMsg) ProtoMessage()    {}

var _ nestera.Msg = (*VotingConfigMsg)(nil)
var _ nestera.Msg = (*ActivateMsg)(nil)
var _ nestera.Msg = (*CreateProposalMsg)(nil)
var _ nestera.Msg = (*VoteMsg)(nil)
var _ nestera.Msg = (*ExecuteMsg)(nil)

func (VotingConfigMsg) Path() string   { return pathVotingConfigMsg }
func (ActivateMsg) Path() string       { return pathActivateMsg }
func (CreateProposalMsg) Path() string { return pathCreateProposalMsg }
func (VoteMsg) Path() string           { return pathVoteMsg }
func (ExecuteMsg) Path() string        { return pathExecuteMsg }

func (m *VotingConfigMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Admin", m.Admin.Validate())
	if m.Config == nil {
		errs = errors.AppendField(errs, "Config", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Config", m.Config.Validate())
	}
	return errs
}

func (m *ActivateMsg) Validate() error {
	return errors.AppendField(nil, "Admin", m.Admin.Validate())
}

func (m *CreateProposalMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Creator", m.Creator.Validate())
	if m.Action != nil {
		errs = errors.AppendField(errs, "Action", m.Action.Validate())
	}
	return errs
}

func (m *VoteMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Voter", m.Voter.Validate())
	if m.ProposalID == 0 {
		errs = errors.AppendField(errs, "ProposalID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Option", m.Option.Validate())
	return errs
}

func (m *ExecuteMsg) Validate() error {
	if m.ProposalID == 0 {
		return errors.Field("ProposalID", errors.ErrEmpty, "required")
	}
	return nil
}
