package gov

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
)

// Configuration is set in genesis and names the program admin.
type Configuration struct {
	Admin nestera.Address `protobuf:"bytes,1,opt,name=admin,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"admin"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) Validate() error {
	return errors.AppendField(nil, "Admin", m.Admin.Validate())
}

// VotingConfig holds the voting rules. It can be set only once.
type VotingConfig struct {
	// Quorum is the minimal total weight of all votes cast for a
	// proposal to be executed.
	Quorum           uint32               `protobuf:"varint,1,opt,name=quorum,proto3" json:"quorum"`
	VotingPeriod     nestera.UnixDuration `protobuf:"varint,2,opt,name=voting_period,json=votingPeriod,proto3,casttype=github.com/nestera-labs/nestera.UnixDuration" json:"voting_period"`
	TimelockDuration nestera.UnixDuration `protobuf:"varint,3,opt,name=timelock_duration,json=timelockDuration,proto3,casttype=github.com/nestera-labs/nestera.UnixDuration" json:"timelock_duration"`
}

func (m *VotingConfig) Reset()         { *m = VotingConfig{} }
func (m *VotingConfig) String() string { return proto.CompactTextString(m) }
func (*VotingConfig) ProtoMessage()    {}

func (m *VotingConfig) Validate() error {
	var errs error
	if m.VotingPeriod < 0 {
		errs = errors.AppendField(errs, "VotingPeriod", errors.ErrInvalidDuration)
	}
	if m.TimelockDuration < 0 {
		errs = errors.AppendField(errs, "TimelockDuration", errors.ErrInvalidDuration)
	}
	return errs
}

// State holds the governance activation flag.
type State struct {
	Active bool `protobuf:"varint,1,opt,name=active,proto3" json:"active"`
}

func (m *State) Reset()         { *m = State{} }
func (m *State) String() string { return proto.CompactTextString(m) }
func (*State) ProtoMessage()    {}

func (m *State) Validate() error { return nil }

// Proposal is a text proposal, or an action proposal when Action is set.
type Proposal struct {
	ID           uint64           `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Creator      nestera.Address  `protobuf:"bytes,2,opt,name=creator,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"creator"`
	Description  string           `protobuf:"bytes,3,opt,name=description,proto3" json:"description"`
	StartTime    nestera.UnixTime `protobuf:"varint,4,opt,name=start_time,json=startTime,proto3,casttype=github.com/nestera-labs/nestera.UnixTime" json:"start_time"`
	EndTime      nestera.UnixTime `protobuf:"varint,5,opt,name=end_time,json=endTime,proto3,casttype=github.com/nestera-labs/nestera.UnixTime" json:"end_time"`
	Executed     bool             `protobuf:"varint,6,opt,name=executed,proto3" json:"executed"`
	ForVotes     uint64           `protobuf:"varint,7,opt,name=for_votes,json=forVotes,proto3" json:"for_votes"`
	AgainstVotes uint64           `protobuf:"varint,8,opt,name=against_votes,json=againstVotes,proto3" json:"against_votes"`
	AbstainVotes uint64           `protobuf:"varint,9,opt,name=abstain_votes,json=abstainVotes,proto3" json:"abstain_votes"`
	Action       *ActionRecord    `protobuf:"bytes,10,opt,name=action,proto3" json:"action,omitempty"`
}

func (m *Proposal) Reset()         { *m = Proposal{} }
func (m *Proposal) String() string { return proto.CompactTextString(m) }
func (*Proposal) ProtoMessage()    {}

var _ orm.Model = (*Proposal)(nil)

func (m *Proposal) Validate() error {
	var errs error
	if m.ID == 0 {
		errs = errors.AppendField(errs, "ID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Creator", m.Creator.Validate())
	if m.EndTime < m.StartTime {
		errs = errors.AppendField(errs, "EndTime", errors.ErrInvalidTimestamp)
	}
	if m.Action != nil {
		errs = errors.AppendField(errs, "Action", m.Action.Validate())
	}
	return errs
}

// IsOpen returns true if votes are accepted at given time.
func (m *Proposal) IsOpen(now nestera.UnixTime) bool {
	return !m.Executed && now >= m.StartTime && now < m.EndTime
}

// TotalVotes returns the weight of all votes, including abstentions.
func (m *Proposal) TotalVotes() uint64 {
	return m.ForVotes + m.AgainstVotes + m.AbstainVotes
}

// CountVote adds the weight to the tally of the option.
func (m *Proposal) CountVote(option VoteOption, weight uint64) error {
	oldTotal := m.TotalVotes()
	switch option {
	case VoteFor:
		m.ForVotes += weight
	case VoteAgainst:
		m.AgainstVotes += weight
	case VoteAbstain:
		m.AbstainVotes += weight
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "vote option %d", option)
	}
	if m.TotalVotes() < oldTotal {
		return errors.Wrap(errors.ErrOverflow, "vote tally")
	}
	return nil
}

// Accepted returns true if the quorum was reached and there are more votes
// for than against the proposal.
func (m *Proposal) Accepted(quorum uint32) bool {
	return m.TotalVotes() >= uint64(quorum) && m.ForVotes > m.AgainstVotes
}

// VoteOption is the choice of a voter.
type VoteOption int32

const (
	VoteInvalid VoteOption = iota
	VoteFor
	VoteAgainst
	VoteAbstain
)

var voteOptionNames = map[VoteOption]string{
	VoteInvalid: "invalid",
	VoteFor:     "for",
	VoteAgainst: "against",
	VoteAbstain: "abstain",
}

func (o VoteOption) String() string {
	if name, ok := voteOptionNames[o]; ok {
		return name
	}
	return "unknown"
}

// Validate returns an error for anything but for, against or abstain.
func (o VoteOption) Validate() error {
	switch o {
	case VoteFor, VoteAgainst, VoteAbstain:
		return nil
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "vote option %d", o)
	}
}

// Vote is the record of a single vote cast on a proposal.
type Vote struct {
	Voter  nestera.Address `protobuf:"bytes,1,opt,name=voter,proto3,casttype=github.com/nestera-labs/nestera.Address" json:"voter"`
	Option VoteOption      `protobuf:"varint,2,opt,name=option,proto3,casttype=VoteOption" json:"option"`
	Weight uint64          `protobuf:"varint,3,opt,name=weight,proto3" json:"weight"`
}

func (m *Vote) Reset()         { *m = Vote{} }
func (m *Vote) String() string { return proto.CompactTextString(m) }
func (*Vote) ProtoMessage()    {}

func (m *Vote) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Voter", m.Voter.Validate())
	errs = errors.AppendField(errs, "Option", m.Option.Validate())
	if m.Weight == 0 {
		errs = errors.AppendField(errs, "Weight", errors.ErrEmpty)
	}
	return errs
}

// NewProposalBucket returns a bucket for proposals keyed by id.
func NewProposalBucket() orm.ModelBucket {
	return orm.NewModelBucket("proposal", &Proposal{})
}

// NewVoteBucket returns a bucket for votes keyed by proposal id and voter.
func NewVoteBucket() orm.ModelBucket {
	return orm.NewModelBucket("vote", &Vote{})
}

func voteKey(proposalID uint64, voter nestera.Address) []byte {
	return append(orm.IDKey(proposalID), voter...)
}
