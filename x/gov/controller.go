package gov

import (
	"strconv"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/events"
	"github.com/nestera-labs/nestera/gconf"
	"github.com/nestera-labs/nestera/orm"
	"github.com/nestera-labs/nestera/x"
	"github.com/tendermint/tendermint/libs/common"
)

// RewardsSource provides the amount an address deposited over its whole
// lifetime.
type RewardsSource interface {
	LifetimeDeposited(db nestera.ReadOnlyKVStore, addr nestera.Address) (int64, error)
}

// ActionExecutor applies the action of an accepted proposal.
type ActionExecutor interface {
	Apply(ctx nestera.Context, db nestera.KVStore, action ProposalAction) error
}

const (
	eventProposal = "proposal"
	eventVote     = "vote"
	eventExecute  = "execute"
)

var allProposalsKey = []byte("all")

// Controller manages proposals and votes.
type Controller struct {
	auth      x.Authenticator
	rewards   RewardsSource
	sink      events.Sink
	executor  ActionExecutor
	proposals orm.ModelBucket
	votes     orm.ModelBucket
	seq       orm.Sequence
	list      orm.IDIndex
}

// NewController returns a governance controller. Sink may be nil, in which
// case no notifications are published. Without an executor, action
// proposals cannot be executed.
func NewController(auth x.Authenticator, rewards RewardsSource, sink events.Sink, executor ActionExecutor) *Controller {
	if sink == nil {
		sink = events.Discard
	}
	return &Controller{
		auth:      auth,
		rewards:   rewards,
		sink:      sink,
		executor:  executor,
		proposals: NewProposalBucket(),
		votes:     NewVoteBucket(),
		seq:       orm.NewSequence("proposal", "id"),
		list:      orm.NewIDIndex("gov_proposals"),
	}
}

// VotingPower returns the lifetime deposited amount of the address,
// floored at zero.
func (c *Controller) VotingPower(db nestera.ReadOnlyKVStore, addr nestera.Address) (uint64, error) {
	deposited, err := c.rewards.LifetimeDeposited(db, addr)
	if err != nil {
		return 0, errors.Wrap(err, "cannot read lifetime deposited")
	}
	if deposited < 0 {
		return 0, nil
	}
	return uint64(deposited), nil
}

// CreateProposal stores a text proposal and returns its id. Voting starts
// immediately and lasts for the configured voting period.
func (c *Controller) CreateProposal(ctx nestera.Context, db nestera.KVStore, creator nestera.Address, description string) (uint64, error) {
	return c.createProposal(ctx, db, creator, description, nil)
}

// CreateActionProposal stores a proposal carrying an action and returns its
// id. Text and action proposals share the id sequence.
func (c *Controller) CreateActionProposal(ctx nestera.Context, db nestera.KVStore, creator nestera.Address, description string, action ProposalAction) (uint64, error) {
	rec, err := NewActionRecord(action)
	if err != nil {
		return 0, err
	}
	return c.createProposal(ctx, db, creator, description, rec)
}

func (c *Controller) createProposal(ctx nestera.Context, db nestera.KVStore, creator nestera.Address, description string, action *ActionRecord) (uint64, error) {
	if err := x.RequireAuthorized(ctx, c.auth, creator); err != nil {
		return 0, err
	}
	conf, err := LoadVotingConfig(db)
	if err != nil {
		return 0, err
	}
	now, err := nestera.CurrentTime(ctx)
	if err != nil {
		return 0, err
	}
	end, err := now.Add(conf.VotingPeriod)
	if err != nil {
		return 0, errors.Wrap(errors.ErrInvalidDuration, err.Error())
	}

	id, err := c.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot allocate id")
	}
	p := Proposal{
		ID:          id,
		Creator:     creator,
		Description: description,
		StartTime:   now,
		EndTime:     end,
		Action:      action,
	}
	if err := c.proposals.Put(db, orm.IDKey(id), &p); err != nil {
		return 0, errors.Wrap(err, "cannot store proposal")
	}
	if err := c.list.Append(db, allProposalsKey, id); err != nil {
		return 0, errors.Wrap(err, "cannot index proposal")
	}
	c.sink.Publish(ctx, events.Event{Kind: eventProposal, Principal: creator, ID: id})
	return id, nil
}

// CastVote votes for or against the proposal with the full voting power
// of the voter.
func (c *Controller) CastVote(ctx nestera.Context, db nestera.KVStore, voter nestera.Address, proposalID uint64, support bool) error {
	option := VoteAgainst
	if support {
		option = VoteFor
	}
	return c.CastVoteOption(ctx, db, voter, proposalID, option)
}

// CastVoteOption records a vote. Each address can vote once per proposal
// and only while the proposal is open.
func (c *Controller) CastVoteOption(ctx nestera.Context, db nestera.KVStore, voter nestera.Address, proposalID uint64, option VoteOption) error {
	p, weight, err := c.prepareVote(ctx, db, voter, proposalID, option)
	if err != nil {
		return err
	}
	if err := p.CountVote(option, weight); err != nil {
		return err
	}
	vote := Vote{Voter: voter, Option: option, Weight: weight}
	if err := c.votes.Put(db, voteKey(proposalID, voter), &vote); err != nil {
		return errors.Wrap(err, "cannot store vote")
	}
	if err := c.proposals.Put(db, orm.IDKey(proposalID), p); err != nil {
		return errors.Wrap(err, "cannot store proposal")
	}
	c.sink.Publish(ctx, events.Event{
		Kind:      eventVote,
		Principal: voter,
		ID:        proposalID,
		Payload: []common.KVPair{
			events.Pair("support", []byte(strconv.FormatBool(option == VoteFor))),
			events.Pair("option", []byte(option.String())),
			events.Pair("weight", []byte(strconv.FormatUint(weight, 10))),
		},
	})
	return nil
}

func (c *Controller) prepareVote(ctx nestera.Context, db nestera.ReadOnlyKVStore, voter nestera.Address, proposalID uint64, option VoteOption) (*Proposal, uint64, error) {
	if err := x.RequireAuthorized(ctx, c.auth, voter); err != nil {
		return nil, 0, err
	}
	weight, err := c.VotingPower(db, voter)
	if err != nil {
		return nil, 0, err
	}
	if weight == 0 {
		return nil, 0, errors.Wrap(errors.ErrInsufficientBalance, "no voting power")
	}
	if err := option.Validate(); err != nil {
		return nil, 0, err
	}
	p, err := c.Proposal(db, proposalID)
	if err != nil {
		return nil, 0, err
	}
	if p == nil {
		return nil, 0, errors.Wrapf(errors.ErrNotFound, "proposal %d", proposalID)
	}
	if p.Executed {
		return nil, 0, errors.Wrap(errors.ErrInvalidState, "proposal executed")
	}
	now, err := nestera.CurrentTime(ctx)
	if err != nil {
		return nil, 0, err
	}
	if !p.IsOpen(now) {
		return nil, 0, errors.Wrapf(errors.ErrExpired, "voting open from %s until %s", p.StartTime, p.EndTime)
	}
	switch voted, err := c.votes.Has(db, voteKey(proposalID, voter)); {
	case err != nil:
		return nil, 0, errors.Wrap(err, "cannot load vote")
	case voted:
		return nil, 0, errors.Wrap(errors.ErrDuplicate, "already voted")
	}
	return p, weight, nil
}

// Vote returns the vote of the voter or nil if there was none.
func (c *Controller) Vote(db nestera.ReadOnlyKVStore, proposalID uint64, voter nestera.Address) (*Vote, error) {
	var v Vote
	switch err := c.votes.One(db, voteKey(proposalID, voter), &v); {
	case err == nil:
		return &v, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot load vote")
	}
}

// InitVotingConfig sets the voting rules. It is allowed once, for the
// admin only.
func (c *Controller) InitVotingConfig(ctx nestera.Context, db nestera.KVStore, admin nestera.Address, conf VotingConfig) error {
	if err := x.RequireAuthorized(ctx, c.auth, admin); err != nil {
		return err
	}
	if err := requireAdmin(db, admin); err != nil {
		return err
	}
	switch ok, err := gconf.Has(db, votingConfigPkg); {
	case err != nil:
		return errors.Wrap(err, "cannot load voting config")
	case ok:
		return errors.Wrap(errors.ErrConfigAlreadyInitialized, "voting config")
	}
	if err := gconf.Save(db, votingConfigPkg, &conf); err != nil {
		return err
	}
	return c.seq.Reset(db, 1)
}

// VotingConfig returns the voting rules or ErrInternal if they are not
// initialized.
func (c *Controller) VotingConfig(db nestera.ReadOnlyKVStore) (*VotingConfig, error) {
	return LoadVotingConfig(db)
}

// ActivateGovernance turns governance on. From then on privileged changes
// are possible only through proposals. Activating twice is a no-op.
func (c *Controller) ActivateGovernance(ctx nestera.Context, db nestera.KVStore, admin nestera.Address) error {
	if err := x.RequireAuthorized(ctx, c.auth, admin); err != nil {
		return err
	}
	if err := requireAdmin(db, admin); err != nil {
		return err
	}
	return gconf.Save(db, statePkg, &State{Active: true})
}

// Proposal returns the proposal with given id or nil if it does not exist.
func (c *Controller) Proposal(db nestera.ReadOnlyKVStore, id uint64) (*Proposal, error) {
	var p Proposal
	switch err := c.proposals.One(db, orm.IDKey(id), &p); {
	case err == nil:
		return &p, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot load proposal")
	}
}

// ActionProposal returns the proposal together with its action. ErrNotFound
// is returned if there is no proposal with given id or it carries no
// action.
func (c *Controller) ActionProposal(db nestera.ReadOnlyKVStore, id uint64) (*Proposal, ProposalAction, error) {
	p, err := c.Proposal(db, id)
	if err != nil {
		return nil, nil, err
	}
	if p == nil || p.Action == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "action proposal %d", id)
	}
	action, err := p.Action.Action()
	if err != nil {
		return nil, nil, err
	}
	return p, action, nil
}

// ListProposals returns ids of all proposals in creation order.
func (c *Controller) ListProposals(db nestera.ReadOnlyKVStore) ([]uint64, error) {
	return c.list.List(db, allProposalsKey)
}

// ExecuteProposal closes an accepted proposal and applies its action. It
// is allowed after the voting period and the timelock have passed.
func (c *Controller) ExecuteProposal(ctx nestera.Context, db nestera.KVStore, id uint64) (*Proposal, error) {
	p, err := c.Executable(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if p.Action != nil {
		if c.executor == nil {
			return nil, errors.Wrap(errors.ErrInternal, "no action executor")
		}
		action, err := p.Action.Action()
		if err != nil {
			return nil, err
		}
		if err := c.executor.Apply(ctx, db, action); err != nil {
			return nil, errors.Wrapf(err, "apply %s", p.Action.Kind)
		}
	}
	p.Executed = true
	if err := c.proposals.Put(db, orm.IDKey(id), p); err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	c.sink.Publish(ctx, events.Event{Kind: eventExecute, Principal: p.Creator, ID: id})
	return p, nil
}

// Executable returns the proposal if it can be executed now.
func (c *Controller) Executable(ctx nestera.Context, db nestera.ReadOnlyKVStore, id uint64) (*Proposal, error) {
	p, err := c.Proposal(db, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "proposal %d", id)
	}
	if p.Executed {
		return nil, errors.Wrap(errors.ErrInvalidState, "proposal executed")
	}
	conf, err := LoadVotingConfig(db)
	if err != nil {
		return nil, err
	}
	unlock, err := p.EndTime.Add(conf.TimelockDuration)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidDuration, err.Error())
	}
	now, err := nestera.CurrentTime(ctx)
	if err != nil {
		return nil, err
	}
	if now < unlock {
		return nil, errors.Wrapf(errors.ErrInvalidState, "timelocked until %s", unlock)
	}
	if !p.Accepted(conf.Quorum) {
		return nil, errors.Wrapf(errors.ErrInvalidState, "not accepted: %d for, %d against, %d total, quorum %d",
			p.ForVotes, p.AgainstVotes, p.TotalVotes(), conf.Quorum)
	}
	return p, nil
}
