package gov

import (
	"testing"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/events"
	"github.com/nestera-labs/nestera/gconf"
	"github.com/nestera-labs/nestera/store"
	"github.com/nestera-labs/nestera/weavetest"
	"github.com/nestera-labs/nestera/weavetest/assert"
)

const t0 = 1700000000

type rewards map[string]int64

func (r rewards) LifetimeDeposited(_ nestera.ReadOnlyKVStore, addr nestera.Address) (int64, error) {
	return r[addr.String()], nil
}

type recordingExecutor struct {
	applied []ProposalAction
	err     error
}

func (e *recordingExecutor) Apply(_ nestera.Context, _ nestera.KVStore, action ProposalAction) error {
	if e.err != nil {
		return e.err
	}
	e.applied = append(e.applied, action)
	return nil
}

type fixture struct {
	db       nestera.CacheableKVStore
	admin    nestera.Condition
	alice    nestera.Condition
	bobby    nestera.Condition
	rewards  rewards
	events   *events.Recorder
	executor *recordingExecutor
	ctrl     *Controller
}

// newFixture returns a controller that authenticates admin, alice and
// bobby. The admin is stored but the voting config is not.
func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		db:       store.MemStore(),
		admin:    weavetest.NewCondition(),
		alice:    weavetest.NewCondition(),
		bobby:    weavetest.NewCondition(),
		rewards:  rewards{},
		events:   &events.Recorder{},
		executor: &recordingExecutor{},
	}
	auth := &weavetest.Auth{Signers: []nestera.Condition{f.admin, f.alice, f.bobby}}
	f.ctrl = NewController(auth, f.rewards, f.events, f.executor)
	if err := gconf.Save(f.db, configPkg, &Configuration{Admin: f.admin.Address()}); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}
	return f
}

func (f *fixture) initVoting(t testing.TB, conf VotingConfig) {
	t.Helper()
	if err := f.ctrl.InitVotingConfig(weavetest.CtxAt(t0), f.db, f.admin.Address(), conf); err != nil {
		t.Fatalf("cannot init voting config: %s", err)
	}
}

func TestVotingPower(t *testing.T) {
	f := newFixture(t)
	f.rewards[f.alice.Address().String()] = 1500
	f.rewards[f.bobby.Address().String()] = -20

	cases := map[string]struct {
		addr nestera.Address
		want uint64
	}{
		"positive":  {addr: f.alice.Address(), want: 1500},
		"negative":  {addr: f.bobby.Address(), want: 0},
		"no record": {addr: weavetest.NewCondition().Address(), want: 0},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := f.ctrl.VotingPower(f.db, tc.addr)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInitVotingConfig(t *testing.T) {
	conf := VotingConfig{Quorum: 10, VotingPeriod: 100, TimelockDuration: 50}

	t.Run("admin only", func(t *testing.T) {
		f := newFixture(t)
		err := f.ctrl.InitVotingConfig(weavetest.CtxAt(t0), f.db, f.alice.Address(), conf)
		assert.IsErr(t, errors.ErrUnauthorized, err)
	})

	t.Run("admin must sign", func(t *testing.T) {
		f := newFixture(t)
		ctrl := NewController(&weavetest.Auth{Signer: f.alice}, f.rewards, nil, nil)
		err := ctrl.InitVotingConfig(weavetest.CtxAt(t0), f.db, f.admin.Address(), conf)
		assert.IsErr(t, errors.ErrUnauthorized, err)
	})

	t.Run("no admin configured", func(t *testing.T) {
		f := newFixture(t)
		db := store.MemStore()
		err := f.ctrl.InitVotingConfig(weavetest.CtxAt(t0), db, f.admin.Address(), conf)
		assert.IsErr(t, errors.ErrUnauthorized, err)
	})

	t.Run("only once", func(t *testing.T) {
		f := newFixture(t)
		f.initVoting(t, conf)

		got, err := f.ctrl.VotingConfig(f.db)
		assert.Nil(t, err)
		assert.Equal(t, &conf, got)

		err = f.ctrl.InitVotingConfig(weavetest.CtxAt(t0), f.db, f.admin.Address(), VotingConfig{Quorum: 1})
		assert.IsErr(t, errors.ErrConfigAlreadyInitialized, err)
		got, err = f.ctrl.VotingConfig(f.db)
		assert.Nil(t, err)
		assert.Equal(t, &conf, got)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ctrl.VotingConfig(f.db)
		assert.IsErr(t, errors.ErrInternal, err)
	})
}

func TestCreateProposal(t *testing.T) {
	f := newFixture(t)
	ctx := weavetest.CtxAt(t0)

	_, err := f.ctrl.CreateProposal(ctx, f.db, f.alice.Address(), "too early")
	assert.IsErr(t, errors.ErrInternal, err)

	f.initVoting(t, VotingConfig{VotingPeriod: 100})

	outsider := weavetest.NewCondition().Address()
	_, err = f.ctrl.CreateProposal(ctx, f.db, outsider, "not signed")
	assert.IsErr(t, errors.ErrUnauthorized, err)

	id, err := f.ctrl.CreateProposal(ctx, f.db, f.alice.Address(), "first")
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), id)
	id, err = f.ctrl.CreateActionProposal(ctx, f.db, f.bobby.Address(), "second", SetLockRate{Duration: 3600, Rate: 900})
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), id)
	id, err = f.ctrl.CreateProposal(ctx, f.db, f.alice.Address(), "third")
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), id)

	ids, err := f.ctrl.ListProposals(f.db)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)

	p, err := f.ctrl.Proposal(f.db, 1)
	assert.Nil(t, err)
	assert.Equal(t, &Proposal{
		ID:          1,
		Creator:     f.alice.Address(),
		Description: "first",
		StartTime:   t0,
		EndTime:     t0 + 100,
	}, p)

	p, action, err := f.ctrl.ActionProposal(f.db, 2)
	assert.Nil(t, err)
	assert.Equal(t, "second", p.Description)
	assert.Equal(t, SetLockRate{Duration: 3600, Rate: 900}, action)

	_, _, err = f.ctrl.ActionProposal(f.db, 1)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, _, err = f.ctrl.ActionProposal(f.db, 4)
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = f.ctrl.CreateActionProposal(ctx, f.db, f.alice.Address(), "no action", nil)
	assert.IsErr(t, errors.ErrEmpty, err)

	got := f.events.Drain()
	assert.Equal(t, 3, len(got))
	assert.Equal(t, events.Event{Kind: "proposal", Principal: f.bobby.Address(), ID: 2}, got[1])
}

func TestCastVote(t *testing.T) {
	cases := map[string]struct {
		voter    func(f *fixture) nestera.Address
		proposal uint64
		option   VoteOption
		now      int64
		wantErr  *errors.Error
	}{
		"for": {
			proposal: 1,
			option:   VoteFor,
			now:      t0,
		},
		"abstain at the last second": {
			proposal: 1,
			option:   VoteAbstain,
			now:      t0 + 99,
		},
		"voting closed": {
			proposal: 1,
			option:   VoteFor,
			now:      t0 + 100,
			wantErr:  errors.ErrExpired,
		},
		"no voting power": {
			voter:    func(f *fixture) nestera.Address { return f.bobby.Address() },
			proposal: 1,
			option:   VoteFor,
			now:      t0,
			wantErr:  errors.ErrInsufficientBalance,
		},
		"missing proposal": {
			proposal: 7,
			option:   VoteFor,
			now:      t0,
			wantErr:  errors.ErrNotFound,
		},
		"invalid option": {
			proposal: 1,
			now:      t0,
			wantErr:  errors.ErrInvalidInput,
		},
		"not signed": {
			voter:    func(*fixture) nestera.Address { return weavetest.NewCondition().Address() },
			proposal: 1,
			option:   VoteFor,
			now:      t0,
			wantErr:  errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.initVoting(t, VotingConfig{VotingPeriod: 100})
			f.rewards[f.alice.Address().String()] = 700
			_, err := f.ctrl.CreateProposal(weavetest.CtxAt(t0), f.db, f.alice.Address(), "text")
			assert.Nil(t, err)
			f.events.Drain()

			voter := f.alice.Address()
			if tc.voter != nil {
				voter = tc.voter(f)
			}
			err = f.ctrl.CastVoteOption(weavetest.CtxAt(tc.now), f.db, voter, tc.proposal, tc.option)
			assert.IsErr(t, tc.wantErr, err)

			p, err := f.ctrl.Proposal(f.db, 1)
			assert.Nil(t, err)
			if tc.wantErr != nil {
				assert.Equal(t, uint64(0), p.TotalVotes())
				assert.Equal(t, 0, len(f.events.Events()))
				return
			}

			assert.Equal(t, uint64(700), p.TotalVotes())
			v, err := f.ctrl.Vote(f.db, 1, voter)
			assert.Nil(t, err)
			assert.Equal(t, &Vote{Voter: voter, Option: tc.option, Weight: 700}, v)

			got := f.events.Events()
			assert.Equal(t, 1, len(got))
			assert.Equal(t, "vote", got[0].Kind)
			assert.Equal(t, uint64(1), got[0].ID)
		})
	}
}

func TestVoteTally(t *testing.T) {
	f := newFixture(t)
	f.initVoting(t, VotingConfig{VotingPeriod: 100})
	f.rewards[f.alice.Address().String()] = 700
	f.rewards[f.bobby.Address().String()] = 300
	f.rewards[f.admin.Address().String()] = 50

	ctx := weavetest.CtxAt(t0 + 10)
	id, err := f.ctrl.CreateProposal(weavetest.CtxAt(t0), f.db, f.alice.Address(), "text")
	assert.Nil(t, err)

	assert.Nil(t, f.ctrl.CastVote(ctx, f.db, f.alice.Address(), id, true))
	assert.Nil(t, f.ctrl.CastVote(ctx, f.db, f.bobby.Address(), id, false))
	assert.Nil(t, f.ctrl.CastVoteOption(ctx, f.db, f.admin.Address(), id, VoteAbstain))

	err = f.ctrl.CastVote(ctx, f.db, f.alice.Address(), id, false)
	assert.IsErr(t, errors.ErrDuplicate, err)

	p, err := f.ctrl.Proposal(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, uint64(700), p.ForVotes)
	assert.Equal(t, uint64(300), p.AgainstVotes)
	assert.Equal(t, uint64(50), p.AbstainVotes)

	votes := f.events.Drain()
	last := votes[len(votes)-1]
	assert.Equal(t, f.admin.Address(), last.Principal)
	assert.Equal(t, []byte("false"), last.Payload[0].Value)
	assert.Equal(t, []byte("abstain"), last.Payload[1].Value)
	assert.Equal(t, []byte("50"), last.Payload[2].Value)
}

func TestGovernanceGate(t *testing.T) {
	f := newFixture(t)
	ctx := weavetest.CtxAt(t0)

	active, err := IsGovernanceActive(f.db)
	assert.Nil(t, err)
	assert.Equal(t, false, active)

	viaGov, err := ValidateAdminOrGovernance(f.db, f.admin.Address())
	assert.Nil(t, err)
	assert.Equal(t, false, viaGov)
	_, err = ValidateAdminOrGovernance(f.db, f.alice.Address())
	assert.IsErr(t, errors.ErrUnauthorized, err)

	err = f.ctrl.ActivateGovernance(ctx, f.db, f.alice.Address())
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Nil(t, f.ctrl.ActivateGovernance(ctx, f.db, f.admin.Address()))
	assert.Nil(t, f.ctrl.ActivateGovernance(ctx, f.db, f.admin.Address()))

	active, err = IsGovernanceActive(f.db)
	assert.Nil(t, err)
	assert.Equal(t, true, active)

	for _, caller := range []nestera.Address{f.admin.Address(), f.alice.Address()} {
		viaGov, err := ValidateAdminOrGovernance(f.db, caller)
		assert.Nil(t, err)
		assert.Equal(t, true, viaGov)
	}

	_, err = ValidateAdminOrGovernance(store.MemStore(), f.admin.Address())
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestExecuteProposal(t *testing.T) {
	cases := map[string]struct {
		action      ProposalAction
		forVoters   []string
		againstVote bool
		now         int64
		executorErr error
		wantErr     *errors.Error
		wantApplied []ProposalAction
	}{
		"action applied": {
			action:      PauseContract{},
			forVoters:   []string{"alice"},
			now:         t0 + 150,
			wantApplied: []ProposalAction{PauseContract{}},
		},
		"text proposal": {
			forVoters: []string{"alice"},
			now:       t0 + 150,
		},
		"during timelock": {
			action:    PauseContract{},
			forVoters: []string{"alice"},
			now:       t0 + 149,
			wantErr:   errors.ErrInvalidState,
		},
		"quorum not reached": {
			action:    PauseContract{},
			forVoters: []string{"bobby"},
			now:       t0 + 150,
			wantErr:   errors.ErrInvalidState,
		},
		"more against": {
			action:      PauseContract{},
			forVoters:   []string{"bobby"},
			againstVote: true,
			now:         t0 + 150,
			wantErr:     errors.ErrInvalidState,
		},
		"executor failure": {
			action:      SetFlexiRate{Rate: 5},
			forVoters:   []string{"alice"},
			now:         t0 + 150,
			executorErr: errors.Wrap(errors.ErrUnauthorized, "refused"),
			wantErr:     errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.executor.err = tc.executorErr
			f.initVoting(t, VotingConfig{Quorum: 100, VotingPeriod: 100, TimelockDuration: 50})
			f.rewards[f.alice.Address().String()] = 500
			f.rewards[f.bobby.Address().String()] = 40
			f.rewards[f.admin.Address().String()] = 460
			voters := map[string]nestera.Address{"alice": f.alice.Address(), "bobby": f.bobby.Address()}

			create := weavetest.CtxAt(t0)
			var id uint64
			var err error
			if tc.action == nil {
				id, err = f.ctrl.CreateProposal(create, f.db, f.alice.Address(), "text")
			} else {
				id, err = f.ctrl.CreateActionProposal(create, f.db, f.alice.Address(), "action", tc.action)
			}
			assert.Nil(t, err)
			for _, name := range tc.forVoters {
				assert.Nil(t, f.ctrl.CastVote(create, f.db, voters[name], id, true))
			}
			if tc.againstVote {
				assert.Nil(t, f.ctrl.CastVote(create, f.db, f.admin.Address(), id, false))
			}

			_, err = f.ctrl.ExecuteProposal(weavetest.CtxAt(tc.now), f.db, id)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantApplied, f.executor.applied)

			p, err := f.ctrl.Proposal(f.db, id)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantErr == nil, p.Executed)

			if tc.wantErr == nil {
				_, err = f.ctrl.ExecuteProposal(weavetest.CtxAt(tc.now), f.db, id)
				assert.IsErr(t, errors.ErrInvalidState, err)
				err = f.ctrl.CastVote(weavetest.CtxAt(t0+1), f.db, f.admin.Address(), id, true)
				assert.IsErr(t, errors.ErrInvalidState, err)
			}
		})
	}
}
