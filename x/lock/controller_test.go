package lock

import (
	"context"
	"math"
	"testing"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/store"
	"github.com/nestera-labs/nestera/weavetest"
	"github.com/nestera-labs/nestera/weavetest/assert"
	"github.com/nestera-labs/nestera/x/user"
)

const t0 = 1700000000

type fixture struct {
	db    nestera.CacheableKVStore
	users *user.Controller
	ctrl  *Controller
	alice nestera.Condition
	bobby nestera.Condition
}

// newFixture registers alice and bobby and returns a controller that
// authenticates both of them.
func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		db:    store.MemStore(),
		alice: weavetest.NewCondition(),
		bobby: weavetest.NewCondition(),
	}
	auth := &weavetest.Auth{Signers: []nestera.Condition{f.alice, f.bobby}}
	f.users = user.NewController(auth)
	for _, c := range []nestera.Condition{f.alice, f.bobby} {
		if _, err := f.users.Register(context.Background(), f.db, c.Address()); err != nil {
			t.Fatalf("cannot register: %s", err)
		}
	}
	f.ctrl = NewController(auth, f.users)
	return f
}

func TestCreateLockedDeposit(t *testing.T) {
	stranger := weavetest.NewCondition()

	cases := map[string]struct {
		owner    func(f *fixture) nestera.Address
		auth     func(f *fixture) *weavetest.Auth
		amount   int64
		duration nestera.UnixDuration
		wantErr  *errors.Error
	}{
		"success": {
			amount:   1000,
			duration: 10,
		},
		"zero amount": {
			amount:   0,
			duration: 10,
			wantErr:  errors.ErrInvalidAmount,
		},
		"negative amount is reported before duration": {
			amount:   -1,
			duration: 0,
			wantErr:  errors.ErrInvalidAmount,
		},
		"zero duration": {
			amount:   1000,
			duration: 0,
			wantErr:  errors.ErrInvalidDuration,
		},
		"negative duration": {
			amount:   1000,
			duration: -5,
			wantErr:  errors.ErrInvalidDuration,
		},
		"unsigned call is rejected before the amount": {
			auth:     func(*fixture) *weavetest.Auth { return &weavetest.Auth{} },
			amount:   0,
			duration: 10,
			wantErr:  errors.ErrUnauthorized,
		},
		"unregistered owner": {
			owner:    func(*fixture) nestera.Address { return stranger.Address() },
			auth:     func(*fixture) *weavetest.Auth { return &weavetest.Auth{Signer: stranger} },
			amount:   1000,
			duration: 10,
			wantErr:  errors.ErrUserNotFound,
		},
		"not signed by the owner": {
			auth:     func(f *fixture) *weavetest.Auth { return &weavetest.Auth{Signer: f.bobby} },
			amount:   1000,
			duration: 10,
			wantErr:  errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			owner := f.alice.Address()
			if tc.owner != nil {
				owner = tc.owner(f)
			}
			ctrl := f.ctrl
			if tc.auth != nil {
				ctrl = NewController(tc.auth(f), f.users)
			}

			id, err := ctrl.CreateLockedDeposit(weavetest.CtxAt(t0), f.db, owner, tc.amount, tc.duration)
			assert.IsErr(t, tc.wantErr, err)

			last, err := ctrl.LastID(f.db)
			assert.Nil(t, err)
			ids, err := ctrl.ListByOwner(f.db, owner)
			assert.Nil(t, err)

			if tc.wantErr != nil {
				// A failed creation does not allocate an id.
				assert.Equal(t, uint64(0), last)
				assert.Equal(t, 0, len(ids))
				return
			}
			assert.Equal(t, uint64(1), id)
			assert.Equal(t, []uint64{1}, ids)

			dep, err := ctrl.Get(f.db, id)
			assert.Nil(t, err)
			assert.Equal(t, &LockedDeposit{
				ID:           1,
				Owner:        owner,
				Amount:       tc.amount,
				RateBps:      DefaultRateBps,
				StartTime:    t0,
				MaturityTime: t0 + nestera.UnixTime(tc.duration),
			}, dep)

			u, err := f.users.Get(f.db, owner)
			assert.Nil(t, err)
			assert.Equal(t, &user.User{TotalBalance: tc.amount, CommitmentCount: 1}, u)
		})
	}
}

func TestIDsAreSequentialAcrossOwners(t *testing.T) {
	f := newFixture(t)
	ctx := weavetest.CtxAt(t0)

	owners := []nestera.Address{f.alice.Address(), f.bobby.Address(), f.alice.Address()}
	for i, owner := range owners {
		id, err := f.ctrl.CreateLockedDeposit(ctx, f.db, owner, 10, 100)
		assert.Nil(t, err)
		assert.Equal(t, uint64(i+1), id)
	}

	ids, err := f.ctrl.ListByOwner(f.db, f.alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, []uint64{1, 3}, ids)
	ids, err = f.ctrl.ListByOwner(f.db, f.bobby.Address())
	assert.Nil(t, err)
	assert.Equal(t, []uint64{2}, ids)
}

func TestIsMatured(t *testing.T) {
	f := newFixture(t)
	id, err := f.ctrl.CreateLockedDeposit(weavetest.CtxAt(t0), f.db, f.alice.Address(), 10, 10)
	assert.Nil(t, err)

	cases := map[string]struct {
		id   uint64
		now  int64
		want bool
	}{
		"one second before maturity": {id: id, now: t0 + 9, want: false},
		"exactly at maturity":        {id: id, now: t0 + 10, want: true},
		"after maturity":             {id: id, now: t0 + 1000, want: true},
		"missing deposit":            {id: 99, now: t0 + 1000, want: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := f.ctrl.IsMatured(weavetest.CtxAt(tc.now), f.db, tc.id)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWithdraw(t *testing.T) {
	cases := map[string]struct {
		amount     int64
		duration   nestera.UnixDuration
		withdrawAt int64
		byBobby    bool
		lockID     uint64
		wantPayout int64
		wantErr    *errors.Error
	}{
		"one year earns the full rate": {
			amount:     1000000,
			duration:   SecondsPerYear,
			withdrawAt: t0 + SecondsPerYear,
			wantPayout: 1080000,
		},
		"less than a year earns nothing": {
			amount:     1000000,
			duration:   SecondsPerYear - 1,
			withdrawAt: t0 + SecondsPerYear,
			wantPayout: 1000000,
		},
		"partial years are truncated": {
			amount:     1000000,
			duration:   2*SecondsPerYear + SecondsPerYear/2,
			withdrawAt: t0 + 3*SecondsPerYear,
			wantPayout: 1160000,
		},
		"not matured": {
			amount:     1000,
			duration:   10,
			withdrawAt: t0 + 9,
			wantErr:    errors.ErrLockNotMatured,
		},
		"another owner": {
			amount:     1000,
			duration:   10,
			withdrawAt: t0 + 10,
			byBobby:    true,
			wantErr:    errors.ErrUnauthorized,
		},
		"missing lock": {
			amount:     1000,
			duration:   10,
			withdrawAt: t0 + 10,
			lockID:     42,
			wantErr:    errors.ErrLockNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			id, err := f.ctrl.CreateLockedDeposit(weavetest.CtxAt(t0), f.db, f.alice.Address(), tc.amount, tc.duration)
			assert.Nil(t, err)
			before, err := f.ctrl.Get(f.db, id)
			assert.Nil(t, err)

			caller := f.alice.Address()
			if tc.byBobby {
				caller = f.bobby.Address()
			}
			lockID := id
			if tc.lockID != 0 {
				lockID = tc.lockID
			}

			payout, err := f.ctrl.Withdraw(weavetest.CtxAt(tc.withdrawAt), f.db, caller, lockID)
			assert.IsErr(t, tc.wantErr, err)

			after, err := f.ctrl.Get(f.db, id)
			assert.Nil(t, err)
			u, err := f.users.Get(f.db, f.alice.Address())
			assert.Nil(t, err)

			if tc.wantErr != nil {
				assert.Equal(t, before, after)
				assert.Equal(t, tc.amount, u.TotalBalance)
				return
			}
			assert.Equal(t, tc.wantPayout, payout)
			assert.Equal(t, true, after.Withdrawn)
			// Interest is not added to the balance.
			assert.Equal(t, &user.User{TotalBalance: 0, CommitmentCount: 1}, u)
		})
	}
}

func TestWithdrawOnlyOnce(t *testing.T) {
	f := newFixture(t)
	id, err := f.ctrl.CreateLockedDeposit(weavetest.CtxAt(t0), f.db, f.alice.Address(), 500, 10)
	assert.Nil(t, err)

	ctx := weavetest.CtxAt(t0 + 10)
	_, err = f.ctrl.Withdraw(ctx, f.db, f.alice.Address(), id)
	assert.Nil(t, err)
	_, err = f.ctrl.Withdraw(ctx, f.db, f.alice.Address(), id)
	assert.IsErr(t, errors.ErrAlreadyWithdrawn, err)

	dep, err := f.ctrl.Get(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, true, dep.Withdrawn)

	// The owner index keeps withdrawn deposits.
	ids, err := f.ctrl.ListByOwner(f.db, f.alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, []uint64{id}, ids)
}

func TestConfiguredRate(t *testing.T) {
	f := newFixture(t)
	var ini Initializer
	opts := nestera.Options{"conf": []byte(`{"lock": {"rate_bps": 500}}`)}
	assert.Nil(t, ini.FromGenesis(opts, f.db))

	id, err := f.ctrl.CreateLockedDeposit(weavetest.CtxAt(t0), f.db, f.alice.Address(), 1000000, SecondsPerYear)
	assert.Nil(t, err)
	payout, err := f.ctrl.Withdraw(weavetest.CtxAt(t0+SecondsPerYear), f.db, f.alice.Address(), id)
	assert.Nil(t, err)
	assert.Equal(t, int64(1050000), payout)
}

func TestMissingBlockTime(t *testing.T) {
	f := newFixture(t)
	_, err := f.ctrl.CreateLockedDeposit(context.Background(), f.db, f.alice.Address(), 10, 10)
	assert.IsErr(t, errors.ErrInternal, err)
}

func TestCreateLeavesNoStateOnBalanceOverflow(t *testing.T) {
	f := newFixture(t)
	ctx := weavetest.CtxAt(t0)
	first, err := f.ctrl.CreateLockedDeposit(ctx, f.db, f.alice.Address(), math.MaxInt64, 10)
	assert.Nil(t, err)

	_, err = f.ctrl.CreateLockedDeposit(ctx, f.db, f.alice.Address(), 1, 10)
	assert.IsErr(t, errors.ErrOverflow, err)

	last, err := f.ctrl.LastID(f.db)
	assert.Nil(t, err)
	assert.Equal(t, first, last)
	ids, err := f.ctrl.ListByOwner(f.db, f.alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, []uint64{first}, ids)
	dep, err := f.ctrl.Get(f.db, first+1)
	assert.Nil(t, err)
	if dep != nil {
		t.Fatalf("unexpected deposit: %+v", dep)
	}
	u, err := f.users.Get(f.db, f.alice.Address())
	assert.Nil(t, err)
	assert.Equal(t, &user.User{TotalBalance: math.MaxInt64, CommitmentCount: 1}, u)
}

type rateByDuration map[nestera.UnixDuration]uint32

func (r rateByDuration) LockRate(db nestera.ReadOnlyKVStore, d nestera.UnixDuration) (uint32, error) {
	if rate, ok := r[d]; ok {
		return rate, nil
	}
	return ConfiguredRate{}.LockRate(db, d)
}

func TestRateSource(t *testing.T) {
	f := newFixture(t)
	ctrl := f.ctrl.WithRateSource(rateByDuration{SecondsPerYear: 1500})
	ctx := weavetest.CtxAt(t0)

	yearly, err := ctrl.CreateLockedDeposit(ctx, f.db, f.alice.Address(), 1000, SecondsPerYear)
	assert.Nil(t, err)
	dep, err := ctrl.Get(f.db, yearly)
	assert.Nil(t, err)
	assert.Equal(t, uint32(1500), dep.RateBps)

	short, err := ctrl.CreateLockedDeposit(ctx, f.db, f.alice.Address(), 1000, 10)
	assert.Nil(t, err)
	dep, err = ctrl.Get(f.db, short)
	assert.Nil(t, err)
	assert.Equal(t, uint32(DefaultRateBps), dep.RateBps)

	// The original controller keeps the configured rate.
	id, err := f.ctrl.CreateLockedDeposit(ctx, f.db, f.alice.Address(), 1000, SecondsPerYear)
	assert.Nil(t, err)
	dep, err = f.ctrl.Get(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, uint32(DefaultRateBps), dep.RateBps)
}
