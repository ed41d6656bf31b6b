package lock

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/gconf"
	"github.com/nestera-labs/nestera/orm"
	"github.com/nestera-labs/nestera/x"
)

// UserRegistry is the part of the participant registry used by this
// package.
type UserRegistry interface {
	CanCommit(db nestera.ReadOnlyKVStore, addr nestera.Address, amount int64) error
	AddCommitment(db nestera.KVStore, addr nestera.Address, amount int64) error
	ReleaseBalance(db nestera.KVStore, addr nestera.Address, amount int64) error
}

// RateSource resolves the rate of a new deposit locked for duration.
type RateSource interface {
	LockRate(db nestera.ReadOnlyKVStore, duration nestera.UnixDuration) (uint32, error)
}

// ConfiguredRate is the program wide rate from the lock configuration,
// whatever the duration.
type ConfiguredRate struct{}

// LockRate fulfils RateSource.
func (ConfiguredRate) LockRate(db nestera.ReadOnlyKVStore, _ nestera.UnixDuration) (uint32, error) {
	return RateBps(db)
}

// Controller manages locked deposits.
type Controller struct {
	auth   x.Authenticator
	users  UserRegistry
	rates  RateSource
	bucket orm.ModelBucket
	seq    orm.Sequence
	owners orm.IDIndex
}

// NewController returns a locked deposit controller.
func NewController(auth x.Authenticator, users UserRegistry) *Controller {
	return &Controller{
		auth:   auth,
		users:  users,
		rates:  ConfiguredRate{},
		bucket: NewBucket(),
		seq:    orm.NewSequence("lock", "id"),
		owners: orm.NewIDIndex("lock_owner"),
	}
}

// WithRateSource returns a controller that takes the rate of new deposits
// from given source.
func (c *Controller) WithRateSource(rates RateSource) *Controller {
	cp := *c
	cp.rates = rates
	return &cp
}

// CreateLockedDeposit locks amount for duration, starting at the current
// block time. It returns the id of the new deposit.
//
// The owner must authorize the call. Authorization is checked before the
// amount and the duration, so an unsigned call with a zero amount fails
// with ErrUnauthorized. Nothing is written unless the deposit can be
// committed to the owner balance.
func (c *Controller) CreateLockedDeposit(ctx nestera.Context, db nestera.KVStore, owner nestera.Address, amount int64, duration nestera.UnixDuration) (uint64, error) {
	if err := x.RequireAuthorized(ctx, c.auth, owner); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, errors.Wrapf(errors.ErrInvalidAmount, "amount %d", amount)
	}
	if duration <= 0 {
		return 0, errors.Wrapf(errors.ErrInvalidDuration, "duration %d", duration)
	}
	if err := c.users.CanCommit(db, owner, amount); err != nil {
		return 0, err
	}
	now, err := nestera.CurrentTime(ctx)
	if err != nil {
		return 0, err
	}
	maturity, err := now.Add(duration)
	if err != nil {
		return 0, errors.Wrap(errors.ErrInvalidDuration, err.Error())
	}
	rate, err := c.rates.LockRate(db, duration)
	if err != nil {
		return 0, err
	}

	id, err := c.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot allocate id")
	}
	dep := LockedDeposit{
		ID:           id,
		Owner:        owner,
		Amount:       amount,
		RateBps:      rate,
		StartTime:    now,
		MaturityTime: maturity,
	}
	if err := c.bucket.Put(db, orm.IDKey(id), &dep); err != nil {
		return 0, errors.Wrap(err, "cannot store locked deposit")
	}
	if err := c.owners.Append(db, owner, id); err != nil {
		return 0, errors.Wrap(err, "cannot index locked deposit")
	}
	if err := c.users.AddCommitment(db, owner, amount); err != nil {
		return 0, err
	}
	return id, nil
}

// IsMatured returns true if the deposit exists and its maturity time was
// reached. A missing deposit is not matured.
func (c *Controller) IsMatured(ctx nestera.Context, db nestera.ReadOnlyKVStore, id uint64) (bool, error) {
	dep, err := c.Get(db, id)
	if err != nil || dep == nil {
		return false, err
	}
	now, err := nestera.CurrentTime(ctx)
	if err != nil {
		return false, err
	}
	return dep.IsMatured(now), nil
}

// Withdraw settles a matured deposit and returns the payout. The owner
// balance is decreased by the deposited amount only.
func (c *Controller) Withdraw(ctx nestera.Context, db nestera.KVStore, owner nestera.Address, id uint64) (int64, error) {
	dep, err := c.Withdrawable(ctx, db, owner, id)
	if err != nil {
		return 0, err
	}
	payout, err := dep.Payout()
	if err != nil {
		return 0, err
	}

	dep.Withdrawn = true
	if err := c.bucket.Put(db, orm.IDKey(id), dep); err != nil {
		return 0, errors.Wrap(err, "cannot store locked deposit")
	}
	if err := c.users.ReleaseBalance(db, owner, dep.Amount); err != nil {
		return 0, err
	}
	return payout, nil
}

// Withdrawable returns the deposit if the owner can withdraw it now.
// Failures are reported in order: missing authorization, missing deposit,
// foreign deposit, already withdrawn, not matured.
func (c *Controller) Withdrawable(ctx nestera.Context, db nestera.ReadOnlyKVStore, owner nestera.Address, id uint64) (*LockedDeposit, error) {
	if err := x.RequireAuthorized(ctx, c.auth, owner); err != nil {
		return nil, err
	}
	dep, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return nil, errors.Wrapf(errors.ErrLockNotFound, "lock %d", id)
	}
	if !dep.Owner.Equals(owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the lock owner")
	}
	if dep.Withdrawn {
		return nil, errors.Wrapf(errors.ErrAlreadyWithdrawn, "lock %d", id)
	}
	now, err := nestera.CurrentTime(ctx)
	if err != nil {
		return nil, err
	}
	if !dep.IsMatured(now) {
		return nil, errors.Wrapf(errors.ErrLockNotMatured, "matures at %s", dep.MaturityTime)
	}
	return dep, nil
}

// Get returns the deposit with given id or nil if it does not exist.
func (c *Controller) Get(db nestera.ReadOnlyKVStore, id uint64) (*LockedDeposit, error) {
	var dep LockedDeposit
	switch err := c.bucket.One(db, orm.IDKey(id), &dep); {
	case err == nil:
		return &dep, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot load locked deposit")
	}
}

// ListByOwner returns ids of all deposits ever created by the owner, in
// creation order.
func (c *Controller) ListByOwner(db nestera.ReadOnlyKVStore, owner nestera.Address) ([]uint64, error) {
	return c.owners.List(db, owner)
}

// LastID returns the most recently allocated id, or zero.
func (c *Controller) LastID(db nestera.ReadOnlyKVStore) (uint64, error) {
	return c.seq.Latest(db)
}

const configPkg = "lock"

// RateBps returns the configured program wide rate.
func RateBps(db nestera.ReadOnlyKVStore) (uint32, error) {
	var conf Configuration
	switch err := gconf.Load(db, configPkg, &conf); {
	case err == nil:
		return conf.RateBps, nil
	case errors.ErrNotFound.Is(err):
		return DefaultRateBps, nil
	default:
		return 0, errors.Wrap(err, "cannot load lock configuration")
	}
}
