package autosave

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
	"github.com/nestera-labs/nestera/x"
)

// UserRegistry is the part of the participant registry used by this
// package.
type UserRegistry interface {
	Exists(db nestera.ReadOnlyKVStore, addr nestera.Address) (bool, error)
}

// DepositEffect applies a single scheduled deposit. Its failure is
// returned to the caller unchanged.
type DepositEffect interface {
	Deposit(db nestera.KVStore, owner nestera.Address, amount int64) error
}

// Controller manages deposit schedules.
type Controller struct {
	auth    x.Authenticator
	users   UserRegistry
	deposit DepositEffect
	bucket  orm.ModelBucket
	seq     orm.Sequence
	owners  orm.IDIndex
}

// NewController returns a schedule controller that executes deposits
// through given effect.
func NewController(auth x.Authenticator, users UserRegistry, deposit DepositEffect) *Controller {
	return &Controller{
		auth:    auth,
		users:   users,
		deposit: deposit,
		bucket:  NewBucket(),
		seq:     orm.NewSequence("autosave", "id"),
		owners:  orm.NewIDIndex("autosave_owner"),
	}
}

// CreateSchedule stores a new active schedule and returns its id.
func (c *Controller) CreateSchedule(ctx nestera.Context, db nestera.KVStore, owner nestera.Address, amount int64, interval nestera.UnixDuration, start nestera.UnixTime) (uint64, error) {
	if err := x.RequireAuthorized(ctx, c.auth, owner); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, errors.Wrapf(errors.ErrInvalidAmount, "amount %d", amount)
	}
	if interval <= 0 {
		return 0, errors.Wrapf(errors.ErrInvalidTimestamp, "interval %d", interval)
	}
	switch ok, err := c.users.Exists(db, owner); {
	case err != nil:
		return 0, errors.Wrap(err, "cannot check user")
	case !ok:
		return 0, errors.Wrapf(errors.ErrUserNotFound, "address %s", owner)
	}

	id, err := c.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot allocate id")
	}
	s := Schedule{
		ID:                id,
		Owner:             owner,
		Amount:            amount,
		IntervalSeconds:   interval,
		NextExecutionTime: start,
		Active:            true,
	}
	if err := c.bucket.Put(db, orm.IDKey(id), &s); err != nil {
		return 0, errors.Wrap(err, "cannot store schedule")
	}
	if err := c.owners.Append(db, owner, id); err != nil {
		return 0, errors.Wrap(err, "cannot index schedule")
	}
	return id, nil
}

// ExecuteDue performs a single deposit of a due schedule and moves its
// next execution time by one interval. It returns the updated schedule.
func (c *Controller) ExecuteDue(ctx nestera.Context, db nestera.KVStore, id uint64) (*Schedule, error) {
	s, err := c.Due(ctx, db, id)
	if err != nil {
		return nil, err
	}
	next, err := s.NextExecutionTime.Add(s.IntervalSeconds)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidTimestamp, err.Error())
	}

	if err := c.deposit.Deposit(db, s.Owner, s.Amount); err != nil {
		return nil, err
	}
	s.NextExecutionTime = next
	if err := c.bucket.Put(db, orm.IDKey(id), s); err != nil {
		return nil, errors.Wrap(err, "cannot store schedule")
	}
	return s, nil
}

// Due returns the schedule if it can be executed now.
func (c *Controller) Due(ctx nestera.Context, db nestera.ReadOnlyKVStore, id uint64) (*Schedule, error) {
	s, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.Wrapf(errors.ErrScheduleNotFound, "schedule %d", id)
	}
	if !s.Active {
		return nil, errors.Wrapf(errors.ErrInvalidPlanConfig, "schedule %d is not active", id)
	}
	now, err := nestera.CurrentTime(ctx)
	if err != nil {
		return nil, err
	}
	if !s.IsDue(now) {
		return nil, errors.Wrapf(errors.ErrInvalidTimestamp, "next execution at %s", s.NextExecutionTime)
	}
	return s, nil
}

// Cancel deactivates the schedule. Only the owner can cancel it and a
// cancelled schedule cannot be cancelled again.
func (c *Controller) Cancel(ctx nestera.Context, db nestera.KVStore, caller nestera.Address, id uint64) error {
	s, err := c.cancellable(ctx, db, caller, id)
	if err != nil {
		return err
	}
	s.Active = false
	if err := c.bucket.Put(db, orm.IDKey(id), s); err != nil {
		return errors.Wrap(err, "cannot store schedule")
	}
	return nil
}

func (c *Controller) cancellable(ctx nestera.Context, db nestera.ReadOnlyKVStore, caller nestera.Address, id uint64) (*Schedule, error) {
	if err := x.RequireAuthorized(ctx, c.auth, caller); err != nil {
		return nil, err
	}
	s, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.Wrapf(errors.ErrScheduleNotFound, "schedule %d", id)
	}
	if !s.Owner.Equals(caller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the schedule owner")
	}
	if !s.Active {
		return nil, errors.Wrapf(errors.ErrInvalidPlanConfig, "schedule %d is not active", id)
	}
	return s, nil
}

// Get returns the schedule with given id or nil if it does not exist.
func (c *Controller) Get(db nestera.ReadOnlyKVStore, id uint64) (*Schedule, error) {
	var s Schedule
	switch err := c.bucket.One(db, orm.IDKey(id), &s); {
	case err == nil:
		return &s, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot load schedule")
	}
}

// ListByOwner returns ids of all schedules ever created by the owner, in
// creation order.
func (c *Controller) ListByOwner(db nestera.ReadOnlyKVStore, owner nestera.Address) ([]uint64, error) {
	return c.owners.List(db, owner)
}

// LastID returns the most recently allocated id, or zero.
func (c *Controller) LastID(db nestera.ReadOnlyKVStore) (uint64, error) {
	return c.seq.Latest(db)
}
