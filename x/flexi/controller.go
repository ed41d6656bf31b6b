package flexi

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

// Controller manages flexible balances.
type Controller struct {
	auth   x.Authenticator
	users  UserRegistry
	bucket orm.ModelBucket
}

// NewController returns a controller that only accepts deposits for
// registered users.
func NewController(auth x.Authenticator, users UserRegistry) *Controller {
	return &Controller{
		auth:   auth,
		users:  users,
		bucket: NewBucket(),
	}
}

// Deposit increases the balance and the lifetime deposited amount of the
// owner. It does not require any authorization, as it is the effect of an
// already authorized operation, for example an executed schedule.
func (c *Controller) Deposit(db nestera.KVStore, owner nestera.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrInvalidAmount, "deposit of %d", amount)
	}
	switch ok, err := c.users.Exists(db, owner); {
	case err != nil:
		return errors.Wrap(err, "cannot check user")
	case !ok:
		return errors.Wrapf(errors.ErrUserNotFound, "address %s", owner)
	}

	acc, err := c.Account(db, owner)
	if err != nil {
		return err
	}
	if acc.LifetimeDeposited > maxAmount-amount {
		return errors.Wrap(errors.ErrOverflow, "lifetime deposited")
	}
	acc.Balance += amount
	acc.LifetimeDeposited += amount
	return c.bucket.Put(db, owner, acc)
}

// Withdraw decreases the balance of the owner. The owner must authorize it.
func (c *Controller) Withdraw(ctx nestera.Context, db nestera.KVStore, owner nestera.Address, amount int64) error {
	if err := x.RequireAuthorized(ctx, c.auth, owner); err != nil {
		return err
	}
	if amount <= 0 {
		return errors.Wrapf(errors.ErrInvalidAmount, "withdrawal of %d", amount)
	}
	acc, err := c.Account(db, owner)
	if err != nil {
		return err
	}
	if acc.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientBalance, "balance %d, requested %d", acc.Balance, amount)
	}
	acc.Balance -= amount
	return c.bucket.Put(db, owner, acc)
}

// Account returns the account of the owner. An address that never
// deposited has an empty account.
func (c *Controller) Account(db nestera.ReadOnlyKVStore, owner nestera.Address) (*Account, error) {
	var acc Account
	switch err := c.bucket.One(db, owner, &acc); {
	case err == nil, errors.ErrNotFound.Is(err):
		return &acc, nil
	default:
		return nil, errors.Wrap(err, "cannot load account")
	}
}

// LifetimeDeposited returns the total amount ever deposited by the address.
func (c *Controller) LifetimeDeposited(db nestera.ReadOnlyKVStore, addr nestera.Address) (int64, error) {
	acc, err := c.Account(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.LifetimeDeposited, nil
}

const maxAmount = int64(^uint64(0) >> 1)
