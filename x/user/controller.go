package user

import (
	"math"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
	"github.com/nestera-labs/nestera/x"
)

// Controller is the registry of participants.
type Controller struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

// NewController returns a registry that authorizes registrations with given
// authenticator.
func NewController(auth x.Authenticator) *Controller {
	return &Controller{auth: auth, bucket: NewBucket()}
}

// Register creates a zero balance record for the address. An existing
// record is overwritten.
func (c *Controller) Register(ctx nestera.Context, db nestera.KVStore, addr nestera.Address) (*User, error) {
	if err := x.RequireAuthorized(ctx, c.auth, addr); err != nil {
		return nil, err
	}
	u := &User{}
	if err := c.bucket.Put(db, addr, u); err != nil {
		return nil, errors.Wrap(err, "cannot store user")
	}
	return u, nil
}

// Exists returns true if the address was registered.
func (c *Controller) Exists(db nestera.ReadOnlyKVStore, addr nestera.Address) (bool, error) {
	return c.bucket.Has(db, addr)
}

// Get returns the record of the address or nil if it was never registered.
func (c *Controller) Get(db nestera.ReadOnlyKVStore, addr nestera.Address) (*User, error) {
	var u User
	switch err := c.bucket.One(db, addr, &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot load user")
	}
}

// Require returns the record of the address or ErrUserNotFound.
func (c *Controller) Require(db nestera.ReadOnlyKVStore, addr nestera.Address) (*User, error) {
	u, err := c.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.Wrapf(errors.ErrUserNotFound, "address %s", addr)
	}
	return u, nil
}

// AddCommitment increases the balance by amount and counts a new
// commitment.
func (c *Controller) AddCommitment(db nestera.KVStore, addr nestera.Address, amount int64) error {
	u, err := c.Require(db, addr)
	if err != nil {
		return err
	}
	if err := u.commit(amount); err != nil {
		return err
	}
	return c.bucket.Put(db, addr, u)
}

// CanCommit returns the error AddCommitment would return for the same
// arguments, without writing anything.
func (c *Controller) CanCommit(db nestera.ReadOnlyKVStore, addr nestera.Address, amount int64) error {
	u, err := c.Require(db, addr)
	if err != nil {
		return err
	}
	return u.commit(amount)
}

func (u *User) commit(amount int64) error {
	if u.CommitmentCount == math.MaxUint32 {
		return errors.Wrap(errors.ErrOverflow, "commitment count")
	}
	balance, err := addAmount(u.TotalBalance, amount)
	if err != nil {
		return err
	}
	u.TotalBalance = balance
	u.CommitmentCount++
	return nil
}

// ReleaseBalance decreases the balance by amount. The commitment count is
// not changed.
func (c *Controller) ReleaseBalance(db nestera.KVStore, addr nestera.Address, amount int64) error {
	u, err := c.Require(db, addr)
	if err != nil {
		return err
	}
	balance, err := addAmount(u.TotalBalance, -amount)
	if err != nil {
		return err
	}
	u.TotalBalance = balance
	return c.bucket.Put(db, addr, u)
}

func addAmount(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return sum, nil
}
