package user

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

var _ nestera.Initializer = (*Initializer)(nil)

// FromGenesis registers every address listed under the "users" key.
func (*Initializer) FromGenesis(opts nestera.Options, db nestera.KVStore) error {
	var users []struct {
		Address nestera.Address `json:"address"`
	}
	if err := opts.ReadOptions("users", &users); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, u := range users {
		if err := u.Address.Validate(); err != nil {
			return errors.Wrapf(err, "user #%d", i)
		}
		if err := bucket.Put(db, u.Address, &User{}); err != nil {
			return errors.Wrapf(err, "cannot store user #%d", i)
		}
	}
	return nil
}
