package lock

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

var _ nestera.Initializer = (*Initializer)(nil)

// FromGenesis stores the lock configuration found in the "conf" section.
// Without one, the default rate is stored.
func (*Initializer) FromGenesis(opts nestera.Options, db nestera.KVStore) error {
	err := gconf.InitConfig(db, opts, configPkg, &Configuration{})
	if errors.ErrNotFound.Is(err) {
		return gconf.Save(db, configPkg, &Configuration{RateBps: DefaultRateBps})
	}
	return err
}
