package rates

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

var _ nestera.Initializer = (*Initializer)(nil)

// FromGenesis stores the initial rate table from the "conf" section, if
// present.
func (*Initializer) FromGenesis(opts nestera.Options, db nestera.KVStore) error {
	err := gconf.InitConfig(db, opts, configPkg, &Rates{})
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
