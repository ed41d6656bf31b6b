package gov

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

var _ nestera.Initializer = (*Initializer)(nil)

// FromGenesis stores the admin from the "conf" section. Voting rules may
// be provided in the "gov" section, otherwise the admin sets them later.
func (*Initializer) FromGenesis(opts nestera.Options, db nestera.KVStore) error {
	err := gconf.InitConfig(db, opts, configPkg, &Configuration{})
	if err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}

	var genesis struct {
		VotingConfig *VotingConfig `json:"voting_config"`
		Active       bool          `json:"active"`
	}
	if err := opts.ReadOptions("gov", &genesis); err != nil {
		return err
	}
	if genesis.VotingConfig != nil {
		if err := gconf.Save(db, votingConfigPkg, genesis.VotingConfig); err != nil {
			return errors.Wrap(err, "voting config")
		}
	}
	if genesis.Active {
		if err := gconf.Save(db, statePkg, &State{Active: true}); err != nil {
			return errors.Wrap(err, "gov state")
		}
	}
	return nil
}
