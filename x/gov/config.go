package gov

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/gconf"
)

const (
	configPkg       = "gov"
	votingConfigPkg = "gov_voting"
	statePkg        = "gov_state"
)

// Admin returns the program admin set in genesis. Without one every admin
// check fails with ErrUnauthorized.
func Admin(db nestera.ReadOnlyKVStore) (nestera.Address, error) {
	var conf Configuration
	switch err := gconf.Load(db, configPkg, &conf); {
	case err == nil:
		return conf.Admin, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(errors.ErrUnauthorized, "no admin")
	default:
		return nil, errors.Wrap(err, "cannot load gov configuration")
	}
}

func requireAdmin(db nestera.ReadOnlyKVStore, addr nestera.Address) error {
	admin, err := Admin(db)
	if err != nil {
		return err
	}
	if !admin.Equals(addr) {
		return errors.Wrap(errors.ErrUnauthorized, "admin only")
	}
	return nil
}

// LoadVotingConfig returns the voting rules. ErrInternal is returned when
// they were not initialized.
func LoadVotingConfig(db nestera.ReadOnlyKVStore) (*VotingConfig, error) {
	var conf VotingConfig
	switch err := gconf.Load(db, votingConfigPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(errors.ErrInternal, "voting config not initialized")
	default:
		return nil, errors.Wrap(err, "cannot load voting config")
	}
}

// IsGovernanceActive returns true once governance was activated.
func IsGovernanceActive(db nestera.ReadOnlyKVStore) (bool, error) {
	var state State
	switch err := gconf.Load(db, statePkg, &state); {
	case err == nil:
		return state.Active, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, errors.Wrap(err, "cannot load gov state")
	}
}

// ValidateAdminOrGovernance is the gate of every privileged operation.
// It returns true when governance is active, meaning the change must come
// from an executed proposal. Otherwise it returns false if the caller is
// the admin, and ErrUnauthorized for anyone else.
// Authorization of the caller is the responsibility of the operation.
func ValidateAdminOrGovernance(db nestera.ReadOnlyKVStore, caller nestera.Address) (bool, error) {
	active, err := IsGovernanceActive(db)
	if err != nil {
		return false, err
	}
	if active {
		return true, nil
	}
	if err := requireAdmin(db, caller); err != nil {
		return false, err
	}
	return false, nil
}
