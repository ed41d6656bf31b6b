package gconf

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
)

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save will Validate the object, before writing it to a special "configuration"
// singleton for that package name.
func Save(db nestera.KVStore, pkg string, src orm.Model) error {
	k := key(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", k)
	}
	raw, err := orm.Marshal(src)
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", k)
	}
	return db.Set(k, raw)
}

// Load reads the singleton of given package into dst. ErrNotFound is
// returned when nothing was saved yet.
func Load(db nestera.ReadOnlyKVStore, pkg string, dst orm.Model) error {
	k := key(pkg)
	ok, err := db.Has(k)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "key %q", k)
	}
	raw, err := db.Get(k)
	if err != nil {
		return err
	}
	if err := orm.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", k)
	}
	return nil
}

// Has returns true if the singleton of given package was saved.
func Has(db nestera.ReadOnlyKVStore, pkg string) (bool, error) {
	return db.Has(key(pkg))
}

// InitConfig will take opts["conf"][pkg], parse it into the given Configuration object
// validate it, and store under the proper key in the database
// Returns an error if anything goes wrong
func InitConfig(db nestera.KVStore, opts nestera.Options, pkg string, conf orm.Model) error {
	var confOptions nestera.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read configuration for %s", pkg)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
