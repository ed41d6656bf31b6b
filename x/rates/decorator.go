package rates

import (
	"strings"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

// PauseDecorator rejects messages of the guarded extensions while the
// program is paused. Other messages, for example governance, pass.
type PauseDecorator struct {
	prefixes []string
}

var _ nestera.Decorator = PauseDecorator{}

// NewPauseDecorator guards messages whose path starts with one of the
// extension names, for example "lock" guards "lock/create".
func NewPauseDecorator(extensions ...string) PauseDecorator {
	prefixes := make([]string, len(extensions))
	for i, ext := range extensions {
		prefixes[i] = ext + "/"
	}
	return PauseDecorator{prefixes: prefixes}
}

func (d PauseDecorator) Check(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx, next nestera.Checker) (*nestera.CheckResult, error) {
	if err := d.guard(db, tx); err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d PauseDecorator) Deliver(ctx nestera.Context, db nestera.KVStore, tx nestera.Tx, next nestera.Deliverer) (*nestera.DeliverResult, error) {
	if err := d.guard(db, tx); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d PauseDecorator) guard(db nestera.ReadOnlyKVStore, tx nestera.Tx) error {
	path := nestera.GetPath(tx)
	guarded := false
	for _, p := range d.prefixes {
		if strings.HasPrefix(path, p) {
			guarded = true
			break
		}
	}
	if !guarded {
		return nil
	}
	paused, err := IsPaused(db)
	if err != nil {
		return err
	}
	if paused {
		return errors.Wrapf(errors.ErrPaused, "cannot process %s", path)
	}
	return nil
}
