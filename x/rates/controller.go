package rates

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/gconf"
	"github.com/nestera-labs/nestera/x"
	"github.com/nestera-labs/nestera/x/gov"
	"github.com/nestera-labs/nestera/x/lock"
)

const configPkg = "rates"

// Controller reads and changes the rate table.
type Controller struct {
	auth x.Authenticator
}

var (
	_ gov.ActionExecutor = (*Controller)(nil)
	_ lock.RateSource    = (*Controller)(nil)
)

// NewController returns a rates controller.
func NewController(auth x.Authenticator) *Controller {
	return &Controller{auth: auth}
}

// Rates returns the rate table. Before anything is set all rates are zero.
func (c *Controller) Rates(db nestera.ReadOnlyKVStore) (*Rates, error) {
	return load(db)
}

func load(db nestera.ReadOnlyKVStore) (*Rates, error) {
	var r Rates
	switch err := gconf.Load(db, configPkg, &r); {
	case err == nil, errors.ErrNotFound.Is(err):
		return &r, nil
	default:
		return nil, errors.Wrap(err, "cannot load rates")
	}
}

// IsPaused returns true while the program is paused.
func IsPaused(db nestera.ReadOnlyKVStore) (bool, error) {
	r, err := load(db)
	if err != nil {
		return false, err
	}
	return r.Paused, nil
}

// Apply changes the rate table as described by the action. It performs no
// authorization and is called for executed proposals.
func (c *Controller) Apply(ctx nestera.Context, db nestera.KVStore, action gov.ProposalAction) error {
	r, err := load(db)
	if err != nil {
		return err
	}
	switch a := action.(type) {
	case gov.SetFlexiRate:
		r.FlexiRate = a.Rate
	case gov.SetGoalRate:
		r.GoalRate = a.Rate
	case gov.SetGroupRate:
		r.GroupRate = a.Rate
	case gov.SetLockRate:
		r.SetLockRate(a.Duration, a.Rate)
	case gov.PauseContract:
		r.Paused = true
	case gov.UnpauseContract:
		r.Paused = false
	default:
		return errors.Wrapf(errors.ErrInvalidType, "action %T", action)
	}
	if err := gconf.Save(db, configPkg, r); err != nil {
		return err
	}
	nestera.GetLogger(ctx).Info("rates changed", "action", action)
	return nil
}

// Update applies the action on behalf of the admin. Once governance is
// active direct updates are refused and changes must be proposed.
func (c *Controller) Update(ctx nestera.Context, db nestera.KVStore, caller nestera.Address, action gov.ProposalAction) error {
	if err := c.authorizeUpdate(ctx, db, caller); err != nil {
		return err
	}
	return c.Apply(ctx, db, action)
}

func (c *Controller) authorizeUpdate(ctx nestera.Context, db nestera.ReadOnlyKVStore, caller nestera.Address) error {
	if err := x.RequireAuthorized(ctx, c.auth, caller); err != nil {
		return err
	}
	viaGov, err := gov.ValidateAdminOrGovernance(db, caller)
	if err != nil {
		return err
	}
	if viaGov {
		return errors.Wrap(errors.ErrUnauthorized, "governance is active, submit a proposal")
	}
	return nil
}

// RateFor returns the rate of the plan family. A lock plan without a
// duration specific rate uses the program wide lock rate.
func (c *Controller) RateFor(db nestera.ReadOnlyKVStore, plan PlanType) (int64, error) {
	if err := ValidatePlan(plan); err != nil {
		return 0, err
	}
	r, err := load(db)
	if err != nil {
		return 0, err
	}
	switch p := plan.(type) {
	case FlexiPlan:
		return r.FlexiRate, nil
	case LockPlan:
		if rate, ok := r.LockRateFor(p.Duration); ok {
			return rate, nil
		}
		rate, err := lock.RateBps(db)
		if err != nil {
			return 0, err
		}
		return int64(rate), nil
	case GoalPlan:
		return r.GoalRate, nil
	case GroupPlan:
		return r.GroupRate, nil
	default:
		return 0, errors.Wrapf(errors.ErrPlanNotFound, "plan %T", plan)
	}
}

// LockRate returns the rate of a deposit locked for duration. It fulfils
// lock.RateSource.
func (c *Controller) LockRate(db nestera.ReadOnlyKVStore, duration nestera.UnixDuration) (uint32, error) {
	rate, err := c.RateFor(db, LockPlan{Duration: duration})
	if err != nil {
		return 0, err
	}
	return uint32(rate), nil
}
