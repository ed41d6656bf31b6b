package rates

import (
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

// PlanType is a savings plan family. The set of implementations is closed.
type PlanType interface {
	isPlanType()
}

// FlexiPlan is a flexible balance that can be withdrawn at any time.
type FlexiPlan struct{}

// LockPlan is a deposit locked for Duration.
type LockPlan struct {
	Duration nestera.UnixDuration
}

// GoalPlan saves towards a named target with a fixed contribution.
type GoalPlan struct {
	Name         string
	Target       int64
	Contribution uint32
}

// GroupPlan is a saving shared by several members.
type GroupPlan struct {
	ID      uint64
	Public  bool
	Members uint32
	Target  int64
}

func (FlexiPlan) isPlanType() {}
func (LockPlan) isPlanType()  {}
func (GoalPlan) isPlanType()  {}
func (GroupPlan) isPlanType() {}

// ValidatePlan returns ErrInvalidPlanConfig for plans that cannot exist.
func ValidatePlan(plan PlanType) error {
	switch p := plan.(type) {
	case FlexiPlan:
		return nil
	case LockPlan:
		if p.Duration <= 0 {
			return errors.Wrap(errors.ErrInvalidPlanConfig, "lock duration must be positive")
		}
		return nil
	case GoalPlan:
		if p.Name == "" {
			return errors.Wrap(errors.ErrInvalidPlanConfig, "goal name required")
		}
		if p.Target <= 0 {
			return errors.Wrap(errors.ErrInvalidPlanConfig, "goal target must be positive")
		}
		return nil
	case GroupPlan:
		if p.Members == 0 {
			return errors.Wrap(errors.ErrInvalidPlanConfig, "group without members")
		}
		if p.Target <= 0 {
			return errors.Wrap(errors.ErrInvalidPlanConfig, "group target must be positive")
		}
		return nil
	case nil:
		return errors.Wrap(errors.ErrPlanNotFound, "no plan")
	default:
		return errors.Wrapf(errors.ErrPlanNotFound, "plan %T", plan)
	}
}
