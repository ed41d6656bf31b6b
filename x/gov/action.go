package gov

import (
	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
)

// ProposalAction is the change carried by an action proposal. The set of
// implementations is closed.
type ProposalAction interface {
	isProposalAction()
}

// SetFlexiRate changes the flexible savings rate.
type SetFlexiRate struct {
	Rate int64
}

// SetGoalRate changes the goal savings rate.
type SetGoalRate struct {
	Rate int64
}

// SetGroupRate changes the group savings rate.
type SetGroupRate struct {
	Rate int64
}

// SetLockRate changes the rate of locked deposits of given duration.
type SetLockRate struct {
	Duration nestera.UnixDuration
	Rate     int64
}

// PauseContract stops all instrument operations.
type PauseContract struct{}

// UnpauseContract resumes instrument operations.
type UnpauseContract struct{}

func (SetFlexiRate) isProposalAction()    {}
func (SetGoalRate) isProposalAction()     {}
func (SetGroupRate) isProposalAction()    {}
func (SetLockRate) isProposalAction()     {}
func (PauseContract) isProposalAction()   {}
func (UnpauseContract) isProposalAction() {}

// ActionKind tags the flattened form of a ProposalAction.
type ActionKind int32

const (
	ActionInvalid ActionKind = iota
	ActionSetFlexiRate
	ActionSetGoalRate
	ActionSetGroupRate
	ActionSetLockRate
	ActionPause
	ActionUnpause
)

var actionKindNames = map[ActionKind]string{
	ActionInvalid:      "invalid",
	ActionSetFlexiRate: "set_flexi_rate",
	ActionSetGoalRate:  "set_goal_rate",
	ActionSetGroupRate: "set_group_rate",
	ActionSetLockRate:  "set_lock_rate",
	ActionPause:        "pause",
	ActionUnpause:      "unpause",
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ActionRecord is the stored form of a ProposalAction. Only the fields
// relevant for the kind are set.
type ActionRecord struct {
	Kind     ActionKind           `protobuf:"varint,1,opt,name=kind,proto3,casttype=ActionKind" json:"kind"`
	Rate     int64                `protobuf:"varint,2,opt,name=rate,proto3" json:"rate,omitempty"`
	Duration nestera.UnixDuration `protobuf:"varint,3,opt,name=duration,proto3,casttype=github.com/nestera-labs/nestera.UnixDuration" json:"duration,omitempty"`
}

func (m *ActionRecord) Reset()         { *m = ActionRecord{} }
func (m *ActionRecord) String() string { return proto.CompactTextString(m) }
func (*ActionRecord) ProtoMessage()    {}

func (m *ActionRecord) Validate() error {
	_, err := m.Action()
	return err
}

// NewActionRecord flattens the action for storage.
func NewActionRecord(action ProposalAction) (*ActionRecord, error) {
	switch a := action.(type) {
	case SetFlexiRate:
		return &ActionRecord{Kind: ActionSetFlexiRate, Rate: a.Rate}, nil
	case SetGoalRate:
		return &ActionRecord{Kind: ActionSetGoalRate, Rate: a.Rate}, nil
	case SetGroupRate:
		return &ActionRecord{Kind: ActionSetGroupRate, Rate: a.Rate}, nil
	case SetLockRate:
		return &ActionRecord{Kind: ActionSetLockRate, Rate: a.Rate, Duration: a.Duration}, nil
	case PauseContract:
		return &ActionRecord{Kind: ActionPause}, nil
	case UnpauseContract:
		return &ActionRecord{Kind: ActionUnpause}, nil
	case nil:
		return nil, errors.Wrap(errors.ErrEmpty, "action")
	default:
		return nil, errors.Wrapf(errors.ErrInvalidType, "action %T", action)
	}
}

// Action restores the action from its stored form.
func (m *ActionRecord) Action() (ProposalAction, error) {
	switch m.Kind {
	case ActionSetFlexiRate:
		return SetFlexiRate{Rate: m.Rate}, nil
	case ActionSetGoalRate:
		return SetGoalRate{Rate: m.Rate}, nil
	case ActionSetGroupRate:
		return SetGroupRate{Rate: m.Rate}, nil
	case ActionSetLockRate:
		if m.Duration <= 0 {
			return nil, errors.Field("Duration", errors.ErrInvalidDuration, "must be positive")
		}
		return SetLockRate{Duration: m.Duration, Rate: m.Rate}, nil
	case ActionPause:
		return PauseContract{}, nil
	case ActionUnpause:
		return UnpauseContract{}, nil
	default:
		return nil, errors.Field("Kind", errors.ErrInvalidInput, "unknown action kind %d", m.Kind)
	}
}
