package rates

import (
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/nestera-labs/nestera/orm"
)

// MaxRateBps is the highest accepted rate, 100%.
const MaxRateBps = 10000

// Rates is the rate table of the program, in basis points.
type Rates struct {
	FlexiRate int64       `protobuf:"varint,1,opt,name=flexi_rate,json=flexiRate,proto3" json:"flexi_rate"`
	GoalRate  int64       `protobuf:"varint,2,opt,name=goal_rate,json=goalRate,proto3" json:"goal_rate"`
	GroupRate int64       `protobuf:"varint,3,opt,name=group_rate,json=groupRate,proto3" json:"group_rate"`
	LockRates []*LockRate `protobuf:"bytes,4,rep,name=lock_rates,json=lockRates,proto3" json:"lock_rates,omitempty"`
	Paused    bool        `protobuf:"varint,5,opt,name=paused,proto3" json:"paused"`
}

func (m *Rates) Reset()         { *m = Rates{} }
func (m *Rates) String() string { return proto.CompactTextString(m) }
func (*Rates) ProtoMessage()    {}

var _ orm.Model = (*Rates)(nil)

func (m *Rates) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "FlexiRate", validateRate(m.FlexiRate))
	errs = errors.AppendField(errs, "GoalRate", validateRate(m.GoalRate))
	errs = errors.AppendField(errs, "GroupRate", validateRate(m.GroupRate))
	for i, r := range m.LockRates {
		if r == nil {
			errs = errors.Append(errs, errors.Field("LockRates", errors.ErrEmpty, "element %d", i))
			continue
		}
		errs = errors.AppendField(errs, "LockRates", r.Validate())
		if i > 0 && m.LockRates[i-1] != nil && m.LockRates[i-1].Duration >= r.Duration {
			errs = errors.Append(errs, errors.Field("LockRates", errors.ErrInvalidModel, "not sorted by duration"))
		}
	}
	return errs
}

// LockRate is the rate of locked deposits of a given duration.
type LockRate struct {
	Duration nestera.UnixDuration `protobuf:"varint,1,opt,name=duration,proto3,casttype=github.com/nestera-labs/nestera.UnixDuration" json:"duration"`
	Rate     int64                `protobuf:"varint,2,opt,name=rate,proto3" json:"rate"`
}

func (m *LockRate) Reset()         { *m = LockRate{} }
func (m *LockRate) String() string { return proto.CompactTextString(m) }
func (*LockRate) ProtoMessage()    {}

func (m *LockRate) Validate() error {
	var errs error
	if m.Duration <= 0 {
		errs = errors.AppendField(errs, "Duration", errors.ErrInvalidDuration)
	}
	errs = errors.AppendField(errs, "Rate", validateRate(m.Rate))
	return errs
}

// LockRateFor returns the rate set for exactly given duration.
func (m *Rates) LockRateFor(d nestera.UnixDuration) (int64, bool) {
	i := sort.Search(len(m.LockRates), func(i int) bool { return m.LockRates[i].Duration >= d })
	if i < len(m.LockRates) && m.LockRates[i].Duration == d {
		return m.LockRates[i].Rate, true
	}
	return 0, false
}

// SetLockRate inserts or replaces the rate of given duration, keeping the
// list sorted.
func (m *Rates) SetLockRate(d nestera.UnixDuration, rate int64) {
	i := sort.Search(len(m.LockRates), func(i int) bool { return m.LockRates[i].Duration >= d })
	if i < len(m.LockRates) && m.LockRates[i].Duration == d {
		m.LockRates[i].Rate = rate
		return
	}
	m.LockRates = append(m.LockRates, nil)
	copy(m.LockRates[i+1:], m.LockRates[i:])
	m.LockRates[i] = &LockRate{Duration: d, Rate: rate}
}

func validateRate(rate int64) error {
	if rate < 0 || rate > MaxRateBps {
		return errors.Wrapf(errors.ErrInvalidPlanConfig, "rate %d out of range", rate)
	}
	return nil
}
