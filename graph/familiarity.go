package graph

import (
	"math"
	"time"

	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/temporal"
	"github.com/choragraph/chora/uncertainty"
)

// DefaultDecayHalfLifeDays is how quickly familiarity halves without
// new encounters.
const DefaultDecayHalfLifeDays = 14.0

// Familiarity is an evolving state variable for accumulated place
// experience. It grows with encounters and decays exponentially between
// them. The stored Value is the value as of LastEncounter; readers wanting
// the decayed present value go through ValueAt.
type Familiarity struct {
	Meta
	AgentID            string
	ExtentID           string
	Value              float64 // [0, 1], as of LastEncounter
	Uncertainty        *uncertainty.Value
	EncounterCount     int
	FirstEncounter     *time.Time
	LastEncounter      *time.Time
	TotalDurationHours float64
	DecayHalfLifeDays  float64
	Metadata           map[string]any
}

func (*Familiarity) Type() NodeType { return NodeTypeFamiliarity }

// NewFamiliarity creates zero familiarity between an agent and an extent.
func NewFamiliarity(agentID, extentID string) *Familiarity {
	return &Familiarity{
		Meta:              NewMeta(Derived),
		AgentID:           agentID,
		ExtentID:          extentID,
		DecayHalfLifeDays: DefaultDecayHalfLifeDays,
	}
}

// IsFamiliar reports familiar territory.
func (f *Familiarity) IsFamiliar() bool { return f.Value >= 0.5 }

// IsVeryFamiliar reports very familiar territory.
func (f *Familiarity) IsVeryFamiliar() bool { return f.Value >= 0.8 }

// IsNovel reports essentially unknown territory.
func (f *Familiarity) IsNovel() bool { return f.Value < 0.2 }

// ValueAt returns the decayed value as of t without mutating the node.
func (f *Familiarity) ValueAt(t time.Time) (float64, error) {
	if f.LastEncounter == nil {
		return f.Value, nil
	}
	return temporal.ComputeDecay(f.Value, *f.LastEncounter, t,
		func(v, days float64) (float64, error) {
			return temporal.ExponentialDecay(v, days, f.DecayHalfLifeDays)
		})
}

// Reinforce folds a new encounter into the familiarity: decay since the
// previous encounter is applied first, then a saturating increment scaled
// by the encounter duration. Reinforcing earlier than the last recorded
// encounter violates temporal ordering and fails without mutating state.
func (f *Familiarity) Reinforce(durationHours float64, at time.Time) (float64, error) {
	if durationHours < 0 {
		return 0, errors.InvalidIntervalf(
			"encounter duration must be non-negative, got %f hours", durationHours)
	}
	if f.LastEncounter != nil && at.Before(*f.LastEncounter) {
		return 0, errors.TemporalOrderingf(
			"reinforcement at %s precedes last encounter at %s",
			at.Format(time.RFC3339), f.LastEncounter.Format(time.RFC3339))
	}

	value := f.Value
	if f.LastEncounter != nil {
		decayed, err := temporal.ComputeDecay(value, *f.LastEncounter, at,
			func(v, days float64) (float64, error) {
				return temporal.ExponentialDecay(v, days, f.DecayHalfLifeDays)
			})
		if err != nil {
			return 0, err
		}
		value = decayed
	}

	increment := math.Min(0.1, 0.05*durationHours)
	reinforced, err := temporal.SaturatingReinforcement(value, increment, 1.0)
	if err != nil {
		return 0, err
	}

	f.Value = reinforced
	f.EncounterCount++
	ts := at
	f.LastEncounter = &ts
	f.TotalDurationHours += durationHours
	if f.FirstEncounter == nil {
		first := at
		f.FirstEncounter = &first
	}
	return f.Value, nil
}

// ApplyDecay advances the stored value to its decayed value at to.
func (f *Familiarity) ApplyDecay(to time.Time) (float64, error) {
	if f.LastEncounter == nil {
		return f.Value, nil
	}
	decayed, err := f.ValueAt(to)
	if err != nil {
		return 0, err
	}
	f.Value = decayed
	return f.Value, nil
}

// DaysSince returns days between the last encounter and t, or false when
// no encounter has been recorded.
func (f *Familiarity) DaysSince(t time.Time) (float64, bool) {
	if f.LastEncounter == nil {
		return 0, false
	}
	return t.Sub(*f.LastEncounter).Hours() / 24, true
}
