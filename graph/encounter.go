package graph

import (
	"time"

	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/temporal"
)

// Encounter is the atomic unit of platial experience: an agent present at
// a spatial extent over a time interval. Place emerges from patterns of
// repeated encounters.
type Encounter struct {
	Meta
	AgentID   string
	ExtentID  string
	StartTime time.Time
	EndTime   *time.Time // nil while ongoing
	Activity  string
	Intensity float64 // engagement intensity in [0, 1]
	Metadata  map[string]any
}

func (*Encounter) Type() NodeType { return NodeTypeEncounter }

// NewEncounter creates an encounter spanning start to end. A nil end marks
// an ongoing encounter.
func NewEncounter(agentID, extentID string, start time.Time, end *time.Time) (*Encounter, error) {
	if end != nil && end.Before(start) {
		return nil, errors.InvalidIntervalf(
			"encounter ends %s before it starts %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return &Encounter{
		Meta:      NewMeta(Observed),
		AgentID:   agentID,
		ExtentID:  extentID,
		StartTime: start,
		EndTime:   end,
		Intensity: 1.0,
	}, nil
}

// InstantEncounter creates an encounter with zero duration.
func InstantEncounter(agentID, extentID string, at time.Time) *Encounter {
	end := at
	enc, _ := NewEncounter(agentID, extentID, at, &end)
	return enc
}

// OngoingEncounter creates an encounter with no end time.
func OngoingEncounter(agentID, extentID string, startedAt time.Time) *Encounter {
	enc, _ := NewEncounter(agentID, extentID, startedAt, nil)
	return enc
}

// SetIntensity sets the engagement intensity, which must be in [0, 1].
func (e *Encounter) SetIntensity(v float64) error {
	if v < 0 || v > 1 {
		return errors.ConstraintViolationf("encounter intensity %f outside [0, 1]", v)
	}
	e.Intensity = v
	return nil
}

// IsOngoing reports whether the encounter has no end time yet.
func (e *Encounter) IsOngoing() bool { return e.EndTime == nil }

// Duration returns the encounter span, or false while ongoing.
func (e *Encounter) Duration() (time.Duration, bool) {
	if e.EndTime == nil {
		return 0, false
	}
	return e.EndTime.Sub(e.StartTime), true
}

// DurationHours returns the span in hours, or false while ongoing.
func (e *Encounter) DurationHours() (float64, bool) {
	d, ok := e.Duration()
	if !ok {
		return 0, false
	}
	return d.Hours(), true
}

// EffectiveTime is the timestamp derivation uses: the end time when the
// encounter has finished, otherwise the start time.
func (e *Encounter) EffectiveTime() time.Time {
	if e.EndTime != nil {
		return *e.EndTime
	}
	return e.StartTime
}

// Midpoint returns the temporal midpoint, or the start while ongoing.
func (e *Encounter) Midpoint() time.Time {
	if e.EndTime == nil {
		return e.StartTime
	}
	return e.StartTime.Add(e.EndTime.Sub(e.StartTime) / 2)
}

// Interval returns the encounter span as a time interval.
func (e *Encounter) Interval() temporal.Interval {
	return temporal.Interval{Start: &e.StartTime, End: e.EndTime}
}

// Overlaps reports whether two encounters overlap in time.
func (e *Encounter) Overlaps(other *Encounter) bool {
	return e.Interval().Overlaps(other.Interval())
}

// EndAt closes an ongoing encounter. Ending before the start fails.
func (e *Encounter) EndAt(at time.Time) error {
	if at.Before(e.StartTime) {
		return errors.InvalidIntervalf(
			"encounter cannot end %s before it starts %s",
			at.Format(time.RFC3339), e.StartTime.Format(time.RFC3339))
	}
	e.EndTime = &at
	return nil
}

// SetMetadata stores encounter metadata.
func (e *Encounter) SetMetadata(key string, value any) {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	e.Metadata[key] = value
}
