// Package temporal implements temporal representation for platial modelling.
// All nodes and edges carry explicit lifetimes; decay and reinforcement
// functions govern familiarity, affect, and practice stability.
package temporal

import (
	"time"

	"github.com/choragraph/chora/errors"
)

// Interval is a time interval with optional open bounds.
// A nil bound means unbounded in that direction. Bounds are inclusive.
type Interval struct {
	Start *time.Time
	End   *time.Time
}

// NewInterval builds an interval and rejects end < start.
func NewInterval(start, end *time.Time) (Interval, error) {
	if start != nil && end != nil && end.Before(*start) {
		return Interval{}, errors.InvalidIntervalf(
			"end time %s precedes start time %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// Instant returns an interval representing a single point in time.
func Instant(at time.Time) Interval {
	t := at
	return Interval{Start: &t, End: &t}
}

// Unbounded returns an interval covering all time.
func Unbounded() Interval {
	return Interval{}
}

// Contains reports whether the timestamp falls within the interval.
func (iv Interval) Contains(at time.Time) bool {
	if iv.Start != nil && at.Before(*iv.Start) {
		return false
	}
	if iv.End != nil && at.After(*iv.End) {
		return false
	}
	return true
}

// Overlaps reports whether two intervals share any instant.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.End != nil && other.Start != nil && iv.End.Before(*other.Start) {
		return false
	}
	if iv.Start != nil && other.End != nil && iv.Start.After(*other.End) {
		return false
	}
	return true
}

// Duration returns the interval length and whether it is bounded.
func (iv Interval) Duration() (time.Duration, bool) {
	if iv.Start == nil || iv.End == nil {
		return 0, false
	}
	return iv.End.Sub(*iv.Start), true
}

// IsBounded reports whether both bounds are defined.
func (iv Interval) IsBounded() bool {
	return iv.Start != nil && iv.End != nil
}

// IsInstant reports whether the interval is a single point in time.
func (iv Interval) IsInstant() bool {
	return iv.Start != nil && iv.End != nil && iv.Start.Equal(*iv.End)
}
