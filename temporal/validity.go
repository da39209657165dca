package temporal

import (
	"time"

	"github.com/choragraph/chora/errors"
)

// Validity tracks when an entity exists, with creation and modification
// timestamps alongside the validity window. ValidTo == nil means still valid.
type Validity struct {
	CreatedAt  time.Time
	ValidFrom  time.Time
	ValidTo    *time.Time
	ModifiedAt *time.Time
}

// NewValidity returns a validity window opening now.
func NewValidity() Validity {
	now := time.Now()
	return Validity{CreatedAt: now, ValidFrom: now}
}

// NewValidityAt returns a validity window opening at the given instant.
func NewValidityAt(from time.Time) Validity {
	return Validity{CreatedAt: time.Now(), ValidFrom: from}
}

// Check rejects a window whose end precedes its start.
func (v Validity) Check() error {
	if v.ValidTo != nil && v.ValidTo.Before(v.ValidFrom) {
		return errors.InvalidIntervalf(
			"valid_to %s precedes valid_from %s",
			v.ValidTo.Format(time.RFC3339), v.ValidFrom.Format(time.RFC3339))
	}
	return nil
}

// IsValidAt reports whether the window contains the timestamp.
func (v Validity) IsValidAt(at time.Time) bool {
	if at.Before(v.ValidFrom) {
		return false
	}
	if v.ValidTo != nil && at.After(*v.ValidTo) {
		return false
	}
	return true
}

// IsCurrent reports whether the window is open now.
func (v Validity) IsCurrent() bool {
	return v.ValidTo == nil || v.ValidTo.After(time.Now())
}

// Invalidate closes the window at the given instant (now if zero).
func (v *Validity) Invalidate(at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}
	now := time.Now()
	v.ValidTo = &at
	v.ModifiedAt = &now
}

// Touch records a modification time.
func (v *Validity) Touch() {
	now := time.Now()
	v.ModifiedAt = &now
}

// Interval returns the window as an Interval.
func (v Validity) Interval() Interval {
	from := v.ValidFrom
	return Interval{Start: &from, End: v.ValidTo}
}
