// Package uncertainty provides probabilistic and fuzzy representation of
// uncertainty. Vagueness is modelled, not suppressed.
package uncertainty

import (
	"github.com/choragraph/chora/errors"
)

func validateProbability(value float64, name string) error {
	if value < 0 || value > 1 {
		return errors.InvalidProbabilityf("%s must be in [0, 1], got %f", name, value)
	}
	return nil
}

// ConfidenceInterval is a bounded interval at a given confidence level.
type ConfidenceInterval struct {
	Lower      float64
	Upper      float64
	Confidence float64
}

// NewConfidenceInterval validates bounds and confidence level.
func NewConfidenceInterval(lower, upper, confidence float64) (ConfidenceInterval, error) {
	if lower > upper {
		return ConfidenceInterval{}, errors.Distributionf(
			"lower bound %f exceeds upper bound %f", lower, upper)
	}
	if err := validateProbability(confidence, "confidence level"); err != nil {
		return ConfidenceInterval{}, err
	}
	return ConfidenceInterval{Lower: lower, Upper: upper, Confidence: confidence}, nil
}

// Contains reports whether a value falls within the interval.
func (ci ConfidenceInterval) Contains(value float64) bool {
	return ci.Lower <= value && value <= ci.Upper
}

// Width returns the interval width.
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}

// Midpoint returns the interval midpoint.
func (ci ConfidenceInterval) Midpoint() float64 {
	return (ci.Lower + ci.Upper) / 2
}

// Value is a point estimate with an associated error term.
// The interpretation of Uncertainty depends on context.
type Value struct {
	Value       float64
	Uncertainty float64
}

// NewValue rejects negative uncertainty.
func NewValue(value, uncertainty float64) (Value, error) {
	if uncertainty < 0 {
		return Value{}, errors.Distributionf("uncertainty cannot be negative: %f", uncertainty)
	}
	return Value{Value: value, Uncertainty: uncertainty}, nil
}

// Exact returns a value with zero uncertainty.
func Exact(value float64) Value {
	return Value{Value: value}
}

// AsInterval converts to a ±uncertainty interval at the given confidence.
func (v Value) AsInterval(confidence float64) (ConfidenceInterval, error) {
	return NewConfidenceInterval(v.Value-v.Uncertainty, v.Value+v.Uncertainty, confidence)
}
