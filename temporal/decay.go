package temporal

import (
	"math"
	"time"

	"github.com/choragraph/chora/errors"
)

// DecayFunc computes a decayed value from an initial value and elapsed days.
type DecayFunc func(initial, elapsedDays float64) (float64, error)

const hoursPerDay = 24.0

// ExponentialDecay halves the value every halfLifeDays.
//
//	v(t) = v0 * exp(-ln2 * t / halfLife)
//
// Negative elapsed time and non-positive half-lives are precondition
// violations and fail, never clamp.
func ExponentialDecay(initial, elapsedDays, halfLifeDays float64) (float64, error) {
	if elapsedDays < 0 {
		return 0, errors.DecayComputationf("negative elapsed time: %f days", elapsedDays)
	}
	if halfLifeDays <= 0 {
		return 0, errors.DecayComputationf("half-life must be positive, got %f", halfLifeDays)
	}
	decayConstant := math.Ln2 / halfLifeDays
	return initial * math.Exp(-decayConstant*elapsedDays), nil
}

// LinearDecay subtracts ratePerDay for each elapsed day, clamped at zero.
func LinearDecay(initial, elapsedDays, ratePerDay float64) (float64, error) {
	if elapsedDays < 0 {
		return 0, errors.DecayComputationf("negative elapsed time: %f days", elapsedDays)
	}
	return math.Max(0, initial-ratePerDay*elapsedDays), nil
}

// PowerLawDecay models slower decay over time, as observed in memory research.
//
//	v(t) = v0 / (offset + t)^exponent
func PowerLawDecay(initial, elapsedDays, exponent, offset float64) (float64, error) {
	if elapsedDays < 0 {
		return 0, errors.DecayComputationf("negative elapsed time: %f days", elapsedDays)
	}
	if offset+elapsedDays <= 0 {
		return 0, errors.DecayComputationf("non-positive decay base: offset %f + elapsed %f", offset, elapsedDays)
	}
	return initial / math.Pow(offset+elapsedDays, exponent), nil
}

// LinearReinforcement adds increment, clamped to maximum.
func LinearReinforcement(current, increment, maximum float64) (float64, error) {
	if maximum <= 0 {
		return 0, errors.DecayComputationf("reinforcement maximum must be positive, got %f", maximum)
	}
	return math.Min(maximum, current+increment), nil
}

// SaturatingReinforcement adds increment with diminishing returns as current
// approaches maximum. This is the function familiarity uses.
//
//	new = current + increment * (1 - current/maximum)
func SaturatingReinforcement(current, increment, maximum float64) (float64, error) {
	if maximum <= 0 {
		return 0, errors.DecayComputationf("reinforcement maximum must be positive, got %f", maximum)
	}
	remaining := 1.0 - current/maximum
	return math.Min(maximum, current+increment*remaining), nil
}

// ComputeDecay applies a decay function across a timestamp span.
// end before start is a temporal ordering violation.
func ComputeDecay(initial float64, start, end time.Time, fn DecayFunc) (float64, error) {
	elapsedDays := end.Sub(start).Hours() / hoursPerDay
	if elapsedDays < 0 {
		return 0, errors.TemporalOrderingf(
			"decay span ends %s before it starts %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return fn(initial, elapsedDays)
}
