package graph

import (
	"github.com/choragraph/chora/uncertainty"
)

// AffectState is a multi-dimensional affect representation following
// dimensional models of emotion: Russell's circumplex plus optional PAD
// and place-specific dimensions. Each dimension keeps its uncertainty.
type AffectState struct {
	Valence   uncertainty.Value
	Arousal   uncertainty.Value
	Dominance *uncertainty.Value
	Safety    *uncertainty.Value
	Belonging *uncertainty.Value
}

// IsPositive reports whether valence is above neutral.
func (s AffectState) IsPositive() bool { return s.Valence.Value > 0 }

// IsHighArousal reports whether arousal exceeds the activation midpoint.
func (s AffectState) IsHighArousal() bool { return s.Arousal.Value > 0.5 }

// Dimensions returns the set dimensions as a flat value map.
func (s AffectState) Dimensions() map[string]float64 {
	out := map[string]float64{
		"valence": s.Valence.Value,
		"arousal": s.Arousal.Value,
	}
	if s.Dominance != nil {
		out["dominance"] = s.Dominance.Value
	}
	if s.Safety != nil {
		out["safety"] = s.Safety.Value
	}
	if s.Belonging != nil {
		out["belonging"] = s.Belonging.Value
	}
	return out
}

// Affect is an experiential response attached to an encounter or place,
// modelled with uncertainty to preserve variability of feeling.
type Affect struct {
	Meta
	State       AffectState
	SourceType  string // "self_report", "derived", ...
	Intensity   float64
	Description string
	Metadata    map[string]any
}

func (*Affect) Type() NodeType { return NodeTypeAffect }

// NewAffect creates an affect node with the given state.
func NewAffect(state AffectState, sourceType string) *Affect {
	level := Derived
	if sourceType == "self_report" {
		level = Observed
	}
	return &Affect{
		Meta:       NewMeta(level),
		State:      state,
		SourceType: sourceType,
		Intensity:  1.0,
	}
}

// PositiveAffect creates a positive affect at the given valence intensity.
func PositiveAffect(intensity, arousal float64) *Affect {
	return NewAffect(AffectState{
		Valence: uncertainty.Value{Value: intensity, Uncertainty: 0.1},
		Arousal: uncertainty.Value{Value: arousal, Uncertainty: 0.1},
	}, "derived")
}

// NegativeAffect creates a negative affect at the given valence intensity.
func NegativeAffect(intensity, arousal float64) *Affect {
	return NewAffect(AffectState{
		Valence: uncertainty.Value{Value: -intensity, Uncertainty: 0.1},
		Arousal: uncertainty.Value{Value: arousal, Uncertainty: 0.1},
	}, "derived")
}

// NeutralAffect creates a neutral affect.
func NeutralAffect() *Affect {
	return NewAffect(AffectState{
		Valence: uncertainty.Value{Value: 0.0, Uncertainty: 0.05},
		Arousal: uncertainty.Value{Value: 0.5, Uncertainty: 0.05},
	}, "derived")
}

// Valence is the felt positivity of the affect.
func (a *Affect) Valence() float64 { return a.State.Valence.Value }

// Arousal is the activation level of the affect.
func (a *Affect) Arousal() float64 { return a.State.Arousal.Value }

// Quadrant places the affect in Russell's circumplex.
func (a *Affect) Quadrant() string {
	positive := a.Valence() >= 0
	high := a.Arousal() >= 0.5
	switch {
	case positive && high:
		return "excited"
	case positive:
		return "calm"
	case high:
		return "distressed"
	default:
		return "depressed"
	}
}
