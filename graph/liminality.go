package graph

import (
	"fmt"

	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/uncertainty"
)

// Liminality is the conditional, transitional quality at spatial or
// experiential boundaries: neither fully one thing nor another.
type Liminality struct {
	Meta
	LiminalityType    LiminalityType
	ExtentIDs         []string
	Intensity         float64 // strength of liminal character, [0, 1]
	TransitionalFrom  string
	TransitionalTo    string
	BoundaryFuzziness uncertainty.Membership // nil for the default profile
	Description       string
	Metadata          map[string]any
}

func (*Liminality) Type() NodeType { return NodeTypeLiminality }

// NewLiminality creates a derived liminality node. Intensity must be
// in [0, 1].
func NewLiminality(lt LiminalityType, intensity float64) (*Liminality, error) {
	if intensity < 0 || intensity > 1 {
		return nil, errors.ConstraintViolationf("liminality intensity %f outside [0, 1]", intensity)
	}
	return &Liminality{
		Meta:           NewMeta(Derived),
		LiminalityType: lt,
		Intensity:      intensity,
	}, nil
}

// SpatialBoundary creates a spatial threshold between two kinds of space.
func SpatialBoundary(from, to string, extentIDs []string, intensity float64) (*Liminality, error) {
	lim, err := NewLiminality(LiminalSpatial, intensity)
	if err != nil {
		return nil, err
	}
	lim.ExtentIDs = extentIDs
	lim.TransitionalFrom = from
	lim.TransitionalTo = to
	return lim, nil
}

// IsThreshold reports a strong liminal zone.
func (l *Liminality) IsThreshold() bool { return l.Intensity >= 0.7 }

// IsWeak reports a weak liminal zone.
func (l *Liminality) IsWeak() bool { return l.Intensity < 0.3 }

// TransitionDescription renders the transition in human-readable form.
func (l *Liminality) TransitionDescription() string {
	if l.TransitionalFrom != "" && l.TransitionalTo != "" {
		return fmt.Sprintf("%s -> %s", l.TransitionalFrom, l.TransitionalTo)
	}
	return l.Description
}

// MembershipAt returns liminal membership at a position in the transition,
// where 0 is fully "from" and 1 is fully "to". Without an explicit
// fuzziness profile a triangular profile peaking mid-transition applies,
// scaled by intensity.
func (l *Liminality) MembershipAt(position float64) float64 {
	if l.BoundaryFuzziness != nil {
		return l.BoundaryFuzziness.Membership(position)
	}
	tri, err := uncertainty.NewTriangular(0.0, 0.5, 1.0)
	if err != nil {
		return 0
	}
	return tri.Membership(position) * l.Intensity
}
