package uncertainty

import (
	"github.com/choragraph/chora/errors"
)

// Membership is a fuzzy membership function returning a degree in [0, 1].
type Membership interface {
	Membership(x float64) float64
}

// Triangular is a triangular fuzzy membership function.
type Triangular struct {
	Left  float64 // membership 0
	Peak  float64 // membership 1
	Right float64 // membership 0
}

// NewTriangular requires left <= peak <= right.
func NewTriangular(left, peak, right float64) (Triangular, error) {
	if !(left <= peak && peak <= right) {
		return Triangular{}, errors.Distributionf(
			"triangular shape requires left <= peak <= right, got %f, %f, %f", left, peak, right)
	}
	return Triangular{Left: left, Peak: peak, Right: right}, nil
}

func (f Triangular) Membership(x float64) float64 {
	if x <= f.Left || x >= f.Right {
		return 0
	}
	if x == f.Peak {
		return 1
	}
	if x < f.Peak {
		return (x - f.Left) / (f.Peak - f.Left)
	}
	return (f.Right - x) / (f.Right - f.Peak)
}

// Trapezoidal is a trapezoidal fuzzy membership function with a flat top
// between the shoulders.
type Trapezoidal struct {
	LeftFoot      float64
	LeftShoulder  float64
	RightShoulder float64
	RightFoot     float64
}

// NewTrapezoidal requires the four parameters in ascending order.
func NewTrapezoidal(leftFoot, leftShoulder, rightShoulder, rightFoot float64) (Trapezoidal, error) {
	if !(leftFoot <= leftShoulder && leftShoulder <= rightShoulder && rightShoulder <= rightFoot) {
		return Trapezoidal{}, errors.Distributionf(
			"trapezoidal shape parameters must be ascending, got %f, %f, %f, %f",
			leftFoot, leftShoulder, rightShoulder, rightFoot)
	}
	return Trapezoidal{
		LeftFoot:      leftFoot,
		LeftShoulder:  leftShoulder,
		RightShoulder: rightShoulder,
		RightFoot:     rightFoot,
	}, nil
}

func (f Trapezoidal) Membership(x float64) float64 {
	if x <= f.LeftFoot || x >= f.RightFoot {
		return 0
	}
	if f.LeftShoulder <= x && x <= f.RightShoulder {
		return 1
	}
	if x < f.LeftShoulder {
		return (x - f.LeftFoot) / (f.LeftShoulder - f.LeftFoot)
	}
	return (f.RightFoot - x) / (f.RightFoot - f.RightShoulder)
}
