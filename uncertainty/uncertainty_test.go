package uncertainty

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choragraph/chora/errors"
)

func TestNewValue(t *testing.T) {
	v, err := NewValue(0.75, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.75, v.Value)

	_, err = NewValue(0.5, -0.1)
	require.Error(t, err)
}

func TestValueAsInterval(t *testing.T) {
	v, err := NewValue(0.75, 0.1)
	require.NoError(t, err)

	ci, err := v.AsInterval(0.95)
	require.NoError(t, err)
	assert.InDelta(t, 0.65, ci.Lower, 1e-9)
	assert.InDelta(t, 0.85, ci.Upper, 1e-9)
	assert.True(t, ci.Contains(0.75))
	assert.False(t, ci.Contains(0.9))
	assert.InDelta(t, 0.2, ci.Width(), 1e-9)
	assert.InDelta(t, 0.75, ci.Midpoint(), 1e-9)
}

func TestConfidenceIntervalValidation(t *testing.T) {
	_, err := NewConfidenceInterval(1.0, 0.5, 0.95)
	require.Error(t, err)

	_, err = NewConfidenceInterval(0.0, 1.0, 1.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidProbability))
}

func TestGaussian(t *testing.T) {
	g, err := NewGaussian(0, 1)
	require.NoError(t, err)

	// Standard normal peaks at 1/sqrt(2*pi)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), g.PDF(0), 1e-9)
	assert.Equal(t, 0.0, g.Mean())
	assert.Equal(t, 1.0, g.Variance())

	ci := g.ConfidenceInterval(0.95)
	assert.InDelta(t, -1.96, ci.Lower, 1e-9)
	assert.InDelta(t, 1.96, ci.Upper, 1e-9)
}

func TestGaussianRejectsBadSigma(t *testing.T) {
	_, err := NewGaussian(0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDistribution))
	_, err = NewGaussian(0, -1)
	require.Error(t, err)
}

func TestCategorical(t *testing.T) {
	c, err := NewCategorical([]string{"street", "park", "plaza"}, []float64{0.5, 0.3, 0.2})
	require.NoError(t, err)

	assert.Equal(t, 0.5, c.Probability("street"))
	assert.Equal(t, 0.0, c.Probability("unknown"))
	assert.Equal(t, "street", c.Mode())
	assert.Greater(t, c.Entropy(), 0.0)
}

func TestCategoricalValidation(t *testing.T) {
	_, err := NewCategorical([]string{"a", "b"}, []float64{0.5})
	require.Error(t, err)

	_, err = NewCategorical([]string{"a", "b"}, []float64{0.7, 0.7})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDistribution))

	_, err = NewCategorical([]string{"a"}, []float64{1.5})
	require.Error(t, err)

	// Within 1e-6 tolerance passes
	_, err = NewCategorical([]string{"a", "b"}, []float64{0.5000001, 0.4999998})
	require.NoError(t, err)
}

func TestCategoricalSample(t *testing.T) {
	c, err := NewCategorical([]string{"only"}, []float64{1.0})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))
	assert.Equal(t, "only", c.Sample(rng))
}

func TestTriangularMembership(t *testing.T) {
	f, err := NewTriangular(0, 0.5, 1)
	require.NoError(t, err)

	assert.Equal(t, 0.0, f.Membership(-0.1))
	assert.Equal(t, 0.0, f.Membership(0))
	assert.Equal(t, 1.0, f.Membership(0.5))
	assert.InDelta(t, 0.5, f.Membership(0.25), 1e-9)
	assert.InDelta(t, 0.5, f.Membership(0.75), 1e-9)
	assert.Equal(t, 0.0, f.Membership(1.2))
}

func TestTriangularRejectsBadShape(t *testing.T) {
	_, err := NewTriangular(1, 0.5, 0)
	require.Error(t, err)
}

func TestTrapezoidalMembership(t *testing.T) {
	f, err := NewTrapezoidal(0, 0.25, 0.75, 1)
	require.NoError(t, err)

	assert.Equal(t, 0.0, f.Membership(0))
	assert.InDelta(t, 0.5, f.Membership(0.125), 1e-9)
	assert.Equal(t, 1.0, f.Membership(0.5))
	assert.Equal(t, 1.0, f.Membership(0.25))
	assert.InDelta(t, 0.5, f.Membership(0.875), 1e-9)
	assert.Equal(t, 0.0, f.Membership(1))
}

func TestTrapezoidalRejectsBadShape(t *testing.T) {
	_, err := NewTrapezoidal(0, 0.8, 0.2, 1)
	require.Error(t, err)
}
