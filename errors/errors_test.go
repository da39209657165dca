package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrapPreservesSentinel(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestDomainConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{"node not found", NodeNotFound("n1"), ErrNodeNotFound, "n1"},
		{"edge not found", EdgeNotFound("e1"), ErrEdgeNotFound, "e1"},
		{"duplicate node", DuplicateNode("n1"), ErrDuplicateNode, "n1"},
		{"invalid edge", InvalidEdgef("edge %s has no source", "e2"), ErrInvalidEdge, "e2"},
		{"temporal ordering", TemporalOrderingf("encounter precedes last update"), ErrTemporalOrdering, "precedes"},
		{"decay", DecayComputationf("half-life must be positive, got %f", -1.0), ErrDecayComputation, "half-life"},
		{"interval", InvalidIntervalf("end precedes start"), ErrInvalidTimeInterval, "end"},
		{"probability", InvalidProbabilityf("probability %f out of [0,1]", 1.5), ErrInvalidProbability, "1.5"},
		{"distribution", Distributionf("sigma must be positive"), ErrDistribution, "sigma"},
		{"constraint", ConstraintViolationf("intensity out of range"), ErrConstraintViolation, "intensity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.True(t, Is(tt.err, tt.sentinel))
			assert.Contains(t, tt.err.Error(), tt.contains)
		})
	}
}

func TestDomainSentinelsAreDistinct(t *testing.T) {
	err := NodeNotFound("n1")
	assert.False(t, Is(err, ErrEdgeNotFound))
	assert.False(t, Is(err, ErrDuplicateNode))

	wrapped := Wrap(err, "while extracting place")
	assert.True(t, Is(wrapped, ErrNodeNotFound))
}
