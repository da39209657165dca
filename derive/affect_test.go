package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/graph"
)

func TestAttachAffect(t *testing.T) {
	enc := graph.InstantEncounter("alice", "park", time.Now())

	affect, err := AttachAffect(enc, 0.8, 0.3, "self_report", 0.1)
	require.NoError(t, err)

	assert.InDelta(t, 0.8, affect.Valence(), 1e-9)
	assert.InDelta(t, 0.3, affect.Arousal(), 1e-9)
	assert.Equal(t, graph.Observed, affect.Level())
	assert.Equal(t, "calm", affect.Quadrant())

	latest, ok := affect.Lineage.Latest()
	require.True(t, ok)
	assert.Equal(t, "attach_affect", latest.Operator)
}

func TestAttachAffectExternalIsDerived(t *testing.T) {
	enc := graph.InstantEncounter("alice", "park", time.Now())
	affect, err := AttachAffect(enc, -0.4, 0.7, "external", 0.1)
	require.NoError(t, err)
	assert.Equal(t, graph.Derived, affect.Level())
	assert.Equal(t, "distressed", affect.Quadrant())
}

func TestAttachAffectRejectsOutOfRange(t *testing.T) {
	enc := graph.InstantEncounter("alice", "park", time.Now())

	_, err := AttachAffect(enc, 1.5, 0.5, "external", 0.1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConstraintViolation))

	_, err = AttachAffect(enc, 0.5, -0.1, "external", 0.1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConstraintViolation))
}

func TestDeriveAffectFromContextNoContexts(t *testing.T) {
	enc := graph.InstantEncounter("alice", "park", time.Now())
	affect, err := DeriveAffectFromContext(enc, nil)
	require.NoError(t, err)
	assert.Nil(t, affect)
}

func TestDeriveAffectFromContext(t *testing.T) {
	enc := graph.InstantEncounter("alice", "park", time.Now())
	contexts := []*graph.Context{
		graph.PurposiveContext("leisure walk", ""),
		graph.EnvironmentalContext(map[string]any{"weather": "sunny"}, ""),
	}

	affect, err := DeriveAffectFromContext(enc, contexts)
	require.NoError(t, err)
	require.NotNil(t, affect)

	// leisure +0.3 and sunshine +0.2 from the neutral baseline
	assert.InDelta(t, 0.5, affect.Valence(), 1e-9)
	assert.InDelta(t, 0.5, affect.Arousal(), 1e-9)
	assert.Equal(t, "context_derived", affect.SourceType)
	assert.Equal(t, graph.Derived, affect.Level())

	latest, ok := affect.Lineage.Latest()
	require.True(t, ok)
	assert.Len(t, latest.SourceIDs, 3) // encounter + both contexts
}

func TestDeriveAffectFromContextClamps(t *testing.T) {
	enc := graph.InstantEncounter("alice", "park", time.Now())
	contexts := []*graph.Context{
		graph.PurposiveContext("leisure", ""),
		graph.PurposiveContext("recreation", ""),
		graph.PurposiveContext("leisure", ""),
		graph.SocialContext([]string{"b", "c", "d", "e"}, false, ""),
	}

	affect, err := DeriveAffectFromContext(enc, contexts)
	require.NoError(t, err)
	require.NotNil(t, affect)
	assert.LessOrEqual(t, affect.Valence(), 1.0)
}

func TestDeriveAffectCommutingContext(t *testing.T) {
	enc := graph.InstantEncounter("alice", "station", time.Now())
	contexts := []*graph.Context{
		graph.PurposiveContext("commute to work", ""),
		graph.EnvironmentalContext(map[string]any{"weather": "rainy", "crowded": true}, ""),
	}

	affect, err := DeriveAffectFromContext(enc, contexts)
	require.NoError(t, err)
	require.NotNil(t, affect)
	assert.Less(t, affect.Valence(), 0.0)
	assert.Greater(t, affect.Arousal(), 0.5)
}
