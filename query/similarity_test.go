package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choragraph/chora/derive"
	"github.com/choragraph/chora/graph"
)

func TestPlaceSimilarityIdentical(t *testing.T) {
	p := &derive.EmergentPlace{
		ExtentID:          "x",
		FamiliarityScore:  0.7,
		AffectValenceMean: 0.3,
		MeaningCount:      2,
		EncounterCount:    8,
	}
	assert.InDelta(t, 1.0, PlaceSimilarity(p, p), 1e-9)
}

func TestPlaceSimilarityWeights(t *testing.T) {
	a := &derive.EmergentPlace{FamiliarityScore: 0.8, AffectValenceMean: 0.5, MeaningCount: 2, EncounterCount: 10}
	b := &derive.EmergentPlace{FamiliarityScore: 0.4, AffectValenceMean: -0.5, MeaningCount: 1, EncounterCount: 10}

	// 0.3*0.6 + 0.3*0.5 + 0.2*1 + 0.2*0.5
	assert.InDelta(t, 0.63, PlaceSimilarity(a, b), 1e-9)
}

func TestPlaceSimilarityNoEncounters(t *testing.T) {
	a := &derive.EmergentPlace{MeaningCount: 1}
	b := &derive.EmergentPlace{MeaningCount: 1, EncounterCount: 5}

	// Only one side has encounters, so volume contributes nothing.
	assert.InDelta(t, 0.8, PlaceSimilarity(a, b), 1e-9)
}

func TestPracticeSimilarity(t *testing.T) {
	a, err := graph.NewPractice(graph.PracticeRoutine, "a", 0.8, 0.5)
	require.NoError(t, err)
	a.Frequency = 0.5
	b, err := graph.NewPractice(graph.PracticeRoutine, "b", 0.6, 0.5)
	require.NoError(t, err)
	b.Frequency = 0.25

	// 0.4 + 0.3*0.8 + 0.3*0.5
	assert.InDelta(t, 0.79, PracticeSimilarity(a, b), 1e-9)
	assert.InDelta(t, PracticeSimilarity(a, b), PracticeSimilarity(b, a), 1e-9)
}
