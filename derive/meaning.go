package derive

import (
	"fmt"
	"math"

	"github.com/choragraph/chora/graph"
	"github.com/choragraph/chora/provenance"
)

// AttachMeaning creates a meaning node for a place. An empty agentID
// marks a shared meaning.
func AttachMeaning(agentID, extentID, content string, mt graph.MeaningType, symbols []string, strength float64) (*graph.Meaning, error) {
	meaning, err := graph.NewMeaning(mt, agentID, extentID, content, strength)
	if err != nil {
		return nil, err
	}
	meaning.Symbols = symbols
	meaning.AddLineage(provenance.Derived(nil, "attach_meaning",
		map[string]any{"meaning_type": string(mt)}))
	return meaning, nil
}

// DeriveMeaningFromPractices derives meanings from how a place is used.
// Routine use yields a functional meaning; heavy accumulated use yields
// an interpreted personal meaning.
func DeriveMeaningFromPractices(practices []*graph.Practice, agentID, extentID string) ([]*graph.Meaning, error) {
	var meanings []*graph.Meaning

	var dominant *graph.Practice
	totalEncounters := 0
	for _, p := range practices {
		totalEncounters += p.EncounterCount()
		if p.PracticeType != graph.PracticeRoutine {
			continue
		}
		if dominant == nil || p.EncounterCount() > dominant.EncounterCount() {
			dominant = p
		}
	}

	if dominant != nil {
		meaning, err := graph.NewMeaning(graph.MeaningFunctional, agentID, extentID,
			fmt.Sprintf("Regular place for %s", dominant.Name),
			math.Min(1.0, dominant.Regularity))
		if err != nil {
			return nil, err
		}
		meaning.Symbols = []string{"routine", "regular", string(dominant.PracticeType)}
		meaning.AddLineage(provenance.Derived(
			[]string{dominant.ID()}, "derive_meaning_from_practices", nil))
		meanings = append(meanings, meaning)
	}

	if totalEncounters > 20 {
		meaning, err := graph.NewMeaning(graph.MeaningPersonal, agentID, extentID,
			"A significant personal place",
			math.Min(1.0, float64(totalEncounters)/50))
		if err != nil {
			return nil, err
		}
		meaning.Symbols = []string{"familiar", "personal", "significant"}
		sources := make([]string, len(practices))
		for i, p := range practices {
			sources[i] = p.ID()
		}
		meaning.AddLineage(provenance.Derived(sources, "derive_meaning_from_practices",
			map[string]any{"total_encounters": totalEncounters}))
		meanings = append(meanings, meaning)
	}
	return meanings, nil
}
