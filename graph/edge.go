package graph

import (
	"time"

	"github.com/google/uuid"

	"github.com/choragraph/chora/provenance"
	"github.com/choragraph/chora/temporal"
	"github.com/choragraph/chora/uncertainty"
)

// Edge connects two nodes and carries the platial qualities: weight,
// uncertainty, lineage, and temporal validity.
type Edge struct {
	ID          string
	SourceID    string
	TargetID    string
	EdgeType    EdgeType
	Weight      float64 // typically in [0, 1], not enforced
	Epistemic   EpistemicLevel
	Validity    temporal.Validity
	Uncertainty *uncertainty.Value
	Lineage     provenance.Chain
	Properties  map[string]any
}

// NewEdge creates an observed edge with unit weight, valid from now.
func NewEdge(sourceID, targetID string, et EdgeType) *Edge {
	return &Edge{
		ID:        uuid.NewString(),
		SourceID:  sourceID,
		TargetID:  targetID,
		EdgeType:  et,
		Weight:    1.0,
		Epistemic: Observed,
		Validity:  temporal.NewValidity(),
	}
}

// ParticipatesIn links an agent to an encounter.
func ParticipatesIn(agentID, encounterID string) *Edge {
	return NewEdge(agentID, encounterID, EdgeParticipatesIn)
}

// OccursAt links an encounter to the extent it occurred at.
func OccursAt(encounterID, extentID string) *Edge {
	return NewEdge(encounterID, extentID, EdgeOccursAt)
}

// HasContext links an encounter to a situational context.
func HasContext(encounterID, contextID string) *Edge {
	return NewEdge(encounterID, contextID, EdgeHasContext)
}

// TransitionsTo links consecutive encounters.
func TransitionsTo(fromEncounterID, toEncounterID string) *Edge {
	return NewEdge(fromEncounterID, toEncounterID, EdgeTransitionsTo)
}

// Expresses links an encounter to an affect it expressed.
func Expresses(encounterID, affectID string) *Edge {
	return NewEdge(encounterID, affectID, EdgeExpresses)
}

// Reinforces links an encounter to the familiarity it strengthened.
func Reinforces(encounterID, familiarityID string) *Edge {
	e := NewEdge(encounterID, familiarityID, EdgeReinforces)
	e.Epistemic = Derived
	return e
}

// BelongsTo links an encounter into a practice.
func BelongsTo(encounterID, practiceID string) *Edge {
	e := NewEdge(encounterID, practiceID, EdgeBelongsTo)
	e.Epistemic = Derived
	return e
}

// Crosses links an encounter to a liminal zone it crossed.
func Crosses(encounterID, liminalityID string) *Edge {
	e := NewEdge(encounterID, liminalityID, EdgeCrosses)
	e.Epistemic = Derived
	return e
}

// InterpretsAs links an agent to a meaning it holds.
func InterpretsAs(agentID, meaningID string) *Edge {
	e := NewEdge(agentID, meaningID, EdgeInterpretsAs)
	e.Epistemic = Interpreted
	return e
}

// BoundsLiminality links an extent to a liminal zone it bounds.
func BoundsLiminality(extentID, liminalityID string) *Edge {
	e := NewEdge(extentID, liminalityID, EdgeBounds)
	e.Epistemic = Derived
	return e
}

// DerivesFrom links a derived entity to one of its sources.
func DerivesFrom(derivedID, sourceID string) *Edge {
	e := NewEdge(derivedID, sourceID, EdgeDerivesFrom)
	e.Epistemic = Derived
	return e
}

// MeaningConflict links two conflicting meanings.
func MeaningConflict(meaningID, otherID string) *Edge {
	e := NewEdge(meaningID, otherID, EdgeConflictsWith)
	e.Epistemic = Interpreted
	return e
}

// ValidAt reports whether the edge was valid at t.
func (e *Edge) ValidAt(t time.Time) bool { return e.Validity.IsValidAt(t) }

// WeightedValue is the weight discounted by uncertainty when present.
func (e *Edge) WeightedValue() float64 {
	if e.Uncertainty != nil {
		return e.Weight * (1.0 - e.Uncertainty.Uncertainty)
	}
	return e.Weight
}

// UpdateWeight replaces the edge weight and touches the modification time.
func (e *Edge) UpdateWeight(weight float64, unc *uncertainty.Value) {
	e.Weight = weight
	if unc != nil {
		e.Uncertainty = unc
	}
	e.Validity.Touch()
}

// Invalidate marks the edge as no longer valid from at.
func (e *Edge) Invalidate(at time.Time) { e.Validity.Invalidate(at) }

// SerializeEdge renders an edge as a generic map for export backends.
func SerializeEdge(e *Edge) map[string]any {
	out := map[string]any{
		"id":              e.ID,
		"source_id":       e.SourceID,
		"target_id":       e.TargetID,
		"edge_type":       string(e.EdgeType),
		"weight":          e.Weight,
		"epistemic_level": string(e.Epistemic),
		"valid_from":      e.Validity.ValidFrom.Format(time.RFC3339Nano),
		"properties":      e.Properties,
	}
	if e.Validity.ValidTo != nil {
		out["valid_to"] = e.Validity.ValidTo.Format(time.RFC3339Nano)
	} else {
		out["valid_to"] = nil
	}
	return out
}
