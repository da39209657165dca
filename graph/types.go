// Package graph implements the typed, temporal, heterogeneous platial graph.
// Nodes carry epistemic status, temporal validity, and lineage; platial
// qualities are primarily encoded on edges. Place is deliberately absent
// from the node taxonomy: it emerges as a subgraph, never as a primitive.
package graph

// NodeType classifies entities in the platial graph.
type NodeType string

const (
	NodeTypeAgent         NodeType = "agent"
	NodeTypeSpatialExtent NodeType = "spatial_extent"
	NodeTypeEncounter     NodeType = "encounter"
	NodeTypeContext       NodeType = "context"
	NodeTypePractice      NodeType = "practice"
	NodeTypeAffect        NodeType = "affect"
	NodeTypeFamiliarity   NodeType = "familiarity"
	NodeTypeLiminality    NodeType = "liminality"
	NodeTypeMeaning       NodeType = "meaning"
)

// NodeTypes lists every node type in a stable order.
func NodeTypes() []NodeType {
	return []NodeType{
		NodeTypeAgent,
		NodeTypeSpatialExtent,
		NodeTypeEncounter,
		NodeTypeContext,
		NodeTypePractice,
		NodeTypeAffect,
		NodeTypeFamiliarity,
		NodeTypeLiminality,
		NodeTypeMeaning,
	}
}

// EdgeType classifies relations between entities.
type EdgeType string

const (
	EdgeParticipatesIn EdgeType = "participates_in" // Agent -> Encounter
	EdgeOccursAt       EdgeType = "occurs_at"       // Encounter -> SpatialExtent
	EdgeHasContext     EdgeType = "has_context"     // Encounter -> Context
	EdgeDerivesFrom    EdgeType = "derives_from"    // Derived entity -> source
	EdgeTransitionsTo  EdgeType = "transitions_to"  // Encounter -> Encounter
	EdgeReinforces     EdgeType = "reinforces"      // Encounter -> Familiarity
	EdgeDecays         EdgeType = "decays"          // time weakening Familiarity
	EdgeExpresses      EdgeType = "expresses"       // Encounter -> Affect
	EdgeInterpretsAs   EdgeType = "interprets_as"   // Agent -> Meaning
	EdgeBelongsTo      EdgeType = "belongs_to"      // Encounter -> Practice
	EdgeBounds         EdgeType = "bounds"          // SpatialExtent -> Liminality
	EdgeCrosses        EdgeType = "crosses"         // Encounter -> Liminality
	EdgeSimilarTo      EdgeType = "similar_to"
	EdgeConflictsWith  EdgeType = "conflicts_with" // Meaning -> Meaning
)

// EpistemicLevel classifies data by epistemic status. Observed, derived,
// and interpreted data stay explicitly distinguished throughout.
type EpistemicLevel string

const (
	Observed    EpistemicLevel = "observed"
	Derived     EpistemicLevel = "derived"
	Interpreted EpistemicLevel = "interpreted"
)

// certaintyOrder: OBSERVED > DERIVED > INTERPRETED.
func (l EpistemicLevel) certaintyOrder() int {
	switch l {
	case Observed:
		return 3
	case Derived:
		return 2
	case Interpreted:
		return 1
	}
	return 0
}

// MoreCertainThan reports whether l carries higher epistemic certainty
// than other.
func (l EpistemicLevel) MoreCertainThan(other EpistemicLevel) bool {
	return l.certaintyOrder() > other.certaintyOrder()
}

// ContextType categorises situational modifiers.
type ContextType string

const (
	ContextTemporal      ContextType = "temporal"
	ContextSocial        ContextType = "social"
	ContextPurposive     ContextType = "purposive"
	ContextEnvironmental ContextType = "environmental"
	ContextEmotional     ContextType = "emotional"
	ContextPhysical      ContextType = "physical"
	ContextCultural      ContextType = "cultural"
)

// PracticeType classifies emergent patterns over encounters.
type PracticeType string

const (
	PracticeRoutine     PracticeType = "routine"
	PracticeHabit       PracticeType = "habit"
	PracticeRitual      PracticeType = "ritual"
	PracticeExploration PracticeType = "exploration"
	PracticeAvoidance   PracticeType = "avoidance"
	PracticeDwelling    PracticeType = "dwelling"
	PracticeTraversal   PracticeType = "traversal"
)

// LiminalityType classifies threshold or transitional qualities.
type LiminalityType string

const (
	LiminalSpatial      LiminalityType = "spatial"
	LiminalTemporal     LiminalityType = "temporal"
	LiminalSocial       LiminalityType = "social"
	LiminalExperiential LiminalityType = "experiential"
	LiminalFunctional   LiminalityType = "functional"
)

// MeaningType classifies symbolic meanings attached to places.
type MeaningType string

const (
	MeaningPersonal   MeaningType = "personal"
	MeaningSocial     MeaningType = "social"
	MeaningCultural   MeaningType = "cultural"
	MeaningSymbolic   MeaningType = "symbolic"
	MeaningFunctional MeaningType = "functional"
	MeaningAesthetic  MeaningType = "aesthetic"
	MeaningSpiritual  MeaningType = "spiritual"
)
