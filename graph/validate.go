package graph

import (
	"fmt"
)

// schemaTriple is a (source type, edge type, target type) constraint.
type schemaTriple struct {
	Source NodeType
	Edge   EdgeType
	Target NodeType
}

// validEdgeSchema enumerates the expected edge shapes. The schema is
// advisory: off-schema edges raise warnings, not errors, so the graph
// stays open to relations the taxonomy has not caught up with.
var validEdgeSchema = map[schemaTriple]struct{}{
	{NodeTypeAgent, EdgeParticipatesIn, NodeTypeEncounter}:    {},
	{NodeTypeEncounter, EdgeOccursAt, NodeTypeSpatialExtent}:  {},
	{NodeTypeEncounter, EdgeHasContext, NodeTypeContext}:      {},
	{NodeTypeEncounter, EdgeTransitionsTo, NodeTypeEncounter}: {},
	{NodeTypeEncounter, EdgeExpresses, NodeTypeAffect}:        {},
	{NodeTypeEncounter, EdgeReinforces, NodeTypeFamiliarity}:  {},
	{NodeTypeEncounter, EdgeBelongsTo, NodeTypePractice}:      {},
	{NodeTypeEncounter, EdgeCrosses, NodeTypeLiminality}:      {},
	{NodeTypeAgent, EdgeInterpretsAs, NodeTypeMeaning}:        {},
	{NodeTypeSpatialExtent, EdgeBounds, NodeTypeLiminality}:   {},
	{NodeTypeFamiliarity, EdgeDerivesFrom, NodeTypeEncounter}: {},
	{NodeTypePractice, EdgeDerivesFrom, NodeTypeEncounter}:    {},
	{NodeTypeAffect, EdgeDerivesFrom, NodeTypeEncounter}:      {},
	{NodeTypeMeaning, EdgeDerivesFrom, NodeTypeEncounter}:     {},
	{NodeTypeMeaning, EdgeConflictsWith, NodeTypeMeaning}:     {},
	{NodeTypeMeaning, EdgeSimilarTo, NodeTypeMeaning}:         {},
}

// ValidationResult collects errors and warnings from validation passes.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were recorded.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

func (r *ValidationResult) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Merge folds another result into this one.
func (r *ValidationResult) Merge(other *ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// ValidateNode checks a node's structural invariants: non-empty id,
// known type, consistent temporal validity.
func ValidateNode(n Node) *ValidationResult {
	result := &ValidationResult{}
	meta := n.Common()
	if meta.NodeID == "" {
		result.AddError("node has empty id")
	}
	if n.Type() == "" {
		result.AddError("node %s has no type", meta.NodeID)
	}
	if err := meta.Validity.Check(); err != nil {
		result.AddError("node %s: %v", meta.NodeID, err)
	}
	return result
}

// ValidateEdge checks an edge against the graph: endpoints must exist,
// and the (source, edge, target) triple is compared to the schema.
// Schema misses are warnings.
func ValidateEdge(e *Edge, g *Graph) *ValidationResult {
	result := &ValidationResult{}

	source, srcErr := g.Node(e.SourceID)
	if srcErr != nil {
		result.AddError("edge %s: source node %s not found", e.ID, e.SourceID)
	}
	target, dstErr := g.Node(e.TargetID)
	if dstErr != nil {
		result.AddError("edge %s: target node %s not found", e.ID, e.TargetID)
	}
	if srcErr != nil || dstErr != nil {
		return result
	}

	triple := schemaTriple{source.Type(), e.EdgeType, target.Type()}
	if _, ok := validEdgeSchema[triple]; !ok {
		result.AddWarning("edge %s: unusual schema %s --[%s]--> %s",
			e.ID, source.Type(), e.EdgeType, target.Type())
	}
	return result
}

// ValidateGraph validates every node and edge. With strict set, schema
// warnings escalate to errors.
func ValidateGraph(g *Graph, strict bool) *ValidationResult {
	result := &ValidationResult{}
	for _, n := range g.Nodes() {
		result.Merge(ValidateNode(n))
	}
	for _, e := range g.Edges() {
		edgeResult := ValidateEdge(e, g)
		if strict {
			edgeResult.Errors = append(edgeResult.Errors, edgeResult.Warnings...)
			edgeResult.Warnings = nil
		}
		result.Merge(edgeResult)
	}
	return result
}

// Rule is a custom validation pass over a graph.
type Rule func(g *Graph) *ValidationResult

// Validator runs the structural checks plus any registered custom rules.
type Validator struct {
	Strict bool
	rules  []Rule
}

// AddRule registers a custom validation rule.
func (v *Validator) AddRule(rule Rule) {
	v.rules = append(v.rules, rule)
}

// Validate runs structural validation and all custom rules.
func (v *Validator) Validate(g *Graph) *ValidationResult {
	result := ValidateGraph(g, v.Strict)
	for _, rule := range v.rules {
		result.Merge(rule(g))
	}
	return result
}
