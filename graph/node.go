package graph

import (
	"time"

	"github.com/google/uuid"

	"github.com/choragraph/chora/provenance"
	"github.com/choragraph/chora/temporal"
	"github.com/choragraph/chora/uncertainty"
)

// Node is implemented by every entity in the platial graph. The set of
// implementations is closed: the unexported marker keeps callers from
// introducing node kinds the edge schema knows nothing about.
type Node interface {
	ID() string
	Type() NodeType
	Level() EpistemicLevel
	ValidAt(t time.Time) bool
	Common() *Meta

	platialNode()
}

// Meta carries the state shared by all node kinds: identity, epistemic
// level, temporal validity, lineage, optional existence uncertainty, and
// free-form properties.
type Meta struct {
	NodeID     string
	Epistemic  EpistemicLevel
	Validity   temporal.Validity
	Lineage    provenance.Chain
	Existence  *uncertainty.Value
	Properties map[string]any
}

// NewMeta builds node metadata with a fresh id and the given epistemic
// level, valid from now.
func NewMeta(level EpistemicLevel) Meta {
	return Meta{
		NodeID:    uuid.NewString(),
		Epistemic: level,
		Validity:  temporal.NewValidity(),
	}
}

func (m *Meta) ID() string            { return m.NodeID }
func (m *Meta) Level() EpistemicLevel { return m.Epistemic }

// ValidAt reports whether the node was valid at t.
func (m *Meta) ValidAt(t time.Time) bool { return m.Validity.IsValidAt(t) }

// Common exposes the shared metadata for generic graph machinery.
func (m *Meta) Common() *Meta { return m }

// Invalidate marks the node as no longer valid from at.
func (m *Meta) Invalidate(at time.Time) { m.Validity.Invalidate(at) }

// AddLineage appends a lineage record to the node's chain.
func (m *Meta) AddLineage(rec provenance.Record) { m.Lineage.Add(rec) }

// SetProperty stores a free-form property.
func (m *Meta) SetProperty(key string, value any) {
	if m.Properties == nil {
		m.Properties = make(map[string]any)
	}
	m.Properties[key] = value
}

// Property returns a free-form property, or nil when unset.
func (m *Meta) Property(key string) any {
	if m.Properties == nil {
		return nil
	}
	return m.Properties[key]
}

func (m *Meta) platialNode() {}

// nodeDict holds the serialised shape shared by all node kinds.
func (m *Meta) serialize(nt NodeType) map[string]any {
	out := map[string]any{
		"id":              m.NodeID,
		"node_type":       string(nt),
		"epistemic_level": string(m.Epistemic),
		"valid_from":      m.Validity.ValidFrom.Format(time.RFC3339Nano),
		"properties":      m.Properties,
	}
	if m.Validity.ValidTo != nil {
		out["valid_to"] = m.Validity.ValidTo.Format(time.RFC3339Nano)
	} else {
		out["valid_to"] = nil
	}
	return out
}

// Serialize renders a node as a generic map for export backends.
func Serialize(n Node) map[string]any {
	return n.Common().serialize(n.Type())
}
