package graph

import (
	"encoding/json"

	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/uncertainty"
)

// nodeEnvelope tags a serialised node with its concrete kind so storage
// backends can round-trip the closed union.
type nodeEnvelope struct {
	NodeType NodeType        `json:"node_type"`
	Node     json.RawMessage `json:"node"`
}

// EncodeNode serialises a node to JSON, tagged with its kind.
func EncodeNode(n Node) ([]byte, error) {
	raw, err := json.Marshal(n)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s node %s", n.Type(), n.ID())
	}
	return json.Marshal(nodeEnvelope{NodeType: n.Type(), Node: raw})
}

// DecodeNode restores a node encoded by EncodeNode.
func DecodeNode(data []byte) (Node, error) {
	var env nodeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "decoding node envelope")
	}

	var node Node
	switch env.NodeType {
	case NodeTypeAgent:
		node = &Agent{}
	case NodeTypeSpatialExtent:
		node = &SpatialExtent{}
	case NodeTypeEncounter:
		node = &Encounter{}
	case NodeTypeContext:
		node = &Context{}
	case NodeTypePractice:
		node = &Practice{}
	case NodeTypeAffect:
		node = &Affect{}
	case NodeTypeFamiliarity:
		node = &Familiarity{}
	case NodeTypeLiminality:
		node = &Liminality{}
	case NodeTypeMeaning:
		node = &Meaning{}
	default:
		return nil, errors.Mark(
			errors.Newf("unknown node type %q", env.NodeType), errors.ErrSchemaValidation)
	}

	if err := json.Unmarshal(env.Node, node); err != nil {
		return nil, errors.Wrapf(err, "decoding %s node", env.NodeType)
	}
	return node, nil
}

// EncodeEdge serialises an edge to JSON.
func EncodeEdge(e *Edge) ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEdge restores an edge encoded by EncodeEdge.
func DecodeEdge(data []byte) (*Edge, error) {
	var e Edge
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(err, "decoding edge")
	}
	return &e, nil
}

// CloneGraph deep-copies a graph by round-tripping every node and edge
// through the codec.
func CloneGraph(g *Graph) (*Graph, error) {
	clone := New(g.Name)
	clone.Description = g.Description

	for _, n := range g.Nodes() {
		data, err := EncodeNode(n)
		if err != nil {
			return nil, err
		}
		copied, err := DecodeNode(data)
		if err != nil {
			return nil, err
		}
		if err := clone.AddNode(copied); err != nil {
			return nil, err
		}
	}
	for _, e := range g.Edges() {
		data, err := EncodeEdge(e)
		if err != nil {
			return nil, err
		}
		copied, err := DecodeEdge(data)
		if err != nil {
			return nil, err
		}
		if err := clone.AddEdge(copied); err != nil {
			return nil, err
		}
	}
	return clone, nil
}

// geometryEnvelope is the tagged wire form of the Geometry union.
type geometryEnvelope struct {
	Kind string  `json:"kind"`
	Lon  float64 `json:"lon,omitempty"`
	Lat  float64 `json:"lat,omitempty"`
	Rect *Rect   `json:"rect,omitempty"`
}

func encodeGeometry(g Geometry) *geometryEnvelope {
	switch geom := g.(type) {
	case Point:
		return &geometryEnvelope{Kind: "point", Lon: geom.Lon, Lat: geom.Lat}
	case Rect:
		return &geometryEnvelope{Kind: "rect", Rect: &geom}
	case nil:
		return nil
	default:
		// Custom geometries degrade to their bounding box.
		bounds := g.Bounds()
		return &geometryEnvelope{Kind: "rect", Rect: &bounds}
	}
}

func (env *geometryEnvelope) geometry() (Geometry, error) {
	if env == nil {
		return nil, nil
	}
	switch env.Kind {
	case "point":
		return Point{Lon: env.Lon, Lat: env.Lat}, nil
	case "rect":
		if env.Rect == nil {
			return nil, errors.Newf("rect geometry missing bounds")
		}
		return *env.Rect, nil
	}
	return nil, errors.Newf("unknown geometry kind %q", env.Kind)
}

type spatialExtentJSON struct {
	Meta
	Name          string
	Geometry      *geometryEnvelope
	ExtentType    string
	SemanticHints map[string]any
}

func (s *SpatialExtent) MarshalJSON() ([]byte, error) {
	return json.Marshal(spatialExtentJSON{
		Meta:          s.Meta,
		Name:          s.Name,
		Geometry:      encodeGeometry(s.Geometry),
		ExtentType:    s.ExtentType,
		SemanticHints: s.SemanticHints,
	})
}

func (s *SpatialExtent) UnmarshalJSON(data []byte) error {
	var wire spatialExtentJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	geom, err := wire.Geometry.geometry()
	if err != nil {
		return err
	}
	s.Meta = wire.Meta
	s.Name = wire.Name
	s.Geometry = geom
	s.ExtentType = wire.ExtentType
	s.SemanticHints = wire.SemanticHints
	return nil
}

// fuzzyEnvelope is the tagged wire form of fuzzy membership profiles.
type fuzzyEnvelope struct {
	Kind        string                   `json:"kind"`
	Triangular  *uncertainty.Triangular  `json:"triangular,omitempty"`
	Trapezoidal *uncertainty.Trapezoidal `json:"trapezoidal,omitempty"`
}

func encodeMembership(m uncertainty.Membership) *fuzzyEnvelope {
	switch f := m.(type) {
	case uncertainty.Triangular:
		return &fuzzyEnvelope{Kind: "triangular", Triangular: &f}
	case uncertainty.Trapezoidal:
		return &fuzzyEnvelope{Kind: "trapezoidal", Trapezoidal: &f}
	}
	// Unrepresentable profiles fall back to the default at decode time.
	return nil
}

func (env *fuzzyEnvelope) membership() uncertainty.Membership {
	if env == nil {
		return nil
	}
	switch {
	case env.Kind == "triangular" && env.Triangular != nil:
		return *env.Triangular
	case env.Kind == "trapezoidal" && env.Trapezoidal != nil:
		return *env.Trapezoidal
	}
	return nil
}

type liminalityJSON struct {
	Meta
	LiminalityType    LiminalityType
	ExtentIDs         []string
	Intensity         float64
	TransitionalFrom  string
	TransitionalTo    string
	BoundaryFuzziness *fuzzyEnvelope
	Description       string
	Metadata          map[string]any
}

func (l *Liminality) MarshalJSON() ([]byte, error) {
	return json.Marshal(liminalityJSON{
		Meta:              l.Meta,
		LiminalityType:    l.LiminalityType,
		ExtentIDs:         l.ExtentIDs,
		Intensity:         l.Intensity,
		TransitionalFrom:  l.TransitionalFrom,
		TransitionalTo:    l.TransitionalTo,
		BoundaryFuzziness: encodeMembership(l.BoundaryFuzziness),
		Description:       l.Description,
		Metadata:          l.Metadata,
	})
}

func (l *Liminality) UnmarshalJSON(data []byte) error {
	var wire liminalityJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	l.Meta = wire.Meta
	l.LiminalityType = wire.LiminalityType
	l.ExtentIDs = wire.ExtentIDs
	l.Intensity = wire.Intensity
	l.TransitionalFrom = wire.TransitionalFrom
	l.TransitionalTo = wire.TransitionalTo
	l.BoundaryFuzziness = wire.BoundaryFuzziness.membership()
	l.Description = wire.Description
	l.Metadata = wire.Metadata
	return nil
}
