package viz

import (
	"fmt"
	"sort"
	"time"

	"github.com/choragraph/chora/graph"
)

// nodeColors assigns a stable hex color to each platial node kind.
var nodeColors = map[graph.NodeType]string{
	graph.NodeTypeAgent:         "#e06c75",
	graph.NodeTypeSpatialExtent: "#98c379",
	graph.NodeTypeEncounter:     "#61afef",
	graph.NodeTypeContext:       "#56b6c2",
	graph.NodeTypePractice:      "#c678dd",
	graph.NodeTypeAffect:        "#e5c07b",
	graph.NodeTypeFamiliarity:   "#d19a66",
	graph.NodeTypeLiminality:    "#abb2bf",
	graph.NodeTypeMeaning:       "#be5046",
}

// typeDisplayNames maps node kinds to human-readable labels.
var typeDisplayNames = map[graph.NodeType]string{
	graph.NodeTypeAgent:         "Agent",
	graph.NodeTypeSpatialExtent: "Spatial Extent",
	graph.NodeTypeEncounter:     "Encounter",
	graph.NodeTypeContext:       "Context",
	graph.NodeTypePractice:      "Practice",
	graph.NodeTypeAffect:        "Affect",
	graph.NodeTypeFamiliarity:   "Familiarity",
	graph.NodeTypeLiminality:    "Liminality",
	graph.NodeTypeMeaning:       "Meaning",
}

// BuildGraph converts a platial graph into the D3 visualization structure.
// Nodes are sorted by id and links by (source, target, type) so repeated
// builds of the same graph are byte-identical.
func BuildGraph(g *graph.Graph, description string) *Graph {
	out := &Graph{
		Nodes: []Node{},
		Links: []Link{},
		Meta: Meta{
			GeneratedAt: time.Now(),
			Config: map[string]string{
				"graph":       g.Name,
				"description": description,
			},
		},
	}

	groups := make(map[graph.NodeType]int)
	for i, nt := range graph.NodeTypes() {
		groups[nt] = i
	}

	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, Node{
			ID:      n.ID(),
			Type:    string(n.Type()),
			Label:   nodeLabel(n),
			Level:   string(n.Level()),
			Visible: true,
			Group:   groups[n.Type()],
		})
	}
	sort.Slice(out.Nodes, func(i, j int) bool { return out.Nodes[i].ID < out.Nodes[j].ID })

	for _, e := range g.Edges() {
		out.Links = append(out.Links, Link{
			Source: e.SourceID,
			Target: e.TargetID,
			Type:   string(e.EdgeType),
			Weight: e.Weight,
			Label:  string(e.EdgeType),
		})
	}
	sort.Slice(out.Links, func(i, j int) bool {
		a, b := out.Links[i], out.Links[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Type < b.Type
	})

	for _, nt := range graph.NodeTypes() {
		count := g.NodeCountByType(nt)
		if count == 0 {
			continue
		}
		out.Meta.NodeTypes = append(out.Meta.NodeTypes, NodeTypeInfo{
			Type:  string(nt),
			Label: typeDisplayNames[nt],
			Color: nodeColors[nt],
			Count: count,
		})
	}

	out.Meta.Stats = Stats{
		TotalNodes: len(out.Nodes),
		TotalEdges: len(out.Links),
	}
	return out
}

// nodeLabel picks a display label appropriate to each node kind.
func nodeLabel(n graph.Node) string {
	switch node := n.(type) {
	case *graph.Agent:
		return node.DisplayName()
	case *graph.SpatialExtent:
		return node.Name
	case *graph.Encounter:
		if node.Activity != "" {
			return node.Activity
		}
		return "encounter " + node.StartTime.Format("2006-01-02 15:04")
	case *graph.Context:
		if node.Description != "" {
			return node.Description
		}
		return string(node.ContextType) + " context"
	case *graph.Practice:
		return node.Name
	case *graph.Affect:
		return node.Quadrant()
	case *graph.Familiarity:
		return fmt.Sprintf("familiarity %.2f", node.Value)
	case *graph.Liminality:
		return node.TransitionDescription()
	case *graph.Meaning:
		return node.Content
	}
	return n.ID()
}
