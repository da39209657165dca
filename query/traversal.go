// Package query provides traversal primitives and high-level platial
// queries over the graph. Queries compile down to graph traversals with
// temporal filtering.
package query

import (
	"github.com/choragraph/chora/graph"
)

// Visit is one node reached during traversal, with its BFS depth.
type Visit struct {
	Node  graph.Node
	Depth int
}

// connectedSearchDepth bounds FindConnected's traversal.
const connectedSearchDepth = 10

// TraverseFrom walks the graph breadth-first from startID along outgoing
// edges, up to maxDepth hops. An empty edge type list follows every edge.
// The start node itself is the first visit; an unknown start yields nothing.
func TraverseFrom(g *graph.Graph, startID string, edgeTypes []graph.EdgeType, maxDepth int) []Visit {
	if !g.HasNode(startID) {
		return nil
	}

	visited := map[string]struct{}{startID: {}}
	type item struct {
		id    string
		depth int
	}
	queue := []item{{startID, 0}}
	var visits []Visit

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node, err := g.Node(current.id)
		if err != nil {
			continue
		}
		visits = append(visits, Visit{Node: node, Depth: current.depth})

		if current.depth >= maxDepth {
			continue
		}
		for _, edge := range g.OutgoingEdges(current.id, edgeTypes...) {
			if _, seen := visited[edge.TargetID]; seen {
				continue
			}
			visited[edge.TargetID] = struct{}{}
			queue = append(queue, item{edge.TargetID, current.depth + 1})
		}
	}
	return visits
}

// FindConnected returns the ids of every node reachable from nodeID,
// including nodeID itself.
func FindConnected(g *graph.Graph, nodeID string, edgeTypes []graph.EdgeType) map[string]struct{} {
	connected := make(map[string]struct{})
	for _, visit := range TraverseFrom(g, nodeID, edgeTypes, connectedSearchDepth) {
		connected[visit.Node.ID()] = struct{}{}
	}
	return connected
}

// FindPath returns a shortest path from startID to endID as node ids, or
// nil when no path exists. A node trivially reaches itself.
func FindPath(g *graph.Graph, startID, endID string, edgeTypes []graph.EdgeType) []string {
	if startID == endID {
		if g.HasNode(startID) {
			return []string{startID}
		}
		return nil
	}

	visited := map[string]struct{}{startID: {}}
	type item struct {
		id   string
		path []string
	}
	queue := []item{{startID, []string{startID}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, edge := range g.OutgoingEdges(current.id, edgeTypes...) {
			if edge.TargetID == endID {
				return append(append([]string{}, current.path...), endID)
			}
			if _, seen := visited[edge.TargetID]; seen {
				continue
			}
			visited[edge.TargetID] = struct{}{}
			next := append(append([]string{}, current.path...), edge.TargetID)
			queue = append(queue, item{edge.TargetID, next})
		}
	}
	return nil
}
