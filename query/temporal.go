package query

import (
	"time"

	"github.com/choragraph/chora/graph"
	"github.com/choragraph/chora/temporal"
)

// NodesValidAt returns nodes of type nt valid at t. An empty type matches
// all nodes.
func NodesValidAt(g *graph.Graph, t time.Time, nt graph.NodeType) []graph.Node {
	return g.NodesValidAt(t, nt)
}

// NodesActiveDuring returns nodes of type nt whose validity interval
// overlaps [start, end]. An empty type matches all nodes.
func NodesActiveDuring(g *graph.Graph, start, end time.Time, nt graph.NodeType) ([]graph.Node, error) {
	window, err := temporal.NewInterval(&start, &end)
	if err != nil {
		return nil, err
	}

	var nodes []graph.Node
	for _, node := range g.Nodes() {
		if nt != "" && node.Type() != nt {
			continue
		}
		if node.Common().Validity.Interval().Overlaps(window) {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}
