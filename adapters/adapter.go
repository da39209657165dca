// Package adapters provides storage backends for platial graphs. The
// in-memory adapter is the default; the SQLite adapter persists graphs as
// tagged JSON payloads.
package adapters

import (
	"context"
	"time"

	"github.com/choragraph/chora/graph"
)

// Adapter is the storage contract for platial graphs. Whole graphs are
// saved and loaded by name; node and edge operations address one named
// graph at a time.
type Adapter interface {
	// Connect establishes the backend connection. Operations on an
	// unconnected adapter fail with ErrAdapterNotConnected.
	Connect(ctx context.Context) error
	Close() error

	SaveGraph(ctx context.Context, g *graph.Graph) error
	LoadGraph(ctx context.Context, name string) (*graph.Graph, error)
	DeleteGraph(ctx context.Context, name string) (bool, error)
	ListGraphs(ctx context.Context) ([]string, error)

	PutNode(ctx context.Context, graphName string, n graph.Node) error
	GetNode(ctx context.Context, graphName, nodeID string) (graph.Node, error)
	DeleteNode(ctx context.Context, graphName, nodeID string) (bool, error)

	PutEdge(ctx context.Context, graphName string, e *graph.Edge) error
	GetEdge(ctx context.Context, graphName, edgeID string) (*graph.Edge, error)
	DeleteEdge(ctx context.Context, graphName, edgeID string) (bool, error)

	QueryNodes(ctx context.Context, graphName string, nt graph.NodeType) ([]graph.Node, error)
	QueryEdges(ctx context.Context, graphName string, filter EdgeQuery) ([]*graph.Edge, error)

	// Snapshot loads a graph and restricts it to entities valid at the
	// given instant.
	Snapshot(ctx context.Context, graphName string, at time.Time) (*graph.Graph, error)
}

// EdgeQuery narrows QueryEdges. Zero values leave the corresponding
// dimension unconstrained.
type EdgeQuery struct {
	EdgeType graph.EdgeType
	SourceID string
	TargetID string
}
