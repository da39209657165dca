package graph

import (
	"sync"
	"time"

	"github.com/choragraph/chora/errors"
)

// Graph is the platial graph container. All access is safe for concurrent
// use; mutating operations take the write lock, reads share the read lock.
// Multiple, even conflicting, experiences coexist in one graph.
type Graph struct {
	Name        string
	Description string

	mu          sync.RWMutex
	nodes       map[string]Node
	edges       map[string]*Edge
	nodesByType map[NodeType]map[string]struct{}
	edgesByType map[EdgeType]map[string]struct{}
	outgoing    map[string]map[string]struct{} // node id -> edge ids
	incoming    map[string]map[string]struct{}
}

// New creates an empty platial graph.
func New(name string) *Graph {
	return &Graph{
		Name:        name,
		nodes:       make(map[string]Node),
		edges:       make(map[string]*Edge),
		nodesByType: make(map[NodeType]map[string]struct{}),
		edgesByType: make(map[EdgeType]map[string]struct{}),
		outgoing:    make(map[string]map[string]struct{}),
		incoming:    make(map[string]map[string]struct{}),
	}
}

// AddNode inserts a node, failing on duplicate ids.
func (g *Graph) AddNode(n Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addNodeLocked(n)
}

func (g *Graph) addNodeLocked(n Node) error {
	id := n.ID()
	if _, ok := g.nodes[id]; ok {
		return errors.DuplicateNode(id)
	}
	g.nodes[id] = n
	byType := g.nodesByType[n.Type()]
	if byType == nil {
		byType = make(map[string]struct{})
		g.nodesByType[n.Type()] = byType
	}
	byType[id] = struct{}{}
	return nil
}

// UpsertNode inserts a node, replacing any existing node with the same id
// while leaving incident edges intact.
func (g *Graph) UpsertNode(n Node) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := n.ID()
	if prev, ok := g.nodes[id]; ok && prev.Type() != n.Type() {
		delete(g.nodesByType[prev.Type()], id)
	}
	g.nodes[id] = n
	byType := g.nodesByType[n.Type()]
	if byType == nil {
		byType = make(map[string]struct{})
		g.nodesByType[n.Type()] = byType
	}
	byType[id] = struct{}{}
}

// Node returns a node by id, failing when absent.
func (g *Graph) Node(id string) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, errors.NodeNotFound(id)
	}
	return n, nil
}

// HasNode reports whether a node exists.
func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// RemoveNode removes a node and cascades removal to every incident edge.
func (g *Graph) RemoveNode(id string) (Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, errors.NodeNotFound(id)
	}
	for edgeID := range g.outgoing[id] {
		g.removeEdgeLocked(edgeID)
	}
	for edgeID := range g.incoming[id] {
		g.removeEdgeLocked(edgeID)
	}
	delete(g.nodesByType[n.Type()], id)
	delete(g.nodes, id)
	delete(g.outgoing, id)
	delete(g.incoming, id)
	return n, nil
}

// Nodes returns every node.
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// NodesByType returns every node of the given type.
func (g *Graph) NodesByType(nt NodeType) []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := g.nodesByType[nt]
	out := make([]Node, 0, len(ids))
	for id := range ids {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodesValidAt returns every node of the given type valid at t. A zero
// NodeType matches all types.
func (g *Graph) NodesValidAt(t time.Time, nt NodeType) []Node {
	var candidates []Node
	if nt == "" {
		candidates = g.Nodes()
	} else {
		candidates = g.NodesByType(nt)
	}
	out := candidates[:0]
	for _, n := range candidates {
		if n.ValidAt(t) {
			out = append(out, n)
		}
	}
	return out
}

// AddEdge inserts an edge; both endpoints must already exist.
func (g *Graph) AddEdge(e *Edge) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addEdgeLocked(e)
}

func (g *Graph) addEdgeLocked(e *Edge) error {
	if _, ok := g.nodes[e.SourceID]; !ok {
		return errors.Wrapf(errors.NodeNotFound(e.SourceID), "edge %s source", e.ID)
	}
	if _, ok := g.nodes[e.TargetID]; !ok {
		return errors.Wrapf(errors.NodeNotFound(e.TargetID), "edge %s target", e.ID)
	}
	g.edges[e.ID] = e
	byType := g.edgesByType[e.EdgeType]
	if byType == nil {
		byType = make(map[string]struct{})
		g.edgesByType[e.EdgeType] = byType
	}
	byType[e.ID] = struct{}{}
	if g.outgoing[e.SourceID] == nil {
		g.outgoing[e.SourceID] = make(map[string]struct{})
	}
	g.outgoing[e.SourceID][e.ID] = struct{}{}
	if g.incoming[e.TargetID] == nil {
		g.incoming[e.TargetID] = make(map[string]struct{})
	}
	g.incoming[e.TargetID][e.ID] = struct{}{}
	return nil
}

// Edge returns an edge by id, failing when absent.
func (g *Graph) Edge(id string) (*Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[id]
	if !ok {
		return nil, errors.EdgeNotFound(id)
	}
	return e, nil
}

// HasEdge reports whether an edge exists.
func (g *Graph) HasEdge(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.edges[id]
	return ok
}

// RemoveEdge removes an edge.
func (g *Graph) RemoveEdge(id string) (*Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.edges[id]; !ok {
		return nil, errors.EdgeNotFound(id)
	}
	e := g.edges[id]
	g.removeEdgeLocked(id)
	return e, nil
}

func (g *Graph) removeEdgeLocked(id string) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	delete(g.outgoing[e.SourceID], id)
	delete(g.incoming[e.TargetID], id)
	delete(g.edgesByType[e.EdgeType], id)
	delete(g.edges, id)
}

// Edges returns every edge.
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	return out
}

// EdgesByType returns every edge of the given type.
func (g *Graph) EdgesByType(et EdgeType) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := g.edgesByType[et]
	out := make([]*Edge, 0, len(ids))
	for id := range ids {
		out = append(out, g.edges[id])
	}
	return out
}

// OutgoingEdges returns edges originating from a node, optionally
// filtered by type.
func (g *Graph) OutgoingEdges(nodeID string, types ...EdgeType) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edgeSliceLocked(g.outgoing[nodeID], types)
}

// IncomingEdges returns edges pointing to a node, optionally filtered
// by type.
func (g *Graph) IncomingEdges(nodeID string, types ...EdgeType) []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edgeSliceLocked(g.incoming[nodeID], types)
}

func (g *Graph) edgeSliceLocked(ids map[string]struct{}, types []EdgeType) []*Edge {
	out := make([]*Edge, 0, len(ids))
	for id := range ids {
		e := g.edges[id]
		if len(types) == 0 {
			out = append(out, e)
			continue
		}
		for _, t := range types {
			if e.EdgeType == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Neighbors returns nodes reachable over outgoing edges.
func (g *Graph) Neighbors(nodeID string, types ...EdgeType) []Node {
	edges := g.OutgoingEdges(nodeID, types...)
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, 0, len(edges))
	for _, e := range edges {
		if n, ok := g.nodes[e.TargetID]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Predecessors returns nodes with edges into nodeID.
func (g *Graph) Predecessors(nodeID string, types ...EdgeType) []Node {
	edges := g.IncomingEdges(nodeID, types...)
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, 0, len(edges))
	for _, e := range edges {
		if n, ok := g.nodes[e.SourceID]; ok {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount is the total number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount is the total number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// NodeCountByType counts nodes of one type.
func (g *Graph) NodeCountByType(nt NodeType) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodesByType[nt])
}

// EdgeCountByType counts edges of one type.
func (g *Graph) EdgeCountByType(et EdgeType) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edgesByType[et])
}

// NodeIDs returns the set of all node ids.
func (g *Graph) NodeIDs() map[string]struct{} {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]struct{}, len(g.nodes))
	for id := range g.nodes {
		out[id] = struct{}{}
	}
	return out
}

// Subgraph extracts the induced subgraph over the given node ids: the
// named nodes plus every edge with both endpoints among them. Unknown
// ids are skipped. Nodes and edges are shared, not copied.
func (g *Graph) Subgraph(nodeIDs []string) *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	sub := New("subgraph of " + g.Name)
	keep := make(map[string]struct{}, len(nodeIDs))
	for _, id := range nodeIDs {
		if n, ok := g.nodes[id]; ok {
			keep[id] = struct{}{}
			_ = sub.addNodeLocked(n)
		}
	}
	for _, e := range g.edges {
		_, src := keep[e.SourceID]
		_, dst := keep[e.TargetID]
		if src && dst {
			_ = sub.addEdgeLocked(e)
		}
	}
	return sub
}

// Snapshot extracts the graph as of a timestamp: nodes valid at t plus
// edges valid at t whose endpoints both survive.
func (g *Graph) Snapshot(t time.Time) *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap := New(g.Name + " @ " + t.Format(time.RFC3339))
	valid := make(map[string]struct{})
	for id, n := range g.nodes {
		if n.ValidAt(t) {
			valid[id] = struct{}{}
			_ = snap.addNodeLocked(n)
		}
	}
	for _, e := range g.edges {
		if !e.ValidAt(t) {
			continue
		}
		_, src := valid[e.SourceID]
		_, dst := valid[e.TargetID]
		if src && dst {
			_ = snap.addEdgeLocked(e)
		}
	}
	return snap
}

// Clear removes all nodes and edges.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = make(map[string]Node)
	g.edges = make(map[string]*Edge)
	g.nodesByType = make(map[NodeType]map[string]struct{})
	g.edgesByType = make(map[EdgeType]map[string]struct{})
	g.outgoing = make(map[string]map[string]struct{})
	g.incoming = make(map[string]map[string]struct{})
}
