package adapters

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/graph"
)

// defaultGraphName names graphs saved without a name.
const defaultGraphName = "default"

// Memory stores graphs in process memory. Saved graphs are deep-copied,
// so later mutation of the original does not leak into the store. Suited
// to development, tests, and small datasets.
type Memory struct {
	mu        sync.RWMutex
	connected bool
	graphs    map[string]*graph.Graph
}

var _ Adapter = (*Memory)(nil)

// NewMemory creates an unconnected in-memory adapter.
func NewMemory() *Memory {
	return &Memory{graphs: make(map[string]*graph.Graph)}
}

func (m *Memory) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = true
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

// IsConnected reports whether Connect has been called.
func (m *Memory) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

func (m *Memory) checkConnected() error {
	if !m.connected {
		return errors.ErrAdapterNotConnected
	}
	return nil
}

func (m *Memory) SaveGraph(ctx context.Context, g *graph.Graph) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkConnected(); err != nil {
		return err
	}

	name := g.Name
	if name == "" {
		name = defaultGraphName
	}
	clone, err := graph.CloneGraph(g)
	if err != nil {
		return errors.Wrapf(err, "saving graph %q", name)
	}
	clone.Name = name
	m.graphs[name] = clone
	return nil
}

func (m *Memory) LoadGraph(ctx context.Context, name string) (*graph.Graph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkConnected(); err != nil {
		return nil, err
	}

	stored, ok := m.graphs[name]
	if !ok {
		return nil, errors.Mark(errors.Newf("graph %q not found", name), errors.ErrGraphNotFound)
	}
	clone, err := graph.CloneGraph(stored)
	if err != nil {
		return nil, errors.Wrapf(err, "loading graph %q", name)
	}
	return clone, nil
}

func (m *Memory) DeleteGraph(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkConnected(); err != nil {
		return false, err
	}

	if _, ok := m.graphs[name]; !ok {
		return false, nil
	}
	delete(m.graphs, name)
	return true, nil
}

func (m *Memory) ListGraphs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkConnected(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(m.graphs))
	for name := range m.graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) PutNode(ctx context.Context, graphName string, n graph.Node) error {
	g, err := m.stored(graphName, true)
	if err != nil {
		return err
	}
	g.UpsertNode(n)
	return nil
}

func (m *Memory) GetNode(ctx context.Context, graphName, nodeID string) (graph.Node, error) {
	g, err := m.stored(graphName, false)
	if err != nil {
		return nil, err
	}
	return g.Node(nodeID)
}

func (m *Memory) DeleteNode(ctx context.Context, graphName, nodeID string) (bool, error) {
	g, err := m.stored(graphName, false)
	if err != nil {
		if errors.Is(err, errors.ErrGraphNotFound) {
			return false, nil
		}
		return false, err
	}
	if _, err := g.RemoveNode(nodeID); err != nil {
		if errors.Is(err, errors.ErrNodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *Memory) PutEdge(ctx context.Context, graphName string, e *graph.Edge) error {
	g, err := m.stored(graphName, true)
	if err != nil {
		return err
	}
	return g.AddEdge(e)
}

func (m *Memory) GetEdge(ctx context.Context, graphName, edgeID string) (*graph.Edge, error) {
	g, err := m.stored(graphName, false)
	if err != nil {
		return nil, err
	}
	return g.Edge(edgeID)
}

func (m *Memory) DeleteEdge(ctx context.Context, graphName, edgeID string) (bool, error) {
	g, err := m.stored(graphName, false)
	if err != nil {
		if errors.Is(err, errors.ErrGraphNotFound) {
			return false, nil
		}
		return false, err
	}
	if _, err := g.RemoveEdge(edgeID); err != nil {
		if errors.Is(err, errors.ErrEdgeNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *Memory) QueryNodes(ctx context.Context, graphName string, nt graph.NodeType) ([]graph.Node, error) {
	g, err := m.stored(graphName, false)
	if err != nil {
		return nil, err
	}
	if nt == "" {
		return g.Nodes(), nil
	}
	return g.NodesByType(nt), nil
}

func (m *Memory) QueryEdges(ctx context.Context, graphName string, filter EdgeQuery) ([]*graph.Edge, error) {
	g, err := m.stored(graphName, false)
	if err != nil {
		return nil, err
	}

	var candidates []*graph.Edge
	if filter.EdgeType != "" {
		candidates = g.EdgesByType(filter.EdgeType)
	} else {
		candidates = g.Edges()
	}

	var edges []*graph.Edge
	for _, e := range candidates {
		if filter.SourceID != "" && e.SourceID != filter.SourceID {
			continue
		}
		if filter.TargetID != "" && e.TargetID != filter.TargetID {
			continue
		}
		edges = append(edges, e)
	}
	return edges, nil
}

func (m *Memory) Snapshot(ctx context.Context, graphName string, at time.Time) (*graph.Graph, error) {
	g, err := m.stored(graphName, false)
	if err != nil {
		return nil, err
	}
	return g.Snapshot(at), nil
}

// Clear drops every stored graph.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graphs = make(map[string]*graph.Graph)
}

// stored returns the live stored graph, optionally creating it.
func (m *Memory) stored(name string, create bool) (*graph.Graph, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkConnected(); err != nil {
		return nil, err
	}

	if name == "" {
		name = defaultGraphName
	}
	g, ok := m.graphs[name]
	if !ok {
		if !create {
			return nil, errors.Mark(errors.Newf("graph %q not found", name), errors.ErrGraphNotFound)
		}
		g = graph.New(name)
		m.graphs[name] = g
	}
	return g, nil
}
