package adapters

import (
	"context"
	"database/sql"
	"time"

	"github.com/choragraph/chora/db"
	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/graph"
	"github.com/choragraph/chora/logger"
)

// SQLite persists graphs in a SQLite database. Nodes and edges are stored
// as tagged JSON payloads keyed by graph name; the schema lives in the db
// package's embedded migrations.
type SQLite struct {
	path string
	conn *sql.DB
}

var _ Adapter = (*SQLite)(nil)

// NewSQLite creates an unconnected SQLite adapter for the given database
// path. Use ":memory:" for an ephemeral database.
func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

// Connect opens the database and runs pending migrations.
func (s *SQLite) Connect(ctx context.Context) error {
	if s.conn != nil {
		return nil
	}
	conn, err := db.OpenWithMigrations(s.path, logger.Logger)
	if err != nil {
		return errors.Mark(err, errors.ErrAdapter)
	}
	s.conn = conn
	return nil
}

func (s *SQLite) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *SQLite) checkConnected() error {
	if s.conn == nil {
		return errors.ErrAdapterNotConnected
	}
	return nil
}

// SaveGraph replaces the stored copy of the graph wholesale in one
// transaction.
func (s *SQLite) SaveGraph(ctx context.Context, g *graph.Graph) error {
	if err := s.checkConnected(); err != nil {
		return err
	}

	name := g.Name
	if name == "" {
		name = defaultGraphName
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin save")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO graphs (name, description, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET description = excluded.description, updated_at = CURRENT_TIMESTAMP`,
		name, g.Description); err != nil {
		return errors.Wrapf(err, "upsert graph %q", name)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM nodes WHERE graph_name = ?", name); err != nil {
		return errors.Wrap(err, "clear nodes")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM edges WHERE graph_name = ?", name); err != nil {
		return errors.Wrap(err, "clear edges")
	}

	for _, n := range g.Nodes() {
		if err := insertNode(ctx, tx, name, n); err != nil {
			return err
		}
	}
	for _, e := range g.Edges() {
		if err := insertEdge(ctx, tx, name, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit graph %q", name)
	}
	logger.Logger.Debugw("Graph saved",
		"graph", name,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
	)
	return nil
}

func (s *SQLite) LoadGraph(ctx context.Context, name string) (*graph.Graph, error) {
	if err := s.checkConnected(); err != nil {
		return nil, err
	}

	var description string
	err := s.conn.QueryRowContext(ctx,
		"SELECT description FROM graphs WHERE name = ?", name).Scan(&description)
	if err == sql.ErrNoRows {
		return nil, errors.Mark(errors.Newf("graph %q not found", name), errors.ErrGraphNotFound)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load graph %q", name)
	}

	g := graph.New(name)
	g.Description = description

	rows, err := s.conn.QueryContext(ctx,
		"SELECT payload FROM nodes WHERE graph_name = ?", name)
	if err != nil {
		return nil, errors.Wrap(err, "load nodes")
	}
	defer rows.Close()
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.Wrap(err, "scan node")
		}
		n, err := graph.DecodeNode(payload)
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate nodes")
	}

	edgeRows, err := s.conn.QueryContext(ctx,
		"SELECT payload FROM edges WHERE graph_name = ?", name)
	if err != nil {
		return nil, errors.Wrap(err, "load edges")
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var payload []byte
		if err := edgeRows.Scan(&payload); err != nil {
			return nil, errors.Wrap(err, "scan edge")
		}
		e, err := graph.DecodeEdge(payload)
		if err != nil {
			return nil, err
		}
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	if err := edgeRows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate edges")
	}
	return g, nil
}

func (s *SQLite) DeleteGraph(ctx context.Context, name string) (bool, error) {
	if err := s.checkConnected(); err != nil {
		return false, err
	}
	res, err := s.conn.ExecContext(ctx, "DELETE FROM graphs WHERE name = ?", name)
	if err != nil {
		return false, errors.Wrapf(err, "delete graph %q", name)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return affected > 0, nil
}

func (s *SQLite) ListGraphs(ctx context.Context) ([]string, error) {
	if err := s.checkConnected(); err != nil {
		return nil, err
	}
	rows, err := s.conn.QueryContext(ctx, "SELECT name FROM graphs ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(err, "list graphs")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "scan graph name")
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLite) PutNode(ctx context.Context, graphName string, n graph.Node) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	if err := s.ensureGraph(ctx, graphName); err != nil {
		return err
	}
	return insertNode(ctx, s.conn, graphName, n)
}

func (s *SQLite) GetNode(ctx context.Context, graphName, nodeID string) (graph.Node, error) {
	if err := s.checkConnected(); err != nil {
		return nil, err
	}
	var payload []byte
	err := s.conn.QueryRowContext(ctx,
		"SELECT payload FROM nodes WHERE graph_name = ? AND id = ?", graphName, nodeID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.NodeNotFound(nodeID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get node %s", nodeID)
	}
	return graph.DecodeNode(payload)
}

func (s *SQLite) DeleteNode(ctx context.Context, graphName, nodeID string) (bool, error) {
	if err := s.checkConnected(); err != nil {
		return false, err
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, errors.Wrap(err, "begin delete")
	}
	defer tx.Rollback()

	// Removing a node also removes its incident edges.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM edges WHERE graph_name = ? AND (source_id = ? OR target_id = ?)",
		graphName, nodeID, nodeID); err != nil {
		return false, errors.Wrap(err, "delete incident edges")
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM nodes WHERE graph_name = ? AND id = ?", graphName, nodeID)
	if err != nil {
		return false, errors.Wrapf(err, "delete node %s", nodeID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	if err := tx.Commit(); err != nil {
		return false, errors.Wrap(err, "commit delete")
	}
	return affected > 0, nil
}

func (s *SQLite) PutEdge(ctx context.Context, graphName string, e *graph.Edge) error {
	if err := s.checkConnected(); err != nil {
		return err
	}
	if err := s.ensureGraph(ctx, graphName); err != nil {
		return err
	}
	return insertEdge(ctx, s.conn, graphName, e)
}

func (s *SQLite) GetEdge(ctx context.Context, graphName, edgeID string) (*graph.Edge, error) {
	if err := s.checkConnected(); err != nil {
		return nil, err
	}
	var payload []byte
	err := s.conn.QueryRowContext(ctx,
		"SELECT payload FROM edges WHERE graph_name = ? AND id = ?", graphName, edgeID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.EdgeNotFound(edgeID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get edge %s", edgeID)
	}
	return graph.DecodeEdge(payload)
}

func (s *SQLite) DeleteEdge(ctx context.Context, graphName, edgeID string) (bool, error) {
	if err := s.checkConnected(); err != nil {
		return false, err
	}
	res, err := s.conn.ExecContext(ctx,
		"DELETE FROM edges WHERE graph_name = ? AND id = ?", graphName, edgeID)
	if err != nil {
		return false, errors.Wrapf(err, "delete edge %s", edgeID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return affected > 0, nil
}

func (s *SQLite) QueryNodes(ctx context.Context, graphName string, nt graph.NodeType) ([]graph.Node, error) {
	if err := s.checkConnected(); err != nil {
		return nil, err
	}

	query := "SELECT payload FROM nodes WHERE graph_name = ?"
	args := []any{graphName}
	if nt != "" {
		query += " AND node_type = ?"
		args = append(args, string(nt))
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query nodes")
	}
	defer rows.Close()

	var nodes []graph.Node
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.Wrap(err, "scan node")
		}
		n, err := graph.DecodeNode(payload)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

func (s *SQLite) QueryEdges(ctx context.Context, graphName string, filter EdgeQuery) ([]*graph.Edge, error) {
	if err := s.checkConnected(); err != nil {
		return nil, err
	}

	query := "SELECT payload FROM edges WHERE graph_name = ?"
	args := []any{graphName}
	if filter.EdgeType != "" {
		query += " AND edge_type = ?"
		args = append(args, string(filter.EdgeType))
	}
	if filter.SourceID != "" {
		query += " AND source_id = ?"
		args = append(args, filter.SourceID)
	}
	if filter.TargetID != "" {
		query += " AND target_id = ?"
		args = append(args, filter.TargetID)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query edges")
	}
	defer rows.Close()

	var edges []*graph.Edge
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.Wrap(err, "scan edge")
		}
		e, err := graph.DecodeEdge(payload)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

func (s *SQLite) Snapshot(ctx context.Context, graphName string, at time.Time) (*graph.Graph, error) {
	g, err := s.LoadGraph(ctx, graphName)
	if err != nil {
		return nil, err
	}
	return g.Snapshot(at), nil
}

func (s *SQLite) ensureGraph(ctx context.Context, name string) error {
	_, err := s.conn.ExecContext(ctx,
		"INSERT INTO graphs (name) VALUES (?) ON CONFLICT(name) DO NOTHING", name)
	return errors.Wrapf(err, "ensure graph %q", name)
}

// execer covers *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertNode(ctx context.Context, ex execer, graphName string, n graph.Node) error {
	payload, err := graph.EncodeNode(n)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx,
		`INSERT INTO nodes (id, graph_name, node_type, payload) VALUES (?, ?, ?, ?)
		 ON CONFLICT(graph_name, id) DO UPDATE SET node_type = excluded.node_type, payload = excluded.payload`,
		n.ID(), graphName, string(n.Type()), string(payload))
	return errors.Wrapf(err, "insert node %s", n.ID())
}

func insertEdge(ctx context.Context, ex execer, graphName string, e *graph.Edge) error {
	payload, err := graph.EncodeEdge(e)
	if err != nil {
		return errors.Wrapf(err, "encoding edge %s", e.ID)
	}
	_, err = ex.ExecContext(ctx,
		`INSERT INTO edges (id, graph_name, edge_type, source_id, target_id, payload) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(graph_name, id) DO UPDATE SET edge_type = excluded.edge_type,
		 source_id = excluded.source_id, target_id = excluded.target_id, payload = excluded.payload`,
		e.ID, graphName, string(e.EdgeType), e.SourceID, e.TargetID, string(payload))
	return errors.Wrapf(err, "insert edge %s", e.ID)
}
