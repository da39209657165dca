package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	choratest "github.com/choragraph/chora/internal/testing"
)

func TestDeletingGraphCascadesNodesAndEdges(t *testing.T) {
	conn := choratest.CreateTestDB(t)

	_, err := conn.Exec(`INSERT INTO graphs (name, description) VALUES ('g1', '')`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO nodes (id, graph_name, node_type, payload) VALUES ('n1', 'g1', 'agent', '{}')`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO nodes (id, graph_name, node_type, payload) VALUES ('n2', 'g1', 'encounter', '{}')`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO edges (id, graph_name, edge_type, source_id, target_id, payload)
		VALUES ('e1', 'g1', 'participates_in', 'n1', 'n2', '{}')`)
	require.NoError(t, err)

	_, err = conn.Exec(`DELETE FROM graphs WHERE name = 'g1'`)
	require.NoError(t, err)

	var nodes, edges int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&nodes))
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM edges`).Scan(&edges))
	assert.Equal(t, 0, nodes)
	assert.Equal(t, 0, edges)
}

func TestNodeRequiresExistingGraph(t *testing.T) {
	conn := choratest.CreateTestDB(t)

	_, err := conn.Exec(`INSERT INTO nodes (id, graph_name, node_type, payload) VALUES ('n1', 'missing', 'agent', '{}')`)
	assert.Error(t, err)
}
