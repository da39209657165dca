package adapters

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choragraph/chora/graph"
)

// mockSQLite wires a sqlmock connection into the adapter so driver-level
// failures can be exercised without a real database.
func mockSQLite(t *testing.T) (*SQLite, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &SQLite{path: "mock", conn: conn}, mock
}

func TestSQLiteSaveGraphBeginFailure(t *testing.T) {
	adapter, mock := mockSQLite(t)
	mock.ExpectBegin().WillReturnError(assert.AnError)

	err := adapter.SaveGraph(context.Background(), graph.New("g"))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteListGraphsQueryFailure(t *testing.T) {
	adapter, mock := mockSQLite(t)
	mock.ExpectQuery("SELECT name FROM graphs").WillReturnError(assert.AnError)

	_, err := adapter.ListGraphs(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteListGraphsRows(t *testing.T) {
	adapter, mock := mockSQLite(t)
	rows := sqlmock.NewRows([]string{"name"}).AddRow("home").AddRow("work")
	mock.ExpectQuery("SELECT name FROM graphs").WillReturnRows(rows)

	names, err := adapter.ListGraphs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "work"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}
