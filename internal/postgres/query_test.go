package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersColumns() []*sqlmock.Column {
	return []*sqlmock.Column{
		sqlmock.NewColumn("id").OfType("INT4", int32(0)),
		sqlmock.NewColumn("name").OfType("TEXT", ""),
		sqlmock.NewColumn("active").OfType("BOOL", false),
	}
}

func TestExecuteQuery(t *testing.T) {
	m, mock := newMockManager(t)

	rows := sqlmock.NewRowsWithColumnDefinition(usersColumns()...).
		AddRow(int64(1), "a", true).
		AddRow(int64(2), "b", false)
	mock.ExpectQuery("SELECT * FROM users").WillReturnRows(rows)

	result, err := m.ExecuteQuery(context.Background(), "SELECT * FROM users")
	require.NoError(t, err)

	assert.Equal(t, []ColumnMeta{
		{Name: "id", DataType: "INT4"},
		{Name: "name", DataType: "TEXT"},
		{Name: "active", DataType: "BOOL"},
	}, result.Columns)
	assert.Equal(t, [][]any{
		{int32(1), "a", true},
		{int32(2), "b", false},
	}, result.Rows)
	assert.Equal(t, 2, result.RowCount)
	assert.Nil(t, result.AffectedRows)
}

func TestExecuteQueryEmptyResult(t *testing.T) {
	m, mock := newMockManager(t)

	// Column metadata is derived from the first row only, so an empty
	// result reports no columns even though the driver knows them.
	rows := sqlmock.NewRowsWithColumnDefinition(usersColumns()...)
	mock.ExpectQuery("SELECT * FROM users WHERE false").WillReturnRows(rows)

	result, err := m.ExecuteQuery(context.Background(), "SELECT * FROM users WHERE false")
	require.NoError(t, err)

	assert.Empty(t, result.Columns)
	assert.Empty(t, result.Rows)
	assert.Equal(t, 0, result.RowCount)
	assert.Nil(t, result.AffectedRows)
}

func TestExecuteQueryNullValues(t *testing.T) {
	m, mock := newMockManager(t)

	rows := sqlmock.NewRowsWithColumnDefinition(usersColumns()...).
		AddRow(nil, nil, nil)
	mock.ExpectQuery("SELECT * FROM users").WillReturnRows(rows)

	result, err := m.ExecuteQuery(context.Background(), "SELECT * FROM users")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{nil, nil, nil}}, result.Rows)
}

func TestExecuteQueryCoercesByDeclaredType(t *testing.T) {
	m, mock := newMockManager(t)

	cols := []*sqlmock.Column{
		sqlmock.NewColumn("big").OfType("INT8", int64(0)),
		sqlmock.NewColumn("ratio").OfType("FLOAT8", float64(0)),
		sqlmock.NewColumn("payload").OfType("JSONB", []byte(nil)),
		sqlmock.NewColumn("ref").OfType("UUID", ""),
		sqlmock.NewColumn("note").OfType("VARCHAR", ""),
	}
	rows := sqlmock.NewRowsWithColumnDefinition(cols...).
		AddRow(int64(1)<<40, 2.5, []byte(`{"k":[1,2]}`), "6ba7b810-9dad-11d1-80b4-00c04fd430c8", []byte("hi"))
	mock.ExpectQuery("SELECT * FROM t").WillReturnRows(rows)

	result, err := m.ExecuteQuery(context.Background(), "SELECT * FROM t")
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.Equal(t, int64(1)<<40, row[0])
	assert.Equal(t, 2.5, row[1])
	assert.Equal(t, map[string]any{"k": []any{1.0, 2.0}}, row[2])
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", row[3])
	assert.Equal(t, "hi", row[4])
}

func TestExecuteQueryMalformedColumnDegradesToNull(t *testing.T) {
	m, mock := newMockManager(t)

	cols := []*sqlmock.Column{
		sqlmock.NewColumn("id").OfType("INT4", int32(0)),
		sqlmock.NewColumn("payload").OfType("JSONB", []byte(nil)),
	}
	rows := sqlmock.NewRowsWithColumnDefinition(cols...).
		AddRow(int64(1), []byte(`{not json`))
	mock.ExpectQuery("SELECT * FROM t").WillReturnRows(rows)

	result, err := m.ExecuteQuery(context.Background(), "SELECT * FROM t")
	require.NoError(t, err, "one malformed column must not void the result")
	assert.Equal(t, [][]any{{int32(1), nil}}, result.Rows)
}

func TestExecuteQueryFailure(t *testing.T) {
	m, mock := newMockManager(t)
	mock.ExpectQuery("SELECT nope").WillReturnError(errors.New(`relation "nope" does not exist`))

	_, err := m.ExecuteQuery(context.Background(), "SELECT nope")
	require.Error(t, err)

	var queryErr *QueryError
	assert.ErrorAs(t, err, &queryErr)
	assert.Contains(t, err.Error(), "does not exist")
}
