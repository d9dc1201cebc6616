package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTables(t *testing.T) {
	m, mock := newMockManager(t)

	rows := sqlmock.NewRows([]string{"table_schema", "table_name", "table_type"}).
		AddRow("public", "orders", "BASE TABLE").
		AddRow("public", "users", "BASE TABLE").
		AddRow("reporting", "daily_sales", "VIEW")
	mock.ExpectQuery(listTablesSQL).WillReturnRows(rows)

	tables, err := m.ListTables(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []TableInfo{
		{Schema: "public", Name: "orders", TableType: "BASE TABLE"},
		{Schema: "public", Name: "users", TableType: "BASE TABLE"},
		{Schema: "reporting", Name: "daily_sales", TableType: "VIEW"},
	}, tables)
}

func TestListTablesQueryFailure(t *testing.T) {
	m, mock := newMockManager(t)
	mock.ExpectQuery(listTablesSQL).WillReturnError(errors.New("permission denied"))

	_, err := m.ListTables(context.Background())
	var queryErr *QueryError
	assert.ErrorAs(t, err, &queryErr)
}

func TestListColumns(t *testing.T) {
	m, mock := newMockManager(t)

	cols := sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "column_default"}).
		AddRow("id", "integer", "NO", "nextval('users_id_seq'::regclass)").
		AddRow("name", "text", "YES", nil).
		AddRow("active", "boolean", "NO", "true")
	mock.ExpectQuery(listColumnsSQL).WithArgs("public", "users").WillReturnRows(cols)

	pk := sqlmock.NewRows([]string{"column_name"}).AddRow("id")
	mock.ExpectQuery(primaryKeySQL).WithArgs("public", "users").WillReturnRows(pk)

	columns, err := m.ListColumns(context.Background(), "public", "users")
	require.NoError(t, err)

	require.Len(t, columns, 3)
	assert.Equal(t, "id", columns[0].Name)
	assert.True(t, columns[0].IsPrimaryKey)
	assert.False(t, columns[0].IsNullable)
	require.NotNil(t, columns[0].ColumnDefault)
	assert.Equal(t, "nextval('users_id_seq'::regclass)", *columns[0].ColumnDefault)

	assert.Equal(t, "name", columns[1].Name)
	assert.False(t, columns[1].IsPrimaryKey)
	assert.True(t, columns[1].IsNullable)
	assert.Nil(t, columns[1].ColumnDefault)

	assert.Equal(t, "active", columns[2].Name)
	assert.False(t, columns[2].IsPrimaryKey)
}

func TestListColumnsCompositePrimaryKey(t *testing.T) {
	m, mock := newMockManager(t)

	cols := sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "column_default"}).
		AddRow("order_id", "integer", "NO", nil).
		AddRow("product_id", "integer", "NO", nil).
		AddRow("quantity", "integer", "NO", "1")
	mock.ExpectQuery(listColumnsSQL).WithArgs("public", "order_items").WillReturnRows(cols)

	pk := sqlmock.NewRows([]string{"column_name"}).
		AddRow("order_id").
		AddRow("product_id")
	mock.ExpectQuery(primaryKeySQL).WithArgs("public", "order_items").WillReturnRows(pk)

	columns, err := m.ListColumns(context.Background(), "public", "order_items")
	require.NoError(t, err)

	require.Len(t, columns, 3)
	assert.True(t, columns[0].IsPrimaryKey)
	assert.True(t, columns[1].IsPrimaryKey)
	assert.False(t, columns[2].IsPrimaryKey)
}

func TestListColumnsPrimaryKeyQueryFailure(t *testing.T) {
	m, mock := newMockManager(t)

	cols := sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "column_default"}).
		AddRow("id", "integer", "NO", nil)
	mock.ExpectQuery(listColumnsSQL).WithArgs("public", "users").WillReturnRows(cols)
	mock.ExpectQuery(primaryKeySQL).WithArgs("public", "users").WillReturnError(errors.New("timeout"))

	_, err := m.ListColumns(context.Background(), "public", "users")
	var queryErr *QueryError
	assert.ErrorAs(t, err, &queryErr)
}
