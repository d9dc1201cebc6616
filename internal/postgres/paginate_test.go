package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"users", `"users"`},
		{"user", `"user"`}, // reserved word
		{"MixedCase", `"MixedCase"`},
		{`odd"name`, `"odd""name"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, quoteIdentifier(tt.name))
	}
}

func TestFetchTableData(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectQuery(`SELECT COUNT(*) FROM "public"."users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	rows := sqlmock.NewRowsWithColumnDefinition(usersColumns()...).
		AddRow(int64(1), "a", true)
	mock.ExpectQuery(`SELECT * FROM "public"."users" LIMIT 1 OFFSET 0`).WillReturnRows(rows)

	result, err := m.FetchTableData(context.Background(), "public", "users", 1, 1)
	require.NoError(t, err)

	assert.Equal(t, []ColumnMeta{
		{Name: "id", DataType: "INT4"},
		{Name: "name", DataType: "TEXT"},
		{Name: "active", DataType: "BOOL"},
	}, result.Columns)
	assert.Equal(t, [][]any{{int32(1), "a", true}}, result.Rows)
	assert.Equal(t, int64(2), result.TotalCount)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.PageSize)
}

func TestFetchTableDataTotalCountIsPageInvariant(t *testing.T) {
	m, mock := newMockManager(t)

	// Page 1.
	mock.ExpectQuery(`SELECT COUNT(*) FROM "public"."users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`SELECT * FROM "public"."users" LIMIT 1 OFFSET 0`).
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(usersColumns()...).AddRow(int64(1), "a", true))

	page1, err := m.FetchTableData(context.Background(), "public", "users", 1, 1)
	require.NoError(t, err)

	// Page 2.
	mock.ExpectQuery(`SELECT COUNT(*) FROM "public"."users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`SELECT * FROM "public"."users" LIMIT 1 OFFSET 1`).
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(usersColumns()...).AddRow(int64(2), "b", false))

	page2, err := m.FetchTableData(context.Background(), "public", "users", 2, 1)
	require.NoError(t, err)

	assert.Equal(t, page1.TotalCount, page2.TotalCount)
	assert.LessOrEqual(t, len(page1.Rows), page1.PageSize)
	assert.LessOrEqual(t, len(page2.Rows), page2.PageSize)
}

func TestFetchTableDataEmptyPage(t *testing.T) {
	m, mock := newMockManager(t)

	// A page past the end still reports the full count, with the same
	// zero-column caveat as ordinary empty results.
	mock.ExpectQuery(`SELECT COUNT(*) FROM "public"."users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`SELECT * FROM "public"."users" LIMIT 50 OFFSET 50`).
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(usersColumns()...))

	result, err := m.FetchTableData(context.Background(), "public", "users", 2, 50)
	require.NoError(t, err)

	assert.Empty(t, result.Columns)
	assert.Empty(t, result.Rows)
	assert.Equal(t, int64(2), result.TotalCount)
}

func TestFetchTableDataCountFailure(t *testing.T) {
	m, mock := newMockManager(t)
	mock.ExpectQuery(`SELECT COUNT(*) FROM "public"."gone"`).
		WillReturnError(errors.New(`relation "public.gone" does not exist`))

	_, err := m.FetchTableData(context.Background(), "public", "gone", 1, 50)
	var queryErr *QueryError
	assert.ErrorAs(t, err, &queryErr)
}
