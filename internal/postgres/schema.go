package postgres

import (
	"context"
	"database/sql"
)

const listTablesSQL = `
	SELECT table_schema, table_name, table_type
	FROM information_schema.tables
	WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
	ORDER BY table_schema, table_name`

const listColumnsSQL = `
	SELECT
		c.column_name,
		c.data_type,
		c.is_nullable,
		c.column_default
	FROM information_schema.columns c
	WHERE c.table_schema = $1 AND c.table_name = $2
	ORDER BY c.ordinal_position`

const primaryKeySQL = `
	SELECT kcu.column_name
	FROM information_schema.table_constraints tc
	JOIN information_schema.key_column_usage kcu
		ON tc.constraint_name = kcu.constraint_name
		AND tc.table_schema = kcu.table_schema
	WHERE tc.constraint_type = 'PRIMARY KEY'
		AND tc.table_schema = $1
		AND tc.table_name = $2`

// ListTables returns all user tables and views, ordered by schema then
// name so the listing is stable across calls.
func (m *Manager) ListTables(ctx context.Context) ([]TableInfo, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, listTablesSQL)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	defer func() { _ = rows.Close() }()

	var tables []TableInfo
	for rows.Next() {
		var t TableInfo
		if err := rows.Scan(&t.Schema, &t.Name, &t.TableType); err != nil {
			return nil, &QueryError{Err: err}
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Err: err}
	}
	return tables, nil
}

// ListColumns returns the columns of one table in ordinal order, with
// primary-key membership merged in from the table's constraints. The two
// catalog reads are not transactionally joined; a schema change between
// them can leave a stale primary-key flag.
func (m *Manager) ListColumns(ctx context.Context, schema, table string) ([]ColumnInfo, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, listColumnsSQL, schema, table)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	defer func() { _ = rows.Close() }()

	var columns []ColumnInfo
	for rows.Next() {
		var (
			col       ColumnInfo
			nullable  string
			columnDef sql.NullString
		)
		if err := rows.Scan(&col.Name, &col.DataType, &nullable, &columnDef); err != nil {
			return nil, &QueryError{Err: err}
		}
		col.IsNullable = nullable == "YES"
		if columnDef.Valid {
			col.ColumnDefault = &columnDef.String
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Err: err}
	}

	pk, err := m.primaryKeyColumns(ctx, db, schema, table)
	if err != nil {
		return nil, err
	}
	for i := range columns {
		columns[i].IsPrimaryKey = pk[columns[i].Name]
	}
	return columns, nil
}

func (m *Manager) primaryKeyColumns(ctx context.Context, db *sql.DB, schema, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, primaryKeySQL, schema, table)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	defer func() { _ = rows.Close() }()

	pk := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &QueryError{Err: err}
		}
		pk[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Err: err}
	}
	return pk, nil
}
