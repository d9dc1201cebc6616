package postgres

import (
	"context"
	"database/sql"
)

// ExecuteQuery runs the statement verbatim against the active pool and
// marshals the result. The caller supplies a complete statement string;
// nothing is parameterized. AffectedRows is always nil on this path: only
// row-returning statements are expected here, and statements without a
// row-returning shape are not specially distinguished.
func (m *Manager) ExecuteQuery(ctx context.Context, sqlStr string) (*QueryResult, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	defer func() { _ = rows.Close() }()

	columns, values, err := collectRows(rows)
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		Columns:  columns,
		Rows:     values,
		RowCount: len(values),
	}, nil
}

// collectRows drains a result set, coercing every value to its JSON form.
// Column metadata is derived from the first row only: a result set with
// zero rows yields zero columns, and callers must not assume metadata is
// available for empty results.
func collectRows(rows *sql.Rows) ([]ColumnMeta, [][]any, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, &QueryError{Err: err}
	}

	kinds := make([]sourceKind, len(colTypes))
	for i, ct := range colTypes {
		kinds[i] = kindOf(ct.DatabaseTypeName())
	}

	raw := make([]any, len(colTypes))
	ptrs := make([]any, len(colTypes))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	var out [][]any
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, &QueryError{Err: err}
		}
		values := make([]any, len(colTypes))
		for i, v := range raw {
			values[i] = kinds[i].coerce(v)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &QueryError{Err: err}
	}

	if len(out) == 0 {
		return nil, nil, nil
	}

	columns := make([]ColumnMeta, len(colTypes))
	for i, ct := range colTypes {
		columns[i] = ColumnMeta{Name: ct.Name(), DataType: ct.DatabaseTypeName()}
	}
	return columns, out, nil
}
