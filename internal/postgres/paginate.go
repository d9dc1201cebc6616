package postgres

import (
	"context"
	"fmt"
	"strings"
)

// FetchTableData returns one page of a table scan plus the exact row count
// over the whole table. Page numbers are 1-based; the caller is expected to
// supply page >= 1 (a non-positive page produces a negative OFFSET, which
// the engine rejects with its own error).
//
// Schema and table names are identifier-quoted, not parameterized: they are
// trusted values from the catalog listing, and quoting is only there so
// reserved words and mixed-case names resolve.
func (m *Manager) FetchTableData(ctx context.Context, schema, table string, page, pageSize int) (*PaginatedResult, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	target := quoteIdentifier(schema) + "." + quoteIdentifier(table)

	var totalCount int64
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s", target)
	if err := db.QueryRowContext(ctx, countSQL).Scan(&totalCount); err != nil {
		return nil, &QueryError{Err: err}
	}

	dataSQL := fmt.Sprintf("SELECT * FROM %s LIMIT %d OFFSET %d", target, pageSize, offset)
	rows, err := db.QueryContext(ctx, dataSQL)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	defer func() { _ = rows.Close() }()

	columns, values, err := collectRows(rows)
	if err != nil {
		return nil, err
	}

	return &PaginatedResult{
		Columns:    columns,
		Rows:       values,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// quoteIdentifier double-quotes an identifier so reserved words and
// mixed-case names can be referenced. Embedded quotes are doubled per the
// SQL standard.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
