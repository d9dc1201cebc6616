package postgres

// ColumnMeta describes one column of a result set: its name and the
// declared type name reported by the driver.
type ColumnMeta struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

// QueryResult is the uniform envelope for ad-hoc statement execution.
// Every row has exactly len(Columns) values, in column order. A result
// with zero rows carries zero columns; column metadata is only derived
// when at least one row came back.
type QueryResult struct {
	Columns      []ColumnMeta `json:"columns"`
	Rows         [][]any      `json:"rows"`
	RowCount     int          `json:"row_count"`
	AffectedRows *int64       `json:"affected_rows"`
}

// PaginatedResult is one page of a bulk table scan. TotalCount is a full
// COUNT(*) over the table, independent of the page slice.
type PaginatedResult struct {
	Columns    []ColumnMeta `json:"columns"`
	Rows       [][]any      `json:"rows"`
	TotalCount int64        `json:"total_count"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
}

// TableInfo identifies one table or view in the catalog.
type TableInfo struct {
	Schema    string `json:"schema"`
	Name      string `json:"name"`
	TableType string `json:"table_type"`
}

// ColumnInfo describes one column of a table, including primary-key
// membership resolved from the table's constraints.
type ColumnInfo struct {
	Name          string  `json:"name"`
	DataType      string  `json:"data_type"`
	IsNullable    bool    `json:"is_nullable"`
	ColumnDefault *string `json:"column_default"`
	IsPrimaryKey  bool    `json:"is_primary_key"`
}
