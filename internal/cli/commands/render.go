package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pgscope/pgscope/internal/postgres"
)

// renderRows writes a result grid in the requested format.
func renderRows(w io.Writer, columns []postgres.ColumnMeta, rows [][]any, format string) error {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}

	switch format {
	case "json":
		out := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			m := make(map[string]any, len(names))
			for i, name := range names {
				m[name] = row[i]
			}
			out = append(out, m)
		}
		return renderJSON(w, out)
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write(names); err != nil {
			return err
		}
		for _, row := range rows {
			record := make([]string, len(row))
			for i, v := range row {
				record[i] = formatValue(v)
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		renderGrid(w, names, rows)
		return nil
	}
}

func renderGrid(w io.Writer, names []string, rows [][]any) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(names))
	for i, name := range names {
		header[i] = name
	}
	t.AppendHeader(header)

	for _, row := range rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = formatValue(v)
		}
		t.AppendRow(out)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rows))
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatValue renders one cell for table and CSV output. Structured
// values (from JSON columns) are re-serialized compactly.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case map[string]any, []any:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	default:
		return fmt.Sprint(val)
	}
}
