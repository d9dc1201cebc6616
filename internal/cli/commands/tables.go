package commands

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewTablesCommand lists the tables and views of the connected database.
func NewTablesCommand(app *App) *cobra.Command {
	var connection string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List tables and views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withConnection(cmd, app, connection, func(ctx context.Context) error {
				tables, err := app.DB.ListTables(ctx)
				if err != nil {
					return err
				}

				if app.Config.Output == "json" {
					return renderJSON(cmd.OutOrStdout(), tables)
				}

				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Schema", "Name", "Type"})
				for _, tbl := range tables {
					t.AppendRow(table.Row{tbl.Schema, tbl.Name, tbl.TableType})
				}
				t.Render()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "(%d tables)\n", len(tables))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "Saved connection id to use")
	return cmd
}

// NewColumnsCommand describes one table's columns.
func NewColumnsCommand(app *App) *cobra.Command {
	var connection string

	cmd := &cobra.Command{
		Use:   "columns <schema> <table>",
		Short: "Show the columns of a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnection(cmd, app, connection, func(ctx context.Context) error {
				columns, err := app.DB.ListColumns(ctx, args[0], args[1])
				if err != nil {
					return err
				}

				if app.Config.Output == "json" {
					return renderJSON(cmd.OutOrStdout(), columns)
				}

				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Name", "Type", "Nullable", "Default", "PK"})
				for _, col := range columns {
					def := ""
					if col.ColumnDefault != nil {
						def = *col.ColumnDefault
					}
					pk := ""
					if col.IsPrimaryKey {
						pk = "✓"
					}
					t.AppendRow(table.Row{col.Name, col.DataType, col.IsNullable, def, pk})
				}
				t.Render()
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "Saved connection id to use")
	return cmd
}
