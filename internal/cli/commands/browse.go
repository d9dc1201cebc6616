package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewBrowseCommand pages through a table's rows.
func NewBrowseCommand(app *App) *cobra.Command {
	var (
		connection string
		page       int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:     "browse <schema> <table>",
		Short:   "Page through a table's rows",
		Example: `  pgscope browse public users --page 2 --page-size 25`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pageSize == 0 {
				pageSize = app.Config.PageSize
			}
			if page < 1 {
				return fmt.Errorf("--page must be >= 1")
			}

			return withConnection(cmd, app, connection, func(ctx context.Context) error {
				result, err := app.DB.FetchTableData(ctx, args[0], args[1], page, pageSize)
				if err != nil {
					return err
				}

				if app.Config.Output == "json" {
					return renderJSON(cmd.OutOrStdout(), result)
				}

				if err := renderRows(cmd.OutOrStdout(), result.Columns, result.Rows, app.Config.Output); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d rows total\n", result.Page, result.TotalCount)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "Saved connection id to use")
	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page (default from config)")
	return cmd
}
