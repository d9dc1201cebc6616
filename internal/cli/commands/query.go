package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgscope/pgscope/internal/store"
)

// NewQueryCommand executes ad-hoc SQL. Without arguments it drops into the
// interactive shell.
func NewQueryCommand(app *App) *cobra.Command {
	var (
		connection string
		saveAs     string
	)

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run ad-hoc SQL against the connected database",
		Long: `Run ad-hoc SQL against the connected database.

The statement runs verbatim on the server. When invoked without arguments,
an interactive shell is started instead.`,
		Example: `  # Run a statement
  pgscope query "SELECT * FROM users LIMIT 10"

  # Run and save it for later
  pgscope query --save active-users "SELECT * FROM users WHERE active"

  # Interactive shell
  pgscope query`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runShell(cmd, app, connection)
			}
			sqlText := args[0]

			return withConnection(cmd, app, connection, func(ctx context.Context) error {
				result, err := app.DB.ExecuteQuery(ctx, sqlText)
				if err != nil {
					return err
				}

				// Remember the last statement like the editor pane would.
				_ = app.Store.SetState(store.StateEditorContent, sqlText)

				if saveAs != "" {
					id, _ := resolveConnectionID(app, connection)
					var connID *string
					if id != "" {
						connID = &id
					}
					if _, err := app.Store.CreateSavedQuery(connID, saveAs, sqlText); err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved query %q\n", saveAs)
				}

				if app.Config.Output == "json" {
					return renderJSON(cmd.OutOrStdout(), result)
				}
				return renderRows(cmd.OutOrStdout(), result.Columns, result.Rows, app.Config.Output)
			})
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "Saved connection id to use")
	cmd.Flags().StringVar(&saveAs, "save", "", "Also save the statement under this name")
	return cmd
}
