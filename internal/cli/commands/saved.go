package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewSavedCommand groups the saved-query subcommands.
func NewSavedCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage saved queries",
	}
	cmd.AddCommand(
		newSavedAddCommand(app),
		newSavedListCommand(app),
		newSavedShowCommand(app),
		newSavedRemoveCommand(app),
	)
	return cmd
}

func newSavedAddCommand(app *App) *cobra.Command {
	var connection string

	cmd := &cobra.Command{
		Use:   "add <name> <sql>",
		Short: "Save a query under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var connID *string
			if connection != "" {
				if _, err := app.Store.GetConnection(connection); err != nil {
					return err
				}
				connID = &connection
			}

			saved, err := app.Store.CreateSavedQuery(connID, args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved query %q (%s)\n", saved.Name, saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "associate with a saved connection")
	return cmd
}

func newSavedListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			queries, err := app.Store.ListSavedQueries()
			if err != nil {
				return err
			}
			if app.Config.Output == "json" {
				return renderJSON(cmd.OutOrStdout(), queries)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Name", "Connection", "Created"})
			for _, q := range queries {
				conn := ""
				if q.ConnectionID != nil {
					conn = *q.ConnectionID
				}
				t.AppendRow(table.Row{q.ID, q.Name, conn, q.CreatedAt})
			}
			t.Render()
			return nil
		},
	}
}

func newSavedShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the SQL of a saved query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := app.Store.GetSavedQuery(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), saved.SQL)
			return nil
		},
	}
}

func newSavedRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a saved query",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.DeleteSavedQuery(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Deleted saved query %s\n", args[0])
			return nil
		},
	}
}
