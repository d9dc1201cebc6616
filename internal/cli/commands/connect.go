package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgscope/pgscope/internal/store"
)

// NewConnectCommand selects a saved connection as the active one.
func NewConnectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "connect <id>",
		Short: "Select a saved connection for subsequent commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Verify before remembering it.
			if err := connectByID(ctx, app, args[0]); err != nil {
				return err
			}
			app.DB.Disconnect()

			if err := app.Store.SetState(store.StateLastConnectionID, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Connected. %s is now the active connection.\n", args[0])
			return nil
		},
	}
}

// NewDisconnectCommand clears the active connection selection.
func NewDisconnectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Clear the active connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.DB.Disconnect()
			if err := app.Store.SetState(store.StateLastConnectionID, ""); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Disconnected.")
			return nil
		},
	}
}

// NewStatusCommand reports the active connection, if any.
func NewStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, ok, err := app.Store.GetState(store.StateLastConnectionID)
			if err != nil {
				return err
			}
			if !ok || id == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not connected.")
				return nil
			}

			saved, err := app.Store.GetConnection(id)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Active connection: %s (%s@%s:%d/%s)\n",
				saved.Name, saved.User, saved.Host, saved.Port, saved.Database)
			return nil
		},
	}
}
