package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pgscope/pgscope/internal/secrets"
)

// NewConnectionsCommand groups saved-connection management.
func NewConnectionsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connections",
		Short: "Manage saved connections",
	}
	cmd.AddCommand(
		newConnectionsAddCommand(app),
		newConnectionsListCommand(app),
		newConnectionsEditCommand(app),
		newConnectionsRemoveCommand(app),
		newConnectionsTestCommand(app),
	)
	return cmd
}

func newConnectionsAddCommand(app *App) *cobra.Command {
	var (
		name     string
		host     string
		port     int
		database string
		user     string
		password string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Save a new connection",
		Example: `  pgscope connections add --name local --host localhost --database appdb --user app`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" || database == "" || user == "" {
				return fmt.Errorf("--name, --database, and --user are required")
			}

			if password == "" {
				pw, err := promptPassword(cmd)
				if err != nil {
					return err
				}
				password = pw
			}

			encrypted, err := secrets.Encrypt(password)
			if err != nil {
				return err
			}

			conn, err := app.Store.CreateConnection(name, host, port, database, user, encrypted)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved connection %q (%s)\n", conn.Name, conn.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name for the connection")
	cmd.Flags().StringVar(&host, "host", "localhost", "Database host")
	cmd.Flags().IntVar(&port, "port", 5432, "Database port")
	cmd.Flags().StringVar(&database, "database", "", "Database name")
	cmd.Flags().StringVar(&user, "user", "", "Database user")
	cmd.Flags().StringVar(&password, "password", "", "Database password (prompted when omitted)")
	return cmd
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal available: pass --password")
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	raw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func newConnectionsListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved connections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			connections, err := app.Store.ListConnections()
			if err != nil {
				return err
			}

			if app.Config.Output == "json" {
				return renderJSON(cmd.OutOrStdout(), connections)
			}

			if len(connections) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No saved connections. Add one with 'pgscope connections add'.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Name", "Host", "Port", "Database", "User", "Created"})
			for _, c := range connections {
				t.AppendRow(table.Row{c.ID, c.Name, c.Host, c.Port, c.Database, c.User, c.CreatedAt})
			}
			t.Render()
			return nil
		},
	}
}

func newConnectionsEditCommand(app *App) *cobra.Command {
	var (
		name     string
		host     string
		port     int
		database string
		user     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a saved connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := app.Store.GetConnection(args[0])
			if err != nil {
				return err
			}

			// Unset flags keep the stored value.
			if !cmd.Flags().Changed("name") {
				name = current.Name
			}
			if !cmd.Flags().Changed("host") {
				host = current.Host
			}
			if !cmd.Flags().Changed("port") {
				port = current.Port
			}
			if !cmd.Flags().Changed("database") {
				database = current.Database
			}
			if !cmd.Flags().Changed("user") {
				user = current.User
			}

			var encrypted *string
			if cmd.Flags().Changed("password") {
				enc, err := secrets.Encrypt(password)
				if err != nil {
					return err
				}
				encrypted = &enc
			}

			updated, err := app.Store.UpdateConnection(current.ID, name, host, port, database, user, encrypted)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated connection %q (%s)\n", updated.Name, updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name for the connection")
	cmd.Flags().StringVar(&host, "host", "", "Database host")
	cmd.Flags().IntVar(&port, "port", 0, "Database port")
	cmd.Flags().StringVar(&database, "database", "", "Database name")
	cmd.Flags().StringVar(&user, "user", "", "Database user")
	cmd.Flags().StringVar(&password, "password", "", "New database password")
	return cmd
}

func newConnectionsRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a saved connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.DeleteConnection(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted connection %s\n", args[0])
			return nil
		},
	}
}

func newConnectionsTestCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "test <id>",
		Short: "Verify that a saved connection works",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := connectByID(ctx, app, args[0]); err != nil {
				return err
			}
			defer app.DB.Disconnect()

			if _, err := app.DB.TestConnection(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Connection OK")
			return nil
		},
	}
}
