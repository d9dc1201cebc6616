// Package commands implements the pgscope subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pgscope/pgscope/internal/config"
	"github.com/pgscope/pgscope/internal/postgres"
	"github.com/pgscope/pgscope/internal/secrets"
	"github.com/pgscope/pgscope/internal/store"
)

// App bundles the shared dependencies the commands operate on. It is
// populated by the root command before any subcommand runs.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *store.Store
	DB     *postgres.Manager
}

// resolveConnectionID picks the saved connection to use: an explicit
// --connection value wins, otherwise the last connection selected with
// `pgscope connect`.
func resolveConnectionID(app *App, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	id, ok, err := app.Store.GetState(store.StateLastConnectionID)
	if err != nil {
		return "", err
	}
	if !ok || id == "" {
		return "", errors.New("no connection selected: pass --connection or run 'pgscope connect <id>' first")
	}
	return id, nil
}

// connectByID resolves a saved connection record, decrypts its password,
// and establishes the live pool.
func connectByID(ctx context.Context, app *App, id string) error {
	saved, err := app.Store.GetConnection(id)
	if err != nil {
		return err
	}

	password, err := secrets.Decrypt(saved.EncryptedPassword)
	if err != nil {
		return fmt.Errorf("failed to decrypt password for %q: %w", saved.Name, err)
	}

	return app.DB.Connect(ctx, saved.ID, saved.Host, saved.Port, saved.Database, saved.User, password)
}

// withConnection runs fn against a live connection and disconnects after.
func withConnection(cmd *cobra.Command, app *App, explicit string, fn func(ctx context.Context) error) error {
	ctx := cmd.Context()

	id, err := resolveConnectionID(app, explicit)
	if err != nil {
		return err
	}
	if err := connectByID(ctx, app, id); err != nil {
		return err
	}
	defer app.DB.Disconnect()

	return fn(ctx)
}
