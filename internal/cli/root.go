// Package cli wires the pgscope command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgscope/pgscope/internal/cli/commands"
	"github.com/pgscope/pgscope/internal/config"
	"github.com/pgscope/pgscope/internal/postgres"
	"github.com/pgscope/pgscope/internal/store"
)

// Version is stamped at build time.
var Version = "dev"

// NewRootCmd builds the pgscope command tree. Shared dependencies are
// opened in PersistentPreRunE and torn down in PersistentPostRun so every
// subcommand sees the same configured App.
func NewRootCmd() *cobra.Command {
	app := &commands.App{}
	var cfgFile string

	root := &cobra.Command{
		Use:   "pgscope",
		Short: "PostgreSQL client for the terminal",
		Long: `pgscope is a PostgreSQL client for the terminal.

It keeps a local catalog of saved connections (passwords encrypted at
rest) and saved queries, and provides schema browsing, paginated table
data, ad-hoc SQL with typed JSON output, and query plan analysis.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Help and completion must work without a data dir.
			switch cmd.Name() {
			case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			app.Config = cfg

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			app.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return fmt.Errorf("failed to create data dir: %w", err)
			}

			st, err := store.Open(cfg.MetadataPath())
			if err != nil {
				return err
			}
			app.Store = st
			app.DB = postgres.NewManager(app.Logger)

			if used := config.ConfigFileUsed(); used != "" {
				app.Logger.Debug("loaded config file", "path", used)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.DB != nil {
				app.DB.Disconnect()
			}
			if app.Store != nil {
				_ = app.Store.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./pgscope.yaml, then the data dir)")
	root.PersistentFlags().String("data-dir", config.DefaultDataDir(), "Directory for local metadata and history")
	root.PersistentFlags().StringP("output", "o", config.DefaultOutput, "Output format: table, json, or csv")
	root.PersistentFlags().Int("page-size", config.DefaultPageSize, "Rows per page when browsing tables")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		commands.NewConnectionsCommand(app),
		commands.NewConnectCommand(app),
		commands.NewDisconnectCommand(app),
		commands.NewStatusCommand(app),
		commands.NewTablesCommand(app),
		commands.NewColumnsCommand(app),
		commands.NewBrowseCommand(app),
		commands.NewQueryCommand(app),
		commands.NewExplainCommand(app),
		commands.NewSavedCommand(app),
	)
	return root
}
