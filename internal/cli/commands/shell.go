package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/pgscope/pgscope/internal/store"
)

// runShell is the interactive SQL loop. Statements accumulate until a
// terminating semicolon; dot-commands are handled locally.
func runShell(cmd *cobra.Command, app *App, connection string) error {
	return withConnection(cmd, app, connection, func(ctx context.Context) error {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "pgscope> ",
			HistoryFile:     app.Config.HistoryPath(),
			InterruptPrompt: "^C",
			EOFPrompt:       ".quit",
			AutoComplete:    newShellCompleter(ctx, app),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize shell: %w", err)
		}
		defer func() { _ = rl.Close() }()

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, "pgscope interactive shell")
		if id, ok := app.DB.ConnectionID(); ok {
			_, _ = fmt.Fprintf(out, "Connected to %s\n", id)
		}
		_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
		_, _ = fmt.Fprintln(out)

		var buffer strings.Builder
		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				buffer.Reset()
				rl.SetPrompt("pgscope> ")
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			if buffer.Len() == 0 && strings.HasPrefix(line, ".") {
				if quit := handleDotCommand(ctx, cmd, app, line); quit {
					break
				}
				continue
			}

			buffer.WriteString(line)
			if !strings.HasSuffix(line, ";") {
				buffer.WriteString(" ")
				rl.SetPrompt("    ...> ")
				continue
			}
			rl.SetPrompt("pgscope> ")

			sqlText := strings.TrimSuffix(buffer.String(), ";")
			buffer.Reset()

			if err := executeAndRender(ctx, cmd, app, sqlText); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			_, _ = fmt.Fprintln(out)
		}
		return nil
	})
}

func executeAndRender(ctx context.Context, cmd *cobra.Command, app *App, sqlText string) error {
	result, err := app.DB.ExecuteQuery(ctx, sqlText)
	if err != nil {
		return err
	}
	_ = app.Store.SetState(store.StateEditorContent, sqlText)
	return renderRows(cmd.OutOrStdout(), result.Columns, result.Rows, app.Config.Output)
}

// handleDotCommand runs one shell-local command. Returns true to exit.
func handleDotCommand(ctx context.Context, cmd *cobra.Command, app *App, line string) bool {
	out := cmd.OutOrStdout()
	fields := strings.Fields(line)

	switch strings.ToLower(fields[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		_, _ = fmt.Fprintln(out, "  .tables                 list tables and views")
		_, _ = fmt.Fprintln(out, "  .columns SCHEMA TABLE   describe a table")
		_, _ = fmt.Fprintln(out, "  .explain SQL            show the plan without executing")
		_, _ = fmt.Fprintln(out, "  .last                   show the most recent statement")
		_, _ = fmt.Fprintln(out, "  .quit                   exit the shell")

	case ".tables":
		tables, err := app.DB.ListTables(ctx)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false
		}
		for _, t := range tables {
			_, _ = fmt.Fprintf(out, "%s.%s\t%s\n", t.Schema, t.Name, t.TableType)
		}

	case ".columns":
		if len(fields) != 3 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "usage: .columns SCHEMA TABLE")
			return false
		}
		columns, err := app.DB.ListColumns(ctx, fields[1], fields[2])
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false
		}
		for _, col := range columns {
			pk := ""
			if col.IsPrimaryKey {
				pk = " PK"
			}
			_, _ = fmt.Fprintf(out, "%s\t%s%s\n", col.Name, col.DataType, pk)
		}

	case ".explain":
		sqlText := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		if sqlText == "" {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "usage: .explain SQL")
			return false
		}
		plan, err := app.DB.Explain(ctx, strings.TrimSuffix(sqlText, ";"))
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false
		}
		_ = renderJSON(out, plan)

	case ".last":
		last, ok, err := app.Store.GetState(store.StateEditorContent)
		if err != nil || !ok {
			_, _ = fmt.Fprintln(out, "(none)")
			return false
		}
		_, _ = fmt.Fprintln(out, last)

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "unknown command %s (try .help)\n", fields[0])
	}
	return false
}

// newShellCompleter offers table names and dot-commands.
func newShellCompleter(ctx context.Context, app *App) *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".columns"),
		readline.PcItem(".explain"),
		readline.PcItem(".last"),
		readline.PcItem(".quit"),
	}

	if tables, err := app.DB.ListTables(ctx); err == nil {
		for _, t := range tables {
			items = append(items, readline.PcItem(t.Schema+"."+t.Name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}
