package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewExplainCommand reports the execution plan for a SQL statement.
func NewExplainCommand(app *App) *cobra.Command {
	var (
		connection string
		noAnalyze  bool
	)

	cmd := &cobra.Command{
		Use:   "explain [sql]",
		Short: "Show the execution plan for a query",
		Long: `Show the PostgreSQL execution plan for a query.

By default the statement is executed under EXPLAIN ANALYZE so timing and
buffer information are included. Pass --no-analyze to plan without
executing, which is the safe choice for writes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlText := strings.TrimSuffix(strings.TrimSpace(strings.Join(args, " ")), ";")

			return withConnection(cmd, app, connection, func(ctx context.Context) error {
				out := cmd.OutOrStdout()

				if noAnalyze {
					plan, err := app.DB.Explain(ctx, sqlText)
					if err != nil {
						return err
					}
					return renderJSON(out, plan)
				}

				result, err := app.DB.ExplainAnalyze(ctx, sqlText)
				if err != nil {
					return err
				}

				if result.PlanningTime != nil {
					_, _ = fmt.Fprintf(out, "Planning time:  %.3f ms\n", *result.PlanningTime)
				}
				if result.ExecutionTime != nil {
					_, _ = fmt.Fprintf(out, "Execution time: %.3f ms\n", *result.ExecutionTime)
				}
				if result.TotalCost != nil {
					_, _ = fmt.Fprintf(out, "Total cost:     %.2f\n", *result.TotalCost)
				}
				_, _ = fmt.Fprintln(out)
				return renderJSON(out, result.Plan)
			})
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "saved connection to use")
	cmd.Flags().BoolVar(&noAnalyze, "no-analyze", false, "plan only, do not execute the statement")
	return cmd
}
