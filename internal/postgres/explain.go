package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ExplainResult carries the analyzed plan plus the headline numbers pulled
// out of it. The pointer fields are nil when the plan does not report the
// corresponding value.
type ExplainResult struct {
	Plan          any      `json:"plan"`
	PlanningTime  *float64 `json:"planning_time"`
	ExecutionTime *float64 `json:"execution_time"`
	TotalCost     *float64 `json:"total_cost"`
}

// ExplainAnalyze executes the statement under EXPLAIN ANALYZE and returns
// the JSON plan with timing and cost extracted. The statement really runs,
// so side effects apply.
func (m *Manager) ExplainAnalyze(ctx context.Context, sqlStr string) (*ExplainResult, error) {
	db, err := m.acquire()
	if err != nil {
		return nil, err
	}

	explainSQL := fmt.Sprintf("EXPLAIN (ANALYZE, FORMAT JSON, VERBOSE, BUFFERS) %s", sqlStr)

	var raw []byte
	if err := db.QueryRowContext(ctx, explainSQL).Scan(&raw); err != nil {
		return nil, &QueryError{Err: err}
	}

	var plan any
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, &QueryError{Err: err}
	}

	return &ExplainResult{
		Plan:          plan,
		PlanningTime:  planNumber(plan, "Planning Time"),
		ExecutionTime: planNumber(plan, "Execution Time"),
		TotalCost:     planNumber(plan, "Plan", "Total Cost"),
	}, nil
}

// Explain returns the raw JSON plan without executing the statement.
func (m *Manager) Explain(ctx context.Context, sqlStr string) (any, error) {
	result, err := m.ExecuteQuery(ctx, fmt.Sprintf("EXPLAIN (FORMAT JSON, VERBOSE) %s", sqlStr))
	if err != nil {
		return nil, err
	}

	// The plan arrives as a single row with a single JSON column.
	if len(result.Rows) > 0 && len(result.Rows[0]) > 0 {
		return result.Rows[0][0], nil
	}
	return nil, errors.New("failed to parse EXPLAIN output")
}

// planNumber walks the first plan element through the given keys and
// returns the numeric leaf, or nil when any step is missing.
func planNumber(plan any, keys ...string) *float64 {
	arr, ok := plan.([]any)
	if !ok || len(arr) == 0 {
		return nil
	}

	node := arr[0]
	for _, key := range keys {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = obj[key]
	}

	f, ok := node.(float64)
	if !ok {
		return nil
	}
	return &f
}
