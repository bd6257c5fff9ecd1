package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ovalmind/ovalmind/internal/catalog"
	"github.com/ovalmind/ovalmind/internal/llm"
	"github.com/ovalmind/ovalmind/internal/logger"
	"github.com/ovalmind/ovalmind/internal/sqlguard"
	"github.com/ovalmind/ovalmind/internal/statstore"
)

type ExecuteSQLArgs struct {
	Query string `json:"query"`
}

type tableSchema struct {
	catalog.Table
	RowCount int `json:"row_count"`
}

// RegisterStatsTools wires the structured cricket database: schema
// inspection, guarded read-only SQL, and the sample query library.
func RegisterStatsTools(registry *Registry, store *statstore.Store) {
	schemaTool := llm.Tool{
		Name:        "get_schema",
		Description: "Get the cricket stats database schema: every table with its columns, types and current row count. Call this before writing SQL.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}

	registry.Register(schemaTool, func(ctx context.Context, args string) (string, error) {
		schemas := make([]tableSchema, 0, len(catalog.All()))
		for _, table := range catalog.All() {
			count, err := store.TableRowCount(ctx, table.Name)
			if err != nil {
				logger.Warn("row count unavailable", "table", table.Name, "error", err)
				count = -1
			}
			schemas = append(schemas, tableSchema{Table: table, RowCount: count})
		}

		out, err := json.MarshalIndent(schemas, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	})

	executeTool := llm.Tool{
		Name:        "execute_sql",
		Description: "Run a read-only SQL query against the cricket stats database. Only single SELECT statements are accepted. Results are capped at 100 rows, so aggregate or LIMIT where possible.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The SELECT statement to run",
				},
			},
			"required": []string{"query"},
		},
	}

	registry.Register(executeTool, func(ctx context.Context, args string) (string, error) {
		var params ExecuteSQLArgs
		if err := json.Unmarshal([]byte(args), &params); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}

		if err := sqlguard.Check(params.Query); err != nil {
			return "", err
		}

		result, err := store.Execute(ctx, params.Query)
		if err != nil {
			return "", err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	})

	samplesTool := llm.Tool{
		Name:        "get_sample_queries",
		Description: "Get worked example SQL queries for common cricket questions: top scorers, recent matches, career summaries, partnerships, head-to-head records.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}

	registry.Register(samplesTool, func(ctx context.Context, args string) (string, error) {
		out, err := json.MarshalIndent(catalog.SampleQueries(), "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	})
}
