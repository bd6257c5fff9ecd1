// Package mcpserver exposes the tool registry over the Model Context
// Protocol, so external MCP clients get the same operations as the built-in
// agent.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ovalmind/ovalmind/internal/logger"
	"github.com/ovalmind/ovalmind/internal/tools"
)

const serverName = "ovalmind"

// New builds an MCP server with every registry tool attached.
//
// Arguments arrive as json.RawMessage in req.Params.Arguments. A failed
// tool is reported with result.SetError, not a handler error: a non-nil
// handler error is a JSON-RPC protocol failure, which a rejected SQL
// statement is not.
func New(registry *tools.Registry, version string) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version,
	}, nil)

	for _, t := range registry.Tools() {
		schema, err := json.Marshal(t.Parameters)
		if err != nil {
			logger.Error("tool schema not serializable, skipping", "tool", t.Name, "error", err)
			continue
		}

		tool := &mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: json.RawMessage(schema),
		}

		name := t.Name
		srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := "{}"
			if req.Params.Arguments != nil {
				args = string(req.Params.Arguments)
			}

			result, err := registry.Execute(ctx, name, args)
			if err != nil {
				logger.Warn("tool failed", "tool", name, "error", err)
				var res mcp.CallToolResult
				res.SetError(fmt.Errorf("%s: %w", name, err))
				return &res, nil
			}

			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: result}},
			}, nil
		})
	}

	return srv
}

// RunStdio serves MCP over stdin/stdout until the context is cancelled.
func RunStdio(ctx context.Context, srv *mcp.Server) error {
	logger.Info("mcp server listening on stdio")
	return srv.Run(ctx, &mcp.StdioTransport{})
}
