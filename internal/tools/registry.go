// Package tools exposes the cricket intelligence operations as LLM tools.
// The same registry backs the interactive agent and the MCP server.
package tools

import (
	"context"
	"fmt"

	"github.com/ovalmind/ovalmind/internal/llm"
)

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

func (r *Registry) Register(tool llm.Tool, handler Handler) {
	r.tools = append(r.tools, tool)
	r.handlers[tool.Name] = handler
}

func (r *Registry) Tools() []llm.Tool {
	return r.tools
}

func (r *Registry) Execute(ctx context.Context, name, args string) (string, error) {
	handler, ok := r.handlers[name]
	if !ok {
		// The model sometimes hallucinates tool names; an error here gets
		// fed back as the tool result so it can correct itself.
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	return handler(ctx, args)
}
