// Package domain holds the tool catalog model shared by the dispatch layer
// and the tool sets, compliant with the Model Context Protocol (MCP).
// Based on MCP Spec 2024-11-05: https://modelcontextprotocol.io/specification/2024-11-05
package domain

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolHandler executes one tool invocation. Handlers recover from their own
// collaborator failures and fold them into the returned envelope; they never
// return a Go error to the dispatcher.
type ToolHandler func(ctx context.Context, args map[string]interface{}) *mcp.CallToolResult

// RegisteredTool pairs a tool descriptor with its handler.
type RegisteredTool struct {
	Tool    mcp.Tool
	Handler ToolHandler
}

// Registry is the fixed, ordered catalog of available tools. It is built once
// at startup and read-only thereafter; lookup is by name.
type Registry struct {
	order  []RegisteredTool
	byName map[string]ToolHandler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]ToolHandler)}
}

// Register appends a tool to the catalog. Registering the same name twice
// replaces the handler but keeps the original catalog position.
func (r *Registry) Register(tool mcp.Tool, handler ToolHandler) {
	if _, exists := r.byName[tool.Name]; !exists {
		r.order = append(r.order, RegisteredTool{Tool: tool, Handler: handler})
	} else {
		for i := range r.order {
			if r.order[i].Tool.Name == tool.Name {
				r.order[i] = RegisteredTool{Tool: tool, Handler: handler}
				break
			}
		}
	}
	r.byName[tool.Name] = handler
}

// Tools returns the descriptors in registration order.
func (r *Registry) Tools() []mcp.Tool {
	tools := make([]mcp.Tool, len(r.order))
	for i, rt := range r.order {
		tools[i] = rt.Tool
	}
	return tools
}

// Handler returns the handler registered under name, if any.
func (r *Registry) Handler(name string) (ToolHandler, bool) {
	h, ok := r.byName[name]
	return h, ok
}
