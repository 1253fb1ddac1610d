package domain_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/assistant-mcp/internal/domain"
)

func textHandler(text string) domain.ToolHandler {
	return func(context.Context, map[string]interface{}) *mcp.CallToolResult {
		return mcp.NewToolResultText(text)
	}
}

func TestRegistry_OrderAndLookup(t *testing.T) {
	r := domain.NewRegistry()
	r.Register(mcp.NewTool("alpha", mcp.WithDescription("first")), textHandler("a"))
	r.Register(mcp.NewTool("beta", mcp.WithDescription("second")), textHandler("b"))
	r.Register(mcp.NewTool("gamma", mcp.WithDescription("third")), textHandler("c"))

	tools := r.Tools()
	require.Len(t, tools, 3)
	assert.Equal(t, "alpha", tools[0].Name)
	assert.Equal(t, "beta", tools[1].Name)
	assert.Equal(t, "gamma", tools[2].Name)

	h, ok := r.Handler("beta")
	require.True(t, ok)
	res := h(context.Background(), nil)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "b", res.Content[0].(mcp.TextContent).Text)

	_, ok = r.Handler("delta")
	assert.False(t, ok)
}

func TestRegistry_ReRegisterKeepsPosition(t *testing.T) {
	r := domain.NewRegistry()
	r.Register(mcp.NewTool("alpha"), textHandler("old"))
	r.Register(mcp.NewTool("beta"), textHandler("b"))
	r.Register(mcp.NewTool("alpha"), textHandler("new"))

	tools := r.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, "alpha", tools[0].Name)

	h, ok := r.Handler("alpha")
	require.True(t, ok)
	assert.Equal(t, "new", h(context.Background(), nil).Content[0].(mcp.TextContent).Text)
}
