package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/halcyon-labs/assistant-mcp/internal/domain"
	"github.com/halcyon-labs/assistant-mcp/pkg/shared/mcpjsonrpc"
)

// ProtocolVersion is the MCP protocol revision this server declares.
const ProtocolVersion = "2024-11-05"

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type serverCapabilities struct {
	Tools struct{} `json:"tools"`
}

type initializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    serverCapabilities `json:"capabilities"`
	ServerInfo      serverInfo         `json:"serverInfo"`
}

type listToolsResult struct {
	Tools []mcp.Tool `json:"tools"`
}

// Dispatcher routes decoded requests to the method handlers: session
// initialization, capability listing, and tool invocation. It holds no
// per-session state; every response is a function of the request alone.
type Dispatcher struct {
	registry      *domain.Registry
	serverName    string
	serverVersion string
	logger        *slog.Logger
	tracer        trace.Tracer
}

// NewDispatcher creates a dispatcher over the given tool registry.
func NewDispatcher(registry *domain.Registry, serverName, serverVersion string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry:      registry,
		serverName:    serverName,
		serverVersion: serverVersion,
		logger:        logger.With("component", "dispatcher"),
		tracer:        otel.Tracer("github.com/halcyon-labs/assistant-mcp/internal/usecase"),
	}
}

// HandleMessage produces exactly one response for a decoded request.
func (d *Dispatcher) HandleMessage(ctx context.Context, req *mcpjsonrpc.Request) *mcpjsonrpc.Response {
	d.logger.Debug("Handling message", slog.String("method", req.Method))

	switch req.Method {
	case "initialize":
		return d.handleInitialize(req)
	case "tools/list":
		return d.handleListTools(req)
	case "tools/call":
		return d.handleCallTool(ctx, req)
	default:
		return mcpjsonrpc.NewError(req.ID, mcpjsonrpc.CodeMethodNotFound, "Method not found: "+req.Method)
	}
}

func (d *Dispatcher) handleInitialize(req *mcpjsonrpc.Request) *mcpjsonrpc.Response {
	return mcpjsonrpc.NewResult(req.ID, initializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo:      serverInfo{Name: d.serverName, Version: d.serverVersion},
	})
}

func (d *Dispatcher) handleListTools(req *mcpjsonrpc.Request) *mcpjsonrpc.Response {
	return mcpjsonrpc.NewResult(req.ID, listToolsResult{Tools: d.registry.Tools()})
}

func (d *Dispatcher) handleCallTool(ctx context.Context, req *mcpjsonrpc.Request) *mcpjsonrpc.Response {
	var params mcpjsonrpc.CallToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return mcpjsonrpc.NewError(req.ID, mcpjsonrpc.CodeInvalidParams, "Invalid params: "+err.Error())
		}
	}
	if params.Arguments == nil {
		params.Arguments = map[string]interface{}{}
	}

	handler, ok := d.registry.Handler(params.Name)
	if !ok {
		d.logger.Warn("Unknown tool requested", slog.String("tool", params.Name))
		return mcpjsonrpc.NewError(req.ID, mcpjsonrpc.CodeMethodNotFound, "Unknown tool: "+params.Name)
	}

	ctx, span := d.tracer.Start(ctx, "tools/call",
		trace.WithAttributes(attribute.String("mcp.tool.name", params.Name)))
	defer span.End()

	d.logger.Info("Invoking tool", slog.String("tool", params.Name))
	result := handler(ctx, params.Arguments)
	if result.IsError {
		span.SetStatus(codes.Error, "tool reported an error")
	}

	// A handler-level error is still a protocol-level success; only dispatch
	// failures use the error member.
	return mcpjsonrpc.NewResult(req.ID, result)
}
