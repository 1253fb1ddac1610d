// Package stdio implements the newline-delimited JSON transport: one request
// per input line, one response line per non-empty input line.
package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/halcyon-labs/assistant-mcp/pkg/shared/mcpjsonrpc"
)

// maxLineSize bounds a single request line.
const maxLineSize = 10 * 1024 * 1024 // 10MB

// Handler processes one decoded request and always yields a response.
type Handler interface {
	HandleMessage(ctx context.Context, req *mcpjsonrpc.Request) *mcpjsonrpc.Response
}

// Server reads requests line by line and writes responses strictly in
// request order, flushing after each line.
type Server struct {
	handler Handler
	logger  *slog.Logger
}

// New creates a stdio server over the given handler.
func New(handler Handler, logger *slog.Logger) *Server {
	return &Server{
		handler: handler,
		logger:  logger.With("component", "stdio_server"),
	}
}

// Listen processes in until end of stream, writing one response line per
// non-empty input line to out. It returns nil on clean end of input.
// Processing is strictly sequential; a slow tool call stalls the loop.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	writer := bufio.NewWriter(out)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		resp := s.handleLine(ctx, line)

		data, err := json.Marshal(resp)
		if err != nil {
			// Responses are plain structs; this only fires on a handler bug.
			s.logger.Error("Failed to marshal response", slog.Any("error", err))
			data, _ = json.Marshal(mcpjsonrpc.NewError(nil, mcpjsonrpc.CodeInternalError, "Internal error: unencodable response"))
		}

		if _, err := writer.Write(data); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
		if err := writer.Flush(); err != nil {
			return fmt.Errorf("failed to flush response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	s.logger.Info("End of input, shutting down.")
	return nil
}

// handleLine parses and dispatches a single line. A panic anywhere below the
// transport becomes an internal-error response rather than killing the loop.
func (s *Server) handleLine(ctx context.Context, line string) (resp *mcpjsonrpc.Response) {
	var id interface{}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recovered from panic while handling request", slog.Any("panic", r))
			resp = mcpjsonrpc.NewError(id, mcpjsonrpc.CodeInternalError, fmt.Sprintf("Internal error: %v", r))
		}
	}()

	var req mcpjsonrpc.Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return mcpjsonrpc.NewError(nil, mcpjsonrpc.CodeParseError, "Parse error: "+err.Error())
	}
	id = req.ID

	return s.handler.HandleMessage(ctx, &req)
}
