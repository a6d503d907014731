package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/internal/version"
	"github.com/amineremache/dafty-mcp/pkg/daft"
)

// protocolServer builds the MCP server with every tool registered under its
// generated input schema.
func (s *Server) protocolServer() *server.MCPServer {
	ps := server.NewMCPServer(version.Name, version.String(),
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, t := range s.tools {
		ps.AddTool(mcpgo.NewToolWithRawSchema(t.Name, t.Description, t.rawSchema), s.callHandler(t.Name))
	}
	return ps
}

// callHandler adapts Call to the protocol's tool handler. Tool failures are
// reported in the result with isError set, never as protocol errors.
func (s *Server) callHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		args, err := json.Marshal(req.GetRawArguments())
		if err != nil {
			return toCallResult(nil, invalidArgs(err.Error(), nil)), nil
		}
		result, err := s.Call(ctx, name, args)
		return toCallResult(result, err), nil
	}
}

// Serve speaks the tool protocol over line-delimited JSON-RPC on r and w
// until r is exhausted or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	stdio := server.NewStdioServer(s.protocolServer())
	stdio.SetErrorLogger(slog.NewLogLogger(logger.With("transport", "stdio").Handler(), slog.LevelError))

	logger.Info("tool server listening on stdio", "tools", len(s.tools))
	err := stdio.Listen(ctx, r, w)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// toCallResult renders a tool outcome as a single JSON text block.
func toCallResult(result any, err error) *mcpgo.CallToolResult {
	payload, isError := result, false
	if err != nil {
		payload, isError = toToolError(err), true
	}

	text, merr := marshalIndent(payload)
	if merr != nil {
		text, _ = marshalIndent(&ToolError{Kind: daft.KindScraper, Stage: "encode", Message: merr.Error()})
		isError = true
	}
	return &mcpgo.CallToolResult{
		Content: []mcpgo.Content{mcpgo.NewTextContent(text)},
		IsError: isError,
	}
}

// marshalIndent encodes v without HTML escaping, which would mangle the
// query strings in listing URLs.
func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
