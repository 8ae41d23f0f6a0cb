// Package server exposes win-ctrl operations over the Model Context Protocol:
// every operation as a tool, live AeroSpace state as resources, and a few
// workflow prompts.
package server

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/win-ctrl/internal/app"
	"github.com/mj1618/win-ctrl/internal/apperr"
	"github.com/mj1618/win-ctrl/internal/logging"
	"github.com/mj1618/win-ctrl/internal/output"
	"github.com/mj1618/win-ctrl/internal/version"
)

// Name is the server name announced during initialization.
const Name = "win-ctrl"

// Transports lists the supported transports.
var Transports = []string{"stdio", "streamable-http"}

const instructions = `win-ctrl controls the AeroSpace tiling window manager on macOS.
Read aerospace://focused or aerospace://windows before acting on windows; window IDs
come from those resources. Every tool returns {"success": true, ...} or
{"success": false, "error": {"code", "message", "details"}}. The details list
valid options or available IDs, so correct the call instead of re-querying.`

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	// Format renders tool and resource text. JSON unless set.
	Format output.Format
}

// Server wraps the MCP server around the shared services.
type Server struct {
	app    *app.App
	format output.Format
	log    *log.Logger
	mcp    *mcpserver.MCPServer
}

// New creates a server with every tool, resource and prompt registered.
func New(a *app.App, cfg Config) *Server {
	s := &Server{
		app:    a,
		format: cfg.Format,
		log:    a.Log,
	}
	if s.format == "" {
		s.format = output.FormatJSON
	}
	if s.log == nil {
		s.log = logging.Discard()
	}

	s.mcp = mcpserver.NewMCPServer(
		Name,
		version.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithPromptCapabilities(false),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(instructions),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// Serve starts the server with the configured transport and blocks.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio", "":
		s.log.Info("serving", "transport", "stdio")
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		addr := fmt.Sprintf(":%d", cfg.Port)
		s.log.Info("serving", "transport", "streamable-http", "addr", addr)
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// render serializes v in the server's text format.
func (s *Server) render(v any) string {
	b, err := output.Marshal(v, s.format)
	if err != nil {
		s.log.Error("failed to render result", "err", err)
		b, _ = output.Marshal(apperr.Envelope(err), output.FormatJSON)
	}
	return string(b)
}

// failure converts err into an error result carrying the envelope.
func (s *Server) failure(tool string, err error) *mcp.CallToolResult {
	env := apperr.Envelope(err)
	s.log.Warn("tool failed", "tool", tool, "code", env.Error.Code, "message", env.Error.Message)
	return mcp.NewToolResultError(s.render(env))
}

// handle adapts a typed operation into a tool handler. The operation reads
// its own parameters; any error it returns, parameter errors included, is
// reported as the failure envelope.
func (s *Server) handle(tool string, op func(context.Context, args) (any, error)) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.log.Debug("tool call", "tool", tool)
		result, err := op(ctx, args(request.GetArguments()))
		if err != nil {
			return s.failure(tool, err), nil
		}
		return mcp.NewToolResultText(s.render(result)), nil
	}
}
