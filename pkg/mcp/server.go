// Package mcp exposes the converter over the Model Context Protocol, so
// agent tooling can convert markup and query the extracted component set
// without shelling out to the CLI.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/jsxify/pkg/converter"
	"github.com/gnana997/jsxify/pkg/mcplog"
)

const serverVersion = "0.1.0-dev"

// Server wraps an MCP stdio server around a shared Converter. The converter's
// global registry persists for the server's lifetime, so repeated tool calls
// deduplicate components across documents the same way a batch run does.
type Server struct {
	mcpServer *server.MCPServer
	converter *converter.Converter
	logger    *mcplog.Logger // nil disables tool-call logging
}

// NewServer creates the MCP server. logger may be nil.
func NewServer(c *converter.Converter, logger *mcplog.Logger) *Server {
	s := &Server{converter: c, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("jsxify", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: convertHTMLTool(), Handler: s.handleConvertHTML},
		server.ServerTool{Tool: convertFileTool(), Handler: s.handleConvertFile},
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
