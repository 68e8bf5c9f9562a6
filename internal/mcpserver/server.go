// Package mcpserver exposes the tool registry over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"notch-chatbot/internal/common/errors"
	"notch-chatbot/internal/common/logger"
	"notch-chatbot/pkg/registry"
)

// Tools is the part of *registry.Registry served over MCP.
type Tools interface {
	Definitions() []registry.Definition
	Invoke(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error)
}

type Server struct {
	tools  Tools
	mcp    *server.MCPServer
	served []mcp.Tool
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewServer(name, version string, tools Tools, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	s := &Server{
		tools:  tools,
		errors: errors.NewErrorHandler(log),
		logger: log,
		mcp: server.NewMCPServer(
			name,
			version,
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

// registerTools mirrors every registry tool, reusing its input schema.
func (s *Server) registerTools() {
	for _, def := range s.tools.Definitions() {
		tool := mcp.NewToolWithRawSchema(def.Name, def.Description, def.InputSchema)
		s.mcp.AddTool(tool, s.handler(def.Name))
		s.served = append(s.served, tool)
	}
}

func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError("arguments are not valid JSON"), nil
		}

		out, err := s.tools.Invoke(ctx, name, args)
		if err != nil {
			return mcp.NewToolResultError(string(s.errors.HandleToolError(name, err))), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// Serve runs the server on stdio. Stdout carries protocol messages, so
// logging must go to stderr.
func (s *Server) Serve() error {
	s.logger.Info("Serving tools over MCP stdio", map[string]interface{}{
		"tools": len(s.served),
	})
	return server.ServeStdio(s.mcp)
}
