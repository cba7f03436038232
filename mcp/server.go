// Package mcp exposes the active gh host and user as MCP tools for coding agents.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	ghkk "github.com/hyperengineering/gh-kk"
	"github.com/hyperengineering/gh-kk/internal/whoami"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServiceFactory builds a whoami.Service whose diagnostics go to logger.
// The server builds one per tool call so each call's diagnostics can be
// returned to the agent.
type ServiceFactory func(logger *ghkk.DebugLogger) *whoami.Service

// Server wraps the MCP server with read-only gh-kk tools.
type Server struct {
	newService ServiceFactory
	mcpServer  *server.MCPServer
}

// ToolResult represents the result of a tool call.
type ToolResult struct {
	Content string
	IsError bool
}

// ToolInfo represents a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

// NewServer creates a new MCP server with gh-kk tools registered.
func NewServer(version string, factory ServiceFactory) *Server {
	if factory == nil {
		panic("mcp: nil service factory")
	}
	s := &Server{newService: factory}

	s.mcpServer = server.NewMCPServer(
		"gh-kk",
		version,
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// Run starts the MCP server, reading from stdin and writing to stdout.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// HandleMessage processes a raw JSON-RPC message and returns a response.
// This is primarily for testing the MCP protocol layer.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, message)
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{
		{Name: "gh_active_host", Description: "Report the GitHub host the gh CLI is currently authenticated against"},
		{Name: "gh_active_user", Description: "Report the profile of the GitHub user the gh CLI is currently authenticated as"},
	}
}

// CallTool executes a tool by name with the given arguments.
// This is used for testing and direct invocation.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	switch name {
	case "gh_active_host":
		return s.handleActiveHost(ctx, args)
	case "gh_active_user":
		return s.handleActiveUser(ctx, args)
	default:
		return &ToolResult{Content: fmt.Sprintf("unknown tool: %s", name), IsError: true}, nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("gh_active_host",
		mcp.WithDescription("Report the GitHub host (github.com or an Enterprise Server hostname) the gh CLI is currently authenticated against. Honors GH_HOST."),
	), s.mcpHandleActiveHost)

	s.mcpServer.AddTool(mcp.NewTool("gh_active_user",
		mcp.WithDescription("Report the login, name, email, company and bio of the GitHub user the gh CLI is currently authenticated as. Read-only; never returns the auth token."),
		mcp.WithBoolean("include_json",
			mcp.Description("Append the full /user API response as indented JSON (default: false)"),
		),
	), s.mcpHandleActiveUser)
}

func (s *Server) mcpHandleActiveHost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleActiveHost(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func (s *Server) mcpHandleActiveUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.handleActiveUser(ctx, req.GetArguments())
	if err != nil {
		return nil, err
	}
	return toMCPResult(result), nil
}

func toMCPResult(r *ToolResult) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: r.Content,
			},
		},
	}
	if r.IsError {
		result.IsError = true
	}
	return result
}

// Internal handlers

func (s *Server) handleActiveHost(ctx context.Context, _ map[string]any) (*ToolResult, error) {
	svc, _, err := s.service()
	if err != nil {
		return nil, err
	}
	return &ToolResult{Content: svc.Hostname(ctx)}, nil
}

func (s *Server) handleActiveUser(ctx context.Context, args map[string]any) (*ToolResult, error) {
	includeJSON, _ := args["include_json"].(bool)

	svc, diagnostics, err := s.service()
	if err != nil {
		return nil, err
	}

	payload := svc.ActiveUser(ctx)
	if payload == "" {
		return &ToolResult{Content: diagnosticText(diagnostics, "could not determine the active GitHub user"), IsError: true}, nil
	}

	var out bytes.Buffer
	renderer := &ghkk.ProfileRenderer{Out: &out, Verbose: includeJSON}
	renderer.Log, _ = ghkk.NewDebugLogger(false, "", diagnostics)
	if !renderer.Render([]byte(payload)) {
		return &ToolResult{Content: diagnosticText(diagnostics, "unexpected /user response"), IsError: true}, nil
	}

	return &ToolResult{Content: strings.TrimRight(out.String(), "\n")}, nil
}

func (s *Server) service() (*whoami.Service, *bytes.Buffer, error) {
	var diagnostics bytes.Buffer
	logger, err := ghkk.NewDebugLogger(false, "", &diagnostics)
	if err != nil {
		return nil, nil, err
	}
	return s.newService(logger), &diagnostics, nil
}

func diagnosticText(buf *bytes.Buffer, fallback string) string {
	if text := strings.TrimSpace(buf.String()); text != "" {
		return text
	}
	return fallback
}
