package main

import (
	ghkk "github.com/hyperengineering/gh-kk"
	"github.com/hyperengineering/gh-kk/internal/whoami"
	ghkkmcp "github.com/hyperengineering/gh-kk/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for coding agent integration",
	Long: `Start a Model Context Protocol (MCP) server over stdio.

Exposes two read-only tools: gh_active_host and gh_active_user. The auth
token itself is never returned.

Configuration in an MCP client:

  {
    "mcpServers": {
      "gh-kk": {
        "command": "gh",
        "args": ["kk", "mcp"],
        "env": {
          "GH_HOST": "ghe.example.com"
        }
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Stdout carries the protocol; per-call diagnostics go back in tool results.
	server := ghkkmcp.NewServer(version, func(logger *ghkk.DebugLogger) *whoami.Service {
		return newService(cfg, logger)
	})
	return server.Run()
}
