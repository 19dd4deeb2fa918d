package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewDocvetMCPServer creates a new MCP server with all docvet tools and
// resources registered. The root is the documentation root to validate.
func NewDocvetMCPServer(root string) *server.MCPServer {
	s := server.NewMCPServer(
		"docvet",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, root)
	registerResources(s, root)

	return s
}
