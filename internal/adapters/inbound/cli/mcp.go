package cli

import (
	mcpadapter "github.com/docvet/docvet/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the docvet MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start docvet MCP server (stdio)",
		Long:  "Start the docvet MCP server using stdio transport. This lets AI coding assistants validate documentation examples and inspect the baseline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == "" {
				root = "."
			}
			s := mcpadapter.NewDocvetMCPServer(root)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Documentation root (defaults to current working directory)")

	return cmd
}
