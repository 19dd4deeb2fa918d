package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	baselineStore "github.com/docvet/docvet/internal/adapters/outbound/baseline"
)

// registerResources registers all docvet MCP resources on the given server.
func registerResources(s *server.MCPServer, root string) {
	// 1. docvet://report - latest validation report
	s.AddResource(
		mcplib.NewResource(
			"docvet://report",
			"Validation Report",
			mcplib.WithResourceDescription("Full validation report for the documentation root"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(root),
	)

	// 2. docvet://baseline - accepted baseline
	s.AddResource(
		mcplib.NewResource(
			"docvet://baseline",
			"Baseline",
			mcplib.WithResourceDescription("Accepted baseline the regression gate compares runs against"),
			mcplib.WithMIMEType("application/json"),
		),
		handleBaselineResource(root),
	)
}

func handleReportResource(root string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := newValidateService().Validate(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "docvet://report",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleBaselineResource(root string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		b, err := baselineStore.New().Load(baselinePath(root))
		if err != nil {
			return nil, fmt.Errorf("baseline load failed: %w", err)
		}
		if b == nil {
			return nil, fmt.Errorf("no baseline accepted yet")
		}

		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling baseline: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "docvet://baseline",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
