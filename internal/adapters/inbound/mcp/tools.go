package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	baselineStore "github.com/docvet/docvet/internal/adapters/outbound/baseline"
	"github.com/docvet/docvet/internal/adapters/outbound/config"
	"github.com/docvet/docvet/internal/adapters/outbound/executor"
	"github.com/docvet/docvet/internal/adapters/outbound/extractor"
	"github.com/docvet/docvet/internal/adapters/outbound/gitinfo"
	"github.com/docvet/docvet/internal/application"
	"github.com/docvet/docvet/internal/domain"
)

// registerTools registers all docvet MCP tools on the given server.
func registerTools(s *server.MCPServer, root string) {
	// 1. docvet_validate
	s.AddTool(
		mcplib.NewTool("docvet_validate",
			mcplib.WithDescription("Run every documentation example under the root and return the full validation report as JSON"),
		),
		handleValidate(root),
	)

	// 2. docvet_check_snippet
	s.AddTool(
		mcplib.NewTool("docvet_check_snippet",
			mcplib.WithDescription("Execute a single Go code snippet in an isolated interpreter and return the execution result"),
			mcplib.WithString("code",
				mcplib.Required(),
				mcplib.Description("Go source code to execute"),
			),
		),
		handleCheckSnippet(root),
	)

	// 3. docvet_gate
	s.AddTool(
		mcplib.NewTool("docvet_gate",
			mcplib.WithDescription("Validate the documentation and compare the run against the accepted baseline. Returns the gate decision."),
		),
		handleGate(root),
	)

	// 4. docvet_baseline
	s.AddTool(
		mcplib.NewTool("docvet_baseline",
			mcplib.WithDescription("Return the accepted baseline as JSON, or a message when no baseline exists"),
		),
		handleBaseline(root),
	)
}

// newValidateService creates the standard set of outbound adapters and the
// validate service wired together.
func newValidateService() *application.ValidateService {
	return application.NewValidateService(
		extractor.New(),
		executor.NewFactory(),
		config.New(),
		gitinfo.New(),
	)
}

func handleValidate(root string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := newValidateService().Validate(ctx, root)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleCheckSnippet(root string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		code, err := request.RequireString("code")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := config.New().Load(root)
		if err != nil {
			return errorResult(fmt.Sprintf("config load failed: %v", err)), nil
		}

		runner, err := executor.New(cfg, domain.Seed{})
		if err != nil {
			return errorResult(fmt.Sprintf("runner setup failed: %v", err)), nil
		}

		ex := domain.Example{
			ID:         "snippet:1",
			SourcePath: "snippet",
			Line:       1,
			Kind:       domain.KindDocBlock,
			Code:       code,
		}
		return jsonResult(runner.Run(ctx, ex))
	}
}

func handleGate(root string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := newValidateService().Validate(ctx, root)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}

		gateSvc := application.NewGateService(baselineStore.New())
		decision, err := gateSvc.Evaluate(baselinePath(root), report)
		if err != nil {
			return errorResult(fmt.Sprintf("gate failed: %v", err)), nil
		}
		return jsonResult(decision)
	}
}

func handleBaseline(root string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		b, err := baselineStore.New().Load(baselinePath(root))
		if err != nil {
			return errorResult(fmt.Sprintf("baseline load failed: %v", err)), nil
		}
		if b == nil {
			return textResult("no baseline accepted yet"), nil
		}
		return jsonResult(b)
	}
}

func baselinePath(root string) string {
	return filepath.Join(root, filepath.FromSlash(domain.DefaultBaselinePath))
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
