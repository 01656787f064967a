package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/ngcomp/internal/discover"
	mcputils "github.com/mvp-joe/ngcomp/internal/mcp-utils"
)

// InspectComponentRequest is the argument set of inspect_component.
type InspectComponentRequest struct {
	Paths []string `json:"paths"`
}

// InspectComponentResponse lists the inspected components.
type InspectComponentResponse struct {
	Components []*discover.Component `json:"components"`
	Total      int                   `json:"total"`
}

// AddInspectComponentTool registers the inspect_component tool with an MCP server.
func AddInspectComponentTool(s *server.MCPServer, cfg *ServerConfig) {
	tool := mcp.NewTool(
		"inspect_component",
		mcp.WithDescription("Report the selector, templateUrl, styleUrls and class name recognized in Angular component class files, and which of them are missing. Use before extract_component to check that the sibling class source can be rewritten."),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.Description("Files, directories or glob patterns (e.g., ['src/app/page/page.component.ts'] or ['src/**/*.component.ts']). Directories are searched for component files.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createInspectComponentHandler(cfg.withDefaults()))
}

// createInspectComponentHandler creates the handler function for inspect_component.
func createInspectComponentHandler(cfg *ServerConfig) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.GetRawArguments().(map[string]interface{}); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req InspectComponentRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if len(req.Paths) == 0 {
			return mcp.NewToolResultError("paths parameter is required"), nil
		}

		d, err := discover.New(cfg.FS, cfg.Project.Paths.Components, cfg.Project.Paths.Ignore)
		if err != nil {
			return nil, fmt.Errorf("invalid component patterns: %w", err)
		}

		files, err := d.Resolve(req.Paths)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to resolve paths: %v", err)), nil
		}

		components, err := discover.InspectAll(cfg.FS, files)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return marshalToolResponse(&InspectComponentResponse{
			Components: components,
			Total:      len(components),
		})
	}
}
