package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bogo-app/bogo/internal/keywords"
	"github.com/bogo-app/bogo/internal/report"
	"github.com/bogo-app/bogo/internal/reports"
	"github.com/bogo-app/bogo/internal/schedule"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Reports   *reports.Service
	Extractor *keywords.Extractor
	Now       func() time.Time // defaults to time.Now
}

// NewMCPServer creates an MCP server exposing the report operations as
// tools, mirroring the HTTP API semantics.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := server.NewMCPServer(
		"bogo",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("bogo — daily work-report service: submit, list and inspect reports."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("submit_report",
			mcp.WithDescription("Submit a work report. Keywords are extracted from the content automatically."),
			mcp.WithString("title", mcp.Description("Report title"), mcp.Required()),
			mcp.WithString("content", mcp.Description("Report body text"), mcp.Required()),
			mcp.WithString("session", mcp.Description("Session slot, AM or PM; derived from the current time when omitted")),
		),
		mcpSubmitReport(deps),
	)

	s.AddTool(
		mcp.NewTool("list_reports",
			mcp.WithDescription("List active reports, most recent first."),
			mcp.WithNumber("limit", mcp.Description("Maximum number of reports to return (default 10)")),
		),
		mcpListReports(deps),
	)

	s.AddTool(
		mcp.NewTool("get_report",
			mcp.WithDescription("Fetch a single report by id."),
			mcp.WithString("id", mcp.Description("Report id"), mcp.Required()),
		),
		mcpGetReport(deps),
	)

	s.AddTool(
		mcp.NewTool("today_status",
			mcp.WithDescription("Show today's session state: active slot, warning flag, and which reports exist."),
		),
		mcpTodayStatus(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"report://today",
			"Today Status",
			mcp.WithResourceDescription("Today's session state and reports as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceToday(deps),
	)

	return s
}

func mcpSubmitReport(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := req.RequireString("title")
		if err != nil {
			return mcpError("title is required"), nil
		}
		content, err := req.RequireString("content")
		if err != nil {
			return mcpError("content is required"), nil
		}

		draft := report.Draft{
			Type:    report.TypeDaily,
			Session: report.Session(req.GetString("session", "")),
			Title:   title,
			Content: content,
		}
		if draft.Session == "" {
			draft.Session = schedule.ActiveSession(deps.Now())
		}

		kws := deps.Extractor.Extract(content, keywords.DefaultMaxKeywords)
		created, err := deps.Reports.Create(ctx, draft, kws, report.StatusSubmitted)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to submit report: %v", err)), nil
		}

		return mcpText(fmt.Sprintf("Submitted report %s (%s)", created.ID, created.Session)), nil
	}
}

func mcpListReports(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", 10)
		if limit <= 0 {
			limit = 10
		}

		list, err := deps.Reports.List(ctx)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to list reports: %v", err)), nil
		}
		if len(list) > limit {
			list = list[:limit]
		}

		b, err := json.Marshal(list)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal reports: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpGetReport(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}

		rec, err := deps.Reports.Get(ctx, id)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to get report: %v", err)), nil
		}

		b, err := json.Marshal(rec)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal report: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpTodayStatus(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status, err := deps.Reports.Today(ctx, deps.Now())
		if err != nil {
			return mcpError(fmt.Sprintf("failed to load today status: %v", err)), nil
		}

		b, err := json.Marshal(status)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal status: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceToday(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		status, err := deps.Reports.Today(ctx, deps.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to load today status: %w", err)
		}

		b, err := json.Marshal(status)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal status: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
