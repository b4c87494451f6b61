package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"titleblock/internal/application"
	"titleblock/internal/ports"
)

// Services are the stores the tools work against
type Services struct {
	Mappings ports.MappingStore
	Tables   ports.TableStore
	Session  ports.SessionStore
	Exporter ports.SummaryExporter
}

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, svc Services) {
	s.AddTool(assignmentsTool(), assignmentsHandler())
	s.AddTool(mappingTool(), mappingHandler(svc.Mappings))
	s.AddTool(tableTool(), tableHandler(svc.Tables))
	s.AddTool(summaryTool(), summaryHandler(svc.Session))
	s.AddTool(skippedTool(), skippedHandler(svc.Session))
}

// --- assignments ---

func assignmentsTool() mcp.Tool {
	return mcp.NewTool("assignments",
		mcp.WithDescription("List every role a title block tag can be assigned to."),
	)
}

func assignmentsHandler() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(strings.Join(application.AssignmentOptions(), "\n") + "\n"), nil
	}
}

// --- mapping ---

func mappingTool() mcp.Tool {
	return mcp.NewTool("mapping",
		mcp.WithDescription("Show the stored tag to role mapping. With a tag, shows only that tag."),
		mcp.WithString("tag",
			mcp.Description("Attribute tag to look up"),
		),
	)
}

func mappingHandler(store ports.MappingStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mapping, err := store.Load()
		if err != nil {
			return toolError(err)
		}

		if tag := req.GetString("tag", ""); tag != "" {
			role, ok := mapping[tag]
			if !ok {
				return mcp.NewToolResultText(fmt.Sprintf("%s is not mapped.", tag)), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("%s  %s", tag, role)), nil
		}

		return formatEntities(mapping.Tags(), func(tag string) string {
			return fmt.Sprintf("%s  %s", tag, mapping[tag])
		})
	}
}

// --- table ---

func tableTool() mcp.Tool {
	return mcp.NewTool("table",
		mcp.WithDescription("Show the reference table extracted from the sample drawing."),
	)
}

func tableHandler(store ports.TableStore) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := store.Load()
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "sample: %s\nplot style: %s\n", table.SampleFile, table.PlotStyle)
		for _, r := range table.Rows {
			sb.WriteString(formatRow(r))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- summary ---

func summaryTool() mcp.Tool {
	return mcp.NewTool("summary",
		mcp.WithDescription("List the summary entries of every processed layout, oldest first."),
	)
}

func summaryHandler(session ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := session.ListSummary(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(entries, formatSummary)
	}
}

// --- skipped ---

func skippedTool() mcp.Tool {
	return mcp.NewTool("skipped",
		mcp.WithDescription("List the files and layouts skipped by past runs with their reasons."),
		mcp.WithBoolean("detail",
			mcp.Description("Include the error chain and stack trace of each entry"),
		),
	)
}

func skippedHandler(session ports.SessionStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := session.ListSkipped(ctx)
		if err != nil {
			return toolError(err)
		}
		detail := req.GetBool("detail", false)
		return formatEntities(entries, func(e application.SkippedEntry) string {
			s := fmt.Sprintf("%s  %s", e.Identifier, e.Reason)
			if detail && e.Detail != "" {
				s += "\n" + e.Detail
			}
			return s
		})
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatRow(r application.TableRow) string {
	s := fmt.Sprintf("%s  %q  %s", r.Tag, r.Value, r.Role)
	if r.StaticValue != "" {
		s += fmt.Sprintf("  static=%q", r.StaticValue)
	}
	return s
}

func formatSummary(e application.SummaryEntry) string {
	return fmt.Sprintf("%s  %s  rev %s  %s  %s  %s", e.File, e.Layout, e.Revision, e.RevisionDescription, e.DrawingNumber, e.DrawingTitle)
}
