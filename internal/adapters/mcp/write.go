package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"titleblock/internal/application"
	"titleblock/internal/application/commands"
	"titleblock/internal/application/extraction"
	"titleblock/internal/domain"
)

// RegisterWriteTools adds the tools that change stored state. extractor
// may be nil, in which case extract_sample is not offered.
func RegisterWriteTools(s *server.MCPServer, svc Services, extractor *extraction.Adapter) {
	s.AddTool(mapFieldsTool(), mapFieldsHandler(svc))
	s.AddTool(exportSummaryTool(), exportSummaryHandler(svc))
	s.AddTool(clearTool(), clearHandler(svc))
	if extractor != nil {
		s.AddTool(extractSampleTool(), extractSampleHandler(svc, extractor))
	}
}

// --- map_fields ---

func mapFieldsTool() mcp.Tool {
	return mcp.NewTool("map_fields",
		mcp.WithDescription("Store tag to role assignments in the field mapping. Use the assignments tool for valid roles."),
		mcp.WithString("assignments",
			mcp.Description("One TAG=ROLE pair per line, e.g. DWGNO=DWG No."),
			mcp.Required(),
		),
		mcp.WithString("on_conflict",
			mcp.Description("What to do when a tag is already mapped to another role"),
			mcp.Enum("keep", "replace", "cancel"),
		),
	)
}

func mapFieldsHandler(svc Services) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		proposed, err := parseAssignments(req.GetString("assignments", ""))
		if err != nil {
			return toolError(err)
		}
		policy, err := parsePolicy(req.GetString("on_conflict", "keep"))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewMapFieldsCommand(svc.Mappings, policy, proposed)
		result, err := cmd.Execute()
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// policyResolver answers every conflict the same way
type policyResolver struct {
	answer domain.Resolution
}

func (p policyResolver) Resolve(domain.Conflict) domain.Resolution {
	return p.answer
}

func parsePolicy(s string) (policyResolver, error) {
	switch s {
	case "", "keep":
		return policyResolver{domain.ResolveKeepAll}, nil
	case "replace":
		return policyResolver{domain.ResolveReplaceAll}, nil
	case "cancel":
		return policyResolver{domain.ResolveCancel}, nil
	}
	return policyResolver{}, fmt.Errorf("unknown conflict policy %q", s)
}

func parseAssignments(s string) (domain.FieldMapping, error) {
	out := make(domain.FieldMapping)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tag, role, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("expected TAG=ROLE, got %q", line)
		}
		out[strings.TrimSpace(tag)] = strings.TrimSpace(role)
	}
	return out, nil
}

// --- export_summary ---

func exportSummaryTool() mcp.Tool {
	return mcp.NewTool("export_summary",
		mcp.WithDescription("Export the stored summary entries to an .xlsx spreadsheet."),
		mcp.WithString("path",
			mcp.Description("Output file path ending in .xlsx"),
			mcp.Required(),
		),
	)
}

func exportSummaryHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := svc.Session.ListSummary(ctx)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewExportSummaryCommand(svc.Exporter, req.GetString("path", ""), entries)
		result, err := cmd.Execute()
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- clear ---

func clearTool() mcp.Tool {
	return mcp.NewTool("clear",
		mcp.WithDescription("Empty the stored summary or skipped entries."),
		mcp.WithString("list",
			mcp.Description("Which list to clear"),
			mcp.Enum("summary", "skipped"),
			mcp.Required(),
		),
	)
}

func clearHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list := req.GetString("list", "")
		var err error
		switch list {
		case "summary":
			err = svc.Session.ClearSummary(ctx)
		case "skipped":
			err = svc.Session.ClearSkipped(ctx)
		default:
			return toolError(fmt.Errorf("unknown list %q", list))
		}
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Cleared %s entries", list)), nil
	}
}

// --- extract_sample ---

func extractSampleTool() mcp.Tool {
	return mcp.NewTool("extract_sample",
		mcp.WithDescription("Extract the title block of a sample drawing and store the proposed reference table."),
		mcp.WithString("path",
			mcp.Description("Path of the sample drawing"),
			mcp.Required(),
		),
	)
}

func extractSampleHandler(svc Services, extractor *extraction.Adapter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewExtractSampleCommand(extractor, svc.Mappings, svc.Tables, req.GetString("path", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		sb.WriteByte('\n')
		for _, s := range result.Samples {
			fmt.Fprintf(&sb, "%s  %q  %s  (%s)\n", s.Tag, s.Sample, roleLabel(s.Role), s.Status)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func roleLabel(r application.Role) string {
	if !r.IsAssigned() {
		return "unassigned"
	}
	return r.String()
}
