package mcp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titleblock/internal/adapters/filesystem"
	"titleblock/internal/adapters/sqlite"
	"titleblock/internal/adapters/xlsx"
	"titleblock/internal/domain"
	"titleblock/internal/ports"
)

func services(t *testing.T) Services {
	t.Helper()
	dir := t.TempDir()
	session := sqlite.NewStore()
	require.NoError(t, session.Open(sqlite.MemoryPath))
	t.Cleanup(func() { session.Close() })
	return Services{
		Mappings: filesystem.NewMappingStore(filepath.Join(dir, "map.yaml")),
		Tables:   filesystem.NewTableStore(filepath.Join(dir, "table.yaml")),
		Session:  session,
		Exporter: xlsx.NewExporter(),
	}
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestMapFieldsAndMapping(t *testing.T) {
	ctx := context.Background()
	svc := services(t)

	res, err := mapFieldsHandler(svc)(ctx, call(map[string]any{"assignments": "DWGNO=DWG No.\nREV=REVISION\n"}))
	require.NoError(t, err)
	assert.False(t, res.IsError, text(t, res))

	res, _ = mappingHandler(svc.Mappings)(ctx, call(nil))
	assert.Equal(t, "DWGNO  DWG No.\nREV  REVISION\n", text(t, res))

	// conflicting role is kept by default
	res, _ = mapFieldsHandler(svc)(ctx, call(map[string]any{"assignments": "DWGNO=VARIABLE"}))
	assert.False(t, res.IsError)
	res, _ = mappingHandler(svc.Mappings)(ctx, call(map[string]any{"tag": "DWGNO"}))
	assert.Equal(t, "DWGNO  DWG No.", text(t, res))

	res, _ = mapFieldsHandler(svc)(ctx, call(map[string]any{"assignments": "DWGNO=VARIABLE", "on_conflict": "replace"}))
	assert.False(t, res.IsError)
	res, _ = mappingHandler(svc.Mappings)(ctx, call(map[string]any{"tag": "DWGNO"}))
	assert.Equal(t, "DWGNO  VARIABLE", text(t, res))

	res, _ = mappingHandler(svc.Mappings)(ctx, call(map[string]any{"tag": "NOPE"}))
	assert.Equal(t, "NOPE is not mapped.", text(t, res))
}

func TestMapFieldsRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := services(t)

	tests := []map[string]any{
		{"assignments": ""},
		{"assignments": "DWGNO"},
		{"assignments": "DWGNO=REV 0 REV"},
		{"assignments": "DWGNO=VARIABLE", "on_conflict": "maybe"},
	}
	for _, args := range tests {
		res, err := mapFieldsHandler(svc)(ctx, call(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "expected error for %v", args)
	}
}

func TestSessionTools(t *testing.T) {
	ctx := context.Background()
	svc := services(t)

	res, _ := summaryHandler(svc.Session)(ctx, call(nil))
	assert.Equal(t, "No results.", text(t, res))

	require.NoError(t, svc.Session.BeginRun(ctx, ports.RunRecord{ID: "r1", Folder: "/jobs", Files: 1, Status: "running", StartedAt: time.Now()}))
	require.NoError(t, svc.Session.AddSummary(ctx, "r1", domain.SummaryEntry{File: "A.dwg", Layout: "L1", Revision: "C", DrawingNumber: "A-1"}))
	require.NoError(t, svc.Session.AddSkipped(ctx, "r1", domain.SkippedEntry{Identifier: "B.dwg", Reason: "Error opening drawing", Detail: "trace", At: time.Now()}))

	res, _ = summaryHandler(svc.Session)(ctx, call(nil))
	assert.Contains(t, text(t, res), "A.dwg  L1  rev C")

	res, _ = skippedHandler(svc.Session)(ctx, call(map[string]any{"detail": true}))
	assert.Equal(t, "B.dwg  Error opening drawing\ntrace\n", text(t, res))

	out := filepath.Join(t.TempDir(), "summary.xlsx")
	res, _ = exportSummaryHandler(svc)(ctx, call(map[string]any{"path": out}))
	assert.False(t, res.IsError, text(t, res))
	assert.FileExists(t, out)

	res, _ = clearHandler(svc)(ctx, call(map[string]any{"list": "summary"}))
	assert.Equal(t, "Cleared summary entries", text(t, res))
	res, _ = summaryHandler(svc.Session)(ctx, call(nil))
	assert.Equal(t, "No results.", text(t, res))

	res, _ = clearHandler(svc)(ctx, call(map[string]any{"list": "runs"}))
	assert.True(t, res.IsError)
}

func TestAssignmentsTool(t *testing.T) {
	res, err := assignmentsHandler()(context.Background(), call(nil))
	require.NoError(t, err)
	out := text(t, res)
	assert.Contains(t, out, "DWG No.\n")
	assert.Contains(t, out, "REV 10 COMPANY\n")
}
