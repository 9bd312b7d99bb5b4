package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/naudiz/internal/memoservice"
	"github.com/starford/naudiz/internal/models"
	"github.com/starford/naudiz/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(testutil.TestService(t, ""))
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we invoke the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "add_memo":
		result, err = srv.addMemo(ctx, req)
	case "list_memos":
		result, err = srv.listMemos(ctx, req)
	case "get_memo_group":
		result, err = srv.getMemoGroup(ctx, req)
	case "update_memo":
		result, err = srv.updateMemo(ctx, req)
	case "delete_memo":
		result, err = srv.deleteMemo(ctx, req)
	case "add_alias":
		result, err = srv.addAlias(ctx, req)
	case "remove_alias":
		result, err = srv.removeAlias(ctx, req)
	case "remove_group":
		result, err = srv.removeGroup(ctx, req)
	case "export_memos":
		result, err = srv.exportMemos(ctx, req)
	case "get_memo_contract":
		result, err = srv.getMemoContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestAddAndGetMemo(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "add_memo", map[string]interface{}{
		"tag":     "Foo",
		"text":    "hello",
		"locator": "/books/a.epub",
	})
	if r.IsError {
		t.Fatalf("add_memo error: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"Foo"`) {
		t.Errorf("add result = %q", resultText(r))
	}

	r = callTool(t, srv, "get_memo_group", map[string]interface{}{
		"tag":     "foo",
		"locator": "/books/a.epub",
	})
	if r.IsError {
		t.Fatalf("get_memo_group error: %s", resultText(r))
	}
	var detail memoservice.GroupDetail
	if err := json.Unmarshal([]byte(resultText(r)), &detail); err != nil {
		t.Fatalf("unmarshal detail: %v", err)
	}
	if detail.PrimaryTag != "Foo" || len(detail.Notes) != 1 {
		t.Errorf("detail = %+v", detail)
	}
}

func TestListMemos(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "add_memo", map[string]interface{}{"tag": "Alpha", "text": "a", "locator": "/a"})
	callTool(t, srv, "add_memo", map[string]interface{}{"tag": "Beta", "text": "b", "locator": "/b"})

	r := callTool(t, srv, "list_memos", map[string]interface{}{})
	var rows []models.GroupSummary
	if err := json.Unmarshal([]byte(resultText(r)), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rows))
	}

	r = callTool(t, srv, "list_memos", map[string]interface{}{"search": "alp"})
	rows = nil
	_ = json.Unmarshal([]byte(resultText(r)), &rows)
	if len(rows) != 1 || rows[0].PrimaryTag != "Alpha" {
		t.Errorf("search rows = %+v", rows)
	}
}

func TestUpdateAndDeleteMemo(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "add_memo", map[string]interface{}{"tag": "Foo", "text": "v1", "locator": "/a"})

	r := callTool(t, srv, "update_memo", map[string]interface{}{"tag": "Foo", "text": "v2", "locator": "/a"})
	if r.IsError {
		t.Fatalf("update error: %s", resultText(r))
	}

	r = callTool(t, srv, "delete_memo", map[string]interface{}{"tag": "Foo", "index": 1, "locator": "/a"})
	if r.IsError {
		t.Fatalf("delete error: %s", resultText(r))
	}

	// Deleting again misses.
	r = callTool(t, srv, "delete_memo", map[string]interface{}{"tag": "Foo", "index": 1, "locator": "/a"})
	if !r.IsError {
		t.Error("deleting an absent note should report an error")
	}
}

func TestAliasTools(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "add_memo", map[string]interface{}{"tag": "Foo", "text": "n", "locator": "/a"})
	callTool(t, srv, "add_memo", map[string]interface{}{"tag": "Baz", "text": "n", "locator": "/a"})

	r := callTool(t, srv, "add_alias", map[string]interface{}{"tag": "Foo", "alias": "bar", "locator": "/a"})
	if r.IsError {
		t.Fatalf("add_alias error: %s", resultText(r))
	}

	r = callTool(t, srv, "add_alias", map[string]interface{}{"tag": "Baz", "alias": "bar", "locator": "/a"})
	if !r.IsError {
		t.Error("conflicting alias should report an error")
	}

	r = callTool(t, srv, "remove_alias", map[string]interface{}{"tag": "Foo", "alias": "bar", "locator": "/a"})
	if r.IsError {
		t.Fatalf("remove_alias error: %s", resultText(r))
	}
}

func TestRemoveGroupTool(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "add_memo", map[string]interface{}{"tag": "Foo", "text": "n", "locator": "/a"})

	r := callTool(t, srv, "remove_group", map[string]interface{}{"tag": "foo", "locator": "/a"})
	if r.IsError {
		t.Fatalf("remove_group error: %s", resultText(r))
	}

	r = callTool(t, srv, "get_memo_group", map[string]interface{}{"tag": "foo", "locator": "/a"})
	if !r.IsError {
		t.Error("group should be gone")
	}
}

func TestExportMemosTool(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "add_memo", map[string]interface{}{"tag": "Foo", "text": "n", "locator": "/a"})

	r := callTool(t, srv, "export_memos", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("export error: %s", resultText(r))
	}
	if !strings.HasPrefix(resultText(r), "exported to ") {
		t.Errorf("export result = %q", resultText(r))
	}
}

func TestMissingRequiredArg(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "add_memo", map[string]interface{}{"text": "no tag"})
	if !r.IsError {
		t.Error("missing tag should report an error")
	}
}

func TestMemoContract(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_memo_contract", map[string]interface{}{})
	if resultText(r) != MemoContract {
		t.Error("contract tool should return the contract verbatim")
	}

	contents, err := srv.readMemoContractResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("resource read: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.Text != MemoContract {
		t.Error("resource should return the contract verbatim")
	}
}
