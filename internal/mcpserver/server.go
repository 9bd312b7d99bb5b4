// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes Naudiz memo tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/naudiz/internal/memoservice"
)

// Server wraps the MCP server with Naudiz tools.
type Server struct {
	mcp *server.MCPServer
	svc *memoservice.Service
}

// New creates a new MCP server with all Naudiz tools registered.
func New(svc *memoservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Naudiz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("add_memo",
		mcp.WithDescription("Attach a memo to a tag within a document. "+
			"Read the memo contract first via get_memo_contract or the naudiz://memo-format resource."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag (word or phrase) the memo attaches to")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Memo text")),
		mcp.WithString("locator", mcp.Description("Document locator (file path); empty targets the global scope")),
		mcp.WithString("initial_alias", mcp.Description("Optional alias registered with the first memo (e.g. a dictionary headword)")),
	), s.addMemo)

	s.mcp.AddTool(mcp.NewTool("list_memos",
		mcp.WithDescription("List memo groups, optionally scoped to one document and filtered by search text."),
		mcp.WithString("locator", mcp.Description("Document locator; empty lists across all documents")),
		mcp.WithString("search", mcp.Description("Case-insensitive substring matched against tags and aliases")),
	), s.listMemos)

	s.mcp.AddTool(mcp.NewTool("get_memo_group",
		mcp.WithDescription("Read one tag's group with its aliases and notes."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag of the group")),
		mcp.WithString("locator", mcp.Description("Document locator")),
	), s.getMemoGroup)

	s.mcp.AddTool(mcp.NewTool("update_memo",
		mcp.WithDescription("Replace the text of a tag's single memo, creating it when absent."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag of the group")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Replacement text")),
		mcp.WithString("locator", mcp.Description("Document locator")),
	), s.updateMemo)

	s.mcp.AddTool(mcp.NewTool("delete_memo",
		mcp.WithDescription("Delete the memo at a 1-based position in creation order."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag of the group")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("1-based note position")),
		mcp.WithString("locator", mcp.Description("Document locator")),
	), s.deleteMemo)

	s.mcp.AddTool(mcp.NewTool("add_alias",
		mcp.WithDescription("Register an alternate tag resolving to an existing group."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Primary tag of the group")),
		mcp.WithString("alias", mcp.Required(), mcp.Description("Alias to register")),
		mcp.WithString("locator", mcp.Description("Document locator")),
	), s.addAlias)

	s.mcp.AddTool(mcp.NewTool("remove_alias",
		mcp.WithDescription("Remove an alias from a group. Removing an absent alias is not an error."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Primary tag of the group")),
		mcp.WithString("alias", mcp.Required(), mcp.Description("Alias to remove")),
		mcp.WithString("locator", mcp.Description("Document locator")),
	), s.removeAlias)

	s.mcp.AddTool(mcp.NewTool("remove_group",
		mcp.WithDescription("Delete a tag's whole group with all its aliases and memos."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag of the group")),
		mcp.WithString("locator", mcp.Description("Document locator")),
	), s.removeGroup)

	s.mcp.AddTool(mcp.NewTool("export_memos",
		mcp.WithDescription("Export memos as JSON, scoped to one document or all documents."),
		mcp.WithString("locator", mcp.Description("Document locator; empty exports everything")),
		mcp.WithString("path", mcp.Description("Destination path; empty derives the default under the data directory")),
	), s.exportMemos)

	s.mcp.AddTool(mcp.NewTool("get_memo_contract",
		mcp.WithDescription("Returns the Naudiz memo contract. Call this before writing memos."),
	), s.getMemoContract)

	// Resource: memo contract.
	s.mcp.AddResource(
		mcp.NewResource("naudiz://memo-format", "Memo Contract",
			mcp.WithResourceDescription("Memo semantics all MCP consumers must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readMemoContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// scopeFromReq builds the document scope from the optional locator argument.
func scopeFromReq(req mcp.CallToolRequest) memoservice.Scope {
	loc := req.GetString("locator", "")
	return memoservice.Scope{Locator: loc}
}

func (s *Server) addMemo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	g, noteID, err := s.svc.AddNote(ctx, tag, text, req.GetString("initial_alias", ""), scopeFromReq(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added note %d to group %q", noteID, g.PrimaryTag)), nil
}

func (s *Server) listMemos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groups, err := s.svc.ListGroups(ctx, scopeFromReq(req), req.GetString("search", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(groups, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getMemoGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.GetGroupDetail(ctx, tag, scopeFromReq(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) updateMemo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.UpdateSingleNote(ctx, tag, text, scopeFromReq(req)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated memo for %q", tag)), nil
}

func (s *Server) deleteMemo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index, err := req.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteNote(ctx, tag, index, scopeFromReq(req)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted note %d of %q", index, tag)), nil
}

func (s *Server) addAlias(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	alias, err := req.RequireString("alias")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.AddAlias(ctx, tag, alias, scopeFromReq(req)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("alias %q now resolves to %q", alias, tag)), nil
}

func (s *Server) removeAlias(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	alias, err := req.RequireString("alias")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.RemoveAlias(ctx, tag, alias, scopeFromReq(req)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed alias %q", alias)), nil
}

func (s *Server) removeGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.RemoveGroup(ctx, tag, scopeFromReq(req)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed group %q", tag)), nil
}

func (s *Server) exportMemos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := s.svc.ExportTo(ctx, req.GetString("path", ""), scopeFromReq(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("exported to %s", path)), nil
}

func (s *Server) getMemoContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(MemoContract), nil
}

func (s *Server) readMemoContractResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "naudiz://memo-format",
			MIMEType: "text/markdown",
			Text:     MemoContract,
		},
	}, nil
}
