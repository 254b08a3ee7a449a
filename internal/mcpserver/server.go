// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the memory bank to LLM tooling via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/torvik/membank/internal/docservice"
)

// Server wraps the MCP server with membank tools.
type Server struct {
	mcp *server.MCPServer
	svc *docservice.Service
}

// New creates a new MCP server with all membank tools registered.
func New(svc *docservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Membank",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_docs",
		mcp.WithDescription("Full-text search through memory bank documents (titles, tags, body)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchDocs)

	s.mcp.AddTool(mcp.NewTool("grep_docs",
		mcp.WithDescription("Line-by-line keyword scan of every document. Slower than search_docs "+
			"but always consistent with the files on disk, even when the index is stale."),
		mcp.WithString("keyword", mcp.Required(), mcp.Description("Case-insensitive substring to find")),
	), s.grepDocs)

	s.mcp.AddTool(mcp.NewTool("read_doc",
		mcp.WithDescription("Read the full content of a memory bank document."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the document (e.g. core/projectbrief.md)")),
	), s.readDoc)

	s.mcp.AddTool(mcp.NewTool("list_docs",
		mcp.WithDescription("List memory bank documents, optionally filtered by category or tag."),
		mcp.WithString("category", mcp.Description("Optional top-level category filter")),
		mcp.WithString("tag", mcp.Description("Optional tag filter")),
	), s.listDocs)

	s.mcp.AddTool(mcp.NewTool("browse_category",
		mcp.WithDescription("Show the file tree of one memory bank category."),
		mcp.WithString("category", mcp.Required(), mcp.Description("Top-level category name")),
	), s.browseCategory)

	s.mcp.AddTool(mcp.NewTool("rebuild_index",
		mcp.WithDescription("Rebuild the JSON index snapshot at the bank root and return it."),
	), s.rebuildIndex)

	s.mcp.AddTool(mcp.NewTool("get_doc_format",
		mcp.WithDescription("Returns the canonical memory bank document format. "+
			"Call this before writing documents to ensure correct structure."),
	), s.getDocFormat)

	// Resource: document format contract.
	s.mcp.AddResource(
		mcp.NewResource("membank://doc-format", "Document Format Contract",
			mcp.WithResourceDescription("Canonical Markdown document format for the memory bank."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDocFormatResource,
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

func (s *Server) searchDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no results"), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) grepDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := req.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	matches, err := s.svc.Grep(ctx, keyword)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(matches) == 0 {
		return mcp.NewToolResultText("no results"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matching lines:\n\n", len(matches))
	for _, m := range matches {
		fmt.Fprintf(&b, "%s:%d: %s\n", m.Path, m.Line, m.Text)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) readDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.svc.GetDoc(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(doc.Content), nil
}

func (s *Server) listDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := req.GetString("category", "")
	tag := req.GetString("tag", "")

	items, _, err := s.svc.ListDocs(ctx, 0, 0, category, tag)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("no documents"), nil
	}

	var lines []string
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s - %s", it.Path, it.Title))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) browseCategory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tree, err := s.svc.Tree(ctx, category)
	if err != nil {
		cats, catErr := s.svc.Categories(ctx)
		if catErr == nil && len(cats) > 0 {
			return mcp.NewToolResultError(fmt.Sprintf(
				"category %q not found; available: %s", category, strings.Join(cats, ", "))), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("category %q not found", category)), nil
	}
	return mcp.NewToolResultText(tree), nil
}

func (s *Server) rebuildIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.svc.RebuildSnapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(snap, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getDocFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DocFormatContract), nil
}

func (s *Server) readDocFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "membank://doc-format",
			MIMEType: "text/markdown",
			Text:     DocFormatContract,
		},
	}, nil
}
