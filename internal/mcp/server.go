// Package mcp implements the Model Context Protocol server, exposing vault
// search and note operations to LLMs. This enables AI assistants to find,
// read, and edit notes through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/vaultmd/internal/config"
	"github.com/jpl-au/vaultmd/internal/log"
	"github.com/jpl-au/vaultmd/internal/search"
	"github.com/jpl-au/vaultmd/internal/vault"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP
// clients.
//
// Design: the vault root resolves from the explicit argument first, then the
// config file, then the working directory. Search responses are budgeted
// per the response config so a broad query can never flood the client's
// context window.
func Serve(root string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}
	if root == "" {
		root = cfg.Root()
	}

	v, err := vault.Open(root)
	if err != nil {
		slog.Error("failed to open vault", "root", root, "error", err)
		return err
	}
	if abs, err := filepath.Abs(v.Root()); err == nil {
		log.SetVault(abs)
	}

	h := &handlers{
		vault:  v,
		engine: search.New(v),
		cfg:    cfg,
	}

	s := server.NewMCPServer(
		"vaultmd",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)

	slog.Info("vaultmd MCP server ready", "version", Version, "transport", "stdio", "vault", v.Root())

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the vault and
// search engine.
type handlers struct {
	vault  *vault.Vault
	engine *search.Engine
	cfg    *config.Config
}

// registerResources adds URI-based resource access for direct note reading.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"vaultmd://notes/{path}",
			"Note",
			mcp.WithTemplateDescription("Read note content by vault-relative path"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readNoteResource,
	)
}

// registerTools exposes vault operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Search
	s.AddTool(
		mcp.NewTool("vault_search",
			mcp.WithDescription("Search notes in the vault. Provide exactly one of query, pattern, or natural_language."),
			mcp.WithString("query", mcp.Description("Free-text search query. Quoted phrases match exactly; terms joined by OR match any term.")),
			mcp.WithString("pattern", mcp.Description("Glob pattern matched against note paths and names (e.g. 'projects/*', 'Meeting*')")),
			mcp.WithString("natural_language", mcp.Description("Conversational request (e.g. 'restaurants I saved last month'); filters are inferred")),
			mcp.WithString("strategy", mcp.Description("Override matching strategy: exact_phrase, all_terms, any_term, or auto")),
			mcp.WithString("content_type", mcp.Description("Filter by front matter type (case-insensitive)")),
			mcp.WithArray("tags", mcp.Description("Filter by tags; notes with any listed tag match"), mcp.WithStringItems()),
			mcp.WithString("folder", mcp.Description("Limit search to a folder prefix")),
			mcp.WithNumber("days", mcp.Description("Only notes modified in the last N days")),
			mcp.WithBoolean("include_null_values", mcp.Description("With content_type set, also include notes that have no type at all")),
			mcp.WithNumber("max_results", mcp.Description("Maximum results to return (1-100, default 25; out-of-range values are clamped)")),
			mcp.WithString("sort_by", mcp.Description("Sort key: relevance (default), modified, created, or title")),
			mcp.WithString("sort_order", mcp.Description("asc or desc")),
			mcp.WithString("format", mcp.Description("Result verbosity: concise or detailed")),
			mcp.WithBoolean("case_sensitive", mcp.Description("Match query case exactly")),
		),
		h.searchNotes,
	)

	// List
	s.AddTool(
		mcp.NewTool("vault_list",
			mcp.WithDescription("List vault contents: folders, recently modified notes, front matter properties, templates, or notes under a folder"),
			mcp.WithString("kind", mcp.Required(), mcp.Description("What to list: folders, recent, properties, templates, or notes")),
			mcp.WithString("folder", mcp.Description("For kind=notes, the folder to list")),
			mcp.WithNumber("limit", mcp.Description("For kind=recent, how many notes to return (default 10)")),
		),
		h.listVault,
	)

	// Read
	s.AddTool(
		mcp.NewTool("vault_read",
			mcp.WithDescription("Read a note's full content including front matter"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Vault-relative note path")),
		),
		h.readNote,
	)

	// Create
	s.AddTool(
		mcp.NewTool("vault_create",
			mcp.WithDescription("Create a new note. Fails if the path already exists."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Vault-relative note path (.md appended if missing)")),
			mcp.WithString("content", mcp.Description("Note body")),
			mcp.WithString("title", mcp.Description("Title for the front matter")),
			mcp.WithString("content_type", mcp.Description("Front matter type (e.g. Recipe, Meeting)")),
			mcp.WithArray("tags", mcp.Description("Front matter tags"), mcp.WithStringItems()),
		),
		h.createNote,
	)

	// Edit
	s.AddTool(
		mcp.NewTool("vault_edit",
			mcp.WithDescription("Edit a note via search/replace (replaces first occurrence in the body)"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Vault-relative note path")),
			mcp.WithString("old", mcp.Required(), mcp.Description("Text to find")),
			mcp.WithString("new", mcp.Description("Text to replace with")),
		),
		h.editNote,
	)
}

// readNoteResource handles vaultmd://notes/{path} resource requests.
func (h *handlers) readNoteResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	path, err := parseNoteURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	doc, err := h.vault.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     noteText(doc),
		},
	}, nil
}

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyPath indicates a missing note path in a resource URI.
	ErrEmptyPath = errors.New("empty note path")
)

// parseNoteURI extracts the note path from a vaultmd://notes/{path} URI.
func parseNoteURI(uri string) (string, error) {
	const prefix = "vaultmd://notes/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	rest := strings.TrimPrefix(uri, prefix)
	if rest == "" {
		return "", ErrEmptyPath
	}
	return rest, nil
}

// noteText reconstructs the full on-disk text of a note, front matter
// included, for read operations that return the raw note.
func noteText(doc vault.Document) string {
	if len(doc.Frontmatter) == 0 {
		return doc.Body
	}
	fm, err := vault.RenderFrontmatter(doc.Frontmatter)
	if err != nil {
		return doc.Body
	}
	return fm + doc.Body
}
