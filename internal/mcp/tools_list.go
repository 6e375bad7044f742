// tools_list.go implements the vault_list MCP tool.
//
// One tool with a kind discriminator rather than four tools: the
// enumerations share the same budgeted list rendering and differ only in
// what they enumerate, and a smaller tool surface is easier for an LLM to
// navigate.

package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/jpl-au/vaultmd/internal/log"
	"github.com/jpl-au/vaultmd/internal/respond"
	"github.com/jpl-au/vaultmd/internal/vault"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultRecentLimit = 10

// listVault handles vault_list tool calls.
func (h *handlers) listVault(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind is required (folders, recent, properties, templates, or notes)"), nil //nolint:nilerr
	}

	var (
		title string
		items []string
	)

	switch kind {
	case "folders":
		title = "Folders"
		items, err = h.vault.Folders(ctx)
	case "recent":
		title = "Recently modified"
		items, err = h.recentNotes(ctx, req.GetInt("limit", defaultRecentLimit))
	case "properties":
		title = "Front matter properties"
		items, err = h.propertyItems(ctx)
	case "templates":
		title = "Templates"
		items, err = h.templateItems(ctx)
	case "notes":
		folder := req.GetString("folder", "")
		title = "Notes"
		if folder != "" {
			title = "Notes in " + folder
		}
		items, err = h.noteItems(ctx, folder)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q (valid: folders, recent, properties, templates, notes)", kind)), nil
	}

	log.Event("mcp:vault_list", "list").Detail("kind", kind).Detail("count", len(items)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	budget := respond.NewBudget(h.cfg.MaxCharacters(), h.cfg.TokenRatio())
	rendered := respond.ListResponse(title, items, budget)
	return mcp.NewToolResultText(rendered.Content), nil
}

// recentNotes returns the most recently modified notes, newest first.
func (h *handlers) recentNotes(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	docs, err := h.vault.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]string, len(docs))
	for i, doc := range docs {
		items[i] = fmt.Sprintf("%s (modified %s)", doc.Path, doc.ModifiedAt.Format("2006-01-02"))
	}
	return items, nil
}

// propertyItems formats front matter keys with their usage counts.
func (h *handlers) propertyItems(ctx context.Context) ([]string, error) {
	props, err := h.vault.Properties(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]string, len(props))
	for i, p := range props {
		items[i] = fmt.Sprintf("%s (%d notes)", p.Key, p.Count)
	}
	return items, nil
}

// templateItems lists template notes by path and title.
func (h *handlers) templateItems(ctx context.Context) ([]string, error) {
	docs, err := h.vault.Templates(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]string, len(docs))
	for i, doc := range docs {
		items[i] = fmt.Sprintf("%s (%s)", doc.Path, doc.Title())
	}
	return items, nil
}

// noteItems lists note paths, optionally limited to a folder.
func (h *handlers) noteItems(ctx context.Context, folder string) ([]string, error) {
	docs, err := h.vault.List(ctx, vault.Filters{Folder: folder})
	if err != nil {
		return nil, err
	}
	items := make([]string, len(docs))
	for i, doc := range docs {
		items[i] = doc.Path
	}
	sort.Strings(items)
	return items, nil
}
