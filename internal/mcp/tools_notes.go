// tools_notes.go implements MCP tools for single-note operations: read,
// create, and edit.
//
// Design: errors return MCP tool error results rather than Go errors. This
// ensures the LLM receives actionable feedback it can parse and potentially
// retry, rather than causing the entire tool call to fail at the protocol
// level.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/vaultmd/internal/edit"
	"github.com/jpl-au/vaultmd/internal/log"
	"github.com/jpl-au/vaultmd/internal/vault"
	"github.com/mark3labs/mcp-go/mcp"
)

// readNote handles vault_read tool calls.
func (h *handlers) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	doc, err := h.vault.Read(ctx, path)

	log.Event("mcp:vault_read", "read").Path(path).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(noteText(doc)), nil
}

// createNote handles vault_create tool calls.
func (h *handlers) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	path = vault.NormalisePath(path)

	fm := map[string]any{}
	if title := req.GetString("title", ""); title != "" {
		fm["title"] = title
	}
	if ct := req.GetString("content_type", ""); ct != "" {
		fm["type"] = ct
	}
	if tags := req.GetStringSlice("tags", nil); len(tags) > 0 {
		fm["tags"] = tags
	}

	err = h.vault.Create(ctx, path, fm, req.GetString("content", ""))

	log.Event("mcp:vault_create", "create").Path(path).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created %s", path)), nil
}

// editNote handles vault_edit tool calls. The diff is returned so the LLM
// can verify the change landed where it expected.
func (h *handlers) editNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	oldText, err := req.RequireString("old")
	if err != nil {
		return mcp.NewToolResultError("old is required"), nil //nolint:nilerr
	}

	result, err := edit.Run(ctx, h.vault, path, oldText, req.GetString("new", ""))

	log.Event("mcp:vault_edit", "edit").Path(path).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("edited %s\n\n%s", result.Path, result.Diff)), nil
}
