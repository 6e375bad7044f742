// tools_search.go implements the vault_search MCP tool.
//
// Separated from tools_notes.go because search has different semantics - it
// returns a ranked, budgeted Markdown digest rather than a single note, and
// carries its own parameter surface (strategies, filters, sorting, format).
//
// Design: when more than one entry mode is supplied the most specific wins:
// pattern over natural_language over query. An explicit glob says exactly
// which paths the caller wants; a natural-language phrase carries structure
// worth interpreting; free text is the fallback. The losing parameters are
// ignored, not errors, so an LLM that over-fills arguments still gets a
// sensible result.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/vaultmd/internal/log"
	"github.com/jpl-au/vaultmd/internal/query"
	"github.com/jpl-au/vaultmd/internal/respond"
	"github.com/jpl-au/vaultmd/internal/search"
	"github.com/mark3labs/mcp-go/mcp"
)

// searchNotes handles vault_search tool calls.
func (h *handlers) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, described, err := resolveMode(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	sreq := search.Request{
		Mode:              mode,
		ContentType:       req.GetString("content_type", ""),
		Tags:              req.GetStringSlice("tags", nil),
		Folder:            req.GetString("folder", ""),
		Days:              req.GetInt("days", 0),
		IncludeNullValues: req.GetBool("include_null_values", false),
		SortBy:            search.SortBy(req.GetString("sort_by", "")),
		SortOrder:         search.SortOrder(req.GetString("sort_order", "")),
	}
	// Presence check rather than a zero check: an explicit max_results of 0
	// must reach the clamp, which records the adjustment to 1
	if _, ok := req.GetArguments()["max_results"]; ok {
		n := req.GetInt("max_results", 0)
		sreq.MaxResults = &n
	}

	resp, err := h.engine.Search(ctx, sreq)

	l := log.Event("mcp:vault_search", "search").Query(described)
	if resp != nil {
		l.Detail("total", resp.Total).Detail("max_results", resp.MaxResults.Value)
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format := respond.ParseFormat(req.GetString("format", h.cfg.Format()))
	budget := respond.NewBudget(h.cfg.MaxCharacters(), h.cfg.TokenRatio())
	rendered := respond.SearchResponse(resp, format, budget)

	return mcp.NewToolResultText(rendered.Content), nil
}

// resolveMode picks the entry mode from the request arguments and returns a
// short description of it for the audit log.
func resolveMode(req mcp.CallToolRequest) (search.Mode, string, error) {
	pattern := req.GetString("pattern", "")
	natural := req.GetString("natural_language", "")
	text := req.GetString("query", "")

	switch {
	case pattern != "":
		return search.PatternMode{Glob: pattern}, "pattern:" + pattern, nil
	case natural != "":
		return search.NaturalMode{Phrase: natural}, "natural:" + natural, nil
	default:
		// An empty query with filters set is a valid filters-only search,
		// so no mode parameter at all still resolves to query mode.
		strategy, err := parseStrategy(req.GetString("strategy", ""))
		if err != nil {
			return nil, "", err
		}
		return search.QueryMode{
			Text:          text,
			Strategy:      strategy,
			CaseSensitive: req.GetBool("case_sensitive", false),
		}, "query:" + text, nil
	}
}

// parseStrategy validates a strategy override. Empty means auto-detect.
func parseStrategy(s string) (query.Strategy, error) {
	switch query.Strategy(s) {
	case "", query.StrategyAuto:
		return "", nil
	case query.StrategyExactPhrase, query.StrategyAllTerms, query.StrategyAnyTerm:
		return query.Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown strategy %q (valid: exact_phrase, all_terms, any_term, auto)", s)
	}
}
