// engine.go orchestrates one search invocation end to end.
//
// Flow: resolve the entry mode, pull filtered candidates from the vault,
// run the pattern matcher and scorer per candidate, sort, then cap at
// maxResults. Capping happens strictly after sorting so the returned N is
// the true top-N under the ranking, never a prefix of scan order.
//
// Design: the engine holds no mutable state across calls. Each Search gets
// its own parsed query and candidate slice; concurrent searches share only
// the vault's read-side caches. Failure to match or score one candidate
// never aborts the scan.

package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jpl-au/vaultmd/internal/nlp"
	"github.com/jpl-au/vaultmd/internal/query"
	"github.com/jpl-au/vaultmd/internal/vault"
)

// Store is the slice of the vault the engine needs: filtered candidate
// listing and glob matching. Satisfied by *vault.Vault.
type Store interface {
	List(ctx context.Context, f vault.Filters) ([]vault.Document, error)
	Glob(ctx context.Context, pattern string) ([]string, error)
	Read(ctx context.Context, path string) (vault.Document, error)
}

// Result is one ranked hit.
type Result struct {
	Document vault.Document
	Score    float64
	Matches  []Match
}

// Response is the outcome of one search: ranked results capped at
// maxResults, the pre-cap total, how maxResults was resolved, and the
// natural-language interpretation when that mode was used.
type Response struct {
	Results        []Result
	Total          int
	MaxResults     MaxResultsValidation
	Interpretation string
}

// Engine runs searches against a Store.
type Engine struct {
	store Store
	now   func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock pins the engine's reference time for recency scoring and
// natural-language date anchoring. Tests use this for determinism.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// New returns an Engine. Engines are cheap; construct one per server
// context or per call rather than sharing a global.
func New(store Store, opts ...EngineOption) *Engine {
	e := &Engine{store: store, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search executes one request.
func (e *Engine) Search(ctx context.Context, req Request) (*Response, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	maxResults := ValidateMaxResults(req.MaxResults)
	ref := e.now()

	resp := &Response{MaxResults: maxResults}

	filters := vault.Filters{
		ContentType:       req.ContentType,
		Tags:              req.Tags,
		Folder:            req.Folder,
		IncludeNullValues: req.IncludeNullValues,
	}
	if req.Days > 0 {
		filters.Since = ref.AddDate(0, 0, -req.Days)
	}

	var (
		results []Result
		err     error
	)

	switch mode := req.Mode.(type) {
	case PatternMode:
		results, err = e.searchPattern(ctx, mode.Glob, filters, ref)
	case NaturalMode:
		interp := nlp.Interpret(mode.Phrase, ref)
		resp.Interpretation = interp.Text
		mergeHints(&filters, interp)
		results, err = e.searchQuery(ctx, QueryMode{Text: interp.Remainder}, filters, ref)
	case QueryMode:
		results, err = e.searchQuery(ctx, mode, filters, ref)
	default:
		return nil, fmt.Errorf("unsupported search mode %T", req.Mode)
	}
	if err != nil {
		return nil, err
	}

	sortResults(results, req.SortBy, req.SortOrder)

	resp.Total = len(results)
	if len(results) > maxResults.Value {
		results = results[:maxResults.Value]
	}
	resp.Results = results
	return resp, nil
}

// searchQuery handles free-text mode. An empty query with filters is a
// valid filters-only search: every candidate matches with no match records,
// ranked by recency alone.
func (e *Engine) searchQuery(ctx context.Context, mode QueryMode, filters vault.Filters, ref time.Time) ([]Result, error) {
	candidates, err := e.store.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("listing candidates: %w", err)
	}

	text := strings.TrimSpace(mode.Text)
	if text == "" {
		results := make([]Result, 0, len(candidates))
		for _, doc := range candidates {
			results = append(results, Result{
				Document: doc,
				Score:    Score(doc, nil, ref),
			})
		}
		return results, nil
	}

	parsed := query.Parse(text, mode.CaseSensitive)
	strategy := parsed.Strategy
	if mode.Strategy != "" {
		strategy = mode.Strategy
	}

	pattern, err := query.Compile(parsed.NormalizedTerms, strategy, mode.CaseSensitive)
	if err != nil {
		return nil, fmt.Errorf("compiling query %q: %w", text, err)
	}

	var results []Result
	for _, doc := range candidates {
		matches := MatchDocument(doc, pattern)
		if len(matches) == 0 {
			continue
		}
		results = append(results, Result{
			Document: doc,
			Score:    Score(doc, matches, ref),
			Matches:  matches,
		})
	}
	return results, nil
}

// searchPattern handles glob mode. Matched paths are loaded for metadata
// and ranked by recency; each result carries a path match record. A path
// that vanishes between the glob and the read is skipped, not fatal.
func (e *Engine) searchPattern(ctx context.Context, pattern string, filters vault.Filters, ref time.Time) ([]Result, error) {
	paths, err := e.store.Glob(ctx, pattern)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, p := range paths {
		doc, err := e.store.Read(ctx, p)
		if err != nil {
			continue
		}
		if !filters.Match(doc) {
			continue
		}
		matches := []Match{{Type: MatchPath, Context: doc.Path}}
		results = append(results, Result{
			Document: doc,
			Score:    Score(doc, matches, ref),
			Matches:  matches,
		})
	}
	return results, nil
}

// mergeHints folds natural-language hints into the filter set without
// overriding anything the caller set explicitly.
func mergeHints(filters *vault.Filters, in nlp.Interpretation) {
	if filters.ContentType == "" {
		filters.ContentType = in.ContentType
	}
	filters.Tags = append(filters.Tags, in.Tags...)
	if filters.Since.IsZero() {
		filters.Since = in.Since
	}
}

// sortResults orders results per sortBy/sortOrder. The sortOrder flag flips
// only the primary key; ties always break by modified time descending, then
// path ascending, so ordering stays fully deterministic either way.
func sortResults(results []Result, by SortBy, order SortOrder) {
	if by == "" {
		by = SortRelevance
	}
	if order == "" {
		if by == SortTitle {
			order = OrderAsc
		} else {
			order = OrderDesc
		}
	}

	// primary compares the sort key ascending: <0 when a sorts first
	primary := func(a, b Result) int {
		switch by {
		case SortModified:
			return a.Document.ModifiedAt.Compare(b.Document.ModifiedAt)
		case SortCreated:
			return a.Document.CreatedAt.Compare(b.Document.CreatedAt)
		case SortTitle:
			return strings.Compare(strings.ToLower(a.Document.Title()), strings.ToLower(b.Document.Title()))
		default:
			switch {
			case a.Score < b.Score:
				return -1
			case a.Score > b.Score:
				return 1
			default:
				return 0
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if c := primary(a, b); c != 0 {
			if order == OrderDesc {
				return c > 0
			}
			return c < 0
		}
		if c := a.Document.ModifiedAt.Compare(b.Document.ModifiedAt); c != 0 {
			return c > 0 // more recent first
		}
		return a.Document.Path < b.Document.Path
	})
}
