package search_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jpl-au/vaultmd/internal/query"
	"github.com/jpl-au/vaultmd/internal/search"
	"github.com/jpl-au/vaultmd/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

// fakeStore serves a fixed document set with the same filter semantics as
// the real vault.
type fakeStore struct {
	docs []vault.Document
}

func (f *fakeStore) List(ctx context.Context, filters vault.Filters) ([]vault.Document, error) {
	var out []vault.Document
	for _, d := range f.docs {
		if filters.Folder != "" && !strings.HasPrefix(d.Path, strings.TrimSuffix(filters.Folder, "/")+"/") {
			continue
		}
		if !filters.Since.IsZero() && d.ModifiedAt.Before(filters.Since) {
			continue
		}
		if filters.ContentType != "" {
			ct := d.ContentType()
			if ct == "" && !filters.IncludeNullValues {
				continue
			}
			if ct != "" && !strings.EqualFold(ct, filters.ContentType) {
				continue
			}
		}
		if len(filters.Tags) > 0 && !hasAnyTag(d, filters.Tags) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeStore) Glob(ctx context.Context, pattern string) ([]string, error) {
	var out []string
	for _, d := range f.docs {
		if strings.HasPrefix(d.Path, strings.TrimSuffix(pattern, "*")) {
			out = append(out, d.Path)
		}
	}
	return out, nil
}

func (f *fakeStore) Read(ctx context.Context, path string) (vault.Document, error) {
	for _, d := range f.docs {
		if d.Path == path {
			return d, nil
		}
	}
	return vault.Document{}, vault.ErrNotFound
}

func hasAnyTag(d vault.Document, want []string) bool {
	for _, w := range want {
		for _, t := range d.Tags() {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}

func doc(path, title, body string, fm map[string]any, daysOld int) vault.Document {
	if fm == nil {
		fm = map[string]any{}
	}
	if title != "" {
		fm["title"] = title
	}
	return vault.Document{
		Path:        path,
		Frontmatter: fm,
		Body:        body,
		ModifiedAt:  testNow.AddDate(0, 0, -daysOld),
		CreatedAt:   testNow.AddDate(0, 0, -daysOld-1),
	}
}

func newEngine(docs ...vault.Document) *search.Engine {
	return search.New(&fakeStore{docs: docs}, search.WithClock(func() time.Time { return testNow }))
}

func TestSearch_ExactPhrase(t *testing.T) {
	e := newEngine(
		doc("a.md", "Planning", "the project plan is ready", nil, 1),
		doc("b.md", "Scattered", "the project has a plan somewhere", nil, 1),
	)

	resp, err := e.Search(context.Background(), search.Request{
		Mode: search.QueryMode{Text: `"project plan"`},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "a.md", resp.Results[0].Document.Path)
}

func TestSearch_TitleOutranksBody(t *testing.T) {
	e := newEngine(
		doc("body.md", "Other", "kubernetes kubernetes kubernetes", nil, 1),
		doc("title.md", "Kubernetes", "unrelated body", nil, 1),
	)

	resp, err := e.Search(context.Background(), search.Request{
		Mode: search.QueryMode{Text: "kubernetes"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "title.md", resp.Results[0].Document.Path,
		"title match should outrank body match")
}

func TestSearch_Deterministic(t *testing.T) {
	e := newEngine(
		doc("x/one.md", "One", "shared term here", nil, 5),
		doc("x/two.md", "Two", "shared term here", nil, 5),
		doc("x/three.md", "Three", "shared term here", nil, 5),
	)
	req := search.Request{Mode: search.QueryMode{Text: "shared term"}}

	first, err := e.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := e.Search(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, len(first.Results), len(second.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Document.Path, second.Results[i].Document.Path)
		assert.Equal(t, first.Results[i].Score, second.Results[i].Score)
	}
	// Equal scores and timestamps fall back to path ascending
	assert.Equal(t, "x/one.md", first.Results[0].Document.Path)
	assert.Equal(t, "x/three.md", first.Results[1].Document.Path)
	assert.Equal(t, "x/two.md", first.Results[2].Document.Path)
}

func TestSearch_TopNAfterSorting(t *testing.T) {
	// 30 docs; the best match is listed last by scan order. Top-N must be
	// by rank, not a prefix of scan order.
	docs := make([]vault.Document, 0, 30)
	for i := 0; i < 29; i++ {
		docs = append(docs, doc(fmt.Sprintf("n/%02d.md", i), "", "needle in the body", nil, 10))
	}
	docs = append(docs, doc("n/zz-best.md", "Needle", "needle needle", nil, 10))

	e := newEngine(docs...)
	two := 2
	resp, err := e.Search(context.Background(), search.Request{
		Mode:       search.QueryMode{Text: "needle"},
		MaxResults: &two,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 30, resp.Total)
	assert.Equal(t, "n/zz-best.md", resp.Results[0].Document.Path)
}

func TestSearch_ContentTypeFilter(t *testing.T) {
	docs := make([]vault.Document, 0, 12)
	for i := 0; i < 9; i++ {
		docs = append(docs, doc(fmt.Sprintf("ref/%d.md", i), "", "text", map[string]any{"type": "Reference"}, i))
	}
	docs = append(docs,
		doc("other.md", "", "text", map[string]any{"type": "Journal"}, 1),
		doc("untyped.md", "", "text", nil, 1),
	)

	e := newEngine(docs...)
	resp, err := e.Search(context.Background(), search.Request{
		Mode:        search.QueryMode{Text: ""},
		ContentType: "Reference",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 9)
	for _, r := range resp.Results {
		assert.Equal(t, "Reference", r.Document.ContentType())
	}

	// includeNullValues admits the untyped document
	resp, err = e.Search(context.Background(), search.Request{
		Mode:              search.QueryMode{Text: ""},
		ContentType:       "Reference",
		IncludeNullValues: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 10)
}

func TestSearch_FiltersOnly(t *testing.T) {
	e := newEngine(
		doc("new.md", "", "anything", map[string]any{"tags": []any{"inbox"}}, 1),
		doc("old.md", "", "anything", map[string]any{"tags": []any{"inbox"}}, 20),
	)

	resp, err := e.Search(context.Background(), search.Request{
		Mode: search.QueryMode{Text: ""},
		Tags: []string{"inbox"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	// No query terms: ranked by recency alone
	assert.Equal(t, "new.md", resp.Results[0].Document.Path)
}

func TestSearch_OperatorOnlyQuery(t *testing.T) {
	e := newEngine(doc("a.md", "", "AND OR NOT words appear literally", nil, 1))

	resp, err := e.Search(context.Background(), search.Request{
		Mode: search.QueryMode{Text: "AND OR NOT", Strategy: query.StrategyAnyTerm},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results, "all-operator any_term query yields zero matches, not an error")
}

func TestSearch_MaxResultsClamping(t *testing.T) {
	neg := -5
	v := search.ValidateMaxResults(&neg)
	assert.Equal(t, search.MaxResultsValidation{Value: 1, Adjusted: true, OriginalValue: -5}, v)

	big := 1000
	v = search.ValidateMaxResults(&big)
	assert.Equal(t, search.MaxResultsValidation{Value: 100, Adjusted: true, OriginalValue: 1000}, v)

	v = search.ValidateMaxResults(nil)
	assert.Equal(t, search.MaxResultsValidation{Value: 25}, v)
}

func TestSearch_ClampRecordedInResponse(t *testing.T) {
	e := newEngine(doc("a.md", "", "hit", nil, 1))
	big := 500
	resp, err := e.Search(context.Background(), search.Request{
		Mode:       search.QueryMode{Text: "hit"},
		MaxResults: &big,
	})
	require.NoError(t, err)
	assert.True(t, resp.MaxResults.Adjusted)
	assert.Equal(t, 500, resp.MaxResults.OriginalValue)
	assert.Equal(t, 100, resp.MaxResults.Value)
}

func TestSearch_DaysFilter(t *testing.T) {
	e := newEngine(
		doc("recent.md", "", "hit", nil, 2),
		doc("stale.md", "", "hit", nil, 40),
	)

	resp, err := e.Search(context.Background(), search.Request{
		Mode: search.QueryMode{Text: "hit"},
		Days: 7,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "recent.md", resp.Results[0].Document.Path)
}

func TestSearch_SortModes(t *testing.T) {
	e := newEngine(
		doc("b.md", "Bravo", "hit", nil, 3),
		doc("a.md", "Alpha", "hit", nil, 1),
		doc("c.md", "Charlie", "hit", nil, 2),
	)
	ctx := context.Background()

	resp, err := e.Search(ctx, search.Request{
		Mode: search.QueryMode{Text: "hit"}, SortBy: search.SortTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, "a.md", resp.Results[0].Document.Path)

	resp, err = e.Search(ctx, search.Request{
		Mode: search.QueryMode{Text: "hit"}, SortBy: search.SortModified,
	})
	require.NoError(t, err)
	assert.Equal(t, "a.md", resp.Results[0].Document.Path, "modified defaults to newest first")

	resp, err = e.Search(ctx, search.Request{
		Mode: search.QueryMode{Text: "hit"}, SortBy: search.SortModified, SortOrder: search.OrderAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, "b.md", resp.Results[0].Document.Path)

	_, err = e.Search(ctx, search.Request{
		Mode: search.QueryMode{Text: "hit"}, SortBy: "bogus",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sortBy")
}

func TestSearch_PatternMode(t *testing.T) {
	e := newEngine(
		doc("projects/plan.md", "", "body", nil, 1),
		doc("projects/notes.md", "", "body", nil, 2),
		doc("journal/day.md", "", "body", nil, 1),
	)

	resp, err := e.Search(context.Background(), search.Request{
		Mode: search.PatternMode{Glob: "projects/*"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	for _, r := range resp.Results {
		require.Len(t, r.Matches, 1)
		assert.Equal(t, search.MatchPath, r.Matches[0].Type)
	}
}

func TestSearch_NaturalMode(t *testing.T) {
	e := newEngine(
		doc("food/pasta-place.md", "Pasta Place", "great Italian food", map[string]any{"type": "Restaurant", "tags": []any{"toronto"}}, 1),
		doc("food/cookbook.md", "Cookbook", "Italian recipes", map[string]any{"type": "Book"}, 1),
	)

	resp, err := e.Search(context.Background(), search.Request{
		Mode: search.NaturalMode{Phrase: "Italian restaurants in Toronto"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Interpretation, "natural mode always returns interpretation text")
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "food/pasta-place.md", resp.Results[0].Document.Path)
}

func TestSearch_MissingMode(t *testing.T) {
	e := newEngine()
	_, err := e.Search(context.Background(), search.Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry mode")
}
