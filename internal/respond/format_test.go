package respond

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jpl-au/vaultmd/internal/search"
	"github.com/jpl-au/vaultmd/internal/vault"
)

func makeResults(n int, bodyLen int) []search.Result {
	mod := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	results := make([]search.Result, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, search.Result{
			Document: vault.Document{
				Path:        fmt.Sprintf("notes/note-%03d.md", i),
				Frontmatter: map[string]any{"title": fmt.Sprintf("Note %03d", i)},
				ModifiedAt:  mod,
			},
			Score: float64(n - i),
			Matches: []search.Match{
				{Type: search.MatchContent, Context: strings.Repeat("x", bodyLen)},
			},
		})
	}
	return results
}

func TestSearchResponse_Untruncated(t *testing.T) {
	resp := &search.Response{Results: makeResults(3, 20), Total: 3}
	r := SearchResponse(resp, FormatDetailed, NewBudget(20000, 4))

	if r.Truncation.Truncated {
		t.Error("all results fit; response must not be truncated")
	}
	if strings.Contains(r.Content, "---") {
		t.Error("untruncated response must not carry the notice framing")
	}
	if !strings.Contains(r.Content, "Note 000") {
		t.Error("response should contain rendered results")
	}
}

func TestSearchResponse_BudgetTruncation(t *testing.T) {
	// Three results whose rendering is far larger than the budget: only
	// whole results that fit are included, the rest excluded entirely.
	resp := &search.Response{Results: makeResults(3, 17000), Total: 3}
	budget := NewBudget(20000, 4)
	r := SearchResponse(resp, FormatDetailed, budget)

	if r.Truncation.Shown != 1 {
		t.Fatalf("shown = %d, want 1 whole result within 20000 chars", r.Truncation.Shown)
	}
	if !r.Truncation.Truncated {
		t.Error("response must be flagged truncated")
	}
	if strings.Count(r.Content, "## Note") != 1 {
		t.Error("un-fitted results must be excluded entirely, not partially rendered")
	}
	if len(r.Content) > budget.MaxCharacters() {
		t.Errorf("response length %d exceeds budget %d", len(r.Content), budget.MaxCharacters())
	}
}

func TestSearchResponse_TruncatedWithinBudget(t *testing.T) {
	// The notice and separator are charged like any other fragment, so a
	// truncated response never exceeds the cap it reports against.
	resp := &search.Response{Results: makeResults(40, 600), Total: 200}
	budget := NewBudget(2000, 4)
	r := SearchResponse(resp, FormatDetailed, budget)

	if !r.Truncation.Truncated {
		t.Fatal("expected truncation")
	}
	if !strings.HasPrefix(r.Content, fmt.Sprintf("Showing %d of 200 results.", r.Truncation.Shown)) {
		t.Errorf("truncated response must open with the notice, got %q", firstLine(r.Content))
	}
	if len(r.Content) > budget.MaxCharacters() {
		t.Errorf("response length %d exceeds budget %d", len(r.Content), budget.MaxCharacters())
	}
}

func TestSearchResponse_Framing(t *testing.T) {
	resp := &search.Response{Results: makeResults(10, 20), Total: 150}
	r := SearchResponse(resp, FormatDetailed, NewBudget(20000, 4))

	if !strings.HasPrefix(r.Content, "Showing 10 of 150 results.") {
		t.Errorf("truncated response must open with the notice, got %q", firstLine(r.Content))
	}
	parts := strings.SplitN(r.Content, "\n\n---\n\n", 2)
	if len(parts) != 2 {
		t.Fatal("truncated response must contain the --- separator")
	}
	if !strings.Contains(parts[1], "## Note 000") {
		t.Error("body must follow the separator")
	}
}

func TestSearchResponse_NoticeInvariant(t *testing.T) {
	// If total > shown then the text must contain a truncation notice.
	resp := &search.Response{Results: makeResults(2, 20), Total: 9}
	r := SearchResponse(resp, FormatConcise, NewBudget(20000, 4))
	if !strings.Contains(r.Content, "Showing 2 of 9 results.") {
		t.Error("truncation must always be surfaced in the response text")
	}
}

func TestSearchResponse_AutoDowngrade(t *testing.T) {
	// One enormous detailed rendering that cannot fit even once, but whose
	// concise form can: output downgrades instead of going empty.
	resp := &search.Response{Results: makeResults(3, 5000), Total: 30}
	r := SearchResponse(resp, FormatDetailed, NewBudget(300, 4))

	if !r.Truncation.AutoDowngraded {
		t.Fatal("expected automatic downgrade to concise format")
	}
	if r.Truncation.Shown == 0 {
		t.Error("downgraded response should fit at least one concise result")
	}
	if !strings.Contains(r.Truncation.Suggestion, "concise") {
		t.Errorf("downgrade suggestion should mention the format switch, got %q", r.Truncation.Suggestion)
	}
}

func TestSearchResponse_Interpretation(t *testing.T) {
	resp := &search.Response{
		Results:        makeResults(1, 20),
		Total:          1,
		Interpretation: `Interpreted as content type "Restaurant".`,
	}
	r := SearchResponse(resp, FormatDetailed, NewBudget(20000, 4))
	if !strings.HasPrefix(r.Content, "> Interpreted as") {
		t.Error("interpretation must lead the response when present")
	}
}

func TestSearchResponse_Empty(t *testing.T) {
	r := SearchResponse(&search.Response{}, FormatDetailed, NewBudget(20000, 4))
	if !strings.Contains(r.Content, "No results found.") {
		t.Errorf("empty result set should say so, got %q", r.Content)
	}
	if r.Truncation.Truncated {
		t.Error("empty result set is not truncated")
	}
}

func TestListResponse(t *testing.T) {
	items := make([]string, 50)
	for i := range items {
		items[i] = fmt.Sprintf("folder-%02d", i)
	}

	budget := NewBudget(600, 4)
	r := ListResponse("Folders", items, budget)
	if !r.Truncation.Truncated {
		t.Fatal("50 items cannot fit in 600 characters")
	}
	if r.Truncation.Shown == 0 {
		t.Fatal("a 600 character budget should fit at least one item")
	}
	if !strings.Contains(r.Content, fmt.Sprintf("Showing %d of 50 results.", r.Truncation.Shown)) {
		t.Error("list truncation must carry the same notice framing")
	}
	if len(r.Content) > budget.MaxCharacters() {
		t.Errorf("response length %d exceeds budget %d", len(r.Content), budget.MaxCharacters())
	}
	// Items are included in order with no gaps
	for i := 0; i < r.Truncation.Shown; i++ {
		if !strings.Contains(r.Content, fmt.Sprintf("folder-%02d", i)) {
			t.Errorf("item %d missing from shown prefix", i)
		}
	}
}

func TestRenderResult_Concise(t *testing.T) {
	r := makeResults(1, 20)[0]
	out := RenderResult(r, FormatConcise)
	if !strings.Contains(out, "[[note-000]]") {
		t.Errorf("concise form should carry a wiki link, got %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("concise form should be one line, got %q", out)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
