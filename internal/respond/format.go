// format.go renders ranked results and enumerations as Markdown text.
//
// Rendering is incremental: each result is formatted in rank order and
// offered to the budget tracker; the first rejection stops the loop. The
// response framing is fixed (truncation notice, "---" separator, body)
// and other components and tests depend on that exact shape.

package respond

import (
	"fmt"
	"path"
	"strings"

	"github.com/jpl-au/vaultmd/internal/search"
)

// Format selects result verbosity.
type Format string

const (
	FormatConcise  Format = "concise"
	FormatDetailed Format = "detailed"
)

// ParseFormat maps a caller-supplied format string to a Format, defaulting
// to detailed.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, string(FormatConcise)) {
		return FormatConcise
	}
	return FormatDetailed
}

// Response is a rendered, size-bounded response body plus its truncation
// metadata.
type Response struct {
	Content    string
	Truncation TruncationInfo
}

// RenderResult formats a single ranked result. Whole results are the unit
// of truncation: a result is included entirely or not at all.
func RenderResult(r search.Result, f Format) string {
	link := wikiLink(r.Document.Path)

	if f == FormatConcise {
		return fmt.Sprintf("- %s %s (score %.1f)\n", link, r.Document.Title(), r.Score)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", r.Document.Title())
	fmt.Fprintf(&b, "%s · %s · score %.1f · modified %s\n",
		link, r.Document.Path, r.Score, r.Document.ModifiedAt.Format("2006-01-02"))
	for _, m := range r.Matches {
		where := string(m.Type)
		if m.Field != "" {
			where += ":" + m.Field
		}
		fmt.Fprintf(&b, "- (%s) %s\n", where, m.Context)
	}
	b.WriteString("\n")
	return b.String()
}

// frameReserve is held back from every accept-or-stop loop so the
// truncation notice and its separator, rendered only after the loop stops,
// always fit. It bounds the longest notice plus suggestion text.
const frameReserve = 256

// SearchResponse renders a full search response within the budget.
//
// The interpretation and adjustment notes are rendered first as a header
// against the same tracker the results consume, so header and results
// share one budget. The tracker is reset only on the auto-downgrade path,
// where the whole response is re-rendered from scratch.
//
// When the requested format is detailed but not even the first detailed
// result fits, the whole body is downgraded to concise rather than
// returning an empty response, and the downgrade is recorded in the
// metadata.
func SearchResponse(resp *search.Response, f Format, b *Budget) Response {
	renderHeader := func() string {
		var header strings.Builder
		if resp.Interpretation != "" {
			frag := "> " + resp.Interpretation + "\n\n"
			if b.CanAddReserving(frag, frameReserve) {
				b.Consume(frag)
				header.WriteString(frag)
			}
		}
		if resp.MaxResults.Adjusted {
			frag := fmt.Sprintf("Note: max_results adjusted from %d to %d.\n\n",
				resp.MaxResults.OriginalValue, resp.MaxResults.Value)
			if b.CanAddReserving(frag, frameReserve) {
				b.Consume(frag)
				header.WriteString(frag)
			}
		}
		return header.String()
	}

	header := renderHeader()
	body, shown := renderResults(resp.Results, f, b)
	autoDowngraded := false

	if shown == 0 && len(resp.Results) > 0 && f == FormatDetailed {
		// Not even one detailed result fits: downgrade the whole body to
		// concise rather than returning an empty response. The header is
		// re-rendered so the tracker still accounts for every emitted
		// character.
		autoDowngraded = true
		f = FormatConcise
		b.Reset()
		header = renderHeader()
		body, shown = renderResults(resp.Results, f, b)
	}

	info := b.Info(shown, resp.Total, string(f), autoDowngraded)

	if len(resp.Results) == 0 {
		frag := "No results found.\n"
		if b.CanAdd(frag) {
			b.Consume(frag)
		}
		return Response{Content: header + frag, Truncation: info}
	}
	return Response{Content: header + frame(info, body, b), Truncation: info}
}

// ListResponse renders an enumeration (folders, recent notes, properties)
// under the same truncation contract as search results.
func ListResponse(title string, items []string, b *Budget) Response {
	var out strings.Builder
	if title != "" {
		frag := fmt.Sprintf("# %s\n\n", title)
		if b.CanAddReserving(frag, frameReserve) {
			b.Consume(frag)
			out.WriteString(frag)
		}
	}

	var body strings.Builder
	shown := 0
	for _, item := range items {
		frag := "- " + item + "\n"
		if !b.CanAddReserving(frag, frameReserve) {
			break
		}
		b.Consume(frag)
		body.WriteString(frag)
		shown++
	}

	info := b.Info(shown, len(items), string(FormatConcise), false)
	out.WriteString(frame(info, body.String(), b))
	return Response{Content: out.String(), Truncation: info}
}

// renderResults runs the accept-or-stop loop: once one result is rejected
// for space, no lower-ranked result is considered.
func renderResults(results []search.Result, f Format, b *Budget) (string, int) {
	var body strings.Builder
	shown := 0
	for _, r := range results {
		frag := RenderResult(r, f)
		if !b.CanAddReserving(frag, frameReserve) {
			break
		}
		b.Consume(frag)
		body.WriteString(frag)
		shown++
	}
	return body.String(), shown
}

// frame applies the notice/separator/body contract. Untruncated responses
// are the bare body. The notice block is charged against the budget; the
// reserve held back during rendering guarantees it fits.
func frame(info TruncationInfo, body string, b *Budget) string {
	if !info.Truncated {
		return body
	}
	notice := fmt.Sprintf("Showing %d of %d results.", info.Shown, info.Total)
	if info.Suggestion != "" {
		notice += " " + info.Suggestion
	}
	block := notice + "\n\n---\n\n"
	// Only a budget smaller than the reserve itself cannot absorb the
	// block; truncation must still be surfaced, so the notice is kept
	if b.CanAdd(block) {
		b.Consume(block)
	}
	return block + body
}

// wikiLink derives a [[Name]] link from a note path.
func wikiLink(p string) string {
	stem := strings.TrimSuffix(path.Base(p), ".md")
	return "[[" + stem + "]]"
}
