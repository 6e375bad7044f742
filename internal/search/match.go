// match.go tests documents against compiled patterns and records hits.
//
// Each front matter field, the body, and the path are tested independently;
// every independent hit becomes its own record tagged with its source so
// the scorer can weight them and the formatter can show where a result
// matched. A document with zero records is excluded from results entirely.

package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jpl-au/vaultmd/internal/query"
	"github.com/jpl-au/vaultmd/internal/vault"
)

// MatchType identifies where in a document a hit occurred.
type MatchType string

const (
	MatchFrontmatter MatchType = "frontmatter"
	MatchContent     MatchType = "content"
	MatchPath        MatchType = "path"
)

// contextWindow bounds snippet length so responses stay compact.
const contextWindow = 80

// Match is one hit inside a single document.
type Match struct {
	Type    MatchType
	Field   string // front matter key, when Type is MatchFrontmatter
	Context string // short text window around the hit
}

// MatchDocument returns all hits for doc under the pattern. Front matter
// keys are visited in sorted order so repeated searches produce identical
// match lists.
func MatchDocument(doc vault.Document, p *query.Pattern) []Match {
	if p == nil || p.MatchesNothing() {
		return nil
	}

	var matches []Match

	keys := make([]string, 0, len(doc.Frontmatter))
	for k := range doc.Frontmatter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		text := vault.Stringify(doc.Frontmatter[key])
		if text == "" || !p.Matches(text) {
			continue
		}
		matches = append(matches, Match{
			Type:    MatchFrontmatter,
			Field:   key,
			Context: snippet(text, p),
		})
	}

	if p.Matches(doc.Body) {
		matches = append(matches, Match{
			Type:    MatchContent,
			Context: snippet(doc.Body, p),
		})
	}

	if p.Matches(doc.Path) {
		matches = append(matches, Match{
			Type:    MatchPath,
			Context: doc.Path,
		})
	}

	return matches
}

// snippet extracts a bounded window of text around the first hit, with
// newlines collapsed and ellipses marking trimmed edges.
func snippet(text string, p *query.Pattern) string {
	start, end, ok := p.Find(text)
	if !ok {
		start, end = 0, 0
	}

	hitLen := end - start
	pad := (contextWindow - hitLen) / 2
	if pad < 0 {
		pad = 0
	}

	from := start - pad
	if from < 0 {
		from = 0
	}
	to := end + pad
	if to > len(text) {
		to = len(text)
	}

	// Window edges are byte offsets; back off to rune boundaries so the
	// snippet never contains a split multibyte character
	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to--
	}

	s := strings.Join(strings.Fields(text[from:to]), " ")
	if from > 0 {
		s = "..." + s
	}
	if to < len(text) {
		s += "..."
	}
	return s
}
