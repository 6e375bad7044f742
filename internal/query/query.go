// Package query parses raw search queries into terms and a matching
// strategy, and compiles strategy-specific matchers.
//
// A query can be an exact phrase ("project plan"), a bag of required terms
// (three or more words), an OR alternation (a OR b), or a short literal
// lookup (one or two words, treated as a phrase). The strategy is detected
// from surface syntax; callers may override it.
//
// Design: matchers are built on stdlib regexp (RE2). RE2 has no lookahead,
// so the all-terms strategy compiles one word-boundary pattern per term and
// requires every pattern to match, which is equivalent to a conjunction of
// lookaheads and immune to the stateful lastIndex hazard of global-flag
// regex reuse in other engines.
package query

import (
	"regexp"
	"strings"
)

// Strategy selects how extracted terms are matched against text.
type Strategy string

const (
	// StrategyExactPhrase matches the terms as one contiguous sequence.
	StrategyExactPhrase Strategy = "exact_phrase"
	// StrategyAllTerms requires every term somewhere in the text, any order.
	StrategyAllTerms Strategy = "all_terms"
	// StrategyAnyTerm matches when any single term is present.
	StrategyAnyTerm Strategy = "any_term"
	// StrategyAuto defers to the term-count heuristic at compile time.
	StrategyAuto Strategy = "auto"
)

// regexSpecials are the characters that make a query look like a regex.
const regexSpecials = `.*+?^${}()|[]\`

// orWord detects a bare OR operator surrounded by whitespace.
var orWord = regexp.MustCompile(`(?i)\s+or\s+`)

// Parsed is the immutable result of parsing one raw query string. Created
// once per search call, consumed immediately, never mutated.
type Parsed struct {
	Original        string
	Terms           []string
	NormalizedTerms []string
	Strategy        Strategy
	HasRegexChars   bool
	IsQuoted        bool
}

// Parse tokenises a raw query and detects its strategy.
//
// Quoted spans (single or double) are one term regardless of internal
// spaces; quote characters are stripped. An unterminated quote still
// captures its trailing content as a final term. Terms are lower-cased and
// trimmed unless caseSensitive is set.
func Parse(raw string, caseSensitive bool) Parsed {
	terms := extractTerms(raw)

	normalized := make([]string, len(terms))
	for i, t := range terms {
		if caseSensitive {
			normalized[i] = strings.TrimSpace(t)
		} else {
			normalized[i] = strings.ToLower(strings.TrimSpace(t))
		}
	}

	return Parsed{
		Original:        raw,
		Terms:           terms,
		NormalizedTerms: normalized,
		Strategy:        DetectStrategy(raw),
		HasRegexChars:   hasRegexChars(raw),
		IsQuoted:        isQuoted(raw),
	}
}

// DetectStrategy classifies a raw query. Priority order, first match wins:
// fully quoted query, OR operator, three or more terms, short literal.
func DetectStrategy(raw string) Strategy {
	if isQuoted(raw) {
		return StrategyExactPhrase
	}
	if orWord.MatchString(raw) {
		return StrategyAnyTerm
	}
	if len(extractTerms(raw)) >= 3 {
		return StrategyAllTerms
	}
	return StrategyExactPhrase
}

// extractTerms scans character-by-character. Outside quotes, whitespace
// delimits terms; a quote opens a span captured as a single term.
func extractTerms(raw string) []string {
	var terms []string
	var current strings.Builder
	var quote rune // active quote character, 0 when outside quotes

	flush := func() {
		if current.Len() > 0 {
			terms = append(terms, current.String())
			current.Reset()
		}
	}

	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				flush()
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			flush()
			quote = r
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush() // unterminated quotes degrade to a trailing term
	return terms
}

// isQuoted reports whether the whole query is wrapped in one matching pair
// of quotes.
func isQuoted(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 2 {
		return false
	}
	first := trimmed[0]
	if first != '"' && first != '\'' {
		return false
	}
	if trimmed[len(trimmed)-1] != first {
		return false
	}
	// The opening quote must close at the end, not midway
	inner := trimmed[1 : len(trimmed)-1]
	return !strings.ContainsRune(inner, rune(first))
}

// hasRegexChars reports whether the raw query contains regex metacharacters
// outside of quoted spans.
func hasRegexChars(raw string) bool {
	var quote rune
	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case strings.ContainsRune(regexSpecials, r):
			return true
		}
	}
	return false
}
