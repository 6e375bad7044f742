// pattern.go compiles parsed terms into strategy-specific matchers.
//
// Separated from query.go because compilation has different inputs (a term
// list plus a resolved strategy) and different failure modes (a matcher that
// matches nothing is a defined outcome, not an error).

package query

import (
	"regexp"
	"strings"
)

// operator words are stripped from any_term queries before compilation;
// they are boolean connectives there, not literal search terms. Under every
// other strategy they stay literal ("OR gate" matches literally).
var operatorWords = map[string]bool{"OR": true, "AND": true, "NOT": true}

// Pattern is one compiled matcher. Matches and Find are safe for concurrent
// use; compiled patterns hold no mutable state.
type Pattern struct {
	strategy Strategy

	// re drives exact_phrase and any_term matching.
	re *regexp.Regexp
	// all holds one word-boundary pattern per term for all_terms; every one
	// must match.
	all []*regexp.Regexp
	// nothing marks a matcher that matches no text (e.g. an any_term query
	// whose terms were all operators).
	nothing bool
}

// Compile builds a matcher for the given terms and strategy. Case
// sensitivity toggles the (?i) flag only. StrategyAuto resolves with the
// same term-count rule used by DetectStrategy.
func Compile(terms []string, strategy Strategy, caseSensitive bool) (*Pattern, error) {
	if strategy == StrategyAuto {
		if len(terms) >= 3 {
			strategy = StrategyAllTerms
		} else {
			strategy = StrategyExactPhrase
		}
	}

	if strategy == StrategyAnyTerm {
		terms = dropOperators(terms)
	}
	if len(terms) == 0 {
		return &Pattern{strategy: strategy, nothing: true}, nil
	}

	flags := "(?i)"
	if caseSensitive {
		flags = ""
	}

	escaped := make([]string, len(terms))
	for i, t := range terms {
		escaped[i] = regexp.QuoteMeta(t)
	}

	p := &Pattern{strategy: strategy}
	switch strategy {
	case StrategyExactPhrase:
		// Terms joined by whitespace runs, matched as one contiguous
		// sequence; \s+ spans newlines
		re, err := regexp.Compile(flags + strings.Join(escaped, `\s+`))
		if err != nil {
			return nil, err
		}
		p.re = re
	case StrategyAnyTerm:
		re, err := regexp.Compile(flags + `\b(?:` + strings.Join(escaped, "|") + `)\b`)
		if err != nil {
			return nil, err
		}
		p.re = re
	case StrategyAllTerms:
		for _, e := range escaped {
			re, err := regexp.Compile(flags + `\b` + e + `\b`)
			if err != nil {
				return nil, err
			}
			p.all = append(p.all, re)
		}
	default:
		re, err := regexp.Compile(flags + strings.Join(escaped, `\s+`))
		if err != nil {
			return nil, err
		}
		p.re = re
	}
	return p, nil
}

// Strategy returns the resolved strategy this pattern was compiled with.
func (p *Pattern) Strategy() Strategy { return p.strategy }

// MatchesNothing reports whether this matcher can never match.
func (p *Pattern) MatchesNothing() bool { return p.nothing }

// Matches reports whether text satisfies the pattern.
func (p *Pattern) Matches(text string) bool {
	if p.nothing {
		return false
	}
	if p.re != nil {
		return p.re.MatchString(text)
	}
	for _, re := range p.all {
		if !re.MatchString(text) {
			return false
		}
	}
	return true
}

// Find returns the location of the first hit, for context snippets. For
// all_terms it is the first term's first occurrence.
func (p *Pattern) Find(text string) (start, end int, ok bool) {
	if p.nothing {
		return 0, 0, false
	}
	if p.re != nil {
		loc := p.re.FindStringIndex(text)
		if loc == nil {
			return 0, 0, false
		}
		return loc[0], loc[1], true
	}
	if len(p.all) == 0 {
		return 0, 0, false
	}
	loc := p.all[0].FindStringIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

func dropOperators(terms []string) []string {
	kept := make([]string, 0, len(terms))
	for _, t := range terms {
		if operatorWords[strings.ToUpper(t)] {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
