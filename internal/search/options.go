// options.go defines the search request shape and its validation rules.
//
// The three entry modes (free-text query, glob pattern, natural language)
// are mutually exclusive, so they are expressed as a sealed Mode interface
// rather than three optional fields on one bag. Constructing a Request with
// exactly one mode is therefore visible at the call site and checkable
// before any work happens.

package search

import (
	"fmt"

	"github.com/jpl-au/vaultmd/internal/query"
)

// MaxResults bounds. Values outside the range are clamped and the
// adjustment recorded, never silently ignored.
const (
	MinResults     = 1
	MaxResultsCap  = 100
	DefaultResults = 25
)

// SortBy selects the result ordering key.
type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortModified  SortBy = "modified"
	SortCreated   SortBy = "created"
	SortTitle     SortBy = "title"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Mode is the sealed entry-mode discriminator. Exactly one implementation
// is supplied per request.
type Mode interface{ searchMode() }

// QueryMode searches with free text. An empty Text with filters set is a
// valid filters-only search.
type QueryMode struct {
	Text string
	// Strategy overrides the detected strategy when non-empty.
	Strategy      query.Strategy
	CaseSensitive bool
}

// PatternMode lists notes whose paths match a glob pattern.
type PatternMode struct {
	Glob string
}

// NaturalMode pre-processes a conversational phrase into filter hints plus
// leftover free text.
type NaturalMode struct {
	Phrase string
}

func (QueryMode) searchMode()   {}
func (PatternMode) searchMode() {}
func (NaturalMode) searchMode() {}

// Request is one search invocation.
type Request struct {
	Mode Mode

	ContentType       string
	Tags              []string
	Folder            string
	Days              int // documents modified within N days; 0 = no limit
	IncludeNullValues bool

	// MaxResults as requested by the caller; nil means unspecified.
	MaxResults *int

	SortBy    SortBy
	SortOrder SortOrder
}

// MaxResultsValidation records how a requested maxResults value was
// resolved against the [MinResults, MaxResultsCap] contract.
type MaxResultsValidation struct {
	Value         int
	Adjusted      bool
	OriginalValue int
}

// ValidateMaxResults clamps a requested value into range. A nil request
// yields the default, unadjusted.
func ValidateMaxResults(requested *int) MaxResultsValidation {
	if requested == nil {
		return MaxResultsValidation{Value: DefaultResults}
	}
	v := *requested
	switch {
	case v < MinResults:
		return MaxResultsValidation{Value: MinResults, Adjusted: true, OriginalValue: v}
	case v > MaxResultsCap:
		return MaxResultsValidation{Value: MaxResultsCap, Adjusted: true, OriginalValue: v}
	default:
		return MaxResultsValidation{Value: v}
	}
}

// validate rejects unknown sort options with an error naming the field;
// unlike maxResults there is no safe clamp for these.
func (r Request) validate() error {
	if r.Mode == nil {
		return fmt.Errorf("search request requires an entry mode (query, pattern, or natural language)")
	}
	switch r.SortBy {
	case "", SortRelevance, SortModified, SortCreated, SortTitle:
	default:
		return fmt.Errorf("unknown sortBy value %q (valid: relevance, modified, created, title)", r.SortBy)
	}
	switch r.SortOrder {
	case "", OrderAsc, OrderDesc:
	default:
		return fmt.Errorf("unknown sortOrder value %q (valid: asc, desc)", r.SortOrder)
	}
	return nil
}
