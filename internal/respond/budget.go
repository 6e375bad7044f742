// Package respond serialises search and list results into size-bounded
// text responses.
//
// The budget tracker guarantees a response never exceeds a configured
// character limit. Consumers drive an accept-or-stop loop: render a
// fragment, ask CanAdd, then either Consume-and-append or stop. Once one
// fragment is rejected for space, no later fragment is considered; the
// output is always the top-N that fits, never a sparse selection.
package respond

import (
	"fmt"
)

// Budget defaults. Roughly 5,000 tokens at 4 characters per token.
const (
	DefaultMaxCharacters   = 20000
	DefaultEstimationRatio = 4
)

// budgetBindingThreshold: when a truncated response consumed at least this
// fraction of its budget, the character budget (not maxResults) was the
// binding constraint.
const budgetBindingThreshold = 0.95

// LimitType names which limit cut a response short.
type LimitType string

const (
	// LimitResult: only the maxResults cap applied.
	LimitResult LimitType = "result"
	// LimitToken: the character budget cut the response short.
	LimitToken LimitType = "token"
	// LimitBoth: truncated with the budget nearly exhausted.
	LimitBoth LimitType = "both"
)

// Budget tracks characters consumed against an immutable limit.
// Call-scoped: one Budget per response, never shared across calls.
type Budget struct {
	maxCharacters   int
	estimationRatio int
	consumed        int
}

// NewBudget returns a tracker. Non-positive arguments take the defaults.
func NewBudget(maxCharacters, estimationRatio int) *Budget {
	if maxCharacters <= 0 {
		maxCharacters = DefaultMaxCharacters
	}
	if estimationRatio <= 0 {
		estimationRatio = DefaultEstimationRatio
	}
	return &Budget{maxCharacters: maxCharacters, estimationRatio: estimationRatio}
}

// CanAdd reports whether fragment fits in the remaining budget. Pure; call
// it immediately before every Consume.
func (b *Budget) CanAdd(fragment string) bool {
	return b.consumed+len(fragment) <= b.maxCharacters
}

// CanAddReserving reports whether fragment fits while holding back reserve
// characters. Loops that may be followed by framing text use this so the
// framing, whose length is only known after the loop stops, still fits.
func (b *Budget) CanAddReserving(fragment string, reserve int) bool {
	return b.consumed+len(fragment)+reserve <= b.maxCharacters
}

// Consume records fragment against the budget.
//
// Precondition: the caller has just checked CanAdd. Violating it is a
// programming error, not a runtime condition, so Consume panics rather
// than silently clamping: a half-written fragment corrupts formatting,
// which is worse than an omitted one.
func (b *Budget) Consume(fragment string) {
	if !b.CanAdd(fragment) {
		panic(fmt.Sprintf(
			"respond: budget contract violation: fragment of %d characters exceeds remaining budget of %d (consumed %d of %d); call CanAdd first",
			len(fragment), b.maxCharacters-b.consumed, b.consumed, b.maxCharacters))
	}
	b.consumed += len(fragment)
}

// Consumed returns characters consumed so far.
func (b *Budget) Consumed() int { return b.consumed }

// MaxCharacters returns the immutable limit.
func (b *Budget) MaxCharacters() int { return b.maxCharacters }

// Reset zeroes the counter so one tracker can serve multiple independent
// response sections within a call.
func (b *Budget) Reset() { b.consumed = 0 }

// TruncationInfo is a read-only snapshot of how a response was bounded,
// computed on demand and never persisted.
type TruncationInfo struct {
	Truncated       bool
	Shown           int
	Total           int
	LimitType       LimitType
	Suggestion      string
	EstimatedTokens int
	Format          string
	AutoDowngraded  bool
}

// Info derives truncation metadata from the tracker state plus shown/total
// counts.
func (b *Budget) Info(shown, total int, format string, autoDowngraded bool) TruncationInfo {
	truncated := shown < total

	limit := LimitResult
	if truncated {
		if float64(b.consumed) >= budgetBindingThreshold*float64(b.maxCharacters) {
			limit = LimitBoth
		} else {
			limit = LimitToken
		}
	}

	// ceil(consumed / ratio)
	tokens := (b.consumed + b.estimationRatio - 1) / b.estimationRatio

	return TruncationInfo{
		Truncated:       truncated,
		Shown:           shown,
		Total:           total,
		LimitType:       limit,
		Suggestion:      suggestion(truncated, limit, total-shown, autoDowngraded),
		EstimatedTokens: tokens,
		Format:          format,
		AutoDowngraded:  autoDowngraded,
	}
}

func suggestion(truncated bool, limit LimitType, omitted int, autoDowngraded bool) string {
	if !truncated {
		return ""
	}
	switch {
	case autoDowngraded:
		return fmt.Sprintf("Output was switched to concise format to fit the response budget; %d more results exist. Narrow the query or add filters to see full detail.", omitted)
	case limit == LimitBoth:
		return fmt.Sprintf("%d more results were omitted to fit the response budget. Narrow the query, add filters, or use the concise format.", omitted)
	default:
		return fmt.Sprintf("%d more results exist. Raise max_results or refine the query to see them.", omitted)
	}
}
