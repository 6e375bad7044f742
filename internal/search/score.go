// score.go reduces a document's match records to a single relevance score.
//
// Scoring is deterministic: the same document, matches, and reference time
// always produce the same score. The only time-dependent input is the
// document's own modification time measured against the engine's reference
// clock, which tests pin to a fixed instant.

package search

import (
	"time"

	"github.com/jpl-au/vaultmd/internal/vault"
)

// Match type weights. Title-like front matter hits outrank other front
// matter hits, which outrank body hits; path hits matter least.
const (
	weightTitle       = 3.0
	weightFrontmatter = 2.0
	weightContent     = 1.0
	weightPath        = 0.5
)

// Recency boost parameters: a bounded additive term that decays to zero
// over recencyHorizon, so it reorders near-ties without overpowering match
// quality.
const (
	recencyMax     = 0.5
	recencyHorizon = 30 * 24 * time.Hour
)

// titleFields are front matter keys treated as title-like for weighting.
var titleFields = map[string]bool{"title": true, "name": true, "aliases": true}

// Score combines match count, match type weights, and recency into one
// relevance number.
func Score(doc vault.Document, matches []Match, ref time.Time) float64 {
	var score float64
	for _, m := range matches {
		switch m.Type {
		case MatchFrontmatter:
			if titleFields[m.Field] {
				score += weightTitle
			} else {
				score += weightFrontmatter
			}
		case MatchContent:
			score += weightContent
		case MatchPath:
			score += weightPath
		}
	}
	return score + recencyBoost(doc.ModifiedAt, ref)
}

func recencyBoost(modified, ref time.Time) float64 {
	age := ref.Sub(modified)
	if age < 0 {
		age = 0
	}
	if age >= recencyHorizon {
		return 0
	}
	return recencyMax * (1 - float64(age)/float64(recencyHorizon))
}
