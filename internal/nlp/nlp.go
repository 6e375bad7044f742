// Package nlp interprets conversational search phrases into structured
// filter hints.
//
// "Italian restaurants in Toronto" becomes a content-type hint
// (Restaurant), a location tag hint (toronto), and leftover free text
// (Italian). The interpretation is heuristic, so every call also produces a
// human-readable description of what was inferred; the caller surfaces it
// so users can judge whether the auto-interpretation was reasonable.
package nlp

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// contentTypeHints maps plural/singular topic nouns to content-type guesses.
var contentTypeHints = map[string]string{
	"restaurant":  "Restaurant",
	"restaurants": "Restaurant",
	"recipe":      "Recipe",
	"recipes":     "Recipe",
	"book":        "Book",
	"books":       "Book",
	"article":     "Article",
	"articles":    "Article",
	"meeting":     "Meeting",
	"meetings":    "Meeting",
	"contact":     "Contact",
	"contacts":    "Contact",
	"movie":       "Movie",
	"movies":      "Movie",
	"project":     "Project",
	"projects":    "Project",
	"reference":   "Reference",
	"references":  "Reference",
}

// fillerWords are dropped from the leftover free text.
var fillerWords = map[string]bool{
	"a": true, "an": true, "the": true, "my": true, "me": true,
	"find": true, "show": true, "all": true, "about": true,
	"for": true, "with": true, "some": true, "any": true,
}

// Interpretation is the outcome of pre-processing one phrase.
type Interpretation struct {
	ContentType string    // content-type guess, empty when none
	Tags        []string  // location/topic tag hints
	Since       time.Time // recency hint, zero when none
	Remainder   string    // leftover free text to search with
	Text        string    // human-readable description, never empty
}

// Interpret extracts filter hints from a conversational phrase. The
// reference time anchors relative date expressions so interpretation is
// deterministic in tests.
func Interpret(phrase string, ref time.Time) Interpretation {
	var in Interpretation
	words := strings.Fields(phrase)
	var leftover []string

	for i := 0; i < len(words); i++ {
		w := words[i]
		lower := strings.ToLower(strings.Trim(w, ".,!?"))

		// Content-type noun: first hit wins
		if in.ContentType == "" {
			if ct, ok := contentTypeHints[lower]; ok {
				in.ContentType = ct
				continue
			}
		}

		// "in <Place>": a capitalised word after "in" reads as a location
		if lower == "in" && i+1 < len(words) {
			next := strings.Trim(words[i+1], ".,!?")
			if next != "" && next[0] >= 'A' && next[0] <= 'Z' {
				in.Tags = append(in.Tags, strings.ToLower(next))
				i++
				continue
			}
		}

		// "since <date>" / "from <date>": try the rest of the phrase as a
		// date expression
		if (lower == "since" || lower == "from" || lower == "after") && i+1 < len(words) {
			rest := strings.Join(words[i+1:], " ")
			if ts, err := dateparse.ParseAny(rest); err == nil {
				in.Since = ts
				break
			}
		}

		if lower == "last" && i+1 < len(words) {
			if since, ok := lastPeriod(strings.ToLower(strings.Trim(words[i+1], ".,!?")), ref); ok {
				in.Since = since
				i++
				continue
			}
		}

		if fillerWords[lower] {
			continue
		}
		leftover = append(leftover, w)
	}

	in.Remainder = strings.Join(leftover, " ")
	in.Text = describe(phrase, in)
	return in
}

func lastPeriod(unit string, ref time.Time) (time.Time, bool) {
	switch unit {
	case "week":
		return ref.AddDate(0, 0, -7), true
	case "month":
		return ref.AddDate(0, -1, 0), true
	case "year":
		return ref.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// describe builds the interpretation text. Stated even when nothing was
// inferred, so callers always know how their phrase was handled.
func describe(phrase string, in Interpretation) string {
	var parts []string
	if in.ContentType != "" {
		parts = append(parts, fmt.Sprintf("content type %q", in.ContentType))
	}
	for _, tag := range in.Tags {
		parts = append(parts, fmt.Sprintf("tag %q", tag))
	}
	if !in.Since.IsZero() {
		parts = append(parts, fmt.Sprintf("modified since %s", in.Since.Format("2006-01-02")))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("No structured filters inferred from %q; searched as free text.", phrase)
	}

	desc := "Interpreted as " + strings.Join(parts, ", ")
	if in.Remainder != "" {
		desc += fmt.Sprintf(", searching for %q", in.Remainder)
	}
	return desc + "."
}
