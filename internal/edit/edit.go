// Package edit implements search/replace editing of notes with a diff
// preview.
//
// Replaces the first occurrence of the old text in the note body and
// reports what changed as a unified-style diff. The diff is the caller's
// confirmation that the right text was touched; an edit whose old text is
// ambiguous or absent fails rather than guessing.
package edit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/vaultmd/internal/vault"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrNotFound is returned when the old text does not occur in the note.
var ErrNotFound = errors.New("text to replace not found in note")

// contextLines bounds unchanged runs in the rendered diff; longer runs are
// collapsed with "...".
const contextLines = 3

// Result describes a completed edit.
type Result struct {
	Path string
	Diff string // rendered diff of the body change
}

// Run replaces the first occurrence of old with new in the note's body and
// writes it back, preserving front matter.
func Run(ctx context.Context, v *vault.Vault, path, oldText, newText string) (Result, error) {
	var result Result

	if oldText == "" {
		return result, fmt.Errorf("text to replace must not be empty")
	}

	doc, err := v.Read(ctx, path)
	if err != nil {
		return result, err
	}

	if !strings.Contains(doc.Body, oldText) {
		return result, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	updated := strings.Replace(doc.Body, oldText, newText, 1)
	if err := v.Write(ctx, path, updated); err != nil {
		return result, err
	}

	result.Path = doc.Path
	result.Diff = renderDiff(doc.Body, updated)
	return result, nil
}

// renderDiff produces a +/- line diff with long equal runs collapsed.
func renderDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(&b, "- ", lines)
		case diffmatchpatch.DiffInsert:
			writeLines(&b, "+ ", lines)
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				writeLines(&b, "  ", lines[:contextLines])
				b.WriteString("  ...\n")
				writeLines(&b, "  ", lines[len(lines)-contextLines:])
			} else {
				writeLines(&b, "  ", lines)
			}
		}
	}
	return b.String()
}

func writeLines(b *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		b.WriteString(prefix + l + "\n")
	}
}
