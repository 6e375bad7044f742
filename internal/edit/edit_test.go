package edit_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/vaultmd/internal/edit"
	"github.com/jpl-au/vaultmd/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *vault.Vault {
	t.Helper()
	root := t.TempDir()
	content := "---\ntitle: Note\n---\nfirst line\nsecond line\nfirst line again\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "note.md"), []byte(content), 0644))
	v, err := vault.Open(root)
	require.NoError(t, err)
	return v
}

func TestRun_ReplacesFirstOccurrence(t *testing.T) {
	v := setup(t)
	ctx := context.Background()

	result, err := edit.Run(ctx, v, "note.md", "first line", "FIRST")
	require.NoError(t, err)
	assert.Contains(t, result.Diff, "- first")
	assert.Contains(t, result.Diff, "+ FIRST")

	doc, err := v.Read(ctx, "note.md")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.Body, "FIRST\n"), "first occurrence replaced")
	assert.Contains(t, doc.Body, "first line again", "second occurrence untouched")
	assert.Equal(t, "Note", doc.Title(), "front matter preserved")
}

func TestRun_TextNotFound(t *testing.T) {
	v := setup(t)
	_, err := edit.Run(context.Background(), v, "note.md", "absent text", "x")
	assert.ErrorIs(t, err, edit.ErrNotFound)
}

func TestRun_EmptyOldText(t *testing.T) {
	v := setup(t)
	_, err := edit.Run(context.Background(), v, "note.md", "", "x")
	require.Error(t, err)
}

func TestRun_MissingNote(t *testing.T) {
	v := setup(t)
	_, err := edit.Run(context.Background(), v, "missing.md", "a", "b")
	assert.ErrorIs(t, err, vault.ErrNotFound)
}
