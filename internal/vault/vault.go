// Package vault provides filesystem access to a markdown note vault.
//
// A vault is a directory tree of .md files with optional YAML front matter.
// This package owns all document I/O and the cheap pre-search filters; the
// search core consumes the documents it produces and never touches the
// filesystem itself.
//
// Design: List applies content-type/tag/folder/date filters while documents
// are being loaded, before any pattern matching happens. Filtering here is
// cheap (map lookups on parsed front matter) while pattern matching is not,
// so the search engine sees only plausible candidates.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

var (
	// ErrNotFound is returned when a requested note does not exist.
	ErrNotFound = errors.New("note not found")
	// ErrExists is returned by Create when the target note already exists.
	ErrExists = errors.New("note already exists")
)

// DefaultListingTTL is how long a path listing stays cached between walks.
const DefaultListingTTL = 30 * time.Second

// Filters narrows the candidate set before pattern matching.
type Filters struct {
	ContentType string    // front matter type, exact match (case-insensitive)
	Tags        []string  // any-match against front matter tags
	Folder      string    // vault-relative path prefix
	Since       time.Time // only documents modified at or after this time
	// IncludeNullValues admits documents that have no content type at all
	// when a ContentType filter is set. Default is to exclude them.
	IncludeNullValues bool
}

// Match reports whether a document passes every set filter. List applies
// this during the walk; callers that load documents by other routes (glob
// matching) apply it themselves.
func (f Filters) Match(doc Document) bool {
	if f.Folder != "" && !underFolder(doc.Path, f.Folder) {
		return false
	}
	if !f.Since.IsZero() && doc.ModifiedAt.Before(f.Since) {
		return false
	}
	if f.ContentType != "" && !matchContentType(doc, f.ContentType, f.IncludeNullValues) {
		return false
	}
	if len(f.Tags) > 0 && !matchAnyTag(doc, f.Tags) {
		return false
	}
	return true
}

// Vault reads notes from a directory tree.
type Vault struct {
	root  string
	cache *listingCache
}

// Option configures a Vault.
type Option func(*Vault)

// WithListingTTL overrides the path listing cache TTL.
func WithListingTTL(ttl time.Duration) Option {
	return func(v *Vault) { v.cache.ttl = ttl }
}

// WithClock injects the clock used for cache expiry. Tests use this to
// advance time explicitly.
func WithClock(now func() time.Time) Option {
	return func(v *Vault) { v.cache.now = now }
}

// Open returns a Vault rooted at dir. The directory must exist.
func Open(dir string, opts ...Option) (*Vault, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot open vault at %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path %s is not a directory", dir)
	}

	v := &Vault{
		root:  dir,
		cache: newListingCache(DefaultListingTTL, time.Now),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Root returns the vault's root directory.
func (v *Vault) Root() string { return v.root }

// Invalidate drops the cached path listing. Called after writes so the next
// search sees new notes immediately.
func (v *Vault) Invalidate() { v.cache.invalidate() }

// Paths returns all vault-relative note paths, sorted, from the listing
// cache.
func (v *Vault) Paths(ctx context.Context) ([]string, error) {
	return v.cache.get(func() ([]string, error) {
		return v.walk()
	})
}

// walk collects every .md path under the root. Hidden directories (.obsidian,
// .vaultmd, .git) are skipped.
func (v *Vault) walk() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") && p != v.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".md") || strings.HasPrefix(name, ".") {
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking vault: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// List returns documents matching the filters. A note whose front matter
// fails to parse is still returned (with nil front matter) so it remains
// findable by content and path; a note that cannot be read at all is skipped
// rather than failing the whole listing, since files may vanish between the
// walk and the read.
func (v *Vault) List(ctx context.Context, f Filters) ([]Document, error) {
	paths, err := v.Paths(ctx)
	if err != nil {
		return nil, err
	}

	var docs []Document
	for _, rel := range paths {
		if f.Folder != "" && !underFolder(rel, f.Folder) {
			continue
		}

		doc, err := v.Read(ctx, rel)
		if err != nil {
			continue
		}

		if !f.Match(doc) {
			continue
		}

		docs = append(docs, doc)
	}
	return docs, nil
}

// Read loads a single note by vault-relative path.
func (v *Vault) Read(ctx context.Context, rel string) (Document, error) {
	abs := filepath.Join(v.root, filepath.FromSlash(rel))
	data, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, fmt.Errorf("%w: %s", ErrNotFound, rel)
	}
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", rel, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", rel, err)
	}

	fmSrc, body := SplitFrontmatter(string(data))
	fm, err := ParseFrontmatter(fmSrc)
	if err != nil {
		// Malformed front matter: keep the note searchable by body and path
		fm = nil
	}

	return Document{
		Path:        rel,
		Frontmatter: fm,
		Body:        body,
		ModifiedAt:  info.ModTime(),
		CreatedAt:   info.ModTime(),
	}, nil
}

// Create writes a new note with optional front matter. Refuses to overwrite.
func (v *Vault) Create(ctx context.Context, rel string, fm map[string]any, body string) error {
	rel = NormalisePath(rel)
	abs := filepath.Join(v.root, filepath.FromSlash(rel))

	if _, err := os.Stat(abs); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, rel)
	}

	block, err := RenderFrontmatter(fm)
	if err != nil {
		return fmt.Errorf("rendering front matter: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("creating folder for %s: %w", rel, err)
	}
	if err := os.WriteFile(abs, []byte(block+body), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	v.Invalidate()
	return nil
}

// Write replaces a note's body, preserving its front matter block verbatim.
func (v *Vault) Write(ctx context.Context, rel, body string) error {
	abs := filepath.Join(v.root, filepath.FromSlash(rel))
	data, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, rel)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", rel, err)
	}
	fmSrc, _ := SplitFrontmatter(string(data))

	content := body
	if fmSrc != "" {
		content = delimiter + "\n" + fmSrc + "\n" + delimiter + "\n" + body
	}
	if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	v.Invalidate()
	return nil
}

// Glob returns note paths matching a glob pattern. Patterns use '/' as the
// separator; "**" spans folders ("projects/**/plan*").
func (v *Vault) Glob(ctx context.Context, pattern string) ([]string, error) {
	pattern = strings.TrimSuffix(pattern, ".md")
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	paths, err := v.Paths(ctx)
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, p := range paths {
		stem := strings.TrimSuffix(p, ".md")
		if g.Match(stem) || g.Match(p) || g.Match(baseName(stem)) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Folders returns the distinct folders containing notes, sorted.
func (v *Vault) Folders(ctx context.Context) ([]string, error) {
	paths, err := v.Paths(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, p := range paths {
		dir := filepath.ToSlash(filepath.Dir(p))
		for dir != "." && dir != "/" {
			seen[dir] = true
			dir = filepath.ToSlash(filepath.Dir(dir))
		}
	}

	folders := make([]string, 0, len(seen))
	for f := range seen {
		folders = append(folders, f)
	}
	sort.Strings(folders)
	return folders, nil
}

// Properties returns each front matter key with the number of notes using
// it, sorted by key. Backs the property enumeration in vault_list.
func (v *Vault) Properties(ctx context.Context) ([]PropertyCount, error) {
	docs, err := v.List(ctx, Filters{})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, doc := range docs {
		for key := range doc.Frontmatter {
			counts[key]++
		}
	}

	props := make([]PropertyCount, 0, len(counts))
	for key, n := range counts {
		props = append(props, PropertyCount{Key: key, Count: n})
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Key < props[j].Key })
	return props, nil
}

// PropertyCount is one front matter key and how many notes define it.
type PropertyCount struct {
	Key   string
	Count int
}

// Templates returns notes that act as templates: anything under a
// "templates" folder, or typed template in front matter. Listing only; the
// vault never instantiates templates.
func (v *Vault) Templates(ctx context.Context) ([]Document, error) {
	docs, err := v.List(ctx, Filters{})
	if err != nil {
		return nil, err
	}

	var out []Document
	for _, doc := range docs {
		if underFolder(doc.Path, "templates") || strings.EqualFold(doc.ContentType(), "template") {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Recent returns the limit most recently modified notes, newest first.
// Ties break by path so the ordering is stable across runs.
func (v *Vault) Recent(ctx context.Context, limit int) ([]Document, error) {
	docs, err := v.List(ctx, Filters{})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].ModifiedAt.Equal(docs[j].ModifiedAt) {
			return docs[i].ModifiedAt.After(docs[j].ModifiedAt)
		}
		return docs[i].Path < docs[j].Path
	})
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// NormalisePath cleans a user-supplied note path: forward slashes, no
// leading slash, .md extension appended when missing.
func NormalisePath(rel string) string {
	rel = filepath.ToSlash(strings.TrimSpace(rel))
	rel = strings.TrimPrefix(rel, "/")
	if !strings.HasSuffix(rel, ".md") {
		rel += ".md"
	}
	return rel
}

func underFolder(rel, folder string) bool {
	folder = strings.TrimSuffix(filepath.ToSlash(folder), "/")
	return rel == folder || strings.HasPrefix(rel, folder+"/")
}

func matchContentType(doc Document, want string, includeNull bool) bool {
	ct := doc.ContentType()
	if ct == "" {
		return includeNull
	}
	return strings.EqualFold(ct, want)
}

func matchAnyTag(doc Document, want []string) bool {
	tags := doc.Tags()
	for _, w := range want {
		for _, t := range tags {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}

func baseName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
