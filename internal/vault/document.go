// document.go defines the Document type served to the search core.
//
// Documents are produced on demand for each search invocation and discarded
// once the response is built. The search core never caches them; the only
// cache is the path listing owned by the Vault (see cache.go).

package vault

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// Document is one searchable note: its vault-relative path, parsed front
// matter, raw body text, and file timestamps.
type Document struct {
	Path        string
	Frontmatter map[string]any
	Body        string
	ModifiedAt  time.Time
	CreatedAt   time.Time
}

// Title returns the front matter title, or the filename stem when no title
// field is present (matching how vault UIs label untitled notes).
func (d Document) Title() string {
	for _, key := range []string{"title", "name"} {
		if v, ok := d.Frontmatter[key]; ok {
			if s := Stringify(v); s != "" {
				return s
			}
		}
	}
	return strings.TrimSuffix(path.Base(d.Path), ".md")
}

// Tags returns the front matter tag list. Both a YAML sequence and a single
// scalar value are accepted; vaults in the wild use both forms.
func (d Document) Tags() []string {
	v, ok := d.Frontmatter["tags"]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []any:
		tags := make([]string, 0, len(t))
		for _, item := range t {
			if s := Stringify(item); s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	case string:
		return []string{t}
	default:
		return nil
	}
}

// ContentType returns the document's content type from front matter.
// Checks "type" first, then "content-type", since both conventions appear
// in real vaults.
func (d Document) ContentType() string {
	for _, key := range []string{"type", "content-type"} {
		if v, ok := d.Frontmatter[key]; ok {
			return Stringify(v)
		}
	}
	return ""
}

// HasProperty reports whether the front matter contains the given key.
func (d Document) HasProperty(key string) bool {
	_, ok := d.Frontmatter[key]
	return ok
}

// Stringify renders a front matter value as searchable text. Sequences are
// joined with spaces so a pattern can hit any element; maps are rendered
// key-by-key in sorted order so repeated calls produce identical text (map
// iteration order would otherwise reshuffle phrase boundaries between
// searches). Used by the pattern matcher, which only understands strings.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, Stringify(item))
		}
		return strings.Join(parts, " ")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+Stringify(t[k]))
		}
		return strings.Join(parts, " ")
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", t)
	}
}
