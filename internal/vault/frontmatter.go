// frontmatter.go splits and parses YAML front matter blocks.
//
// Separated from vault.go because front matter handling has its own failure
// mode: a malformed YAML block must not make the note invisible to search.
// The splitter degrades to "no front matter, whole file is body" so the note
// still matches on content and path.

package vault

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// SplitFrontmatter separates a note into its front matter source and body.
// A front matter block is an opening "---" on the first line and a closing
// "---" line. Notes without a block return an empty front matter string.
func SplitFrontmatter(content string) (frontmatter, body string) {
	if !strings.HasPrefix(content, delimiter+"\n") && content != delimiter {
		return "", content
	}

	rest := strings.TrimPrefix(content, delimiter+"\n")
	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		// Unterminated block: treat the whole file as body rather than
		// swallowing it into front matter
		return "", content
	}

	frontmatter = rest[:end]
	body = rest[end+len("\n"+delimiter):]
	body = strings.TrimPrefix(body, "\n")
	return frontmatter, body
}

// ParseFrontmatter parses a front matter source block into a key/value map.
// Returns nil (not an error) for an empty block.
func ParseFrontmatter(src string) (map[string]any, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	var fm map[string]any
	if err := yaml.Unmarshal([]byte(src), &fm); err != nil {
		return nil, err
	}
	return fm, nil
}

// RenderFrontmatter serialises a front matter map back to a YAML block with
// delimiters, suitable for prepending to a note body. Returns an empty
// string for an empty map so bodiless notes round-trip unchanged.
func RenderFrontmatter(fm map[string]any) (string, error) {
	if len(fm) == 0 {
		return "", nil
	}
	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}
	return delimiter + "\n" + string(data) + delimiter + "\n", nil
}
