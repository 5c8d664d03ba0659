// Package schema validates the structure and metadata of content files:
// YAML frontmatter extraction, per-content-type field schemas, and basic
// structural limits. It is independent of the security scanner; the
// orchestrator merges both issue streams.
package schema

import (
	"errors"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter extraction errors.
var (
	ErrNoFrontmatter = errors.New("no frontmatter block found")
	ErrUnterminated  = errors.New("frontmatter block is not terminated")
	ErrInvalidYAML   = errors.New("frontmatter is not valid YAML")
	ErrNotMapping    = errors.New("frontmatter must be a YAML mapping")
	ErrEmptyDocument = errors.New("document is empty")
)

const frontmatterDelimiter = "---"

// Extract splits a raw document into parsed frontmatter and markdown body.
// The frontmatter block must start on the first line and be delimited by
// `---` lines.
func Extract(raw string) (map[string]any, string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, "", ErrEmptyDocument
	}

	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	if strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return nil, "", ErrNoFrontmatter
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, "", ErrUnterminated
	}

	block := strings.Join(lines[1:end], "\n")
	body := strings.Join(lines[end+1:], "\n")

	var node any
	if err := yaml.Unmarshal([]byte(block), &node); err != nil {
		return nil, "", errors.Join(ErrInvalidYAML, err)
	}
	fm, ok := node.(map[string]any)
	if !ok {
		return nil, "", ErrNotMapping
	}
	return fm, body, nil
}

// FrontmatterValues flattens all scalar string values in frontmatter into
// one newline-joined string so the security scanner can inspect metadata the
// same way it inspects the body. Mappings are walked in sorted key order so
// repeated scans of the same frontmatter see byte-identical input.
func FrontmatterValues(fm map[string]any) string {
	var b strings.Builder
	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case string:
			b.WriteString(val)
			b.WriteByte('\n')
		case []any:
			for _, item := range val {
				walk(item)
			}
		case map[string]any:
			keys := make([]string, 0, len(val))
			for k := range val {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(val[k])
			}
		}
	}
	walk(fm)
	return b.String()
}
