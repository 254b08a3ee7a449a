// Package parser extracts lightweight metadata (title, tags, summary) from
// Markdown content. Extraction is best-effort: every marker is optional and
// each matcher takes the first line that satisfies it.
package parser

import (
	"regexp"
	"strings"
)

// SummaryLimit is the maximum summary length in runes.
const SummaryLimit = 200

var (
	titleRe = regexp.MustCompile(`^#\s+(.+)$`)
	tagsRe  = regexp.MustCompile(`^[Tt]ags:\s*\[(.*)\]\s*$`)
)

// Meta holds the metadata extracted from a Markdown document.
type Meta struct {
	Title   string
	Tags    []string
	Summary string
}

// Extract scans data line by line and returns the first-match metadata:
// title from the first level-1 heading, tags from the first "tags: [a, b]"
// line, summary from the first line that is neither blank, a heading, nor a
// tags line. Absent markers leave zero values (Tags is never nil).
func Extract(data []byte) Meta {
	m := Meta{Tags: []string{}}

	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if sub := tagsRe.FindStringSubmatch(trimmed); sub != nil {
			if len(m.Tags) == 0 {
				m.Tags = splitTags(sub[1])
			}
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			if m.Title == "" {
				if sub := titleRe.FindStringSubmatch(trimmed); sub != nil {
					m.Title = strings.TrimSpace(sub[1])
				}
			}
			continue
		}

		if m.Summary == "" {
			m.Summary = Truncate(collapseNewlines(trimmed), SummaryLimit)
		}
	}

	return m
}

// splitTags parses the comma-separated interior of a tags line,
// dropping empties and preserving declaration order.
func splitTags(inner string) []string {
	out := []string{}
	for _, part := range strings.Split(inner, ",") {
		tag := strings.Trim(strings.TrimSpace(part), `"'`)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func collapseNewlines(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleFromPath is the fallback title: the filename without extension.
func TitleFromPath(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

// Truncate shortens s to at most limit runes; a cut string ends with an
// ellipsis that counts against the limit.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
