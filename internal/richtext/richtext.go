// ABOUTME: Converts rich-text note bodies to plain text for terminals and search.
// ABOUTME: Uses bluemonday to strip markup after turning block tags into line breaks.

package richtext

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict     = bluemonday.StrictPolicy()
	blockBreak = regexp.MustCompile(`(?i)<\s*(br\s*/?|/p|/div|/li|/h[1-6]|/blockquote|/tr)\s*>`)
	listItem   = regexp.MustCompile(`(?i)<\s*li[^>]*>`)
	blankRun   = regexp.MustCompile(`\n{3,}`)
)

// PlainText returns s with all markup removed. Input without tags is returned trimmed.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(html.UnescapeString(s))
	}
	s = blockBreak.ReplaceAllString(s, "$0\n")
	s = listItem.ReplaceAllString(s, "$0• ")
	s = strict.Sanitize(s)
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")
	s = blankRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Sanitize keeps basic formatting tags and drops everything else, for bodies
// that are stored as HTML.
func Sanitize(s string) string {
	return bluemonday.UGCPolicy().Sanitize(s)
}

// Preview returns the first line of the plain text, cut to max runes.
func Preview(s string, max int) string {
	text := PlainText(s)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	runes := []rune(text)
	if max > 3 && len(runes) > max {
		return string(runes[:max-3]) + "..."
	}
	return text
}
