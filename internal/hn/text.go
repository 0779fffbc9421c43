package hn

import (
	"strings"

	"github.com/k3a/html2text"
)

// PlainText converts the HTML fragment used in item text and user
// about fields into readable plain text. Entities are decoded and
// paragraph tags become blank lines.
func PlainText(html string) string {
	if html == "" {
		return ""
	}
	return strings.TrimSpace(html2text.HTML2Text(html))
}

// Truncate cuts s to at most max runes. No ellipsis is appended, so
// the result length bound holds exactly.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// CollapseWhitespace squashes runs of whitespace, including newlines,
// into single spaces. Used for one-line previews.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
