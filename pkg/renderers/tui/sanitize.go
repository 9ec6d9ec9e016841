package tui

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// cleanText strips any markup from author-provided labels, placeholders and
// help strings before they reach the terminal.
func cleanText(value string) string {
	stripped := strictPolicy.Sanitize(value)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
