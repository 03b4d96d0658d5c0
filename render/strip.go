package render

import (
	"html"
	"regexp"
	"strings"
)

var markupRe = regexp.MustCompile(`<[^>]*>`)

// StripMarkup returns the text content of markup produced by HTML, with
// no-break spaces read as spaces.
func StripMarkup(s string) string {
	s = markupRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.ReplaceAll(s, "\u00a0", " ")
}
