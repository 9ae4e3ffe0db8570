package corpus

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict drops every tag; it is safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// plainText reduces markup left over by the site build to collapsed plain text.
// Entities are decoded so templates escape the text exactly once.
func plainText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(s))), " ")
}
