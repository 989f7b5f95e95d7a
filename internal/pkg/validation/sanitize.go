package validation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds how many layers of entity encoding are peeled.
const maxSanitizePasses = 8

var angleStripper = strings.NewReplacer("<", "", ">", "")

// PlainText strips every HTML element from free-text input, keeping the
// text content. Entities are decoded before sanitising so encoded markup
// cannot survive as a tag once bluemonday's escaping is undone.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(html.UnescapeString(s)))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// still changing after every pass: drop angle brackets outright
	return strings.TrimSpace(angleStripper.Replace(s))
}
