package db

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts human-readable text to a URL-safe slug.
// Lowercase, runs of non-alphanumeric characters become single hyphens,
// leading and trailing hyphens are trimmed. "My Title!" -> "my-title".
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
