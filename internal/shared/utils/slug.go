package utils

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CategorySlug derives the URL-safe slug for a category name.
// Pure function: lowercase, then collapse every whitespace run into a
// single hyphen. "Sci-Fi", "sci-fi" and "Sci  Fi" all map to "sci-fi";
// that collision is accepted, not deduplicated at the source.
func CategorySlug(name string) string {
	lower := strings.ToLower(name)
	return whitespaceRun.ReplaceAllString(lower, "-")
}
