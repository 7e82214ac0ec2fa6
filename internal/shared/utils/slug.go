package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
)

// GenerateSlug builds a URL-safe slug from a display name.
// "Science Fiction & Fantasy" becomes "science-fiction-fantasy".
func GenerateSlug(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))

	// Replace whitespace runs with single hyphens before stripping
	hyphenated := regexp.MustCompile(`\s+`).ReplaceAllString(lower, "-")

	// Keep only a-z, 0-9 and hyphens
	cleaned := slugInvalidChars.ReplaceAllString(hyphenated, "")

	// Collapse duplicate hyphens left behind by stripped characters
	normalized := slugHyphenRuns.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}
