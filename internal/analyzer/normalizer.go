// internal/analyzer/normalizer.go
package analyzer

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	disallowedChars = regexp.MustCompile(`[^\w\s.,!?:;\-()]`)
)

// Normalize cleans conversation text before any extraction task sees it.
// Total and idempotent. Stripping a disallowed character can leave the two
// spaces that surrounded it touching, so whitespace runs are collapsed a
// second time after the strip; without that pass the output would not be a
// fixed point.
func Normalize(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = disallowedChars.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\n\n", "\n")
	text = strings.ReplaceAll(text, "\r", "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
