// Package text provides utilities for text processing and normalization.
// This package includes reusable functions for character counting, whitespace
// normalization, and truncation shared by the scraper and enrichment features.
package text

import (
	"regexp"
	"strings"
)

var (
	spaceRuns   = regexp.MustCompile(`[^\S\n]+`)
	blankLines  = regexp.MustCompile(`\n\s*\n`)
	newlineRuns = regexp.MustCompile(`\n+`)
)

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This function correctly handles multi-byte characters including Korean,
// Japanese, emoji, and other Unicode characters by counting runes instead of
// bytes, so length limits behave consistently across languages.
func CountRunes(text string) int {
	return len([]rune(text))
}

// NormalizeWhitespace collapses runs of spaces and tabs to a single space,
// removes blank lines, and collapses runs of newlines to a single newline.
// Paragraph breaks that arrived as explicit newlines survive normalization.
func NormalizeWhitespace(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n")
	text = newlineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// Truncate shortens text to at most maxRunes characters, appending an
// ellipsis when truncation occurred. Counting is rune-based so multi-byte
// text is never cut mid-character.
func Truncate(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "..."
}
