package analysis

import "strings"

const maxSummaryLines = 6

// Summarize returns the first six non-blank lines joined by single spaces,
// or "" when there are none. Leading lines of a document usually carry its
// title and key sentences.
func Summarize(text string) string {
	lines := NonBlankLines(text)
	if len(lines) > maxSummaryLines {
		lines = lines[:maxSummaryLines]
	}
	return strings.Join(lines, " ")
}
