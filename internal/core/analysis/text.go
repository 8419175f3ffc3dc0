// Package analysis derives metadata fields from raw document text using
// positional and frequency heuristics plus statistical language detection.
package analysis

import (
	"regexp"
	"strings"
)

const (
	// UntitledTitle is used when the text has no non-blank line.
	UntitledTitle = "Untitled"
	maxTitleRunes = 100
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// NonBlankLines splits text on '\n' and returns the trimmed lines that are not empty.
func NonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Title returns the first non-blank line, cut to 100 characters.
func Title(text string) string {
	lines := NonBlankLines(text)
	if len(lines) == 0 {
		return UntitledTitle
	}
	runes := []rune(lines[0])
	if len(runes) > maxTitleRunes {
		return string(runes[:maxTitleRunes])
	}
	return lines[0]
}

// WordCount counts runs of letters, digits and underscores.
func WordCount(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}
