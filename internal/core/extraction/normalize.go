package extraction

import "strings"

// Normalize trims text and collapses every run of whitespace into one space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
