package analysis

import (
	"sort"
	"strings"
)

const (
	// DefaultKeywordCount is the number of keywords kept in a metadata record.
	DefaultKeywordCount = 10
	minKeywordLength    = 5
)

// Keywords returns up to topN lowercase tokens ordered by descending
// frequency; ties keep the order in which tokens first appear. Tokens are
// whole words made only of ASCII letters, at least five long. There is no
// stop-word list.
func Keywords(text string, topN int) []string {
	out := []string{}
	if topN <= 0 {
		return out
	}

	counts := make(map[string]int)
	var order []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if !isKeywordToken(w) {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}
	return append(out, order...)
}

func isKeywordToken(w string) bool {
	if len(w) < minKeywordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if c := w[i]; c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
