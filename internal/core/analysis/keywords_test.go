package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordsFrequencyOrder(t *testing.T) {
	got := Keywords("apple apple apple banana banana cherry", DefaultKeywordCount)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, got)
}

func TestKeywordsTiesKeepFirstAppearance(t *testing.T) {
	got := Keywords("The quick brown foxes quickly jumped. Quick brown foxes!", DefaultKeywordCount)
	assert.Equal(t, []string{"quick", "brown", "foxes", "quickly", "jumped"}, got)
}

func TestKeywordsFiltersTokens(t *testing.T) {
	got := Keywords("tiny cat dog word hello h3llo hello_world café résumé WORLD", DefaultKeywordCount)
	assert.Equal(t, []string{"hello", "world"}, got)
}

func TestKeywordsTopN(t *testing.T) {
	words := []string{"alpha", "bravo", "charlie", "delta", "echos", "foxtrot",
		"gamma", "hotel", "india", "juliet", "kilos", "lima_"}
	text := strings.Join(words, " ")

	assert.Len(t, Keywords(text, DefaultKeywordCount), 10)
	assert.Equal(t, []string{"alpha", "bravo"}, Keywords(text, 2))
	assert.Empty(t, Keywords(text, 0))
}

func TestKeywordsEmptyIsNotNil(t *testing.T) {
	got := Keywords("", DefaultKeywordCount)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = Keywords("a bb ccc dddd", DefaultKeywordCount)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestKeywordsIdempotent(t *testing.T) {
	text := "Metadata generation extracts metadata from documents. Documents vary."
	first := Keywords(text, DefaultKeywordCount)
	assert.Equal(t, first, Keywords(text, DefaultKeywordCount))
	assert.Equal(t, []string{"metadata", "documents", "generation", "extracts"}, first)
}
