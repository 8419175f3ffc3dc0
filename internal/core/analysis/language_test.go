package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestDetector() *LinguaDetector {
	return NewLanguageDetector(zap.NewNop(), "en", "fr", "de", "es")
}

func TestDetectShortTextIsUnknown(t *testing.T) {
	d := newTestDetector()

	assert.Equal(t, UnknownLanguage, d.Detect(""))
	assert.Equal(t, UnknownLanguage, d.Detect("Hello world"))
	// Exactly twenty characters is still too short.
	assert.Equal(t, UnknownLanguage, d.Detect("abcdefghij abcdefghi"))
}

func TestDetectGarbageIsUnknown(t *testing.T) {
	d := newTestDetector()
	assert.Equal(t, UnknownLanguage, d.Detect("1234567890 !@#$%^&*() 0987654321 ..."))
	assert.Equal(t, UnknownLanguage, d.Detect("\xff\xfe\x00\x01 0000 1111 2222 3333 4444 5555"))
}

func TestDetectKnownLanguages(t *testing.T) {
	d := newTestDetector()

	assert.Equal(t, "en", d.Detect("The quick brown fox jumps over the lazy dog while the farmer watches from the house."))
	assert.Equal(t, "fr", d.Detect("Le renard brun rapide saute par-dessus le chien paresseux pendant que le fermier regarde."))
	assert.Equal(t, "de", d.Detect("Der schnelle braune Fuchs springt über den faulen Hund, während der Bauer zuschaut."))
}

func TestDetectIsDeterministic(t *testing.T) {
	text := "This report describes the results of the quarterly planning meeting."
	first := newTestDetector().Detect(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, newTestDetector().Detect(text))
	}
}

func TestLanguagesFromCodes(t *testing.T) {
	assert.Len(t, languagesFromCodes([]string{"EN", " fr ", "", "xx"}), 2)
	assert.Empty(t, languagesFromCodes(nil))
}
