package analysis

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
	"go.uber.org/zap"

	"github.com/markdave123-py/Metadoc/internal/core"
)

const (
	// UnknownLanguage is returned whenever no language can be determined.
	UnknownLanguage = "unknown"
	// minDetectableRunes is the shortest input handed to the detector.
	minDetectableRunes = 21
)

var _ core.LanguageDetector = (*LinguaDetector)(nil)

// LinguaDetector identifies the language of a text with lingua's n-gram
// models. Lingua has no random component, so equal inputs always produce
// equal codes. Build one at startup and share it; it is read-only after
// construction.
type LinguaDetector struct {
	detector lingua.LanguageDetector
	logger   *zap.Logger
}

// NewLanguageDetector builds a detector restricted to the given ISO-639-1
// codes. Unknown codes are ignored; fewer than two usable codes selects every
// language lingua knows. Models are loaded here so the first Detect call does
// not pay for them.
func NewLanguageDetector(logger *zap.Logger, isoCodes ...string) *LinguaDetector {
	if logger == nil {
		logger = zap.NewNop()
	}

	langs := languagesFromCodes(isoCodes)
	if len(langs) < 2 {
		if len(isoCodes) > 0 {
			logger.Warn("fewer than two detection languages configured, using all",
				zap.Strings("codes", isoCodes))
		}
		langs = lingua.AllLanguages()
	}

	start := time.Now()
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		WithPreloadedLanguageModels().
		Build()
	logger.Info("language detector ready",
		zap.Int("languages", len(langs)),
		zap.Duration("elapsed", time.Since(start)))

	return &LinguaDetector{detector: detector, logger: logger}
}

// Detect returns the lowercase ISO-639-1 code of text, or UnknownLanguage for
// texts of 20 characters or fewer, unreliable results and detector failures.
func (d *LinguaDetector) Detect(text string) (code string) {
	if utf8.RuneCountInString(text) < minDetectableRunes {
		return UnknownLanguage
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("language detection panicked", zap.Any("panic", r))
			code = UnknownLanguage
		}
	}()

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return UnknownLanguage
	}
	iso := strings.ToLower(lang.IsoCode639_1().String())
	if len(iso) != 2 {
		return UnknownLanguage
	}
	return iso
}

func languagesFromCodes(codes []string) []lingua.Language {
	var out []lingua.Language
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		for _, l := range lingua.AllLanguages() {
			if strings.EqualFold(l.IsoCode639_1().String(), code) {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
