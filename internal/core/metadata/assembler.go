// Package metadata composes the analysis steps into a MetadataRecord.
package metadata

import (
	"time"

	"go.uber.org/zap"

	"github.com/markdave123-py/Metadoc/internal/core"
	"github.com/markdave123-py/Metadoc/internal/core/analysis"
	"github.com/markdave123-py/Metadoc/internal/core/extraction"
	"github.com/markdave123-py/Metadoc/internal/models"
)

// Assembler builds metadata records. It holds only read-only collaborators
// and can be shared between goroutines.
type Assembler struct {
	detector core.LanguageDetector
	now      func() time.Time
	topN     int
	logger   *zap.Logger
}

// Option customizes an Assembler.
type Option func(*Assembler)

// WithClock replaces time.Now as the source of created_time.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// WithKeywordCount sets how many keywords are kept.
func WithKeywordCount(n int) Option {
	return func(a *Assembler) { a.topN = n }
}

func NewAssembler(detector core.LanguageDetector, logger *zap.Logger, opts ...Option) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Assembler{
		detector: detector,
		now:      time.Now,
		topN:     analysis.DefaultKeywordCount,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble derives the metadata record of raw, the text extracted from filename.
func (a *Assembler) Assemble(raw, filename string) models.MetadataRecord {
	cleaned := extraction.Normalize(raw)

	rec := models.MetadataRecord{
		Filename:    filename,
		Title:       analysis.Title(raw),
		WordCount:   analysis.WordCount(raw),
		Keywords:    analysis.Keywords(cleaned, a.topN),
		Summary:     analysis.Summarize(raw),
		Language:    a.detectLanguage(cleaned),
		CreatedTime: a.now(),
		FileType:    FileType(filename),
	}

	a.logger.Debug("metadata assembled",
		zap.String("filename", filename),
		zap.Int("word_count", rec.WordCount),
		zap.String("language", rec.Language),
		zap.String("file_type", rec.FileType))
	return rec
}

func (a *Assembler) detectLanguage(text string) string {
	if a.detector == nil {
		return analysis.UnknownLanguage
	}
	return a.detector.Detect(text)
}
