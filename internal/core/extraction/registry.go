package extraction

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/markdave123-py/Metadoc/internal/core"
)

// Registry maps each Format to the extractor that handles it.
type Registry struct {
	extractors map[Format]core.DocumentExtractor
	logger     *zap.Logger
}

// Options configures NewDefaultRegistry.
type Options struct {
	// PDFTextFallback retries unreadable PDFs with pdftotext through docconv.
	PDFTextFallback bool
	OCR             core.OCREngine
}

// NewRegistry returns an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{extractors: make(map[Format]core.DocumentExtractor), logger: logger}
}

// NewDefaultRegistry registers the pdf, docx, txt and image extractors.
func NewDefaultRegistry(logger *zap.Logger, opts Options) *Registry {
	r := NewRegistry(logger)
	r.Register(FormatPDF, NewPDFExtractor(opts.PDFTextFallback))
	r.Register(FormatDOCX, NewDocxExtractor())
	r.Register(FormatText, NewTextExtractor())
	r.Register(FormatImage, NewImageExtractor(opts.OCR))
	return r
}

// Register installs e as the extractor for f, replacing any previous one.
func (r *Registry) Register(f Format, e core.DocumentExtractor) {
	r.extractors[f] = e
}

// Extract picks the extractor for filename's extension and runs it on data.
func (r *Registry) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	f, err := FormatOf(filename)
	if err != nil {
		return "", err
	}
	e, ok := r.extractors[f]
	if !ok {
		return "", fmt.Errorf("%w: no extractor registered for %s", core.ErrUnsupportedFormat, f)
	}

	text, err := e.Extract(ctx, data)
	if err != nil {
		r.logger.Warn("extraction failed",
			zap.String("filename", filename),
			zap.String("format", string(f)),
			zap.Error(err))
		return "", err
	}
	r.logger.Debug("text extracted",
		zap.String("filename", filename),
		zap.String("format", string(f)),
		zap.Int("chars", len(text)))
	return text, nil
}
