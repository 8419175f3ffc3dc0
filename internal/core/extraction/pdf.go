package extraction

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"

	"github.com/markdave123-py/Metadoc/internal/core"
)

var _ core.DocumentExtractor = (*PDFExtractor)(nil)

// PDFExtractor reads a PDF page by page with ledongthuc/pdf. When that fails
// and the fallback is enabled, docconv's pdftotext conversion is tried.
type PDFExtractor struct {
	useTextFallback bool
}

func NewPDFExtractor(useTextFallback bool) *PDFExtractor {
	return &PDFExtractor{useTextFallback: useTextFallback}
}

// Extract concatenates the text of every page in page order, with no separator.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty pdf content", core.ErrExtraction)
	}

	text, err := readPages(data)
	if err == nil {
		return text, nil
	}
	if !e.useTextFallback {
		return "", fmt.Errorf("%w: %v", core.ErrExtraction, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	body, _, convErr := docconv.ConvertPDF(bytes.NewReader(data))
	if convErr != nil {
		return "", fmt.Errorf("%w: open pdf: %v; pdftotext: %v", core.ErrExtraction, err, convErr)
	}
	return body, nil
}

// readPages recovers from panics raised by the parser on corrupt input.
func readPages(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}
