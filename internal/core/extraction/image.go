package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/markdave123-py/Metadoc/internal/core"
)

var _ core.DocumentExtractor = (*ImageExtractor)(nil)

// ImageExtractor preprocesses a png/jpeg scan and hands it to an OCR engine.
type ImageExtractor struct {
	ocr core.OCREngine
}

func NewImageExtractor(ocr core.OCREngine) *ImageExtractor {
	return &ImageExtractor{ocr: ocr}
}

// Extract returns the OCR engine's raw output for the preprocessed image.
func (e *ImageExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if e.ocr == nil {
		return "", fmt.Errorf("%w: no OCR engine configured", core.ErrExtraction)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: decode image: %v", core.ErrExtraction, err)
	}

	text, err := e.ocr.Recognize(ctx, Preprocess(img))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: ocr: %v", core.ErrExtraction, err)
	}
	return text, nil
}
