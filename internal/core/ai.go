package core

import (
	"context"
	"image"
)

// OCREngine recognizes the text in an already preprocessed image.
type OCREngine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// LanguageDetector returns an ISO-639-1 code or "unknown". It never fails.
type LanguageDetector interface {
	Detect(text string) string
}
