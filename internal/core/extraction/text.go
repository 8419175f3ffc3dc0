package extraction

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/markdave123-py/Metadoc/internal/core"
)

var _ core.DocumentExtractor = (*TextExtractor)(nil)

// TextExtractor returns plain-text files verbatim.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor { return &TextExtractor{} }

// Extract fails with core.ErrDecode when data is not valid UTF-8.
func (e *TextExtractor) Extract(_ context.Context, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: content is not valid utf-8", core.ErrDecode)
	}
	return string(data), nil
}
