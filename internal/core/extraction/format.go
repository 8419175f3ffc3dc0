// Package extraction turns uploaded documents into raw text. Each supported
// format is one DocumentExtractor variant; the Registry picks the variant from
// the file extension.
package extraction

import (
	"fmt"
	"strings"

	"github.com/markdave123-py/Metadoc/internal/core"
)

// Format is the closed set of document kinds the pipeline understands.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatText  Format = "txt"
	FormatImage Format = "image"
)

var formatsByExtension = map[string]Format{
	"pdf":  FormatPDF,
	"docx": FormatDOCX,
	"txt":  FormatText,
	"png":  FormatImage,
	"jpg":  FormatImage,
	"jpeg": FormatImage,
}

// Extension returns the lowercase text after the last dot of filename, or the
// whole lowercased name when it has no dot.
func Extension(filename string) string {
	name := strings.ToLower(filename)
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// FormatOf resolves the format of filename from its extension.
func FormatOf(filename string) (Format, error) {
	ext := Extension(filename)
	f, ok := formatsByExtension[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, ext)
	}
	return f, nil
}

// SupportedExtensions lists every extension FormatOf accepts.
func SupportedExtensions() []string {
	return []string{"pdf", "docx", "txt", "png", "jpg", "jpeg"}
}
