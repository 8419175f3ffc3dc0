package core

import "errors"

// Pipeline errors. Callers match them with errors.Is; the message of the
// wrapping error carries the detail.
var (
	// ErrUnsupportedFormat is returned when no extractor is registered for a file extension.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrDecode is returned when plain-text content is not valid UTF-8.
	ErrDecode = errors.New("cannot decode text")
	// ErrExtraction is returned when a pdf, docx or image cannot be processed.
	ErrExtraction = errors.New("extraction failed")
	// ErrNotFound is returned by stores when no record exists for a filename.
	ErrNotFound = errors.New("not found")
	// ErrInvalidName is returned by stores for filenames or owners that do not
	// name a single path element.
	ErrInvalidName = errors.New("invalid name")
)
