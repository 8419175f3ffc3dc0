package metadata

import (
	"mime"
	"path/filepath"
	"strings"
)

// UnknownFileType is used when a filename's extension has no known MIME type.
const UnknownFileType = "unknown"

// supportedTypes pins the MIME types of the formats the pipeline accepts so
// the result does not depend on the host's mime.types file.
var supportedTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// FileType guesses the MIME type of filename from its extension, without
// parameters such as charset.
func FileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return UnknownFileType
	}
	if t, ok := supportedTypes[ext]; ok {
		return t
	}
	t := mime.TypeByExtension(ext)
	if t == "" {
		return UnknownFileType
	}
	mediaType, _, err := mime.ParseMediaType(t)
	if err != nil {
		return UnknownFileType
	}
	return mediaType
}
