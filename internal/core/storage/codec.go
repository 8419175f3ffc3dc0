// Package storage keeps uploaded originals and their metadata records, either
// on the local filesystem or in an S3 bucket. Both layouts put an owner's
// files under a directory or key prefix named after the owner.
package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/markdave123-py/Metadoc/internal/core"
	"github.com/markdave123-py/Metadoc/internal/models"
)

const metadataSuffix = "_metadata.json"

// MetadataFileName is the name under which the record of filename is stored.
func MetadataFileName(filename string) string {
	return filename + metadataSuffix
}

// safeName strips any directory part so callers cannot escape the store root.
func safeName(filename string) (string, error) {
	name := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(filename, "\\", "/")))
	if name == "/" || name == "." || name == "" {
		return "", fmt.Errorf("%w: filename %q", core.ErrInvalidName, filename)
	}
	return name, nil
}

// ownerDir validates owner as a single path element. The empty owner is
// allowed and means the store root.
func ownerDir(owner string) (string, error) {
	if owner == "" {
		return "", nil
	}
	if strings.ContainsAny(owner, `/\`) || owner == "." || owner == ".." {
		return "", fmt.Errorf("%w: owner %q", core.ErrInvalidName, owner)
	}
	return owner, nil
}

func encodeRecord(rec *models.MetadataRecord) ([]byte, error) {
	out := *rec
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	b, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return b, nil
}

func decodeRecord(b []byte) (*models.MetadataRecord, error) {
	var rec models.MetadataRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &rec, nil
}
