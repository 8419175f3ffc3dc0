package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/markdave123-py/Metadoc/internal/core"
	"github.com/markdave123-py/Metadoc/internal/models"
)

var (
	_ core.DocumentStore = (*FileStore)(nil)
	_ core.MetadataStore = (*FileStore)(nil)
)

// FileStore writes originals to uploadDir and metadata JSON to outputDir,
// each owner in its own subdirectory.
type FileStore struct {
	uploadDir string
	outputDir string
}

// NewFileStore creates both directories if needed.
func NewFileStore(uploadDir, outputDir string) (*FileStore, error) {
	for _, dir := range []string{uploadDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return &FileStore{uploadDir: uploadDir, outputDir: outputDir}, nil
}

// path resolves owner and name below root. The owner directory is created
// when create is set.
func (s *FileStore) path(root, owner, name string, create bool) (string, error) {
	dir, err := ownerDir(owner)
	if err != nil {
		return "", err
	}
	base := filepath.Join(root, dir)
	if create && dir != "" {
		if err := os.MkdirAll(base, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", base, err)
		}
	}
	return filepath.Join(base, name), nil
}

func (s *FileStore) SaveDocument(_ context.Context, owner, filename string, data []byte, _ string) (string, error) {
	name, err := safeName(filename)
	if err != nil {
		return "", err
	}
	p, err := s.path(s.uploadDir, owner, name, true)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return p, nil
}

// DeleteDocument removes a stored original; a missing file is not an error.
func (s *FileStore) DeleteDocument(_ context.Context, owner, filename string) error {
	name, err := safeName(filename)
	if err != nil {
		return err
	}
	p, err := s.path(s.uploadDir, owner, name, false)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

func (s *FileStore) Save(_ context.Context, owner string, rec *models.MetadataRecord) error {
	name, err := safeName(rec.Filename)
	if err != nil {
		return err
	}
	b, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	p, err := s.path(s.outputDir, owner, MetadataFileName(name), true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func (s *FileStore) Raw(_ context.Context, owner, filename string) ([]byte, error) {
	name, err := safeName(filename)
	if err != nil {
		return nil, err
	}
	p, err := s.path(s.outputDir, owner, MetadataFileName(name), false)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("metadata for %s: %w", name, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	return b, nil
}

func (s *FileStore) Load(ctx context.Context, owner, filename string) (*models.MetadataRecord, error) {
	b, err := s.Raw(ctx, owner, filename)
	if err != nil {
		return nil, err
	}
	return decodeRecord(b)
}

// List returns every record of owner, ordered by filename.
func (s *FileStore) List(_ context.Context, owner string) ([]models.MetadataRecord, error) {
	dir, err := s.path(s.outputDir, owner, "", false)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.MetadataRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list metadata: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), metadataSuffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]models.MetadataRecord, 0, len(names))
	for _, n := range names {
		b, err := os.ReadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", n, err)
		}
		rec, err := decodeRecord(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n, err)
		}
		out = append(out, *rec)
	}
	return out, nil
}
