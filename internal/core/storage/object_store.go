package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/markdave123-py/Metadoc/internal/core"
	"github.com/markdave123-py/Metadoc/internal/models"
)

var (
	_ core.DocumentStore = (*ObjectStore)(nil)
	_ core.MetadataStore = (*ObjectStore)(nil)
)

const (
	uploadsPrefix  = "uploads/"
	metadataPrefix = "metadata/"
)

// ObjectStore keeps originals under uploads/[owner/] and metadata under
// metadata/[owner/] in one bucket.
type ObjectStore struct {
	client core.ObjectClient
	bucket string
}

func NewObjectStore(client core.ObjectClient, bucket string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket}
}

// key joins prefix, the validated owner and name.
func key(prefix, owner, name string) (string, error) {
	dir, err := ownerDir(owner)
	if err != nil {
		return "", err
	}
	return path.Join(prefix, dir, name), nil
}

func (s *ObjectStore) SaveDocument(ctx context.Context, owner, filename string, data []byte, contentType string) (string, error) {
	name, err := safeName(filename)
	if err != nil {
		return "", err
	}
	k, err := key(uploadsPrefix, owner, name)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.client.UploadFile(ctx, s.bucket, k, bytes.NewReader(data), contentType)
}

func (s *ObjectStore) DeleteDocument(ctx context.Context, owner, filename string) error {
	name, err := safeName(filename)
	if err != nil {
		return err
	}
	k, err := key(uploadsPrefix, owner, name)
	if err != nil {
		return err
	}
	return s.client.DeleteFile(ctx, s.bucket, k)
}

func (s *ObjectStore) Save(ctx context.Context, owner string, rec *models.MetadataRecord) error {
	k, err := s.metadataKey(owner, rec.Filename)
	if err != nil {
		return err
	}
	b, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = s.client.UploadFile(ctx, s.bucket, k, bytes.NewReader(b), "application/json")
	return err
}

func (s *ObjectStore) Raw(ctx context.Context, owner, filename string) ([]byte, error) {
	k, err := s.metadataKey(owner, filename)
	if err != nil {
		return nil, err
	}
	return s.client.GetFile(ctx, s.bucket, k)
}

func (s *ObjectStore) Load(ctx context.Context, owner, filename string) (*models.MetadataRecord, error) {
	b, err := s.Raw(ctx, owner, filename)
	if err != nil {
		return nil, err
	}
	return decodeRecord(b)
}

// List returns the records stored directly under the owner's prefix, so the
// shared space never includes owners' records.
func (s *ObjectStore) List(ctx context.Context, owner string) ([]models.MetadataRecord, error) {
	dir, err := ownerDir(owner)
	if err != nil {
		return nil, err
	}
	prefix := metadataPrefix
	if dir != "" {
		prefix += dir + "/"
	}

	keys, err := s.client.ListKeys(ctx, s.bucket, prefix)
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	out := make([]models.MetadataRecord, 0, len(keys))
	for _, k := range keys {
		rest := strings.TrimPrefix(k, prefix)
		if strings.Contains(rest, "/") || !strings.HasSuffix(rest, metadataSuffix) {
			continue
		}
		b, err := s.client.GetFile(ctx, s.bucket, k)
		if err != nil {
			return nil, err
		}
		rec, err := decodeRecord(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (s *ObjectStore) metadataKey(owner, filename string) (string, error) {
	name, err := safeName(filename)
	if err != nil {
		return "", err
	}
	return key(metadataPrefix, owner, MetadataFileName(name))
}
