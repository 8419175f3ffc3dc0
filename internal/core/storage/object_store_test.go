package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Metadoc/internal/core"
)

type memObjects struct {
	mu          sync.Mutex
	objects     map[string][]byte
	contentType map[string]string
}

func newMemObjects() *memObjects {
	return &memObjects{objects: map[string][]byte{}, contentType: map[string]string{}}
}

func (m *memObjects) UploadFile(_ context.Context, bucket, key string, data io.Reader, contentType string) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	m.contentType[key] = contentType
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

func (m *memObjects) DeleteFile(_ context.Context, _, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memObjects) GetFile(_ context.Context, _, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	return b, nil
}

func (m *memObjects) ListKeys(_ context.Context, _, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func TestObjectStoreLayout(t *testing.T) {
	objs := newMemObjects()
	s := NewObjectStore(objs, "docs")
	ctx := context.Background()

	loc, err := s.SaveDocument(ctx, "", "dir/scan.png", []byte("png"), "")
	require.NoError(t, err)
	assert.Equal(t, "s3://docs/uploads/scan.png", loc)
	assert.Equal(t, "application/octet-stream", objs.contentType["uploads/scan.png"])

	require.NoError(t, s.Save(ctx, "", sampleRecord("scan.png")))
	assert.Contains(t, objs.objects, "metadata/scan.png_metadata.json")
	assert.Equal(t, "application/json", objs.contentType["metadata/scan.png_metadata.json"])
}

func TestObjectStoreRoundTrip(t *testing.T) {
	s := NewObjectStore(newMemObjects(), "docs")
	ctx := context.Background()

	rec := sampleRecord("report.txt")
	require.NoError(t, s.Save(ctx, "", rec))

	got, err := s.Load(ctx, "", "report.txt")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = s.Load(ctx, "", "absent.txt")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestObjectStoreListSkipsForeignKeys(t *testing.T) {
	objs := newMemObjects()
	s := NewObjectStore(objs, "docs")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "", sampleRecord("z.txt")))
	require.NoError(t, s.Save(ctx, "", sampleRecord("a.txt")))
	objs.objects["metadata/readme.txt"] = []byte("not a record")

	recs, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a.txt", recs[0].Filename)
	assert.Equal(t, "z.txt", recs[1].Filename)
}

func TestObjectStoreOwnerPrefixes(t *testing.T) {
	objs := newMemObjects()
	s := NewObjectStore(objs, "docs")
	ctx := context.Background()

	loc, err := s.SaveDocument(ctx, "u-1", "scan.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "s3://docs/uploads/u-1/scan.png", loc)

	require.NoError(t, s.Save(ctx, "u-1", sampleRecord("scan.png")))
	require.NoError(t, s.Save(ctx, "", sampleRecord("shared.txt")))
	assert.Contains(t, objs.objects, "metadata/u-1/scan.png_metadata.json")

	_, err = s.Load(ctx, "u-2", "scan.png")
	assert.ErrorIs(t, err, core.ErrNotFound)

	mine, err := s.List(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "scan.png", mine[0].Filename)

	shared, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, shared, 1, "shared listing skips owner prefixes")
	assert.Equal(t, "shared.txt", shared[0].Filename)

	require.NoError(t, s.DeleteDocument(ctx, "u-1", "scan.png"))
	assert.NotContains(t, objs.objects, "uploads/u-1/scan.png")
}

func TestObjectStoreInvalidNames(t *testing.T) {
	s := NewObjectStore(newMemObjects(), "docs")

	_, err := s.Raw(context.Background(), "", "..")
	assert.ErrorIs(t, err, core.ErrInvalidName)
	_, err = s.List(context.Background(), "../other")
	assert.ErrorIs(t, err, core.ErrInvalidName)
}
