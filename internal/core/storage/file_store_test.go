package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Metadoc/internal/core"
	"github.com/markdave123-py/Metadoc/internal/models"
)

func sampleRecord(filename string) *models.MetadataRecord {
	return &models.MetadataRecord{
		Filename:    filename,
		Title:       "Report Title",
		WordCount:   11,
		Keywords:    []string{"testing", "report"},
		Summary:     "Report Title This is a short report.",
		Language:    "en",
		CreatedTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		FileType:    "text/plain",
	}
}

func newFileStore(t *testing.T) (*FileStore, string, string) {
	t.Helper()
	root := t.TempDir()
	up, out := filepath.Join(root, "uploads"), filepath.Join(root, "output")
	s, err := NewFileStore(up, out)
	require.NoError(t, err)
	return s, up, out
}

func TestFileStoreSaveAndLoad(t *testing.T) {
	s, _, out := newFileStore(t)
	ctx := context.Background()
	rec := sampleRecord("report.txt")

	require.NoError(t, s.Save(ctx, "", rec))

	raw, err := os.ReadFile(filepath.Join(out, "report.txt_metadata.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n    \"filename\": \"report.txt\"", "indented with four spaces")

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, k := range []string{"filename", "title", "word_count", "keywords", "summary", "language", "created_time", "file_type"} {
		assert.Contains(t, fields, k)
	}

	got, err := s.Load(ctx, "", "report.txt")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	b, err := s.Raw(ctx, "", "report.txt")
	require.NoError(t, err)
	assert.Equal(t, raw, b)
}

func TestFileStoreNilKeywordsEncodeAsEmptyList(t *testing.T) {
	s, _, out := newFileStore(t)
	rec := sampleRecord("empty.txt")
	rec.Keywords = nil

	require.NoError(t, s.Save(context.Background(), "", rec))
	raw, err := os.ReadFile(filepath.Join(out, "empty.txt_metadata.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"keywords": []`)
}

func TestFileStoreNotFound(t *testing.T) {
	s, _, _ := newFileStore(t)

	_, err := s.Load(context.Background(), "", "missing.pdf")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = s.Raw(context.Background(), "", "missing.pdf")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFileStoreStaysInsideRoot(t *testing.T) {
	s, up, out := newFileStore(t)
	ctx := context.Background()

	loc, err := s.SaveDocument(ctx, "", "../../escape.txt", []byte("data"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(up, "escape.txt"), loc)

	require.NoError(t, s.Save(ctx, "", sampleRecord("../outside.txt")))
	_, err = os.Stat(filepath.Join(out, "outside.txt_metadata.json"))
	assert.NoError(t, err)

	_, err = s.SaveDocument(ctx, "", "/", []byte("x"), "")
	assert.ErrorIs(t, err, core.ErrInvalidName)
}

func TestFileStoreList(t *testing.T) {
	s, _, out := newFileStore(t)
	ctx := context.Background()

	empty, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, s.Save(ctx, "", sampleRecord("b.txt")))
	require.NoError(t, s.Save(ctx, "", sampleRecord("a.pdf")))
	require.NoError(t, os.WriteFile(filepath.Join(out, "notes.md"), []byte("ignored"), 0o644))

	recs, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a.pdf", recs[0].Filename)
	assert.Equal(t, "b.txt", recs[1].Filename)
}

func TestMetadataFileName(t *testing.T) {
	assert.Equal(t, "scan.png_metadata.json", MetadataFileName("scan.png"))
}

func TestFileStoreOwnersAreIsolated(t *testing.T) {
	s, up, out := newFileStore(t)
	ctx := context.Background()

	alice := sampleRecord("report.txt")
	alice.Title = "Alice's report"
	bob := sampleRecord("report.txt")
	bob.Title = "Bob's report"

	require.NoError(t, s.Save(ctx, "alice", alice))
	require.NoError(t, s.Save(ctx, "bob", bob))
	_, err := os.Stat(filepath.Join(out, "alice", "report.txt_metadata.json"))
	require.NoError(t, err)

	got, err := s.Load(ctx, "alice", "report.txt")
	require.NoError(t, err)
	assert.Equal(t, "Alice's report", got.Title)

	got, err = s.Load(ctx, "bob", "report.txt")
	require.NoError(t, err)
	assert.Equal(t, "Bob's report", got.Title)

	_, err = s.Raw(ctx, "", "report.txt")
	assert.ErrorIs(t, err, core.ErrNotFound, "shared space does not see owners' records")
	_, err = s.Load(ctx, "carol", "report.txt")
	assert.ErrorIs(t, err, core.ErrNotFound)

	shared, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, shared)
	mine, err := s.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Alice's report", mine[0].Title)
	none, err := s.List(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, none)

	loc, err := s.SaveDocument(ctx, "alice", "report.txt", []byte("data"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(up, "alice", "report.txt"), loc)
}

func TestFileStoreDeleteDocument(t *testing.T) {
	s, up, _ := newFileStore(t)
	ctx := context.Background()

	_, err := s.SaveDocument(ctx, "alice", "scan.png", []byte("png"), "image/png")
	require.NoError(t, err)
	require.NoError(t, s.DeleteDocument(ctx, "alice", "scan.png"))

	_, err = os.Stat(filepath.Join(up, "alice", "scan.png"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.DeleteDocument(ctx, "alice", "scan.png"), "deleting twice is fine")
}

func TestFileStoreInvalidNames(t *testing.T) {
	s, _, _ := newFileStore(t)
	ctx := context.Background()

	for _, name := range []string{"..", "/", ".", ""} {
		_, err := s.Raw(ctx, "", name)
		assert.ErrorIs(t, err, core.ErrInvalidName, name)
	}
	for _, owner := range []string{"..", "a/b", `a\b`} {
		_, err := s.Load(ctx, owner, "report.txt")
		assert.ErrorIs(t, err, core.ErrInvalidName, owner)
	}
}
