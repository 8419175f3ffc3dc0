package services

import (
	"context"
	"errors"
	"sync"

	"github.com/markdave123-py/Metadoc/internal/core"
	"github.com/markdave123-py/Metadoc/internal/core/ingestion_engine"
	"github.com/markdave123-py/Metadoc/internal/models"
)

type fakeDB struct {
	mu        sync.Mutex
	users     map[string]*models.User
	docs      map[string]*models.Document
	metadata  map[string]*models.MetadataRecord
	statuses  []string
	createErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    map[string]*models.User{},
		docs:     map[string]*models.Document{},
		metadata: map[string]*models.MetadataRecord{},
	}
}

var _ core.DbClient = (*fakeDB)(nil)

func (f *fakeDB) CreateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.Email]; ok {
		return errors.New("duplicate email")
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[email], nil
}

func (f *fakeDB) CreateDocument(_ context.Context, d *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.docs[d.ID] = d
	f.statuses = append(f.statuses, d.Status)
	return nil
}

func (f *fakeDB) GetDocumentByID(_ context.Context, id string) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[id], nil
}

func (f *fakeDB) ListDocumentsByUser(_ context.Context, userID string) ([]models.DocumentWithMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DocumentWithMetadata
	for id, d := range f.docs {
		if d.UserID == userID {
			out = append(out, models.DocumentWithMetadata{Document: *d, Metadata: f.metadata[id]})
		}
	}
	return out, nil
}

func (f *fakeDB) UpdateDocumentStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return core.ErrNotFound
	}
	d.Status = status
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeDB) UpsertDocumentMetadata(_ context.Context, id string, rec *models.MetadataRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metadata[id] = rec
	return nil
}

func (f *fakeDB) Close() error { return nil }

type fakeIngestor struct {
	rec   *models.MetadataRecord
	err   error
	calls int
}

func (f *fakeIngestor) Process(_ context.Context, filename string, _ []byte) (*models.MetadataRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	rec := *f.rec
	rec.Filename = filename
	return &rec, nil
}

func (f *fakeIngestor) ProcessBatch(ctx context.Context, sources []ingestion_engine.Source) []ingestion_engine.Result {
	out := make([]ingestion_engine.Result, len(sources))
	for i, s := range sources {
		rec, err := f.Process(ctx, s.Filename, s.Data)
		out[i] = ingestion_engine.Result{Filename: s.Filename, Record: rec, Err: err}
	}
	return out
}
