package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markdave123-py/Metadoc/internal/core"
	"github.com/markdave123-py/Metadoc/internal/core/extraction"
	"github.com/markdave123-py/Metadoc/internal/core/ingestion_engine"
	"github.com/markdave123-py/Metadoc/internal/models"
)

// DocumentService stores uploads, runs the metadata pipeline and persists
// the result. db is optional; without it documents are tracked only through
// the metadata store.
type DocumentService struct {
	ingestor ingestion_engine.Ingestor
	docs     core.DocumentStore
	meta     core.MetadataStore
	db       core.DbClient
	logger   *zap.Logger
}

func NewDocumentService(ing ingestion_engine.Ingestor, docs core.DocumentStore, meta core.MetadataStore, db core.DbClient, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{ingestor: ing, docs: docs, meta: meta, db: db, logger: logger}
}

// Upload stores the original, derives its metadata and saves the record
// under userID. Unsupported extensions are rejected before anything is
// written; an original whose processing fails is removed again.
func (s *DocumentService) Upload(ctx context.Context, userID, filename, contentType string, data []byte) (*models.MetadataRecord, error) {
	if _, err := extraction.FormatOf(filename); err != nil {
		return nil, err
	}

	location, err := s.docs.SaveDocument(ctx, userID, filename, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	var docID string
	if s.tracksDocuments(userID) {
		doc := &models.Document{
			ID:          uuid.NewString(),
			UserID:      userID,
			FileName:    filename,
			StorageURL:  location,
			ContentType: contentType,
			Status:      models.StatusProcessing,
		}
		if err := s.db.CreateDocument(ctx, doc); err != nil {
			s.discard(ctx, userID, filename)
			return nil, fmt.Errorf("create document: %w", err)
		}
		docID = doc.ID
	}

	rec, err := s.ingestor.Process(ctx, filename, data)
	if err != nil {
		s.setStatus(ctx, docID, models.StatusFailed)
		s.discard(ctx, userID, filename)
		return nil, err
	}

	if err := s.meta.Save(ctx, userID, rec); err != nil {
		s.setStatus(ctx, docID, models.StatusFailed)
		return nil, fmt.Errorf("save metadata: %w", err)
	}
	if docID != "" {
		if err := s.db.UpsertDocumentMetadata(ctx, docID, rec); err != nil {
			s.setStatus(ctx, docID, models.StatusFailed)
			return nil, fmt.Errorf("persist metadata: %w", err)
		}
		s.setStatus(ctx, docID, models.StatusReady)
	}
	return rec, nil
}

// Get returns the metadata userID stored for filename.
func (s *DocumentService) Get(ctx context.Context, userID, filename string) (*models.MetadataRecord, error) {
	return s.meta.Load(ctx, userID, filename)
}

// Raw returns the stored metadata JSON of filename.
func (s *DocumentService) Raw(ctx context.Context, userID, filename string) ([]byte, error) {
	return s.meta.Raw(ctx, userID, filename)
}

// GetDocument returns the document row id with its metadata. Documents of
// other users, and every lookup without a database, report ErrNotFound.
func (s *DocumentService) GetDocument(ctx context.Context, userID, id string) (*models.DocumentWithMetadata, error) {
	if !s.tracksDocuments(userID) {
		return nil, fmt.Errorf("document %s: %w", id, core.ErrNotFound)
	}

	doc, err := s.db.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.UserID != userID {
		return nil, fmt.Errorf("document %s: %w", id, core.ErrNotFound)
	}

	out := &models.DocumentWithMetadata{Document: *doc}
	rec, err := s.meta.Load(ctx, userID, doc.FileName)
	switch {
	case err == nil:
		out.Metadata = rec
	case !errors.Is(err, core.ErrNotFound):
		return nil, err
	}
	return out, nil
}

// List returns the user's documents when a database is configured, and every
// stored record otherwise.
func (s *DocumentService) List(ctx context.Context, userID string) ([]models.DocumentWithMetadata, error) {
	if s.tracksDocuments(userID) {
		return s.db.ListDocumentsByUser(ctx, userID)
	}

	recs, err := s.meta.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.DocumentWithMetadata, 0, len(recs))
	for i := range recs {
		rec := recs[i]
		out = append(out, models.DocumentWithMetadata{
			Document: models.Document{
				UserID:      userID,
				FileName:    rec.Filename,
				ContentType: rec.FileType,
				Status:      models.StatusReady,
				CreatedAt:   rec.CreatedTime,
				UpdatedAt:   rec.CreatedTime,
			},
			Metadata: &rec,
		})
	}
	return out, nil
}

func (s *DocumentService) tracksDocuments(userID string) bool {
	return s.db != nil && userID != ""
}

// discard removes an original that will never get a metadata record.
func (s *DocumentService) discard(ctx context.Context, userID, filename string) {
	if err := s.docs.DeleteDocument(ctx, userID, filename); err != nil {
		s.logger.Warn("delete stored original failed",
			zap.String("filename", filename),
			zap.Error(err))
	}
}

func (s *DocumentService) setStatus(ctx context.Context, docID, status string) {
	if docID == "" {
		return
	}
	if err := s.db.UpdateDocumentStatus(ctx, docID, status); err != nil {
		s.logger.Warn("update document status failed",
			zap.String("document_id", docID),
			zap.String("status", status),
			zap.Error(err))
	}
}
