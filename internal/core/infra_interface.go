package core

import (
	"context"
	"io"

	"github.com/markdave123-py/Metadoc/internal/models"
)

// DbClient defines all persistence operations the services need.
// It abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) (err error)
	GetUserByEmail(ctx context.Context, email string) (user *models.User, err error)

	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocumentByID(ctx context.Context, id string) (*models.Document, error)
	ListDocumentsByUser(ctx context.Context, userID string) ([]models.DocumentWithMetadata, error)
	UpdateDocumentStatus(ctx context.Context, id string, status string) error

	UpsertDocumentMetadata(ctx context.Context, documentID string, rec *models.MetadataRecord) error

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType string) (url string, err error)
	DeleteFile(ctx context.Context, bucket, key string) error
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
}

// DocumentStore keeps the original uploaded bytes. owner scopes the name;
// an empty owner is the shared, unauthenticated space.
type DocumentStore interface {
	// SaveDocument stores data under filename and returns where it was written.
	SaveDocument(ctx context.Context, owner, filename string, data []byte, contentType string) (location string, err error)
	DeleteDocument(ctx context.Context, owner, filename string) error
}

// MetadataStore persists metadata records keyed by owner and document filename.
// Records of one owner are invisible to every other owner.
type MetadataStore interface {
	Save(ctx context.Context, owner string, rec *models.MetadataRecord) error
	// Load returns ErrNotFound when no record exists for filename.
	Load(ctx context.Context, owner, filename string) (*models.MetadataRecord, error)
	// Raw returns the stored JSON bytes of a record, as served for download.
	Raw(ctx context.Context, owner, filename string) ([]byte, error)
	List(ctx context.Context, owner string) ([]models.MetadataRecord, error)
}
