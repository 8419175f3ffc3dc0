package models

import (
	"time"
)

// User represents an authenticated user of the system.
type User struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Document statuses.
const (
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusFailed     = "failed"
)

// Document represents an uploaded file.
type Document struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	StorageURL  string    `db:"storage_url" json:"storage_url"` // local path or S3 URL
	ContentType string    `db:"content_type" json:"content_type"`
	Status      string    `db:"status" json:"status"` // processing | ready | failed
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// MetadataRecord is the metadata derived from one document's text.
type MetadataRecord struct {
	Filename    string    `db:"filename" json:"filename"`
	Title       string    `db:"title" json:"title"`
	WordCount   int       `db:"word_count" json:"word_count"`
	Keywords    []string  `db:"keywords" json:"keywords"`
	Summary     string    `db:"summary" json:"summary"`
	Language    string    `db:"language" json:"language"`
	CreatedTime time.Time `db:"created_time" json:"created_time"`
	FileType    string    `db:"file_type" json:"file_type"`
}

// DocumentWithMetadata joins a stored document with its metadata, if any.
type DocumentWithMetadata struct {
	Document
	Metadata *MetadataRecord `json:"metadata,omitempty"`
}
