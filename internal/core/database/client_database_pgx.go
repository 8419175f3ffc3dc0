package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/markdave123-py/Metadoc/internal/config"
	"github.com/markdave123-py/Metadoc/internal/core"
	"github.com/markdave123-py/Metadoc/internal/models"
)

var _ core.DbClient = (*DatabaseClient)(nil)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*DatabaseClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	dsn, err := buildDSN(cfg.DatabaseURL, cfg.SslCertPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	logger.Info("database connected and bootstrapped")

	return &DatabaseClient{db: db}, nil
}

// buildDSN appends verify-ca SSL parameters when a root certificate is given.
func buildDSN(databaseURL, sslCertPath string) (string, error) {
	if sslCertPath == "" {
		return databaseURL, nil
	}
	if _, err := os.Stat(sslCertPath); err != nil {
		return "", fmt.Errorf("ssl cert not accessible at %q: %w", sslCertPath, err)
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	q := u.Query()
	q.Set("sslmode", "verify-ca")
	q.Set("sslrootcert", sslCertPath)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Implementing the db interface for user

func (c *DatabaseClient) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	const q = `
		INSERT INTO users (id, first_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
	`
	_, err := c.db.ExecContext(ctx, q, user.ID, user.FirstName, user.Email, user.PasswordHash)
	return err
}

func (c *DatabaseClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT id, first_name, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1
	`
	var u models.User
	err := c.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.FirstName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Implementing the db interface for Document

func (c *DatabaseClient) CreateDocument(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	const q = `
		INSERT INTO documents
			(id, user_id, file_name, storage_url, content_type, status, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, now(), now())
	`
	_, err := c.db.ExecContext(ctx, q,
		doc.ID, doc.UserID, doc.FileName, doc.StorageURL, doc.ContentType, doc.Status)
	return err
}

func (c *DatabaseClient) GetDocumentByID(ctx context.Context, id string) (*models.Document, error) {
	const q = `
		SELECT id, user_id, file_name, storage_url, content_type, status, created_at, updated_at
		FROM documents
		WHERE id = $1
	`
	var d models.Document
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.UserID, &d.FileName, &d.StorageURL, &d.ContentType, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDocumentsByUser returns the user's documents, newest first, with their
// metadata when processing succeeded.
func (c *DatabaseClient) ListDocumentsByUser(ctx context.Context, userID string) ([]models.DocumentWithMetadata, error) {
	const q = `
		SELECT d.id, d.user_id, d.file_name, d.storage_url, d.content_type, d.status, d.created_at, d.updated_at,
		       m.filename, m.title, m.word_count, m.keywords, m.summary, m.language, m.created_time, m.file_type
		FROM documents d
		LEFT JOIN document_metadata m ON m.document_id = d.id
		WHERE d.user_id = $1
		ORDER BY d.created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DocumentWithMetadata
	for rows.Next() {
		var (
			d           models.DocumentWithMetadata
			filename    sql.NullString
			title       sql.NullString
			wordCount   sql.NullInt64
			keywords    []byte
			summary     sql.NullString
			language    sql.NullString
			createdTime sql.NullTime
			fileType    sql.NullString
		)
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.FileName, &d.StorageURL, &d.ContentType, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&filename, &title, &wordCount, &keywords, &summary, &language, &createdTime, &fileType,
		); err != nil {
			return nil, err
		}
		if filename.Valid {
			rec := &models.MetadataRecord{
				Filename:    filename.String,
				Title:       title.String,
				WordCount:   int(wordCount.Int64),
				Summary:     summary.String,
				Language:    language.String,
				CreatedTime: createdTime.Time,
				FileType:    fileType.String,
			}
			if err := json.Unmarshal(keywords, &rec.Keywords); err != nil {
				return nil, fmt.Errorf("decode keywords: %w", err)
			}
			d.Metadata = rec
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (c *DatabaseClient) UpdateDocumentStatus(ctx context.Context, id string, status string) error {
	const q = `
		UPDATE documents
		SET status = $2, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document %s: %w", id, core.ErrNotFound)
	}
	return nil
}

// UpsertDocumentMetadata stores rec as the metadata of documentID.
func (c *DatabaseClient) UpsertDocumentMetadata(ctx context.Context, documentID string, rec *models.MetadataRecord) error {
	if rec == nil {
		return errors.New("nil metadata")
	}
	keywords := rec.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	kw, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}

	const q = `
		INSERT INTO document_metadata
			(document_id, filename, title, word_count, keywords, summary, language, created_time, file_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (document_id) DO UPDATE SET
			filename = EXCLUDED.filename,
			title = EXCLUDED.title,
			word_count = EXCLUDED.word_count,
			keywords = EXCLUDED.keywords,
			summary = EXCLUDED.summary,
			language = EXCLUDED.language,
			created_time = EXCLUDED.created_time,
			file_type = EXCLUDED.file_type
	`
	_, err = c.db.ExecContext(ctx, q,
		documentID, rec.Filename, rec.Title, rec.WordCount, string(kw), rec.Summary, rec.Language, rec.CreatedTime, rec.FileType)
	return err
}
