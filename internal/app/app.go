// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/markdave123-py/Metadoc/internal/config"
	"github.com/markdave123-py/Metadoc/internal/core"
	"github.com/markdave123-py/Metadoc/internal/core/analysis"
	db "github.com/markdave123-py/Metadoc/internal/core/database"
	"github.com/markdave123-py/Metadoc/internal/core/extraction"
	"github.com/markdave123-py/Metadoc/internal/core/ingestion_engine"
	"github.com/markdave123-py/Metadoc/internal/core/metadata"
	objectclient "github.com/markdave123-py/Metadoc/internal/core/object-client"
	"github.com/markdave123-py/Metadoc/internal/core/ocr"
	"github.com/markdave123-py/Metadoc/internal/core/storage"
	"github.com/markdave123-py/Metadoc/internal/services"
)

type App struct {
	DBClient     core.DbClient
	DocProcessor *ingestion_engine.DocumentIngestor
	Documents    *services.DocumentService
	Server       *Server
}

// NewPipeline builds the extraction + metadata pipeline. The language
// detector is constructed here, once, and shared read-only by every
// invocation.
func NewPipeline(cfg *config.Config, logger *zap.Logger) *ingestion_engine.DocumentIngestor {
	registry := extraction.NewDefaultRegistry(logger, extraction.Options{
		PDFTextFallback: cfg.PDFTextFallback,
		OCR:             ocr.NewTesseractEngine(cfg.OCRLanguages...),
	})
	detector := analysis.NewLanguageDetector(logger, cfg.DetectLanguages...)
	assembler := metadata.NewAssembler(detector, logger)

	return ingestion_engine.NewDocumentIngestor(registry, assembler, &ingestion_engine.IngestConfig{
		Workers: cfg.Workers,
	}, logger)
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	var dbClient core.DbClient
	if cfg.AuthEnabled() {
		client, err := db.NewDatabaseClient(appCtx, cfg, logger)
		if err != nil {
			return nil, err
		}
		dbClient = client
		logger.Info("database initialized and ready")
	}

	docStore, metaStore, err := newStores(appCtx, cfg, logger)
	if err != nil {
		if dbClient != nil {
			_ = dbClient.Close()
		}
		return nil, err
	}

	docIngestor := NewPipeline(cfg, logger)
	docService := services.NewDocumentService(docIngestor, docStore, metaStore, dbClient, logger)

	var userService *services.UserService
	if dbClient != nil {
		userService = services.NewUserService(dbClient)
	}

	server := NewServer(cfg, docService, userService, logger)

	return &App{DBClient: dbClient, DocProcessor: docIngestor, Documents: docService, Server: server}, nil
}

func newStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (core.DocumentStore, core.MetadataStore, error) {
	switch cfg.StorageBackend {
	case config.StorageS3:
		objClient, err := objectclient.NewS3Client(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		store := storage.NewObjectStore(objClient, cfg.BucketName)
		return store, store, nil
	default:
		store, err := storage.NewFileStore(cfg.UploadDir, cfg.OutputDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("local storage ready",
			zap.String("upload_dir", cfg.UploadDir),
			zap.String("output_dir", cfg.OutputDir))
		return store, store, nil
	}
}

func (a *App) Close() {
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
