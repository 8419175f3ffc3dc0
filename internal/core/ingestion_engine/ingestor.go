package ingestion_engine

import (
	"context"

	"github.com/markdave123-py/Metadoc/internal/models"
)

type Ingestor interface {
	Process(ctx context.Context, filename string, data []byte) (*models.MetadataRecord, error)
	ProcessBatch(ctx context.Context, sources []Source) []Result
}
