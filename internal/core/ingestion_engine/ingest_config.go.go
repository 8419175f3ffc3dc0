package ingestion_engine

import (
	"errors"

	"go.uber.org/zap"

	"github.com/markdave123-py/Metadoc/internal/core/extraction"
	"github.com/markdave123-py/Metadoc/internal/core/metadata"
	"github.com/markdave123-py/Metadoc/internal/models"
)

// IngestConfig tunes batch processing.
//
// Workers: how many documents ProcessBatch handles at once (<=0 means 1).
type IngestConfig struct {
	Workers int
}

// ErrDuplicateSource marks a batch source whose filename was already used by
// an earlier source of the same batch. Records are keyed by filename, so the
// later one would overwrite the earlier.
var ErrDuplicateSource = errors.New("duplicate filename in batch")

// Source is one document handed to ProcessBatch.
type Source struct {
	Filename string
	Data     []byte
}

// Result is the outcome of one document in a batch. Exactly one of Record
// and Err is set.
type Result struct {
	Filename string
	Record   *models.MetadataRecord
	Err      error
}

// DocumentIngestor runs the extraction and metadata pipeline:
//
// extractors: picks the format-specific extractor by extension.
// assembler:  derives the metadata record from the raw text.
// cfg:        batch tuning knobs.
type DocumentIngestor struct {
	extractors *extraction.Registry
	assembler  *metadata.Assembler
	cfg        *IngestConfig
	logger     *zap.Logger
}
