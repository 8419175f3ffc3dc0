package ingestion_engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/Metadoc/internal/core/extraction"
	"github.com/markdave123-py/Metadoc/internal/core/metadata"
	"github.com/markdave123-py/Metadoc/internal/models"
)

var _ Ingestor = (*DocumentIngestor)(nil)

// NewDocumentIngestor wires the extractor registry and the assembler.
func NewDocumentIngestor(extractors *extraction.Registry, assembler *metadata.Assembler, cfg *IngestConfig, logger *zap.Logger) *DocumentIngestor {
	if cfg == nil {
		cfg = &IngestConfig{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentIngestor{extractors: extractors, assembler: assembler, cfg: cfg, logger: logger}
}

// Process extracts the text of one document and assembles its metadata.
// Unsupported formats, decode errors and extraction failures are returned
// as-is; nothing past extraction can fail.
func (i *DocumentIngestor) Process(ctx context.Context, filename string, data []byte) (*models.MetadataRecord, error) {
	start := time.Now()

	text, err := i.extractors.Extract(ctx, filename, data)
	if err != nil {
		i.logger.Info("document rejected",
			zap.String("filename", filename),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}

	rec := i.assembler.Assemble(text, filename)
	i.logger.Info("document processed",
		zap.String("filename", filename),
		zap.Int("bytes", len(data)),
		zap.Int("word_count", rec.WordCount),
		zap.Duration("elapsed", time.Since(start)))
	return &rec, nil
}

// ProcessBatch runs Process for every source with at most cfg.Workers
// documents in flight. A failing document does not stop the others; results
// keep the order of sources. Repeated filenames fail with ErrDuplicateSource.
func (i *DocumentIngestor) ProcessBatch(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))

	workers := i.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	seen := make(map[string]int, len(sources))
	for idx, src := range sources {
		if first, ok := seen[src.Filename]; ok {
			results[idx] = Result{
				Filename: src.Filename,
				Err:      fmt.Errorf("%w: %s (also source #%d)", ErrDuplicateSource, src.Filename, first+1),
			}
			continue
		}
		seen[src.Filename] = idx

		g.Go(func() error {
			results[idx].Filename = src.Filename
			if err := gctx.Err(); err != nil {
				results[idx].Err = err
				return nil
			}
			rec, err := i.Process(gctx, src.Filename, src.Data)
			results[idx].Record = rec
			results[idx].Err = err
			return nil
		})
	}

	// Workers report failures through results, never through the group.
	_ = g.Wait()
	return results
}
