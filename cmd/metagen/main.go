package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/markdave123-py/Metadoc/internal/app"
	"github.com/markdave123-py/Metadoc/internal/config"
	"github.com/markdave123-py/Metadoc/internal/core/extraction"
	"github.com/markdave123-py/Metadoc/internal/core/ingestion_engine"
	"github.com/markdave123-py/Metadoc/internal/core/storage"
	"github.com/markdave123-py/Metadoc/internal/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := config.LoadConfig()

	var (
		outDir  string
		workers int
		ocrLang []string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "metagen [flags] path...",
		Short: "Generate metadata JSON for documents",
		Long: `metagen extracts text from pdf, docx, txt, png and jpeg files and writes
one <filename>_metadata.json per document into the output directory.
Directories are walked recursively; files with other extensions are skipped.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewLogger(debug)
			defer func() { _ = log.Sync() }()

			cfg.Workers = workers
			cfg.OCRLanguages = ocrLang
			return run(cmd.Context(), cfg, log, outDir, args)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", cfg.OutputDir, "directory for metadata JSON files")
	cmd.Flags().IntVarP(&workers, "workers", "w", cfg.Workers, "documents processed concurrently")
	cmd.Flags().StringSliceVar(&ocrLang, "ocr-lang", cfg.OCRLanguages, "tesseract languages")
	cmd.Flags().BoolVar(&debug, "debug", cfg.Debug, "enable debug logging")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, outDir string, paths []string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files, err := collectFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported documents found")
	}

	store, err := storage.NewFileStore(outDir, outDir)
	if err != nil {
		return err
	}

	sources := make([]ingestion_engine.Source, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		sources = append(sources, ingestion_engine.Source{Filename: filepath.Base(f), Data: data})
	}

	pipeline := app.NewPipeline(cfg, log)
	results := pipeline.ProcessBatch(ctx, sources)

	// Results are in the order of files, so failures can name the full path.
	var failed int
	for i, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", files[i], res.Err)
			continue
		}
		if err := store.Save(ctx, "", res.Record); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", files[i], err)
			continue
		}
		fmt.Printf("ok   %s -> %s\n", files[i], filepath.Join(outDir, storage.MetadataFileName(res.Filename)))
	}

	fmt.Printf("%d processed, %d failed\n", len(results)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d document(s) failed", failed)
	}
	return nil
}

// collectFiles expands directories into the supported files they contain.
// Files named explicitly are kept whatever their extension, so unsupported
// ones are reported as failures.
func collectFiles(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, ferr := extraction.FormatOf(path); ferr == nil {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
