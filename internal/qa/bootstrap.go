package qa

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"kitabqa/internal/chunker"
	"kitabqa/internal/config"
	"kitabqa/internal/document"
	"kitabqa/internal/domain"
	"kitabqa/internal/embedding"
	"kitabqa/internal/vectorstore/flat"
)

// BuildOrLoad returns a ready vector store: the persisted pair when
// both artifacts exist and agree, otherwise a fresh index built from
// the source document and persisted for the next start. A corrupt or
// partial persisted pair triggers a rebuild, never a crash.
func BuildOrLoad(cfg *config.AppConfig, docPath string, embedder embedding.Embedder, log *slog.Logger, rebuild bool) (*flat.Store, error) {
	indexFile := cfg.Document.IndexFile()
	metaFile := cfg.Document.MetaFile()

	if !rebuild {
		store, err := flat.Load(indexFile, metaFile)
		if err == nil {
			log.Info("loaded persisted index",
				"passages", store.Len(), "dim", store.Dimension(), "index", indexFile)
			return store, nil
		}
		if !errors.Is(err, flat.ErrNotFound) {
			log.Warn("persisted index unusable, rebuilding", "err", err)
		}
	}
	return Build(cfg, docPath, embedder, log)
}

// Build extracts the document pages, chunks them, embeds every passage
// and persists the resulting index pair.
func Build(cfg *config.AppConfig, docPath string, embedder embedding.Embedder, log *slog.Logger) (*flat.Store, error) {
	pages, err := document.LoadPages(docPath)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	splitter := chunker.NewPageChunker(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	passages := splitter.Split(pages)
	if len(passages) == 0 {
		return nil, fmt.Errorf("document %s produced no passages", docPath)
	}
	log.Info("chunked document", "pages", len(pages), "passages", len(passages))

	texts := make([]string, len(passages))
	metas := make([]domain.PassageMeta, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
		metas[i] = domain.PassageMeta{Page: p.Page, ChunkID: p.ChunkID}
	}
	vectors, err := embedder.EmbedBatch(texts)
	if err != nil {
		return nil, fmt.Errorf("embed passages: %w", err)
	}

	store, err := flat.NewStore(embedder.Dimension())
	if err != nil {
		return nil, err
	}
	if err := store.Add(vectors, texts, metas); err != nil {
		return nil, err
	}
	if err := store.Save(cfg.Document.IndexFile(), cfg.Document.MetaFile()); err != nil {
		return nil, fmt.Errorf("persist index: %w", err)
	}
	log.Info("built index", "passages", store.Len(), "dim", store.Dimension())
	return store, nil
}

// Status is the read-only health report of the pipeline inputs.
type Status struct {
	DocumentPresent bool   `json:"document_present"`
	IndexPresent    bool   `json:"index_present"`
	IndexDir        string `json:"index_dir"`
	DocumentPath    string `json:"document_path"`
}

// CheckStatus reports whether the document and the complete index pair
// are present on disk. A single index file without its sibling counts
// as absent.
func CheckStatus(cfg *config.AppConfig, docPath string) Status {
	return Status{
		DocumentPresent: fileExists(docPath),
		IndexPresent:    fileExists(cfg.Document.IndexFile()) && fileExists(cfg.Document.MetaFile()),
		IndexDir:        cfg.Document.IndexDir,
		DocumentPath:    docPath,
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
