package vectorstore

import "kitabqa/internal/domain"

// Storage holds passage vectors and supports similarity search.
type Storage interface {
	Add(vectors [][]float32, texts []string, metas []domain.PassageMeta) error
	Search(vector []float32, topK int) ([]domain.SearchResult, error)
	Save(indexPath, metaPath string) error
}
