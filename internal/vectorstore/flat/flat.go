package flat

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"kitabqa/internal/domain"
)

var (
	// ErrNotFound is returned by Load when either persisted artifact is missing.
	ErrNotFound = errors.New("flat: index or metadata not found")
	// ErrCorrupt is returned by Load when the two artifacts disagree in count.
	ErrCorrupt = errors.New("flat: index and metadata disagree")
)

// Store is a flat inner-product index over unit-normalized float32
// vectors, equivalent to cosine similarity. Insertion order is the only
// passage identity. The store is never mutated after the startup
// build-or-load step.
type Store struct {
	mu      sync.RWMutex
	dim     int
	vectors [][]float32
	texts   []string
	metas   []domain.PassageMeta
}

func NewStore(dim int) (*Store, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("flat: invalid dimension %d", dim)
	}
	return &Store{dim: dim}, nil
}

// Dimension returns the vector dimension of the index.
func (s *Store) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dim
}

// Len returns the number of indexed passages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// Add appends vectors with their texts and metadata. A length mismatch
// between the three slices is a programming-contract violation and
// fails loudly.
func (s *Store) Add(vectors [][]float32, texts []string, metas []domain.PassageMeta) error {
	if len(vectors) != len(texts) || len(texts) != len(metas) {
		return fmt.Errorf("flat: length mismatch: %d vectors, %d texts, %d metas",
			len(vectors), len(texts), len(metas))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range vectors {
		if len(v) != s.dim {
			return fmt.Errorf("flat: vector %d has dimension %d, want %d", i, len(v), s.dim)
		}
	}
	s.vectors = append(s.vectors, vectors...)
	s.texts = append(s.texts, texts...)
	s.metas = append(s.metas, metas...)
	return nil
}

// Search returns up to topK passages ordered by inner product with the
// query, descending. Ties keep insertion order. When fewer than topK
// passages exist, the missing slots are simply omitted.
func (s *Store) Search(vector []float32, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(vector) != s.dim {
		return nil, fmt.Errorf("flat: query has dimension %d, want %d", len(vector), s.dim)
	}
	if topK <= 0 {
		topK = 5
	}
	scores := make([]float32, len(s.vectors))
	for i := range s.vectors {
		scores[i] = dot(s.vectors[i], vector)
	}
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.SearchResult, 0, topK)
	for _, j := range idxs[:topK] {
		results = append(results, domain.SearchResult{
			Score: scores[j],
			Text:  s.texts[j],
			Meta:  s.metas[j],
		})
	}
	return results, nil
}

type indexArtifact struct {
	Dim     int
	Vectors [][]float32
}

type metaArtifact struct {
	Texts []string             `json:"texts"`
	Metas []domain.PassageMeta `json:"metas"`
	Dim   int                  `json:"dim"`
}

// Save persists the binary vector structure and the JSON metadata
// sidecar as a pair. Both files are written via a temp file and rename
// so a crash never leaves a half-written artifact behind.
func (s *Store) Save(indexPath, metaPath string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(metaPath), 0o755); err != nil {
		return err
	}
	if err := writeGob(indexPath, indexArtifact{Dim: s.dim, Vectors: s.vectors}); err != nil {
		return fmt.Errorf("flat: write index: %w", err)
	}
	meta := metaArtifact{Texts: s.texts, Metas: s.metas, Dim: s.dim}
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("flat: encode metadata: %w", err)
	}
	if err := writeAtomic(metaPath, data); err != nil {
		return fmt.Errorf("flat: write metadata: %w", err)
	}
	return nil
}

// Load reads a persisted index pair. A missing file on either side is
// ErrNotFound; the caller treats partial presence as absence and
// rebuilds. The dimension comes from the metadata sidecar, falling back
// to the binary structure.
func Load(indexPath, metaPath string) (*Store, error) {
	for _, p := range []string{indexPath, metaPath} {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
			}
			return nil, err
		}
	}

	var idx indexArtifact
	if err := readGob(indexPath, &idx); err != nil {
		return nil, fmt.Errorf("flat: read index: %w", err)
	}
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}
	var meta metaArtifact
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("flat: decode metadata: %w", err)
	}

	dim := meta.Dim
	if dim == 0 {
		dim = idx.Dim
	}
	store, err := NewStore(dim)
	if err != nil {
		return nil, err
	}
	if len(idx.Vectors) != len(meta.Texts) || len(meta.Texts) != len(meta.Metas) {
		return nil, fmt.Errorf("%w: %d vectors, %d texts, %d metas",
			ErrCorrupt, len(idx.Vectors), len(meta.Texts), len(meta.Metas))
	}
	store.vectors = idx.Vectors
	store.texts = meta.Texts
	store.metas = meta.Metas
	return store, nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func writeGob(path string, v any) error {
	f, err := os.Create(path + ".tmp")
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(path+".tmp", path)
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}

func writeAtomic(path string, data []byte) error {
	if err := os.WriteFile(path+".tmp", data, 0o644); err != nil {
		return err
	}
	return os.Rename(path+".tmp", path)
}
