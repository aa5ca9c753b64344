package embedding

import "math"

// Embedder converts free text into a unit-norm float32 vector. The
// dimension is model-determined; some implementations learn it on the
// first embed call.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(text string) ([]float32, error)
	EmbedBatch(texts []string) ([][]float32, error)
}

// L2Normalize scales v to unit length in place. Cosine similarity over
// unit vectors reduces to the inner product.
func L2Normalize(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
