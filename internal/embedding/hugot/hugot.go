package hugot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	knights "github.com/knights-analytics/hugot"

	"kitabqa/internal/embedding"
)

// Embedder produces sentence-transformer embeddings with a local ONNX
// model through hugot's pure Go backend. The model is downloaded on
// first use and cached under the model directory.
type Embedder struct {
	model string
	dim   int
	run   func(texts []string) ([][]float32, error)
}

// Config selects the sentence-transformers model and the local cache
// directory.
type Config struct {
	Model    string
	ModelDir string
}

func NewEmbedder(cfg Config) (*Embedder, error) {
	model := cfg.Model
	if model == "" {
		model = "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2"
	}
	dir := cfg.ModelDir
	if dir == "" {
		dir = "models"
	}
	modelPath, err := prepareModel(model, dir)
	if err != nil {
		return nil, err
	}

	session, err := knights.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("create hugot session: %w", err)
	}
	pipelineCfg := knights.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "kitabqa-embedder",
	}
	pipeline, err := knights.NewPipeline(session, pipelineCfg)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("create embedding pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("create embedding pipeline: %w", err)
	}

	e := &Embedder{model: model}
	e.run = func(texts []string) ([][]float32, error) {
		result, err := pipeline.RunPipeline(texts)
		if err != nil {
			return nil, fmt.Errorf("run embedding pipeline: %w", err)
		}
		if len(result.Embeddings) != len(texts) {
			return nil, fmt.Errorf("got %d embeddings for %d texts", len(result.Embeddings), len(texts))
		}
		return result.Embeddings, nil
	}
	return e, nil
}

func (e *Embedder) Name() string { return "hugot" }

// Dimension returns the model's embedding dimension, 0 until the first
// embed call.
func (e *Embedder) Dimension() int { return e.dim }

func (e *Embedder) Embed(text string) ([]float32, error) {
	vectors, err := e.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *Embedder) EmbedBatch(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors, err := e.run(texts)
	if err != nil {
		return nil, err
	}
	for _, v := range vectors {
		embedding.L2Normalize(v)
	}
	if e.dim == 0 && len(vectors) > 0 {
		e.dim = len(vectors[0])
	}
	return vectors, nil
}

// prepareModel downloads the ONNX model on first use and returns its
// local path.
func prepareModel(model, dir string) (string, error) {
	modelPath := filepath.Join(dir, strings.ReplaceAll(model, "/", "_"))
	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create model directory: %w", err)
	}
	options := knights.NewDownloadOptions()
	options.OnnxFilePath = "onnx/model.onnx"
	downloaded, err := knights.DownloadModel(model, dir, options)
	if err != nil {
		return "", fmt.Errorf("download model %s: %w", model, err)
	}
	return downloaded, nil
}
