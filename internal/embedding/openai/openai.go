package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"kitabqa/internal/embedding"
)

// Embedder generates embeddings through an OpenAI-compatible API.
type Embedder struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	dim     int
}

// Config configures the remote embedder. The API key is read from the
// environment variable named by APIKeyEnv.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

func NewEmbedder(cfg Config) (*Embedder, error) {
	env := cfg.APIKeyEnv
	if env == "" {
		env = "OPENAI_API_KEY"
	}
	key := os.Getenv(env)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", env)
	}
	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	dim := 1536
	if model == "text-embedding-3-large" {
		dim = 3072
	}
	return &Embedder{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
		dim:     dim,
	}, nil
}

func (e *Embedder) Name() string { return "openai" }

func (e *Embedder) Dimension() int { return e.dim }

func (e *Embedder) Embed(text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}
	vectors, err := e.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in bounded batches to stay under request
// size limits.
func (e *Embedder) EmbedBatch(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	const batchSize = 64
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(e.model),
			Input: texts[start:end],
		})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("create embeddings %d-%d: %w", start, end, err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("got %d embeddings for %d texts", len(resp.Data), end-start)
		}
		for _, d := range resp.Data {
			v := make([]float32, len(d.Embedding))
			copy(v, d.Embedding)
			embedding.L2Normalize(v)
			out = append(out, v)
		}
	}
	if len(out) > 0 {
		e.dim = len(out[0])
	}
	return out, nil
}
