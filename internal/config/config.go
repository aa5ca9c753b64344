package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DocumentConfig locates the source document and the persisted index pair.
type DocumentConfig struct {
	PDFPath  string `yaml:"pdf_path"`
	DataDir  string `yaml:"data_dir"`
	IndexDir string `yaml:"index_dir"`
}

// IndexFile is the binary vector artifact inside the index directory.
func (d DocumentConfig) IndexFile() string { return filepath.Join(d.IndexDir, "index.bin") }

// MetaFile is the JSON metadata sidecar inside the index directory.
func (d DocumentConfig) MetaFile() string { return filepath.Join(d.IndexDir, "metadata.json") }

// ChunkingConfig configures the character-window page chunker.
type ChunkingConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// RetrievalConfig holds the confidence gate thresholds.
type RetrievalConfig struct {
	TopK             int     `yaml:"top_k"`
	ScoreThreshold   float64 `yaml:"score_threshold"`
	ClarifyThreshold float64 `yaml:"clarify_threshold"`
}

// DetectorConfig configures the script-ratio language detector.
// Fallback selects the statistical detector used when a text contains
// no Arabic or Latin letters: "lingua" or "none".
type DetectorConfig struct {
	ArabicThreshold float64 `yaml:"arabic_threshold"`
	LatinThreshold  float64 `yaml:"latin_threshold"`
	Fallback        string  `yaml:"fallback"`
}

// AmbiguityConfig configures the pre-retrieval question gate.
type AmbiguityConfig struct {
	MinChars               int `yaml:"min_chars"`
	MinTokens              int `yaml:"min_tokens"`
	InterrogativeMinTokens int `yaml:"interrogative_min_tokens"`
}

// SynthesisConfig bounds the extractive answer.
type SynthesisConfig struct {
	MaxSentences int `yaml:"max_sentences"`
	MaxChars     int `yaml:"max_chars"`
}

// HugotEmbedderConfig configures the local ONNX sentence-transformer embedder.
type HugotEmbedderConfig struct {
	Model    string `yaml:"model"`
	ModelDir string `yaml:"model_dir"`
}

// OpenAIEmbedderConfig configures the OpenAI-compatible remote embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	Hugot  *HugotEmbedderConfig  `yaml:"hugot,omitempty"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// OllamaTranslatorConfig configures the ollama-backed translation adapter.
type OllamaTranslatorConfig struct {
	Host        string `yaml:"host"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// TranslatorConfig selects the translation/rewriting backend: "ollama"
// or "none" (passthrough).
type TranslatorConfig struct {
	Type   string                  `yaml:"type"`
	Ollama *OllamaTranslatorConfig `yaml:"ollama,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Document   DocumentConfig   `yaml:"document"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Detector   DetectorConfig   `yaml:"detector"`
	Ambiguity  AmbiguityConfig  `yaml:"ambiguity"`
	Synthesis  SynthesisConfig  `yaml:"synthesis"`
	Embedder   EmbedderConfig   `yaml:"embedder"`
	Translator TranslatorConfig `yaml:"translator"`
	Server     ServerConfig     `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/kitabqa/config.yaml.
// If neither exists, it writes defaults to ~/.config/kitabqa/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kitabqa", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Document.PDFPath == "" {
		cfg.Document.PDFPath = filepath.Join("data", "Taleem-ul-Islam.pdf")
	}
	if cfg.Document.DataDir == "" {
		cfg.Document.DataDir = "data"
	}
	if cfg.Document.IndexDir == "" {
		cfg.Document.IndexDir = filepath.Join("storage", "index")
	}
	if cfg.Chunking.ChunkSize == 0 {
		cfg.Chunking.ChunkSize = 800
	}
	if cfg.Chunking.ChunkOverlap == 0 {
		cfg.Chunking.ChunkOverlap = 120
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Retrieval.ScoreThreshold == 0 {
		cfg.Retrieval.ScoreThreshold = 0.30
	}
	if cfg.Retrieval.ClarifyThreshold == 0 {
		cfg.Retrieval.ClarifyThreshold = 0.20
	}
	if cfg.Detector.ArabicThreshold == 0 {
		cfg.Detector.ArabicThreshold = 0.2
	}
	if cfg.Detector.LatinThreshold == 0 {
		cfg.Detector.LatinThreshold = 0.2
	}
	if cfg.Detector.Fallback == "" {
		cfg.Detector.Fallback = "lingua"
	}
	if cfg.Ambiguity.MinChars == 0 {
		cfg.Ambiguity.MinChars = 6
	}
	if cfg.Ambiguity.MinTokens == 0 {
		cfg.Ambiguity.MinTokens = 2
	}
	if cfg.Ambiguity.InterrogativeMinTokens == 0 {
		cfg.Ambiguity.InterrogativeMinTokens = 4
	}
	if cfg.Synthesis.MaxSentences == 0 {
		cfg.Synthesis.MaxSentences = 8
	}
	if cfg.Synthesis.MaxChars == 0 {
		cfg.Synthesis.MaxChars = 600
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "hugot"
	}
	if cfg.Embedder.Type == "hugot" {
		if cfg.Embedder.Hugot == nil {
			cfg.Embedder.Hugot = &HugotEmbedderConfig{}
		}
		if cfg.Embedder.Hugot.Model == "" {
			cfg.Embedder.Hugot.Model = "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2"
		}
		if cfg.Embedder.Hugot.ModelDir == "" {
			cfg.Embedder.Hugot.ModelDir = "models"
		}
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.Translator.Type == "" {
		cfg.Translator.Type = "ollama"
	}
	if cfg.Translator.Type == "ollama" {
		if cfg.Translator.Ollama == nil {
			cfg.Translator.Ollama = &OllamaTranslatorConfig{}
		}
		if cfg.Translator.Ollama.Model == "" {
			cfg.Translator.Ollama.Model = "aya:8b"
		}
		if cfg.Translator.Ollama.TimeoutSecs == 0 {
			cfg.Translator.Ollama.TimeoutSecs = 60
		}
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
}
