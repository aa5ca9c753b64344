package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"kitabqa/internal/ambiguity"
	"kitabqa/internal/config"
	"kitabqa/internal/document"
	"kitabqa/internal/domain"
	"kitabqa/internal/embedding"
	hugotembed "kitabqa/internal/embedding/hugot"
	openaiembed "kitabqa/internal/embedding/openai"
	"kitabqa/internal/langdetect"
	"kitabqa/internal/normalizer"
	"kitabqa/internal/qa"
	"kitabqa/internal/server"
	"kitabqa/internal/synthesis"
	"kitabqa/internal/translate"
	ollamatr "kitabqa/internal/translate/ollama"
	"kitabqa/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath  string
		serve    bool
		addr     string
		question string
		langFlag string
		rebuild  bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/kitabqa/config.yaml if not provided)")
	flag.BoolVar(&serve, "serve", false, "Run the HTTP API server")
	flag.StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	flag.StringVar(&question, "q", "", "Ask a single question and exit")
	flag.StringVar(&langFlag, "lang", "urdu", "Answer language: urdu or english")
	flag.BoolVar(&rebuild, "rebuild", false, "Rebuild the index even if a persisted copy exists")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Assemble components
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "hugot", "":
		e, err := hugotembed.NewEmbedder(hugotembed.Config{
			Model:    cfg.Embedder.Hugot.Model,
			ModelDir: cfg.Embedder.Hugot.ModelDir,
		})
		if err != nil {
			log.Fatalf("hugot embedder init failed: %v", err)
		}
		emb = e
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		e, err := openaiembed.NewEmbedder(openaiembed.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = e
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var tr translate.Translator
	var rw translate.Rewriter
	switch cfg.Translator.Type {
	case "ollama", "":
		client := ollamatr.NewClient(ollamatr.Config{
			Host:    cfg.Translator.Ollama.Host,
			Model:   cfg.Translator.Ollama.Model,
			Timeout: time.Duration(cfg.Translator.Ollama.TimeoutSecs) * time.Second,
		})
		tr, rw = client, client
	case "none":
		p := translate.Passthrough{}
		tr, rw = p, p
	default:
		log.Fatalf("unknown translator: %s", cfg.Translator.Type)
	}

	var fallback langdetect.StatisticalDetector
	switch cfg.Detector.Fallback {
	case "lingua", "":
		fallback = langdetect.NewLinguaDetector()
	case "none":
	default:
		log.Fatalf("unknown detector fallback: %s", cfg.Detector.Fallback)
	}
	detector := langdetect.NewDetector(cfg.Detector.ArabicThreshold, cfg.Detector.LatinThreshold, fallback)

	norm := normalizer.New(detector, tr, rw)
	gate := ambiguity.NewChecker(cfg.Ambiguity.MinChars, cfg.Ambiguity.MinTokens, cfg.Ambiguity.InterrogativeMinTokens)
	synth := synthesis.NewSynthesizer(cfg.Synthesis.MaxSentences, cfg.Synthesis.MaxChars)

	docPath, docErr := document.Resolve(cfg.Document.PDFPath, cfg.Document.DataDir)
	if docErr != nil {
		logger.Warn("source document missing", "expected", docPath)
	}

	// Startup failures keep the process alive; the server answers with a
	// service-unavailable signal until the operator fixes the inputs.
	var engine *qa.Engine
	store, buildErr := qa.BuildOrLoad(cfg, docPath, emb, logger, rebuild)
	if buildErr != nil {
		logger.Warn("pipeline not initialized", "err", buildErr, "expected_document", docPath)
	} else {
		engine = qa.NewEngine(store, emb, tr, norm, gate, synth, qa.Options{
			TopK:             cfg.Retrieval.TopK,
			ScoreThreshold:   float32(cfg.Retrieval.ScoreThreshold),
			ClarifyThreshold: float32(cfg.Retrieval.ClarifyThreshold),
		})
	}

	switch {
	case serve:
		if addr == "" {
			addr = cfg.Server.Addr
		}
		var ans server.Answerer
		if engine != nil {
			ans = engine
		}
		srv := server.New(ans, cfg, docPath, logger)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatal(err)
		}
	case question != "":
		if engine == nil {
			log.Fatalf("pipeline not initialized (expected document at %s): %v", docPath, buildErr)
		}
		lang, ok := domain.ParseLanguage(langFlag)
		if !ok {
			log.Fatalf("language must be 'urdu' or 'english', got %q", langFlag)
		}
		result, err := engine.Answer(question, lang)
		if err != nil {
			log.Fatalf("answer failed: %v", err)
		}
		color.New(color.Bold).Println(result.Answer)
		if result.Source != "" {
			color.New(color.FgCyan).Println(result.Source)
		}
	default:
		if engine == nil {
			log.Fatalf("pipeline not initialized (expected document at %s): %v", docPath, buildErr)
		}
		m := tui.New(engine, docPath)
		if _, err := tea.NewProgram(m).Run(); err != nil {
			log.Fatal(err)
		}
	}
}
