package qa

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"kitabqa/internal/ambiguity"
	"kitabqa/internal/domain"
	"kitabqa/internal/embedding"
	"kitabqa/internal/normalizer"
	"kitabqa/internal/synthesis"
	"kitabqa/internal/translate"
	"kitabqa/internal/vectorstore"
)

// Options carries the retrieval thresholds of the answer pipeline.
type Options struct {
	TopK             int
	ScoreThreshold   float32
	ClarifyThreshold float32
}

// Engine ties normalization, the ambiguity gate, retrieval, confidence
// gating, extractive synthesis and back-translation into a single
// pipeline. All components are constructed once at startup and shared
// read-only across requests.
type Engine struct {
	store       vectorstore.Storage
	embedder    embedding.Embedder
	translator  translate.Translator
	normalizer  *normalizer.Normalizer
	ambiguity   *ambiguity.Checker
	synthesizer *synthesis.Synthesizer
	opts        Options
}

func NewEngine(
	store vectorstore.Storage,
	embedder embedding.Embedder,
	translator translate.Translator,
	norm *normalizer.Normalizer,
	checker *ambiguity.Checker,
	synth *synthesis.Synthesizer,
	opts Options,
) *Engine {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.ScoreThreshold == 0 {
		opts.ScoreThreshold = 0.30
	}
	if opts.ClarifyThreshold == 0 {
		opts.ClarifyThreshold = 0.20
	}
	return &Engine{
		store:       store,
		embedder:    embedder,
		translator:  translator,
		normalizer:  norm,
		ambiguity:   checker,
		synthesizer: synth,
		opts:        opts,
	}
}

// Answer runs the pipeline, terminal at the first applicable stage.
// lang selects the output language and must already be validated by
// the caller. An error is returned only for embedding or index
// failures; every language-level outcome resolves to one of the three
// well-defined answers.
func (e *Engine) Answer(question string, lang domain.Language) (domain.AnswerResult, error) {
	norm := e.normalizer.Normalize(question)

	if ambiguous, _ := e.ambiguity.Check(norm.UrduText); ambiguous {
		return domain.AnswerResult{Answer: clarifyMessage(lang)}, nil
	}

	vector, err := e.embedder.Embed(norm.UrduText)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("embed question: %w", err)
	}
	results, err := e.store.Search(vector, e.opts.TopK)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("search index: %w", err)
	}

	// low confidence is treated identically to ambiguity: better to ask
	// than to guess
	var best float32
	if len(results) > 0 {
		best = results[0].Score
	}
	if best < e.opts.ClarifyThreshold {
		return domain.AnswerResult{Answer: clarifyMessage(lang)}, nil
	}

	surviving := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Score >= e.opts.ScoreThreshold {
			surviving = append(surviving, r)
		}
	}
	if len(surviving) == 0 {
		return domain.AnswerResult{Answer: notFoundMessage(lang)}, nil
	}

	answer := e.synthesizer.Synthesize(norm.UrduText, surviving)
	if strings.TrimSpace(answer) == "" {
		answer = strings.TrimSpace(surviving[0].Text)
	}

	source := citePages(surviving)

	if lang == domain.LanguageEnglish {
		if translated, err := e.translator.UrToEn(answer); err == nil && strings.TrimSpace(translated) != "" {
			answer = translated
		}
	}
	return domain.AnswerResult{Answer: answer, Source: source}, nil
}

// citePages renders the deduplicated ascending page numbers of the
// surviving passages.
func citePages(results []domain.SearchResult) string {
	seen := make(map[int]struct{}, len(results))
	var pages []int
	for _, r := range results {
		p := r.Meta.Page
		if p <= 0 {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pages = append(pages, p)
	}
	if len(pages) == 0 {
		return ""
	}
	sort.Ints(pages)
	if len(pages) == 1 {
		return "Page " + strconv.Itoa(pages[0])
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return "Pages " + strings.Join(parts, ", ")
}

func clarifyMessage(lang domain.Language) string {
	if lang == domain.LanguageEnglish {
		return ClarifyEn
	}
	return ClarifyUr
}

func notFoundMessage(lang domain.Language) string {
	if lang == domain.LanguageEnglish {
		return NotFoundEn
	}
	return NotFoundUr
}
