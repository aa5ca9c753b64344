package normalizer

import (
	"strings"

	"kitabqa/internal/domain"
	"kitabqa/internal/langdetect"
	"kitabqa/internal/translate"
)

// Normalizer turns a raw question into its canonical Urdu form used for
// all retrieval and ambiguity decisions.
type Normalizer struct {
	detector   *langdetect.Detector
	translator translate.Translator
	rewriter   translate.Rewriter
}

func New(detector *langdetect.Detector, translator translate.Translator, rewriter translate.Rewriter) *Normalizer {
	return &Normalizer{detector: detector, translator: translator, rewriter: rewriter}
}

// Normalize detects the question language, translates English or mixed
// input to Urdu and rewrites the result into formal phrasing. Adapter
// failures keep the text unchanged; normalization never fails a
// request. Unknown-language text passes through untranslated and the
// rewriter absorbs it.
func (n *Normalizer) Normalize(raw string) domain.NormalizedQuestion {
	lang := n.detector.Detect(raw)
	text := raw
	if lang == domain.LanguageEnglish || lang == domain.LanguageMixed {
		if translated, err := n.translator.EnToUr(text); err == nil && strings.TrimSpace(translated) != "" {
			text = translated
		}
		// after translation the question is treated as urdu downstream
		lang = domain.LanguageUrdu
	}
	if rewritten, err := n.rewriter.Rewrite(text); err == nil && strings.TrimSpace(rewritten) != "" {
		text = rewritten
	}
	text = ensureQuestionMark(strings.TrimSpace(text))
	return domain.NormalizedQuestion{UrduText: text, Detected: lang}
}

// ensureQuestionMark appends the Urdu question mark when the text ends
// with neither ؟ nor ?, stripping trailing full stops first.
func ensureQuestionMark(text string) string {
	if text == "" {
		return text
	}
	if strings.HasSuffix(text, "؟") || strings.HasSuffix(text, "?") {
		return text
	}
	return strings.TrimRight(text, "۔.") + "؟"
}
