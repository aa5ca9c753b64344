package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"kitabqa/internal/domain"
	"kitabqa/internal/langdetect"
	"kitabqa/internal/translate"
)

type stubTranslator struct {
	enToUr string
	err    error
}

func (s stubTranslator) EnToUr(text string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.enToUr, nil
}

func (s stubTranslator) UrToEn(text string) (string, error) { return text, nil }

type stubRewriter struct {
	out string
	err error
}

func (s stubRewriter) Rewrite(text string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.out == "" {
		return text, nil
	}
	return s.out, nil
}

func newTestNormalizer(tr translate.Translator, rw translate.Rewriter) *Normalizer {
	return New(langdetect.NewDetector(0.2, 0.2, nil), tr, rw)
}

func TestNormalize_UrduPassesUntranslated(t *testing.T) {
	n := newTestNormalizer(stubTranslator{enToUr: "SHOULD NOT BE USED"}, stubRewriter{})

	got := n.Normalize("نماز کے اوقات کیا ہیں؟")
	assert.Equal(t, "نماز کے اوقات کیا ہیں؟", got.UrduText)
	assert.Equal(t, domain.LanguageUrdu, got.Detected)
}

func TestNormalize_EnglishTranslatedToUrdu(t *testing.T) {
	n := newTestNormalizer(stubTranslator{enToUr: "نماز کے اوقات کیا ہیں"}, stubRewriter{})

	got := n.Normalize("What are the prayer times?")
	assert.Equal(t, "نماز کے اوقات کیا ہیں؟", got.UrduText)
	assert.Equal(t, domain.LanguageUrdu, got.Detected)
}

func TestNormalize_MixedTreatedLikeEnglish(t *testing.T) {
	n := newTestNormalizer(stubTranslator{enToUr: "نماز کیا ہے"}, stubRewriter{})

	got := n.Normalize("namaz یعنی prayer کیا ہے")
	assert.Equal(t, "نماز کیا ہے؟", got.UrduText)
	assert.Equal(t, domain.LanguageUrdu, got.Detected)
}

func TestNormalize_TranslatorFailureKeepsInput(t *testing.T) {
	n := newTestNormalizer(stubTranslator{err: errors.New("backend down")}, stubRewriter{})

	got := n.Normalize("What are the prayer times?")
	assert.Equal(t, "What are the prayer times?", got.UrduText)
	assert.Equal(t, domain.LanguageUrdu, got.Detected)
}

func TestNormalize_RewriterFailureKeepsText(t *testing.T) {
	n := newTestNormalizer(translate.Passthrough{}, stubRewriter{err: errors.New("backend down")})

	got := n.Normalize("نماز کے اوقات کیا ہیں؟")
	assert.Equal(t, "نماز کے اوقات کیا ہیں؟", got.UrduText)
}

func TestNormalize_RewriteApplied(t *testing.T) {
	n := newTestNormalizer(translate.Passthrough{}, stubRewriter{out: "نماز کے اوقات کون سے ہیں"})

	got := n.Normalize("نماز کب پڑھیں")
	assert.Equal(t, "نماز کے اوقات کون سے ہیں؟", got.UrduText)
}

func TestEnsureQuestionMark(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"نماز کیا ہے؟", "نماز کیا ہے؟"},
		{"what is prayer?", "what is prayer?"},
		{"نماز کیا ہے", "نماز کیا ہے؟"},
		{"نماز کیا ہے۔", "نماز کیا ہے؟"},
		{"prayer times.", "prayer times؟"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ensureQuestionMark(tt.in))
	}
}
