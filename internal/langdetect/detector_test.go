package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kitabqa/internal/domain"
)

type stubFallback struct {
	lang domain.Language
	ok   bool
}

func (s stubFallback) Detect(string) (domain.Language, bool) { return s.lang, s.ok }

func TestDetect_ScriptRatios(t *testing.T) {
	d := NewDetector(0.2, 0.2, nil)

	tests := []struct {
		name string
		text string
		want domain.Language
	}{
		{"pure urdu", "نماز کیا ہے؟", domain.LanguageUrdu},
		{"pure english", "What is prayer?", domain.LanguageEnglish},
		{"mixed", "namaz یعنی prayer کیا ہے؟", domain.LanguageMixed},
		{"too short", "ن", domain.LanguageUnknown},
		{"empty", "", domain.LanguageUnknown},
		{"whitespace only", "   ", domain.LanguageUnknown},
		{"digits and punctuation", "123 456?", domain.LanguageUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.text))
		})
	}
}

func TestDetect_UrduWinsOnlyWhenStrictlyGreater(t *testing.T) {
	d := NewDetector(0.9, 0.9, nil)

	// equal counts, neither threshold reached: english wins the tie
	assert.Equal(t, domain.LanguageEnglish, d.Detect("ab کب"))
}

func TestDetect_FallbackConsultedForZeroLetters(t *testing.T) {
	d := NewDetector(0.2, 0.2, stubFallback{lang: domain.LanguageUrdu, ok: true})
	assert.Equal(t, domain.LanguageUrdu, d.Detect("это вопрос"))

	d = NewDetector(0.2, 0.2, stubFallback{ok: false})
	assert.Equal(t, domain.LanguageUnknown, d.Detect("это вопрос"))
}

func TestDetect_FallbackNotConsultedWhenLettersPresent(t *testing.T) {
	d := NewDetector(0.2, 0.2, stubFallback{lang: domain.LanguageUrdu, ok: true})
	assert.Equal(t, domain.LanguageEnglish, d.Detect("hello there"))
}

func TestNewDetector_Defaults(t *testing.T) {
	d := NewDetector(0, -1, nil)
	assert.Equal(t, 0.2, d.arabicThreshold)
	assert.Equal(t, 0.2, d.latinThreshold)
}
