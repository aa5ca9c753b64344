package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"kitabqa/internal/domain"
)

// StatisticalDetector is the optional fallback consulted when a text
// contains no Arabic or Latin letters at all.
type StatisticalDetector interface {
	Detect(text string) (domain.Language, bool)
}

// Detector classifies question text as Urdu, English, mixed or unknown
// using script ratios. Deterministic, no training data.
type Detector struct {
	arabicThreshold float64
	latinThreshold  float64
	fallback        StatisticalDetector
}

func NewDetector(arabicThreshold, latinThreshold float64, fallback StatisticalDetector) *Detector {
	if arabicThreshold <= 0 {
		arabicThreshold = 0.2
	}
	if latinThreshold <= 0 {
		latinThreshold = 0.2
	}
	return &Detector{
		arabicThreshold: arabicThreshold,
		latinThreshold:  latinThreshold,
		fallback:        fallback,
	}
}

// Detect counts Arabic-block vs Latin letters. Both ratios at or above
// their thresholds means mixed; otherwise the higher ratio wins, urdu
// only when strictly greater.
func (d *Detector) Detect(text string) domain.Language {
	if len([]rune(strings.TrimSpace(text))) < 2 {
		return domain.LanguageUnknown
	}
	arabic, latin := 0, 0
	for _, r := range text {
		switch {
		case r >= 0x0600 && r <= 0x06FF:
			arabic++
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			latin++
		}
	}
	total := arabic + latin
	if total == 0 {
		if d.fallback != nil {
			if lang, ok := d.fallback.Detect(text); ok {
				return lang
			}
		}
		return domain.LanguageUnknown
	}
	arabicRatio := float64(arabic) / float64(total)
	latinRatio := float64(latin) / float64(total)
	if arabicRatio >= d.arabicThreshold && latinRatio >= d.latinThreshold {
		return domain.LanguageMixed
	}
	if arabicRatio > latinRatio {
		return domain.LanguageUrdu
	}
	return domain.LanguageEnglish
}

// LinguaDetector backs the zero-letter fallback with lingua's
// statistical model, restricted to the two languages we serve.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

func NewLinguaDetector() *LinguaDetector {
	det := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.Urdu, lingua.English).
		Build()
	return &LinguaDetector{detector: det}
}

func (l *LinguaDetector) Detect(text string) (domain.Language, bool) {
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return domain.LanguageUnknown, false
	}
	switch lang {
	case lingua.Urdu:
		return domain.LanguageUrdu, true
	case lingua.English:
		return domain.LanguageEnglish, true
	}
	return domain.LanguageUnknown, false
}
