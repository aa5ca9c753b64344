package synthesis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitabqa/internal/domain"
)

func TestSynthesize_EmptyResults(t *testing.T) {
	s := NewSynthesizer(8, 600)
	assert.Equal(t, "", s.Synthesize("نماز کیا ہے؟", nil))
}

func TestSynthesize_PicksOverlappingSentences(t *testing.T) {
	s := NewSynthesizer(8, 600)
	results := []domain.SearchResult{
		{Text: "نماز دین کا ستون ہے۔ روزہ رمضان میں فرض ہے۔", Meta: domain.PassageMeta{Page: 3}},
		{Text: "زکوٰۃ مال پر فرض۔", Meta: domain.PassageMeta{Page: 9}},
	}

	got := s.Synthesize("نماز کیا ہے؟", results)
	assert.Contains(t, got, "نماز دین کا ستون ہے۔")
	assert.NotContains(t, got, "زکوٰۃ")
}

func TestSynthesize_OutputIsExtractive(t *testing.T) {
	s := NewSynthesizer(8, 600)
	results := []domain.SearchResult{
		{Text: "نماز دین کا ستون ہے۔ نماز پانچ وقت فرض ہے۔"},
	}

	got := s.Synthesize("نماز کیا ہے؟", results)
	require.NotEmpty(t, got)
	for _, sentence := range strings.Split(got, "۔ ") {
		sentence = strings.TrimSpace(strings.TrimSuffix(sentence, "۔"))
		if sentence == "" {
			continue
		}
		assert.Contains(t, results[0].Text, sentence)
	}
}

func TestSynthesize_HigherOverlapRanksFirst(t *testing.T) {
	s := NewSynthesizer(8, 600)
	results := []domain.SearchResult{
		{Text: "نماز اہم ہے۔ نماز کے اوقات پانچ ہیں۔"},
	}

	got := s.Synthesize("نماز کے اوقات کیا ہیں؟", results)
	// the two-token-overlap sentence precedes the one-token-overlap one
	idxHigh := strings.Index(got, "نماز کے اوقات پانچ ہیں۔")
	idxLow := strings.Index(got, "نماز اہم ہے۔")
	require.GreaterOrEqual(t, idxHigh, 0)
	require.GreaterOrEqual(t, idxLow, 0)
	assert.Less(t, idxHigh, idxLow)
}

func TestSynthesize_DeduplicatesRepeatedSentences(t *testing.T) {
	s := NewSynthesizer(8, 600)
	// overlapping windows repeat the same sentence across passages
	results := []domain.SearchResult{
		{Text: "نماز دین کا ستون ہے۔"},
		{Text: "نماز دین کا ستون ہے۔"},
	}

	got := s.Synthesize("نماز کیا ہے؟", results)
	assert.Equal(t, 1, strings.Count(got, "نماز دین کا ستون ہے۔"))
}

func TestSynthesize_NoOverlapFallsBackToTopPassage(t *testing.T) {
	s := NewSynthesizer(8, 10)
	long := strings.Repeat("زکوٰۃ ", 10)
	results := []domain.SearchResult{{Text: long}}

	got := s.Synthesize("نماز؟", results)
	assert.Equal(t, string([]rune(strings.TrimSpace(long))[:10]), got)
}

func TestSynthesize_StopsAtCharBudget(t *testing.T) {
	s := NewSynthesizer(8, 12)
	results := []domain.SearchResult{
		{Text: "نماز اچھی ہے۔ نماز فرض عبادت ہے۔ نماز کے فضائل بے شمار ہیں۔"},
	}

	got := s.Synthesize("نماز", results)
	require.NotEmpty(t, got)
	// one selected sentence already crosses the 12-rune budget
	assert.Equal(t, "نماز اچھی ہے۔", got)
}

func TestSynthesize_SentenceCountCap(t *testing.T) {
	s := NewSynthesizer(2, 600)
	results := []domain.SearchResult{
		{Text: "نماز ایک۔ نماز دو۔ نماز تین۔ نماز چار۔"},
	}

	got := s.Synthesize("نماز", results)
	assert.Equal(t, 2, strings.Count(got, "۔"))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"urdu full stops", "پہلا جملہ۔ دوسرا جملہ۔", []string{"پہلا جملہ۔", "دوسرا جملہ۔"}},
		{"mixed enders", "First. Second! Third?", []string{"First.", "Second!", "Third?"}},
		{"trailing fragment kept", "پہلا۔ آخری بغیر نشان", []string{"پہلا۔", "آخری بغیر نشان"}},
		{"empty", "", nil},
		{"whitespace", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}
