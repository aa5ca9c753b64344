package synthesis

import (
	"regexp"
	"sort"
	"strings"

	"kitabqa/internal/domain"
)

var (
	punctRe = regexp.MustCompile(`[.,!?\-:۔؟،()\[\]{}"']`)
	wsRe    = regexp.MustCompile(`\s+`)
)

// Synthesizer builds a strictly extractive answer: every output
// substring originates verbatim from a retrieved passage. Selection
// only, no generation.
type Synthesizer struct {
	maxSentences int
	maxChars     int
}

func NewSynthesizer(maxSentences, maxChars int) *Synthesizer {
	if maxSentences <= 0 {
		maxSentences = 8
	}
	if maxChars <= 0 {
		maxChars = 600
	}
	return &Synthesizer{maxSentences: maxSentences, maxChars: maxChars}
}

// Synthesize scores every sentence of the ranked passages by token
// overlap with the question and concatenates the best ones. With no
// overlapping sentence at all, it falls back to the leading maxChars
// runes of the highest-scoring passage.
func (s *Synthesizer) Synthesize(questionUrdu string, results []domain.SearchResult) string {
	if len(results) == 0 {
		return ""
	}
	qTokens := tokenSet(questionUrdu)

	type candidate struct {
		score    int
		sentence string
	}
	var candidates []candidate
	for _, res := range results {
		for _, sent := range SplitSentences(res.Text) {
			score := overlap(qTokens, sent)
			if score > 0 {
				candidates = append(candidates, candidate{score: score, sentence: sent})
			}
		}
	}

	if len(candidates) == 0 {
		top := []rune(strings.TrimSpace(results[0].Text))
		if len(top) > s.maxChars {
			top = top[:s.maxChars]
		}
		return string(top)
	}

	// stable: ties keep passage rank order, then in-passage order
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	limit := s.maxSentences
	if limit > len(candidates) {
		limit = len(candidates)
	}
	selected := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	total := 0
	for _, c := range candidates[:limit] {
		if _, ok := seen[c.sentence]; ok {
			continue
		}
		seen[c.sentence] = struct{}{}
		selected = append(selected, c.sentence)
		total += len([]rune(c.sentence))
		if total >= s.maxChars {
			break
		}
	}
	return strings.TrimSpace(strings.Join(selected, " "))
}

// SplitSentences splits on the sentence enders . ! ? and the Urdu full
// stop, keeping each ender attached to its sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			sentences = append(sentences, s)
		}
		cur.Reset()
	}
	for _, r := range text {
		cur.WriteRune(r)
		switch r {
		case '.', '!', '?', '۔':
			flush()
		}
	}
	flush()
	return sentences
}

func tokenSet(text string) map[string]struct{} {
	text = punctRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
	set := make(map[string]struct{})
	if text == "" {
		return set
	}
	for _, tok := range strings.Split(text, " ") {
		set[tok] = struct{}{}
	}
	return set
}

func overlap(qTokens map[string]struct{}, sentence string) int {
	count := 0
	for tok := range tokenSet(sentence) {
		if _, ok := qTokens[tok]; ok {
			count++
		}
	}
	return count
}
