package ambiguity

import (
	"regexp"
	"strings"
)

// Reason classifies why a question was rejected as ambiguous.
type Reason string

const (
	ReasonTooShort         Reason = "too_short"
	ReasonTooFewTokens     Reason = "too_few_tokens"
	ReasonNotInterrogative Reason = "not_interrogative"
)

// Urdu interrogative words, matched as substrings of the question.
var interrogatives = []string{
	"کیا", "کیسے", "کیونکر", "کیوں", "کب", "کہاں", "کون", "کس", "کس کا", "کس کی", "کیا حکم",
}

var (
	punctRe = regexp.MustCompile(`[.,!?\-:۔؟،()\[\]{}"']`)
	wsRe    = regexp.MustCompile(`\s+`)
)

// Checker gates questions before retrieval. Conservative: declarative
// statements long enough are allowed through to avoid over-rejecting
// legitimate questions.
type Checker struct {
	minChars               int
	minTokens              int
	interrogativeMinTokens int
}

func NewChecker(minChars, minTokens, interrogativeMinTokens int) *Checker {
	if minChars <= 0 {
		minChars = 6
	}
	if minTokens <= 0 {
		minTokens = 2
	}
	if interrogativeMinTokens <= 0 {
		interrogativeMinTokens = 4
	}
	return &Checker{
		minChars:               minChars,
		minTokens:              minTokens,
		interrogativeMinTokens: interrogativeMinTokens,
	}
}

// Check evaluates the rules in order; the first match wins. The reason
// is non-empty exactly when the question is ambiguous.
func (c *Checker) Check(question string) (bool, Reason) {
	if len([]rune(strings.TrimSpace(question))) < c.minChars {
		return true, ReasonTooShort
	}
	tokens := tokenize(question)
	if len(tokens) < c.minTokens {
		return true, ReasonTooFewTokens
	}
	if !strings.ContainsAny(question, "؟?") && !containsInterrogative(question) &&
		len(tokens) < c.interrogativeMinTokens {
		return true, ReasonNotInterrogative
	}
	return false, ""
}

func containsInterrogative(question string) bool {
	for _, w := range interrogatives {
		if strings.Contains(question, w) {
			return true
		}
	}
	return false
}

// tokenize strips punctuation, collapses whitespace and splits on
// spaces. Shared scheme with the answer synthesizer.
func tokenize(text string) []string {
	text = punctRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}
	return strings.Split(text, " ")
}
