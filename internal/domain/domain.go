package domain

import "strings"

// Language classifies question text by script.
type Language string

const (
	LanguageUrdu    Language = "urdu"
	LanguageEnglish Language = "english"
	LanguageMixed   Language = "mixed"
	LanguageUnknown Language = "unknown"
)

// ParseLanguage parses a client-supplied output language tag,
// case-insensitively. Only urdu and english are valid request languages.
func ParseLanguage(raw string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "urdu":
		return LanguageUrdu, true
	case "english":
		return LanguageEnglish, true
	}
	return LanguageUnknown, false
}

// Page holds the extracted text of a single document page, 1-based.
type Page struct {
	Number int
	Text   string
}

// Passage is a fixed-size, page-tagged excerpt of the source document,
// the unit of retrieval. Immutable once created.
type Passage struct {
	Text    string
	Page    int
	ChunkID int
}

// PassageMeta is the provenance persisted alongside each indexed passage.
type PassageMeta struct {
	Page    int `json:"page"`
	ChunkID int `json:"chunk_id"`
}

// SearchResult is a scored passage returned from the vector index.
// Score is cosine similarity in [-1, 1], higher is better.
type SearchResult struct {
	Score float32
	Text  string
	Meta  PassageMeta
}

// NormalizedQuestion is the canonical Urdu form of a user question,
// derived fresh per request.
type NormalizedQuestion struct {
	UrduText string
	Detected Language
}

// AnswerResult is the final outcome of the QA pipeline. Source is empty
// when no page could be cited.
type AnswerResult struct {
	Answer string
	Source string
}

// Chunker splits page texts into retrieval passages.
type Chunker interface {
	Split(pages []Page) []Passage
}
