package chunker

import (
	"strings"

	"kitabqa/internal/domain"
)

// PageChunker splits page texts into fixed-size overlapping passages.
// Chunking is purely character-positional; no sentence awareness.
type PageChunker struct {
	chunkSize    int
	chunkOverlap int
}

func NewPageChunker(chunkSize, chunkOverlap int) *PageChunker {
	if chunkSize <= 0 {
		chunkSize = 800
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		// the window must advance
		chunkOverlap = chunkSize - 1
	}
	return &PageChunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// Split slides a chunkSize-rune window over each page with
// chunkSize-chunkOverlap step, emitting one passage per non-empty
// trimmed window. chunk ids increment globally across the document,
// starting at 0.
func (c *PageChunker) Split(pages []domain.Page) []domain.Passage {
	var passages []domain.Passage
	chunkID := 0
	for _, page := range pages {
		text := []rune(page.Text)
		start := 0
		for start < len(text) {
			end := start + c.chunkSize
			if end > len(text) {
				end = len(text)
			}
			chunk := strings.TrimSpace(string(text[start:end]))
			if chunk != "" {
				passages = append(passages, domain.Passage{
					Text:    chunk,
					Page:    page.Number,
					ChunkID: chunkID,
				})
				chunkID++
			}
			if end == len(text) {
				break
			}
			start = end - c.chunkOverlap
			if start < 0 {
				start = 0
			}
		}
	}
	return passages
}
