package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitabqa/internal/domain"
)

func TestSplit_ShortPageYieldsOnePassage(t *testing.T) {
	c := NewPageChunker(800, 120)
	passages := c.Split([]domain.Page{{Number: 1, Text: "نماز دین کا ستون ہے۔"}})

	require.Len(t, passages, 1)
	assert.Equal(t, "نماز دین کا ستون ہے۔", passages[0].Text)
	assert.Equal(t, 1, passages[0].Page)
	assert.Equal(t, 0, passages[0].ChunkID)
}

func TestSplit_WindowsAndOverlap(t *testing.T) {
	// 25 runes, no spaces, so trimming never alters window boundaries
	text := strings.Repeat("ابجدہ", 5)
	c := NewPageChunker(10, 3)
	passages := c.Split([]domain.Page{{Number: 4, Text: text}})

	require.NotEmpty(t, passages)
	runes := []rune(text)
	for i, p := range passages {
		assert.LessOrEqual(t, len([]rune(p.Text)), 10)
		assert.Contains(t, text, p.Text)
		assert.Equal(t, 4, p.Page)
		assert.Equal(t, i, p.ChunkID)
	}
	// consecutive windows share exactly the overlap
	for i := 1; i < len(passages); i++ {
		prev := []rune(passages[i-1].Text)
		cur := []rune(passages[i].Text)
		if len(prev) == 10 {
			assert.Equal(t, string(prev[len(prev)-3:]), string(cur[:3]))
		}
	}
	// full coverage: first window starts the text, last window ends it
	first := []rune(passages[0].Text)
	last := []rune(passages[len(passages)-1].Text)
	assert.Equal(t, string(runes[:len(first)]), string(first))
	assert.Equal(t, string(runes[len(runes)-len(last):]), string(last))
}

func TestSplit_GlobalChunkIDsAcrossPages(t *testing.T) {
	c := NewPageChunker(800, 120)
	passages := c.Split([]domain.Page{
		{Number: 1, Text: "پہلا صفحہ۔"},
		{Number: 2, Text: "دوسرا صفحہ۔"},
		{Number: 3, Text: "تیسرا صفحہ۔"},
	})

	require.Len(t, passages, 3)
	for i, p := range passages {
		assert.Equal(t, i, p.ChunkID)
		assert.Equal(t, i+1, p.Page)
	}
}

func TestSplit_EmptyAndBlankPages(t *testing.T) {
	c := NewPageChunker(10, 3)
	passages := c.Split([]domain.Page{
		{Number: 1, Text: ""},
		{Number: 2, Text: "   "},
	})
	assert.Empty(t, passages)
}

func TestNewPageChunker_ClampsInvalidValues(t *testing.T) {
	c := NewPageChunker(0, -5)
	assert.Equal(t, 800, c.chunkSize)
	assert.Equal(t, 0, c.chunkOverlap)

	c = NewPageChunker(10, 10)
	assert.Equal(t, 9, c.chunkOverlap)
}
