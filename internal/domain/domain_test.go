package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		raw  string
		want Language
		ok   bool
	}{
		{"urdu", LanguageUrdu, true},
		{"Urdu", LanguageUrdu, true},
		{" ENGLISH ", LanguageEnglish, true},
		{"arabic", LanguageUnknown, false},
		{"mixed", LanguageUnknown, false},
		{"", LanguageUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseLanguage(tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
	}
}
