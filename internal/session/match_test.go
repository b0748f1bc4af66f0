package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single word", input: "ahoj", want: []string{"ahoj"}},
		{name: "surrounding whitespace", input: "  ahoj ", want: []string{"ahoj"}},
		{name: "comma and slash", input: "dog, hound/cur", want: []string{"dog", "hound", "cur"}},
		{name: "short tokens dropped", input: "a dog", want: []string{"dog"}},
		{name: "accented single rune dropped", input: "é bien", want: []string{"bien"}},
		{name: "empty", input: "", want: []string{}},
		{name: "separators only", input: " ,/ ", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "cafe", FoldAccents("café"))
	assert.Equal(t, "prilis zlutoucky kun", FoldAccents("příliš žluťoučký kůň"))
	assert.Equal(t, "plain", FoldAccents("plain"))
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		expected string
		strict   bool
		want     bool
	}{
		{name: "exact", answer: "ahoj", expected: "ahoj", want: true},
		{name: "accent folded", answer: "café", expected: "cafe", want: true},
		{name: "accent strict", answer: "café", expected: "cafe", strict: true, want: false},
		{name: "strict exact", answer: "café", expected: "café", strict: true, want: true},
		{name: "whitespace trimmed", answer: " ahoj", expected: "ahoj ", want: true},
		{name: "subset of synonyms", answer: "hound", expected: "dog, hound", want: true},
		{name: "all synonyms any order", answer: "hound/dog", expected: "dog, hound", want: true},
		{name: "one unknown token", answer: "dog cat", expected: "dog, hound", want: false},
		{name: "empty answer", answer: "", expected: "ahoj", want: false},
		{name: "whitespace answer", answer: "   ", expected: "ahoj", want: false},
		{name: "empty expected", answer: "ahoj", expected: "", want: false},
		{name: "single letter word", answer: "a", expected: "a", want: true},
		{name: "single letter mismatch", answer: "i", expected: "a", want: false},
		{name: "article is noise", answer: "a dog", expected: "dog", want: true},
		{name: "only dropped tokens", answer: "x", expected: "ahoj", want: false},
		{name: "only dropped tokens several", answer: "a, b", expected: "ahoj", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.answer, tt.expected, tt.strict))
		})
	}
}
