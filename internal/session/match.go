package session

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tokenSeparator splits answers into comparable tokens.
var tokenSeparator = regexp.MustCompile(`[\s,/]+`)

// Tokenize splits s on whitespace, commas and slashes and drops tokens of
// one character or less.
func Tokenize(s string) []string {
	parts := tokenSeparator.Split(s, -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if utf8.RuneCountInString(part) <= 1 {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

// FoldAccents decomposes s to NFD and strips combining marks, so "café"
// becomes "cafe".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// Matches reports whether every token of answer matches some token of
// expected. In non-strict mode both sides are accent-folded first.
//
// When either side has no tokens left after filtering (single letter words
// such as "a" or "v"), the trimmed strings are compared as a whole. An
// answer made only of dropped tokens therefore never matches a longer
// expected word: "x" does not match "ahoj".
func Matches(answer, expected string, strict bool) bool {
	if strings.TrimSpace(answer) == "" {
		return false
	}
	if !strict {
		answer = FoldAccents(answer)
		expected = FoldAccents(expected)
	}

	given := Tokenize(answer)
	want := Tokenize(expected)
	if len(given) == 0 || len(want) == 0 {
		return strings.TrimSpace(answer) == strings.TrimSpace(expected)
	}

	for _, token := range given {
		found := false
		for _, candidate := range want {
			if token == candidate {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
