// Package wordlist contains helpers for building word lists: parsing pasted
// text and YAML files, merging, deduplication, random selection and sorting.
package wordlist

import (
	"bufio"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"wordtrainer/internal/session"
)

// separators are tried in order; the first one present on a line wins.
var separators = []string{"\t", " - ", " – ", "=", ";"}

// Parse reads one word pair per line. A pair is separated by a tab, " - ",
// "=" or ";". A third field, a trailing "(...)" or a "#" comment becomes
// the notes. Lines without a translation are skipped.
func Parse(text string) []session.WordTranslation {
	var words []session.WordTranslation

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if w, ok := parseLine(line); ok {
			words = append(words, w)
		}
	}

	return words
}

func parseLine(line string) (session.WordTranslation, bool) {
	var notes string
	if i := strings.Index(line, "#"); i > 0 {
		notes = strings.TrimSpace(line[i+1:])
		line = strings.TrimSpace(line[:i])
	}

	for _, sep := range separators {
		if !strings.Contains(line, sep) {
			continue
		}
		parts := strings.SplitN(line, sep, 3)
		original := strings.TrimSpace(parts[0])
		translation := strings.TrimSpace(parts[1])
		if len(parts) == 3 && notes == "" {
			notes = strings.TrimSpace(parts[2])
		}
		if notes == "" {
			translation, notes = splitParenNotes(translation)
		}
		if original == "" || translation == "" {
			return session.WordTranslation{}, false
		}
		return session.WordTranslation{
			Original:    original,
			Translation: translation,
			Notes:       notes,
		}, true
	}

	return session.WordTranslation{}, false
}

// splitParenNotes moves a trailing "(...)" out of s.
func splitParenNotes(s string) (string, string) {
	if !strings.HasSuffix(s, ")") {
		return s, ""
	}
	open := strings.LastIndex(s, "(")
	if open <= 0 {
		return s, ""
	}
	return strings.TrimSpace(s[:open]), strings.TrimSpace(s[open+1 : len(s)-1])
}

// ParseYAML reads a YAML sequence of {original, translation, notes} maps.
func ParseYAML(data []byte) ([]session.WordTranslation, error) {
	var raw []session.WordTranslation
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml word list: %w", err)
	}

	words := make([]session.WordTranslation, 0, len(raw))
	for i, w := range raw {
		w.Original = strings.TrimSpace(w.Original)
		w.Translation = strings.TrimSpace(w.Translation)
		w.Notes = strings.TrimSpace(w.Notes)
		if w.Original == "" || w.Translation == "" {
			return nil, fmt.Errorf("parse yaml word list: entry %d: original and translation are required", i+1)
		}
		words = append(words, w)
	}
	return words, nil
}

// MarshalYAML renders words in the format ParseYAML reads.
func MarshalYAML(words []session.WordTranslation) ([]byte, error) {
	return yaml.Marshal(words)
}

// Merge appends b to a, dropping pairs whose (original, translation) already
// appeared. Pairs are compared as a whole so words sharing a translation
// keep their own originals.
func Merge(a, b []session.WordTranslation) []session.WordTranslation {
	type pair struct{ original, translation string }

	merged := make([]session.WordTranslation, 0, len(a)+len(b))
	seen := make(map[pair]bool, len(a)+len(b))
	for _, list := range [][]session.WordTranslation{a, b} {
		for _, w := range list {
			p := pair{w.Original, w.Translation}
			if seen[p] {
				continue
			}
			seen[p] = true
			merged = append(merged, w)
		}
	}
	return merged
}

// DedupByOriginal keeps the first word for every original text.
func DedupByOriginal(words []session.WordTranslation) []session.WordTranslation {
	out := make([]session.WordTranslation, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if seen[w.Original] {
			continue
		}
		seen[w.Original] = true
		out = append(out, w)
	}
	return out
}

// RandomSelection returns n distinct words in random order. All words are
// returned, shuffled, when n <= 0 or n >= len(words).
func RandomSelection(words []session.WordTranslation, n int, rng *rand.Rand) []session.WordTranslation {
	out := make([]session.WordTranslation, len(words))
	copy(out, words)

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// SortField selects the field Sort orders by.
type SortField string

const (
	SortByOriginal    SortField = "original"
	SortByTranslation SortField = "translation"
)

// Sort orders words in place, ignoring case and accents. The sort is stable.
func Sort(words []session.WordTranslation, by SortField) {
	key := func(w session.WordTranslation) string {
		if by == SortByTranslation {
			return sortKey(w.Translation)
		}
		return sortKey(w.Original)
	}
	sort.SliceStable(words, func(i, j int) bool {
		return key(words[i]) < key(words[j])
	})
}

func sortKey(s string) string {
	return strings.ToLower(session.FoldAccents(strings.TrimSpace(s)))
}

// AssignIDs gives every word without an ID a fresh UUID.
func AssignIDs(words []session.WordTranslation) []session.WordTranslation {
	for i := range words {
		if words[i].ID == "" {
			words[i].ID = uuid.NewString()
		}
	}
	return words
}
