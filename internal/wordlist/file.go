package wordlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wordtrainer/internal/session"
)

// IsYAML reports whether path names a YAML word list.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// FormatText renders words one tab separated pair per line, with notes as
// a third field, in the format Parse reads.
func FormatText(words []session.WordTranslation) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(w.Original)
		b.WriteByte('\t')
		b.WriteString(w.Translation)
		if w.Notes != "" {
			b.WriteByte('\t')
			b.WriteString(w.Notes)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// LoadFile reads a text or YAML word list, chosen by extension.
func LoadFile(path string) ([]session.WordTranslation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	if IsYAML(path) {
		return ParseYAML(data)
	}
	return Parse(string(data)), nil
}

// SaveFile writes words to path in the format its extension implies.
func SaveFile(path string, words []session.WordTranslation) error {
	var data []byte
	if IsYAML(path) {
		var err error
		if data, err = MarshalYAML(words); err != nil {
			return fmt.Errorf("encode word list: %w", err)
		}
	} else {
		data = []byte(FormatText(words))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write word list: %w", err)
	}
	return nil
}
