package wordlist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordtrainer/internal/session"
)

func TestFormatTextParses(t *testing.T) {
	words := []session.WordTranslation{
		{Original: "dog", Translation: "pes"},
		{Original: "good morning", Translation: "dobré ráno", Notes: "formal"},
	}

	assert.Equal(t, words, Parse(FormatText(words)))
}

func TestSaveAndLoadFile(t *testing.T) {
	words := []session.WordTranslation{
		{Original: "cat", Translation: "kočka", Notes: "feline"},
		{Original: "bird", Translation: "pták"},
	}

	for _, name := range []string{"words.txt", "words.yaml", "words.YML"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, SaveFile(path, words))

			loaded, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, words, loaded)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
