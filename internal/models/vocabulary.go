package models

import (
	"time"

	"wordtrainer/internal/session"
)

// Vocabulary is a named list of word pairs
type Vocabulary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SourceLang  string    `json:"source_lang"`
	TargetLang  string    `json:"target_lang"`
	Words       []Word    `json:"words,omitempty"`
	WordCount   int       `json:"word_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Word is a persisted word pair belonging to a vocabulary
type Word struct {
	ID           string    `json:"id"`
	VocabularyID int64     `json:"vocabulary_id"`
	Original     string    `json:"original"`
	Translation  string    `json:"translation"`
	Notes        string    `json:"notes,omitempty"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
}

// Pair converts the stored word into the engine's pair type.
func (w Word) Pair() session.WordTranslation {
	return session.WordTranslation{
		ID:          w.ID,
		Original:    w.Original,
		Translation: w.Translation,
		Notes:       w.Notes,
	}
}

// WordsToTranslations converts stored words for the session engine.
func WordsToTranslations(words []Word) []session.WordTranslation {
	out := make([]session.WordTranslation, len(words))
	for i, w := range words {
		out[i] = w.Pair()
	}
	return out
}
