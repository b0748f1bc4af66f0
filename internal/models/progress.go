package models

import (
	"time"

	"wordtrainer/internal/session"
)

// SavedProgress is a paused practice session for a vocabulary
type SavedProgress struct {
	VocabularyID int64            `json:"vocabulary_id"`
	Config       session.Config   `json:"config"`
	Snapshot     session.Snapshot `json:"snapshot"`

	// Pool is every word the practice started with, minus removed ones.
	Pool      []session.WordTranslation `json:"pool"`
	Attempts  map[string]int            `json:"attempts,omitempty"`
	StartedAt time.Time                 `json:"started_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}
