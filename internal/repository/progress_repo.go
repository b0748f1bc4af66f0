package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wordtrainer/internal/database"
	"wordtrainer/internal/models"
	"wordtrainer/internal/session"
)

// progressState is the JSON document kept in saved_progress.snapshot
type progressState struct {
	Snapshot  session.Snapshot          `json:"snapshot"`
	Pool      []session.WordTranslation `json:"pool"`
	Attempts  map[string]int            `json:"attempts,omitempty"`
	StartedAt time.Time                 `json:"started_at"`
}

// ProgressRepository stores paused practice sessions, one per vocabulary
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}


// SaveProgress inserts or replaces the saved snapshot for a vocabulary
func (r *ProgressRepository) SaveProgress(ctx context.Context, p *models.SavedProgress) error {
	config, err := json.Marshal(p.Config)
	if err != nil {
		return fmt.Errorf("failed to encode practice config: %w", err)
	}
	snapshot, err := json.Marshal(progressState{
		Snapshot:  p.Snapshot,
		Pool:      p.Pool,
		Attempts:  p.Attempts,
		StartedAt: p.StartedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode practice snapshot: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.GetDialect().UpsertProgress(), p.VocabularyID, string(config), string(snapshot)); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// GetProgress returns the saved snapshot for a vocabulary; nil, nil when none
func (r *ProgressRepository) GetProgress(ctx context.Context, vocabularyID int64) (*models.SavedProgress, error) {
	var config, snapshot string
	p := &models.SavedProgress{VocabularyID: vocabularyID}

	query := "SELECT config, snapshot, updated_at FROM saved_progress WHERE vocabulary_id = ?"
	err := r.db.QueryRowContext(ctx, query, vocabularyID).Scan(&config, &snapshot, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	if err := json.Unmarshal([]byte(config), &p.Config); err != nil {
		return nil, fmt.Errorf("failed to decode practice config: %w", err)
	}
	var state progressState
	if err := json.Unmarshal([]byte(snapshot), &state); err != nil {
		return nil, fmt.Errorf("failed to decode practice snapshot: %w", err)
	}
	p.Snapshot = state.Snapshot
	p.Pool = state.Pool
	p.Attempts = state.Attempts
	p.StartedAt = state.StartedAt
	return p, nil
}

// DeleteProgress removes the saved snapshot for a vocabulary
func (r *ProgressRepository) DeleteProgress(ctx context.Context, vocabularyID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM saved_progress WHERE vocabulary_id = ?", vocabularyID); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}
