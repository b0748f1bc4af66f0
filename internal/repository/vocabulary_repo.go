package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wordtrainer/internal/database"
	"wordtrainer/internal/models"
	"wordtrainer/internal/session"
)

// VocabularyRepository handles database operations for vocabularies and words
type VocabularyRepository struct {
	db *database.DB
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *database.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

const vocabularyColumns = `
	v.id, v.name, v.description, v.source_lang, v.target_lang, v.created_at, v.updated_at,
	(SELECT COUNT(*) FROM words w WHERE w.vocabulary_id = v.id)`

func scanVocabulary(row interface{ Scan(...any) error }, v *models.Vocabulary) error {
	return row.Scan(
		&v.ID,
		&v.Name,
		&v.Description,
		&v.SourceLang,
		&v.TargetLang,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.WordCount,
	)
}

// CreateVocabulary inserts a new vocabulary
func (r *VocabularyRepository) CreateVocabulary(ctx context.Context, name, description, sourceLang, targetLang string) (*models.Vocabulary, error) {
	now := time.Now().UTC()
	query := "INSERT INTO vocabularies (name, description, source_lang, target_lang, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, name, description, sourceLang, targetLang, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create vocabulary: %w", err)
	}

	return &models.Vocabulary{
		ID:          id,
		Name:        name,
		Description: description,
		SourceLang:  sourceLang,
		TargetLang:  targetLang,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetVocabularyByID retrieves a vocabulary without its words.
// It returns nil, nil when the vocabulary does not exist.
func (r *VocabularyRepository) GetVocabularyByID(ctx context.Context, id int64) (*models.Vocabulary, error) {
	query := "SELECT " + vocabularyColumns + " FROM vocabularies v WHERE v.id = ?"

	v := &models.Vocabulary{}
	err := scanVocabulary(r.db.QueryRowContext(ctx, query, id), v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary: %w", err)
	}
	return v, nil
}

// ListVocabularies returns all vocabularies, newest first
func (r *VocabularyRepository) ListVocabularies(ctx context.Context) ([]models.Vocabulary, error) {
	query := "SELECT " + vocabularyColumns + " FROM vocabularies v ORDER BY v.created_at DESC, v.id DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vocabularies: %w", err)
	}
	defer rows.Close()

	var vocabularies []models.Vocabulary
	for rows.Next() {
		var v models.Vocabulary
		if err := scanVocabulary(rows, &v); err != nil {
			return nil, fmt.Errorf("failed to scan vocabulary: %w", err)
		}
		vocabularies = append(vocabularies, v)
	}
	return vocabularies, rows.Err()
}

// UpdateVocabulary updates a vocabulary's descriptive fields
func (r *VocabularyRepository) UpdateVocabulary(ctx context.Context, v *models.Vocabulary) error {
	v.UpdatedAt = time.Now().UTC()
	query := "UPDATE vocabularies SET name = ?, description = ?, source_lang = ?, target_lang = ?, updated_at = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, v.Name, v.Description, v.SourceLang, v.TargetLang, v.UpdatedAt, v.ID)
	if err != nil {
		return fmt.Errorf("failed to update vocabulary: %w", err)
	}
	return nil
}

// DeleteVocabulary deletes a vocabulary with its words, results and saved progress
func (r *VocabularyRepository) DeleteVocabulary(ctx context.Context, id int64) error {
	// Deleted explicitly so MySQL and SQLite without foreign keys behave the same.
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		statements := []string{
			"DELETE FROM test_result_words WHERE result_id IN (SELECT id FROM test_results WHERE vocabulary_id = ?)",
			"DELETE FROM test_results WHERE vocabulary_id = ?",
			"DELETE FROM saved_progress WHERE vocabulary_id = ?",
			"DELETE FROM words WHERE vocabulary_id = ?",
			"DELETE FROM vocabularies WHERE id = ?",
		}
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete vocabulary: %w", err)
			}
		}
		return nil
	})
}

// AddWords appends words to a vocabulary in one transaction. Words without
// an ID get a new UUID.
func (r *VocabularyRepository) AddWords(ctx context.Context, vocabularyID int64, words []session.WordTranslation) ([]models.Word, error) {
	if len(words) == 0 {
		return nil, nil
	}

	var added []models.Word
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		var maxPos sql.NullInt64
		err := tx.QueryRowContext(ctx, "SELECT MAX(position) FROM words WHERE vocabulary_id = ?", vocabularyID).Scan(&maxPos)
		if err != nil {
			return fmt.Errorf("failed to get word position: %w", err)
		}
		position := 0
		if maxPos.Valid {
			position = int(maxPos.Int64) + 1
		}

		now := time.Now().UTC()
		query := "INSERT INTO words (id, vocabulary_id, original, translation, notes, position, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
		for _, w := range words {
			id := w.ID
			if id == "" {
				id = uuid.NewString()
			}
			if _, err := tx.ExecContext(ctx, query, id, vocabularyID, w.Original, w.Translation, w.Notes, position, now); err != nil {
				return fmt.Errorf("failed to add word %q: %w", w.Original, err)
			}
			added = append(added, models.Word{
				ID:           id,
				VocabularyID: vocabularyID,
				Original:     w.Original,
				Translation:  w.Translation,
				Notes:        w.Notes,
				Position:     position,
				CreatedAt:    now,
			})
			position++
		}

		_, err = tx.ExecContext(ctx, "UPDATE vocabularies SET updated_at = ? WHERE id = ?", now, vocabularyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

const wordColumns = "id, vocabulary_id, original, translation, notes, position, created_at"

func scanWord(row interface{ Scan(...any) error }, w *models.Word) error {
	return row.Scan(&w.ID, &w.VocabularyID, &w.Original, &w.Translation, &w.Notes, &w.Position, &w.CreatedAt)
}

// GetWords returns the words of a vocabulary in insertion order
func (r *VocabularyRepository) GetWords(ctx context.Context, vocabularyID int64) ([]models.Word, error) {
	query := "SELECT " + wordColumns + " FROM words WHERE vocabulary_id = ? ORDER BY position, created_at"
	rows, err := r.db.QueryContext(ctx, query, vocabularyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := scanWord(rows, &w); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// GetWordByID retrieves a single word; nil, nil when missing
func (r *VocabularyRepository) GetWordByID(ctx context.Context, wordID string) (*models.Word, error) {
	query := "SELECT " + wordColumns + " FROM words WHERE id = ?"
	w := &models.Word{}
	err := scanWord(r.db.QueryRowContext(ctx, query, wordID), w)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return w, nil
}

// UpdateWord updates the text of a word
func (r *VocabularyRepository) UpdateWord(ctx context.Context, w *models.Word) error {
	query := "UPDATE words SET original = ?, translation = ?, notes = ? WHERE id = ? AND vocabulary_id = ?"
	_, err := r.db.ExecContext(ctx, query, w.Original, w.Translation, w.Notes, w.ID, w.VocabularyID)
	if err != nil {
		return fmt.Errorf("failed to update word: %w", err)
	}
	return nil
}

// DeleteWord removes a word from a vocabulary. It reports whether a row was deleted.
func (r *VocabularyRepository) DeleteWord(ctx context.Context, vocabularyID int64, wordID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM words WHERE id = ? AND vocabulary_id = ?", wordID, vocabularyID)
	if err != nil {
		return false, fmt.Errorf("failed to delete word: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete word: %w", err)
	}
	return n > 0, nil
}

// CountWords returns the number of words in a vocabulary
func (r *VocabularyRepository) CountWords(ctx context.Context, vocabularyID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM words WHERE vocabulary_id = ?", vocabularyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}
