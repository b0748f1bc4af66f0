package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"wordtrainer/internal/database"
	"wordtrainer/internal/models"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/session"
)

// BackupVersion is written into every export
const BackupVersion = "2.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string                 `json:"version"`
	ExportedAt   time.Time              `json:"exported_at"`
	DatabaseType string                 `json:"database_type"`
	Vocabularies []models.Vocabulary    `json:"vocabularies"`
	Results      []models.TestResult    `json:"results"`
	Progress     []models.SavedProgress `json:"progress"`
	Settings     []models.Setting       `json:"settings"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db           *database.DB
	vocabRepo    *repository.VocabularyRepository
	resultRepo   *repository.ResultRepository
	progressRepo *repository.ProgressRepository
	settingsRepo *repository.SettingsRepository
}

// NewBackupService creates a new backup service
func NewBackupService(
	db *database.DB,
	vocabRepo *repository.VocabularyRepository,
	resultRepo *repository.ResultRepository,
	progressRepo *repository.ProgressRepository,
	settingsRepo *repository.SettingsRepository,
) *BackupService {
	return &BackupService{
		db:           db,
		vocabRepo:    vocabRepo,
		resultRepo:   resultRepo,
		progressRepo: progressRepo,
		settingsRepo: settingsRepo,
	}
}

// Export writes a complete backup of the database to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(ctx, file); err != nil {
		return err
	}
	slog.Info("Database exported", "path", outputPath)
	return nil
}

// ExportToWriter exports the database to an io.Writer (useful for HTTP responses)
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	backup, err := s.collect(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	slog.Info("Backup written",
		"vocabularies", len(backup.Vocabularies),
		"results", len(backup.Results),
		"progress", len(backup.Progress),
		"settings", len(backup.Settings),
	)
	return nil
}

func (s *BackupService) collect(ctx context.Context) (*BackupData, error) {
	backup := &BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.DriverName(),
		Vocabularies: []models.Vocabulary{},
		Results:      []models.TestResult{},
		Progress:     []models.SavedProgress{},
	}

	vocabularies, err := s.vocabRepo.ListVocabularies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export vocabularies: %w", err)
	}
	for _, v := range vocabularies {
		v.Words, err = s.vocabRepo.GetWords(ctx, v.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to export words: %w", err)
		}
		backup.Vocabularies = append(backup.Vocabularies, v)

		progress, err := s.progressRepo.GetProgress(ctx, v.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to export progress: %w", err)
		}
		if progress != nil {
			backup.Progress = append(backup.Progress, *progress)
		}
	}

	summaries, err := s.resultRepo.ListResults(ctx, models.ResultFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to export results: %w", err)
	}
	for _, summary := range summaries {
		result, err := s.resultRepo.GetResultByID(ctx, summary.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to export result %d: %w", summary.ID, err)
		}
		if result != nil {
			backup.Results = append(backup.Results, *result)
		}
	}

	backup.Settings, err = s.settingsRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export settings: %w", err)
	}
	return backup, nil
}

// Import restores a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader restores a backup. Vocabularies and results are added
// as new rows, so restoring into a populated database keeps existing
// data. Word IDs are kept unless they are already taken.
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	slog.Info("Restoring backup", "version", backup.Version, "exported_at", backup.ExportedAt)

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		vocabIDs := make(map[int64]int64, len(backup.Vocabularies))
		wordIDs := make(map[string]string)

		for _, v := range backup.Vocabularies {
			newID, err := importVocabulary(ctx, tx, v, wordIDs)
			if err != nil {
				return fmt.Errorf("failed to import vocabulary %q: %w", v.Name, err)
			}
			vocabIDs[v.ID] = newID
		}

		for _, r := range backup.Results {
			vocabID, ok := vocabIDs[r.VocabularyID]
			if !ok {
				slog.Warn("Skipping result for unknown vocabulary", "result_id", r.ID, "vocabulary_id", r.VocabularyID)
				continue
			}
			if err := importResult(ctx, tx, r, vocabID, wordIDs); err != nil {
				return fmt.Errorf("failed to import result %d: %w", r.ID, err)
			}
		}

		for _, p := range backup.Progress {
			vocabID, ok := vocabIDs[p.VocabularyID]
			if !ok {
				continue
			}
			if err := importProgress(ctx, tx, p, vocabID, wordIDs); err != nil {
				return fmt.Errorf("failed to import progress: %w", err)
			}
		}

		for _, setting := range backup.Settings {
			if _, err := tx.ExecContext(ctx, tx.GetDialect().UpsertSettings(), setting.Key, setting.Value); err != nil {
				return fmt.Errorf("failed to import setting %s: %w", setting.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Backup restored",
		"vocabularies", len(backup.Vocabularies),
		"results", len(backup.Results),
		"settings", len(backup.Settings),
	)
	return nil
}

// Clear deletes all data, children first.
func (s *BackupService) Clear(ctx context.Context) error {
	tables := []string{
		"test_result_words",
		"test_results",
		"saved_progress",
		"words",
		"vocabularies",
		"settings",
	}
	return s.db.WithTx(ctx, func(tx *database.Tx) error {
		for _, table := range tables {
			if _, err := tx.ExecContext(ctx, tx.GetDialect().ClearTable(table)); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
			slog.Info("Cleared table", "table", table)
		}
		return nil
	})
}

func importVocabulary(ctx context.Context, tx *database.Tx, v models.Vocabulary, wordIDs map[string]string) (int64, error) {
	created := orNow(v.CreatedAt)
	updated := orNow(v.UpdatedAt)
	id, err := tx.ExecReturningID(ctx,
		"INSERT INTO vocabularies (name, description, source_lang, target_lang, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		v.Name, v.Description, v.SourceLang, v.TargetLang, created, updated)
	if err != nil {
		return 0, err
	}

	for i, w := range v.Words {
		wordID, err := freeWordID(ctx, tx, w.ID)
		if err != nil {
			return 0, err
		}
		if w.ID != "" {
			wordIDs[w.ID] = wordID
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO words (id, vocabulary_id, original, translation, notes, position, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			wordID, id, w.Original, w.Translation, w.Notes, i, orNow(w.CreatedAt))
		if err != nil {
			return 0, fmt.Errorf("failed to import word %q: %w", w.Original, err)
		}
	}
	return id, nil
}

// freeWordID returns id if it is unused, or a fresh UUID.
func freeWordID(ctx context.Context, tx *database.Tx, id string) (string, error) {
	if id == "" {
		return uuid.NewString(), nil
	}
	var existing string
	err := tx.QueryRowContext(ctx, "SELECT id FROM words WHERE id = ?", id).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		return id, nil
	}
	if err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}

func importResult(ctx context.Context, tx *database.Tx, r models.TestResult, vocabID int64, wordIDs map[string]string) error {
	resultID, err := tx.ExecReturningID(ctx,
		`INSERT INTO test_results (vocabulary_id, repeat_invalid, reverse, strict_match, started_at, finished_at, total_words, correct_first_try, score, bucket)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		vocabID, r.Config.RepeatInvalid, r.Config.Reverse, r.Config.StrictMatch,
		r.StartedAt.UTC(), r.FinishedAt.UTC(), r.TotalWords, r.CorrectFirstTry, r.Score, r.Bucket)
	if err != nil {
		return err
	}

	for _, w := range r.Words {
		wordID := w.WordID
		if mapped, ok := wordIDs[wordID]; ok {
			wordID = mapped
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO test_result_words (result_id, word_id, original, translation, attempts, correct, skipped) VALUES (?, ?, ?, ?, ?, ?, ?)",
			resultID, wordID, w.Original, w.Translation, w.Attempts, w.Correct, w.Skipped)
		if err != nil {
			return err
		}
	}
	return nil
}

func importProgress(ctx context.Context, tx *database.Tx, p models.SavedProgress, vocabID int64, wordIDs map[string]string) error {
	for _, list := range [][]session.WordTranslation{p.Snapshot.Remaining, p.Snapshot.Invalid, p.Pool} {
		for i := range list {
			if mapped, ok := wordIDs[list[i].ID]; ok {
				list[i].ID = mapped
			}
		}
	}
	attempts := make(map[string]int, len(p.Attempts))
	for k, n := range p.Attempts {
		if mapped, ok := wordIDs[k]; ok {
			k = mapped
		}
		attempts[k] = n
	}
	p.Attempts = attempts
	p.VocabularyID = vocabID

	return repository.NewProgressRepository(tx).SaveProgress(ctx, &p)
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
