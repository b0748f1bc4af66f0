package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"wordtrainer/internal/database"
	"wordtrainer/internal/models"
)

// ResultRepository stores finished practice sessions
type ResultRepository struct {
	db *database.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *database.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Queries are built with ? placeholders; DB rewrites them per dialect.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var resultColumns = []string{
	"id", "vocabulary_id", "repeat_invalid", "reverse", "strict_match",
	"started_at", "finished_at", "total_words", "correct_first_try", "score", "bucket",
}

func scanResult(row interface{ Scan(...any) error }, r *models.TestResult) error {
	return row.Scan(
		&r.ID,
		&r.VocabularyID,
		&r.Config.RepeatInvalid,
		&r.Config.Reverse,
		&r.Config.StrictMatch,
		&r.StartedAt,
		&r.FinishedAt,
		&r.TotalWords,
		&r.CorrectFirstTry,
		&r.Score,
		&r.Bucket,
	)
}

// CreateResult inserts a result and its word rows in one transaction
func (r *ResultRepository) CreateResult(ctx context.Context, result *models.TestResult) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		query, args, err := builder.Insert("test_results").
			Columns(resultColumns[1:]...).
			Values(
				result.VocabularyID,
				result.Config.RepeatInvalid,
				result.Config.Reverse,
				result.Config.StrictMatch,
				result.StartedAt.UTC(),
				result.FinishedAt.UTC(),
				result.TotalWords,
				result.CorrectFirstTry,
				result.Score,
				result.Bucket,
			).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build result insert: %w", err)
		}

		id, err := tx.ExecReturningID(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to create result: %w", err)
		}
		result.ID = id

		if len(result.Words) == 0 {
			return nil
		}

		insert := builder.Insert("test_result_words").
			Columns("result_id", "word_id", "original", "translation", "attempts", "correct", "skipped")
		for _, w := range result.Words {
			insert = insert.Values(id, w.WordID, w.Original, w.Translation, w.Attempts, w.Correct, w.Skipped)
		}
		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build result words insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to store result words: %w", err)
		}
		return nil
	})
}

// GetResultByID returns a result with its word rows; nil, nil when missing
func (r *ResultRepository) GetResultByID(ctx context.Context, id int64) (*models.TestResult, error) {
	query, args, err := builder.Select(resultColumns...).From("test_results").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build result query: %w", err)
	}

	result := &models.TestResult{}
	err = scanResult(r.db.QueryRowContext(ctx, query, args...), result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	result.Words, err = r.getResultWords(ctx, id)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ResultRepository) getResultWords(ctx context.Context, resultID int64) ([]models.WordResult, error) {
	query, args, err := builder.
		Select("word_id", "original", "translation", "attempts", "correct", "skipped").
		From("test_result_words").
		Where(sq.Eq{"result_id": resultID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build result words query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query result words: %w", err)
	}
	defer rows.Close()

	var words []models.WordResult
	for rows.Next() {
		var w models.WordResult
		if err := rows.Scan(&w.WordID, &w.Original, &w.Translation, &w.Attempts, &w.Correct, &w.Skipped); err != nil {
			return nil, fmt.Errorf("failed to scan result word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// ListResults returns result summaries, newest first. Word rows are not loaded.
func (r *ResultRepository) ListResults(ctx context.Context, filter models.ResultFilter) ([]models.TestResult, error) {
	q := builder.Select(resultColumns...).From("test_results").OrderBy("finished_at DESC", "id DESC")

	if filter.VocabularyID != 0 {
		q = q.Where(sq.Eq{"vocabulary_id": filter.VocabularyID})
	}
	if !filter.Since.IsZero() {
		q = q.Where(sq.GtOrEq{"finished_at": filter.Since.UTC()})
	}
	if filter.Bucket != "" {
		q = q.Where(sq.Eq{"bucket": filter.Bucket})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
		if filter.Offset > 0 {
			q = q.Offset(uint64(filter.Offset))
		}
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build results query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []models.TestResult
	for rows.Next() {
		var result models.TestResult
		if err := scanResult(rows, &result); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// WordStats aggregates per-word outcomes for a vocabulary's results.
// Words seen in fewer than minSessions results are left out.
func (r *ResultRepository) WordStats(ctx context.Context, vocabularyID int64, minSessions int) ([]models.WordStats, error) {
	query, args, err := builder.
		Select(
			"rw.word_id",
			"MAX(rw.original)",
			"MAX(rw.translation)",
			"COUNT(*)",
			"SUM(CASE WHEN rw.correct THEN 0 ELSE 1 END)",
			"SUM(rw.attempts)",
		).
		From("test_result_words rw").
		Join("test_results r ON r.id = rw.result_id").
		Where(sq.Eq{"r.vocabulary_id": vocabularyID}).
		GroupBy("rw.word_id").
		Having("COUNT(*) >= ?", minSessions).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build word stats query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query word stats: %w", err)
	}
	defer rows.Close()

	var stats []models.WordStats
	for rows.Next() {
		var s models.WordStats
		if err := rows.Scan(&s.WordID, &s.Original, &s.Translation, &s.Sessions, &s.Missed, &s.Attempts); err != nil {
			return nil, fmt.Errorf("failed to scan word stats: %w", err)
		}
		if s.Sessions > 0 {
			s.MissRate = float64(s.Missed) / float64(s.Sessions)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// DeleteResult removes a result and its word rows
func (r *ResultRepository) DeleteResult(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM test_result_words WHERE result_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete result words: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM test_results WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete result: %w", err)
		}
		return nil
	})
}
