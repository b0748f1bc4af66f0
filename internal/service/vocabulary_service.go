package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"wordtrainer/internal/models"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/session"
	"wordtrainer/internal/validation"
	"wordtrainer/internal/wordlist"
)

// VocabularyService handles vocabulary business logic
type VocabularyService struct {
	vocabRepo *repository.VocabularyRepository
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(vocabRepo *repository.VocabularyRepository) *VocabularyService {
	return &VocabularyService{vocabRepo: vocabRepo}
}

// VocabularyInput carries the editable fields of a vocabulary
type VocabularyInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SourceLang  string `json:"source_lang"`
	TargetLang  string `json:"target_lang"`
}

func (in *VocabularyInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.SourceLang = strings.TrimSpace(in.SourceLang)
	in.TargetLang = strings.TrimSpace(in.TargetLang)

	if err := validation.ValidateName(in.Name); err != nil {
		return err
	}
	if err := validation.ValidateLanguage("source_lang", in.SourceLang); err != nil {
		return err
	}
	return validation.ValidateLanguage("target_lang", in.TargetLang)
}

// ImportReport summarises a bulk word import
type ImportReport struct {
	Total   int `json:"total"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// ProgressFunc receives import progress after every processed pair
type ProgressFunc func(total, processed, skipped int)

// CreateVocabulary creates an empty vocabulary
func (s *VocabularyService) CreateVocabulary(ctx context.Context, in VocabularyInput) (*models.Vocabulary, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	v, err := s.vocabRepo.CreateVocabulary(ctx, in.Name, in.Description, in.SourceLang, in.TargetLang)
	if err != nil {
		return nil, err
	}
	slog.Info("Vocabulary created", "vocabulary_id", v.ID, "name", v.Name)
	return v, nil
}

// GetVocabulary returns a vocabulary with its words
func (s *VocabularyService) GetVocabulary(ctx context.Context, id int64) (*models.Vocabulary, error) {
	v, err := s.vocabRepo.GetVocabularyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVocabularyNotFound
	}

	v.Words, err = s.vocabRepo.GetWords(ctx, id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ListVocabularies returns all vocabularies without words
func (s *VocabularyService) ListVocabularies(ctx context.Context) ([]models.Vocabulary, error) {
	return s.vocabRepo.ListVocabularies(ctx)
}

// UpdateVocabulary replaces the editable fields of a vocabulary
func (s *VocabularyService) UpdateVocabulary(ctx context.Context, id int64, in VocabularyInput) (*models.Vocabulary, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	v, err := s.vocabRepo.GetVocabularyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVocabularyNotFound
	}

	v.Name = in.Name
	v.Description = in.Description
	v.SourceLang = in.SourceLang
	v.TargetLang = in.TargetLang
	if err := s.vocabRepo.UpdateVocabulary(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVocabulary deletes a vocabulary and everything attached to it
func (s *VocabularyService) DeleteVocabulary(ctx context.Context, id int64) error {
	if _, err := s.requireVocabulary(ctx, id); err != nil {
		return err
	}
	if err := s.vocabRepo.DeleteVocabulary(ctx, id); err != nil {
		return err
	}
	slog.Info("Vocabulary deleted", "vocabulary_id", id)
	return nil
}

// AddWord validates and appends a single word pair
func (s *VocabularyService) AddWord(ctx context.Context, vocabularyID int64, w session.WordTranslation) (*models.Word, error) {
	w = trimPair(w)
	if err := validation.ValidateWordPair(w.Original, w.Translation, w.Notes); err != nil {
		return nil, err
	}
	if _, err := s.requireVocabulary(ctx, vocabularyID); err != nil {
		return nil, err
	}

	added, err := s.vocabRepo.AddWords(ctx, vocabularyID, []session.WordTranslation{w})
	if err != nil {
		return nil, err
	}
	return &added[0], nil
}

// UpdateWord changes the text of a word
func (s *VocabularyService) UpdateWord(ctx context.Context, vocabularyID int64, wordID string, w session.WordTranslation) (*models.Word, error) {
	w = trimPair(w)
	if err := validation.ValidateWordPair(w.Original, w.Translation, w.Notes); err != nil {
		return nil, err
	}

	word, err := s.vocabRepo.GetWordByID(ctx, wordID)
	if err != nil {
		return nil, err
	}
	if word == nil || word.VocabularyID != vocabularyID {
		return nil, ErrWordNotFound
	}

	word.Original = w.Original
	word.Translation = w.Translation
	word.Notes = w.Notes
	if err := s.vocabRepo.UpdateWord(ctx, word); err != nil {
		return nil, err
	}
	return word, nil
}

// DeleteWord removes a word from a vocabulary
func (s *VocabularyService) DeleteWord(ctx context.Context, vocabularyID int64, wordID string) error {
	deleted, err := s.vocabRepo.DeleteWord(ctx, vocabularyID, wordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWordNotFound
	}
	return nil
}

// ImportText parses pasted text and appends pairs not already present.
func (s *VocabularyService) ImportText(ctx context.Context, vocabularyID int64, text string, progress ProgressFunc) (ImportReport, error) {
	return s.importPairs(ctx, vocabularyID, wordlist.Parse(text), progress)
}

// ImportYAML appends pairs from a YAML word list not already present.
func (s *VocabularyService) ImportYAML(ctx context.Context, vocabularyID int64, data []byte, progress ProgressFunc) (ImportReport, error) {
	words, err := wordlist.ParseYAML(data)
	if err != nil {
		return ImportReport{}, validation.ValidationError{Field: "file", Message: err.Error()}
	}
	return s.importPairs(ctx, vocabularyID, words, progress)
}

func (s *VocabularyService) importPairs(ctx context.Context, vocabularyID int64, parsed []session.WordTranslation, progress ProgressFunc) (ImportReport, error) {
	if len(parsed) == 0 {
		return ImportReport{}, ErrNothingToImport
	}
	if _, err := s.requireVocabulary(ctx, vocabularyID); err != nil {
		return ImportReport{}, err
	}

	existing, err := s.vocabRepo.GetWords(ctx, vocabularyID)
	if err != nil {
		return ImportReport{}, err
	}
	current := models.WordsToTranslations(existing)
	for i := range current {
		current[i].ID = ""
		current[i].Notes = ""
	}

	report := ImportReport{Total: len(parsed)}
	notify := func() {
		if progress != nil {
			progress(report.Total, report.Added+report.Skipped, report.Skipped)
		}
	}
	notify()

	var toAdd []session.WordTranslation
	for _, w := range parsed {
		w = trimPair(w)
		bare := session.WordTranslation{Original: w.Original, Translation: w.Translation}
		merged := wordlist.Merge(current, []session.WordTranslation{bare})
		if len(merged) == len(current) || validation.ValidateWordPair(w.Original, w.Translation, w.Notes) != nil {
			report.Skipped++
			notify()
			continue
		}
		current = merged
		toAdd = append(toAdd, w)
		report.Added++
		notify()
	}

	if len(toAdd) > 0 {
		if _, err := s.vocabRepo.AddWords(ctx, vocabularyID, wordlist.AssignIDs(toAdd)); err != nil {
			return ImportReport{}, fmt.Errorf("failed to import words: %w", err)
		}
	}

	slog.Info("Imported words", "vocabulary_id", vocabularyID, "added", report.Added, "skipped", report.Skipped)
	return report, nil
}

func (s *VocabularyService) requireVocabulary(ctx context.Context, id int64) (*models.Vocabulary, error) {
	v, err := s.vocabRepo.GetVocabularyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVocabularyNotFound
	}
	return v, nil
}

func trimPair(w session.WordTranslation) session.WordTranslation {
	w.Original = strings.TrimSpace(w.Original)
	w.Translation = strings.TrimSpace(w.Translation)
	w.Notes = strings.TrimSpace(w.Notes)
	return w
}
