package service

import (
	"context"
	"sort"

	"wordtrainer/internal/models"
	"wordtrainer/internal/repository"
)

// Defaults for struggling word detection
const (
	DefaultStrugglingMinSessions = 2
	DefaultStrugglingMissRate    = 0.5
	maxResultPageSize            = 200
)

// ResultService exposes practice history
type ResultService struct {
	resultRepo *repository.ResultRepository
	vocabRepo  *repository.VocabularyRepository
}

// NewResultService creates a new result service
func NewResultService(resultRepo *repository.ResultRepository, vocabRepo *repository.VocabularyRepository) *ResultService {
	return &ResultService{resultRepo: resultRepo, vocabRepo: vocabRepo}
}

// ListResults returns result summaries matching filter
func (s *ResultService) ListResults(ctx context.Context, filter models.ResultFilter) ([]models.TestResult, error) {
	if filter.Limit <= 0 || filter.Limit > maxResultPageSize {
		filter.Limit = maxResultPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	results, err := s.resultRepo.ListResults(ctx, filter)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.TestResult{}
	}
	return results, nil
}

// GetResult returns one result with per-word details
func (s *ResultService) GetResult(ctx context.Context, id int64) (*models.TestResult, error) {
	result, err := s.resultRepo.GetResultByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrResultNotFound
	}
	return result, nil
}

// DeleteResult removes a result from the history
func (s *ResultService) DeleteResult(ctx context.Context, id int64) error {
	if _, err := s.GetResult(ctx, id); err != nil {
		return err
	}
	return s.resultRepo.DeleteResult(ctx, id)
}

// StrugglingWords returns words of a vocabulary missed in at least
// minMissRate of the sessions they appeared in, worst first.
func (s *ResultService) StrugglingWords(ctx context.Context, vocabularyID int64, minSessions int, minMissRate float64) ([]models.WordStats, error) {
	vocab, err := s.vocabRepo.GetVocabularyByID(ctx, vocabularyID)
	if err != nil {
		return nil, err
	}
	if vocab == nil {
		return nil, ErrVocabularyNotFound
	}

	if minSessions <= 0 {
		minSessions = DefaultStrugglingMinSessions
	}
	if minMissRate <= 0 {
		minMissRate = DefaultStrugglingMissRate
	}

	stats, err := s.resultRepo.WordStats(ctx, vocabularyID, minSessions)
	if err != nil {
		return nil, err
	}

	struggling := []models.WordStats{}
	for _, st := range stats {
		if st.MissRate >= minMissRate {
			struggling = append(struggling, st)
		}
	}
	sort.SliceStable(struggling, func(i, j int) bool {
		if struggling[i].MissRate != struggling[j].MissRate {
			return struggling[i].MissRate > struggling[j].MissRate
		}
		return struggling[i].Attempts > struggling[j].Attempts
	})
	return struggling, nil
}
