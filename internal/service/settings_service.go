package service

import (
	"context"
	"strings"

	"wordtrainer/internal/models"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/validation"
)

// SettingsService reads and updates practice defaults
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the current settings
func (s *SettingsService) Get(ctx context.Context) (models.UserSettings, error) {
	return s.settingsRepo.GetUserSettings(ctx)
}

// Update validates and stores settings
func (s *SettingsService) Update(ctx context.Context, settings models.UserSettings) (models.UserSettings, error) {
	settings.ReportEmail = strings.TrimSpace(settings.ReportEmail)
	if settings.ReportEmail != "" {
		if err := validation.ValidateEmail(settings.ReportEmail); err != nil {
			return models.UserSettings{}, err
		}
	}
	if settings.WordLimit < 0 {
		return models.UserSettings{}, validation.ValidationError{Field: "word_limit", Message: "word limit cannot be negative"}
	}

	if err := s.settingsRepo.SaveUserSettings(ctx, settings); err != nil {
		return models.UserSettings{}, err
	}
	return settings, nil
}
