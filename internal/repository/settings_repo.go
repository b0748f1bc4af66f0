package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wordtrainer/internal/database"
	"wordtrainer/internal/models"
)

type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by key. Missing keys return "", false.
func (r *SettingsRepository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT setting_value FROM settings WHERE setting_key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Dialect.UpsertSettings(), key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// GetAll returns every stored setting
func (r *SettingsRepository) GetAll(ctx context.Context) ([]models.Setting, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT setting_key, setting_value FROM settings ORDER BY setting_key")
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// GetUserSettings returns the typed settings view
func (r *SettingsRepository) GetUserSettings(ctx context.Context) (models.UserSettings, error) {
	settings, err := r.GetAll(ctx)
	if err != nil {
		return models.UserSettings{}, err
	}
	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	return models.SettingsFromMap(values), nil
}

// SaveUserSettings stores every field of the typed settings view
func (r *SettingsRepository) SaveUserSettings(ctx context.Context, s models.UserSettings) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		for key, value := range s.ToMap() {
			if _, err := tx.ExecContext(ctx, r.db.Dialect.UpsertSettings(), key, value); err != nil {
				return fmt.Errorf("failed to set setting %s: %w", key, err)
			}
		}
		return nil
	})
}
