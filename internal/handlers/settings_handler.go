package handlers

import (
	"net/http"

	"wordtrainer/internal/models"
	"wordtrainer/internal/service"
)

// SettingsHandler serves the practice defaults
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetSettings returns the stored defaults
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		respondWithServiceError(w, "Failed to load settings", err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

// UpdateSettings replaces the stored defaults
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in models.UserSettings
	if !decodeJSON(w, r, &in) {
		return
	}

	s, err := h.settings.Update(r.Context(), in)
	if err != nil {
		respondWithServiceError(w, "Failed to save settings", err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}
