package handlers

import (
	"net/http"
	"strconv"
	"time"

	"wordtrainer/internal/models"
	"wordtrainer/internal/service"
	"wordtrainer/internal/validation"
)

// ResultHandler serves practice history
type ResultHandler struct {
	results *service.ResultService
}

// NewResultHandler creates a new result handler
func NewResultHandler(results *service.ResultService) *ResultHandler {
	return &ResultHandler{results: results}
}

// ListResults returns result summaries.
// GET /api/results?vocabulary_id=1&since=2026-01-02T15:04:05Z&bucket=poor&limit=50&offset=0
func (h *ResultHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	filter, err := parseResultFilter(r)
	if err != nil {
		respondWithServiceError(w, "", err)
		return
	}

	results, err := h.results.ListResults(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, "Failed to list results", err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

func parseResultFilter(r *http.Request) (models.ResultFilter, error) {
	var filter models.ResultFilter
	q := r.URL.Query()

	if raw := q.Get("vocabulary_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, validation.ValidationError{Field: "vocabulary_id", Message: "vocabulary_id must be a number"}
		}
		filter.VocabularyID = id
	}
	if raw := q.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, validation.ValidationError{Field: "since", Message: "since must be an RFC 3339 timestamp"}
		}
		filter.Since = since
	}
	switch bucket := q.Get("bucket"); bucket {
	case "", models.BucketExcellent, models.BucketGood, models.BucketFair, models.BucketPoor:
		filter.Bucket = bucket
	default:
		return filter, validation.ValidationError{Field: "bucket", Message: "unknown bucket"}
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

// GetResult returns one result with per-word details
func (h *ResultHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.results.GetResult(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, "Failed to load result", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// DeleteResult removes a result from the history
func (h *ResultHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.results.DeleteResult(r.Context(), id); err != nil {
		respondWithServiceError(w, "Failed to delete result", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StrugglingWords lists the words of a vocabulary that are missed most.
// GET /api/vocabularies/{id}/struggling?min_sessions=2&min_miss_rate=0.5
func (h *ResultHandler) StrugglingWords(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	minSessions, err := queryInt(r, "min_sessions")
	if err != nil {
		respondWithServiceError(w, "", err)
		return
	}
	var minMissRate float64
	if raw := r.URL.Query().Get("min_miss_rate"); raw != "" {
		minMissRate, err = strconv.ParseFloat(raw, 64)
		if err != nil || minMissRate > 1 {
			respondWithServiceError(w, "", validation.ValidationError{Field: "min_miss_rate", Message: "min_miss_rate must be between 0 and 1"})
			return
		}
	}

	words, err := h.results.StrugglingWords(r.Context(), id, minSessions, minMissRate)
	if err != nil {
		respondWithServiceError(w, "Failed to load struggling words", err)
		return
	}
	respondJSON(w, http.StatusOK, words)
}
