package handlers

import (
	"context"
	"net/http"

	"wordtrainer/internal/service"
	"wordtrainer/internal/session"
)

// PracticeHandler handles practice session requests
type PracticeHandler struct {
	practice *service.PracticeService
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practice *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practice: practice}
}

type startPracticeRequest struct {
	VocabularyID int64           `json:"vocabulary_id"`
	Config       *session.Config `json:"config,omitempty"`
	Resume       bool            `json:"resume"`
	Limit        int             `json:"limit"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// StartPractice starts or resumes a practice for a vocabulary
func (h *PracticeHandler) StartPractice(w http.ResponseWriter, r *http.Request) {
	var req startPracticeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.VocabularyID <= 0 {
		respondWithError(w, http.StatusBadRequest, "vocabulary_id is required", "", nil)
		return
	}

	st, err := h.practice.Start(r.Context(), service.PracticeOptions{
		VocabularyID: req.VocabularyID,
		Config:       req.Config,
		Resume:       req.Resume,
		Limit:        req.Limit,
	})
	if err != nil {
		respondWithServiceError(w, "Failed to start practice", err)
		return
	}
	respondJSON(w, http.StatusCreated, st)
}

// GetPractice returns the current prompt and counters
func (h *PracticeHandler) GetPractice(w http.ResponseWriter, r *http.Request) {
	st, err := h.practice.State(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, "Failed to load practice", err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// SubmitAnswer checks an answer against the current prompt
func (h *PracticeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.practice.Submit(r.Context(), r.PathValue("id"), req.Answer)
	if err != nil {
		respondWithServiceError(w, "Failed to check answer", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Peek reveals the expected answer
func (h *PracticeHandler) Peek(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.practice.Peek, "Failed to reveal answer")
}

// Next advances to the next prompt
func (h *PracticeHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.practice.Next, "Failed to advance practice")
}

// RemoveWord drops a word from the practice and its vocabulary
func (h *PracticeHandler) RemoveWord(w http.ResponseWriter, r *http.Request) {
	st, err := h.practice.RemoveWord(r.Context(), r.PathValue("id"), r.PathValue("wordId"))
	if err != nil {
		respondWithServiceError(w, "Failed to remove word", err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}

// Pause saves progress and closes the practice
func (h *PracticeHandler) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.practice.Pause(r.Context(), r.PathValue("id")); err != nil {
		respondWithServiceError(w, "Failed to pause practice", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Finish ends the practice and returns its result
func (h *PracticeHandler) Finish(w http.ResponseWriter, r *http.Request) {
	result, err := h.practice.Finish(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, "Failed to finish practice", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *PracticeHandler) step(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) (*service.PracticeState, error), logMsg string) {
	st, err := fn(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, logMsg, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}
