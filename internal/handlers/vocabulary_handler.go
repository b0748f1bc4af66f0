package handlers

import (
	"net/http"
	"strings"

	"wordtrainer/internal/models"
	"wordtrainer/internal/service"
	"wordtrainer/internal/session"
	"wordtrainer/internal/validation"
	"wordtrainer/internal/wordlist"
)

// VocabularyHandler handles vocabulary and word requests
type VocabularyHandler struct {
	vocab *service.VocabularyService
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(vocab *service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{vocab: vocab}
}

// ListVocabularies returns every vocabulary without its words
func (h *VocabularyHandler) ListVocabularies(w http.ResponseWriter, r *http.Request) {
	vocabs, err := h.vocab.ListVocabularies(r.Context())
	if err != nil {
		respondWithServiceError(w, "Failed to list vocabularies", err)
		return
	}
	respondJSON(w, http.StatusOK, vocabs)
}

// CreateVocabulary creates an empty vocabulary
func (h *VocabularyHandler) CreateVocabulary(w http.ResponseWriter, r *http.Request) {
	var in service.VocabularyInput
	if !decodeJSON(w, r, &in) {
		return
	}

	v, err := h.vocab.CreateVocabulary(r.Context(), in)
	if err != nil {
		respondWithServiceError(w, "Failed to create vocabulary", err)
		return
	}
	respondJSON(w, http.StatusCreated, v)
}

// GetVocabulary returns a vocabulary with its words
func (h *VocabularyHandler) GetVocabulary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	v, err := h.vocab.GetVocabulary(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, "Failed to load vocabulary", err)
		return
	}
	switch by := wordlist.SortField(r.URL.Query().Get("sort")); by {
	case "":
	case wordlist.SortByOriginal, wordlist.SortByTranslation:
		sortWords(v.Words, by)
	default:
		respondWithError(w, http.StatusBadRequest, "sort must be original or translation", "invalid sort field", nil)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// sortWords orders stored words the way wordlist.Sort orders pairs.
func sortWords(words []models.Word, by wordlist.SortField) {
	byID := make(map[string]models.Word, len(words))
	for _, w := range words {
		byID[w.ID] = w
	}
	pairs := models.WordsToTranslations(words)
	wordlist.Sort(pairs, by)
	for i, p := range pairs {
		words[i] = byID[p.ID]
	}
}

// UpdateVocabulary replaces name, description and languages
func (h *VocabularyHandler) UpdateVocabulary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in service.VocabularyInput
	if !decodeJSON(w, r, &in) {
		return
	}

	v, err := h.vocab.UpdateVocabulary(r.Context(), id, in)
	if err != nil {
		respondWithServiceError(w, "Failed to update vocabulary", err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// DeleteVocabulary removes a vocabulary, its words and its history
func (h *VocabularyHandler) DeleteVocabulary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.vocab.DeleteVocabulary(r.Context(), id); err != nil {
		respondWithServiceError(w, "Failed to delete vocabulary", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddWord appends one word pair
func (h *VocabularyHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var pair session.WordTranslation
	if !decodeJSON(w, r, &pair) {
		return
	}
	pair.ID = ""

	word, err := h.vocab.AddWord(r.Context(), id, pair)
	if err != nil {
		respondWithServiceError(w, "Failed to add word", err)
		return
	}
	respondJSON(w, http.StatusCreated, word)
}

// UpdateWord changes a word's text
func (h *VocabularyHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var pair session.WordTranslation
	if !decodeJSON(w, r, &pair) {
		return
	}

	word, err := h.vocab.UpdateWord(r.Context(), id, r.PathValue("wordId"), pair)
	if err != nil {
		respondWithServiceError(w, "Failed to update word", err)
		return
	}
	respondJSON(w, http.StatusOK, word)
}

// DeleteWord removes a word
func (h *VocabularyHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.vocab.DeleteWord(r.Context(), id, r.PathValue("wordId")); err != nil {
		respondWithServiceError(w, "Failed to delete word", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type importRequest struct {
	// Format is "text" (the default) or "yaml".
	Format  string `json:"format"`
	Content string `json:"content"`
}

// ImportWords bulk-imports pasted text or a YAML word list
func (h *VocabularyHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req importRequest
	if !decodeJSONLimit(w, r, &req, maxImportBytes) {
		return
	}

	var (
		report service.ImportReport
		err    error
	)
	switch strings.ToLower(strings.TrimSpace(req.Format)) {
	case "", "text", "txt":
		report, err = h.vocab.ImportText(r.Context(), id, req.Content, nil)
	case "yaml", "yml":
		report, err = h.vocab.ImportYAML(r.Context(), id, []byte(req.Content), nil)
	default:
		err = validation.ValidationError{Field: "format", Message: "format must be text or yaml"}
	}
	if err != nil {
		respondWithServiceError(w, "Failed to import words", err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
