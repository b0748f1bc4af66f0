package handlers

import "net/http"

// Router bundles the API handlers
type Router struct {
	Health     *HealthHandler
	Vocabulary *VocabularyHandler
	Practice   *PracticeHandler
	Results    *ResultHandler
	Settings   *SettingsHandler
}

// Mux registers every API route on a new ServeMux.
func (rt *Router) Mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", rt.Health.Health)

	// Vocabularies and words
	mux.HandleFunc("GET /api/vocabularies", rt.Vocabulary.ListVocabularies)
	mux.HandleFunc("POST /api/vocabularies", rt.Vocabulary.CreateVocabulary)
	mux.HandleFunc("GET /api/vocabularies/{id}", rt.Vocabulary.GetVocabulary)
	mux.HandleFunc("PUT /api/vocabularies/{id}", rt.Vocabulary.UpdateVocabulary)
	mux.HandleFunc("DELETE /api/vocabularies/{id}", rt.Vocabulary.DeleteVocabulary)
	mux.HandleFunc("POST /api/vocabularies/{id}/words", rt.Vocabulary.AddWord)
	mux.HandleFunc("POST /api/vocabularies/{id}/import", rt.Vocabulary.ImportWords)
	mux.HandleFunc("PUT /api/vocabularies/{id}/words/{wordId}", rt.Vocabulary.UpdateWord)
	mux.HandleFunc("DELETE /api/vocabularies/{id}/words/{wordId}", rt.Vocabulary.DeleteWord)
	mux.HandleFunc("GET /api/vocabularies/{id}/struggling", rt.Results.StrugglingWords)

	// Practice
	mux.HandleFunc("POST /api/practice", rt.Practice.StartPractice)
	mux.HandleFunc("GET /api/practice/{id}", rt.Practice.GetPractice)
	mux.HandleFunc("POST /api/practice/{id}/answer", rt.Practice.SubmitAnswer)
	mux.HandleFunc("POST /api/practice/{id}/peek", rt.Practice.Peek)
	mux.HandleFunc("POST /api/practice/{id}/next", rt.Practice.Next)
	mux.HandleFunc("POST /api/practice/{id}/pause", rt.Practice.Pause)
	mux.HandleFunc("POST /api/practice/{id}/finish", rt.Practice.Finish)
	mux.HandleFunc("DELETE /api/practice/{id}/words/{wordId}", rt.Practice.RemoveWord)

	// History
	mux.HandleFunc("GET /api/results", rt.Results.ListResults)
	mux.HandleFunc("GET /api/results/{id}", rt.Results.GetResult)
	mux.HandleFunc("DELETE /api/results/{id}", rt.Results.DeleteResult)

	// Settings
	mux.HandleFunc("GET /api/settings", rt.Settings.GetSettings)
	mux.HandleFunc("PUT /api/settings", rt.Settings.UpdateSettings)

	return mux
}
