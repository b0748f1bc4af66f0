package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"wordtrainer/internal/models"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/session"
	"wordtrainer/internal/wordlist"
)

// PracticeOptions configures a new practice
type PracticeOptions struct {
	VocabularyID int64
	// Config overrides the stored defaults when set.
	Config *session.Config
	// Resume continues the saved progress of the vocabulary if there is any.
	Resume bool
	// Limit caps the number of words. Zero uses the stored default,
	// a negative value practises every word.
	Limit int
}

// PracticeState is the client-facing view of a running practice
type PracticeState struct {
	ID           string         `json:"id"`
	VocabularyID int64          `json:"vocabulary_id"`
	Config       session.Config `json:"config"`
	WordID       string         `json:"word_id,omitempty"`
	Prompt       string         `json:"prompt,omitempty"`
	// Answer and Notes are only filled in once the word is revealed.
	Answer    string `json:"answer,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Outcome   string `json:"outcome"`
	Revealed  bool   `json:"revealed"`
	Complete  bool   `json:"complete"`
	Remaining int    `json:"remaining"`
	Missed    int    `json:"missed"`
	Total     int    `json:"total"`
	Resumed   bool   `json:"resumed"`
}

// AnswerResult is returned after an answer was checked
type AnswerResult struct {
	Correct bool          `json:"correct"`
	State   PracticeState `json:"state"`
}

type practice struct {
	mu sync.Mutex

	id             string
	vocabularyID   int64
	vocabularyName string
	cfg            session.Config
	engine         *session.Engine
	pool           []session.WordTranslation
	attempts       map[string]int
	startedAt      time.Time
	lastActive     time.Time
	resumed        bool
	finished       bool

	// pending is the latest snapshot not yet written to storage.
	pending *session.Snapshot
}

// observe is the engine's progress sink. Snapshots are written by the
// service once the engine call returns.
func (p *practice) observe(ev session.Event) {
	switch ev.Type {
	case session.EventAttempt:
		p.attempts[ev.Word.Key()]++
		if ev.Recorded {
			snap := ev.Snapshot
			p.pending = &snap
		}
	case session.EventProgress, session.EventComplete:
		snap := ev.Snapshot
		p.pending = &snap
	}
}

func (p *practice) state() PracticeState {
	st := PracticeState{
		ID:           p.id,
		VocabularyID: p.vocabularyID,
		Config:       p.cfg,
		Outcome:      p.engine.Outcome().String(),
		Revealed:     p.engine.Revealed(),
		Complete:     p.engine.Complete(),
		Remaining:    len(p.engine.Remaining()),
		Missed:       len(p.engine.Invalid()),
		Total:        len(p.pool),
		Resumed:      p.resumed,
	}
	if cur, ok := p.engine.Current(); ok {
		st.WordID = cur.ID
		st.Prompt = p.engine.Prompt()
		if st.Revealed {
			st.Answer = p.engine.Expected()
			st.Notes = cur.Notes
		}
	}
	return st
}

func (p *practice) progress(snap session.Snapshot) *models.SavedProgress {
	return &models.SavedProgress{
		VocabularyID: p.vocabularyID,
		Config:       p.cfg,
		Snapshot:     snap,
		Pool:         p.pool,
		Attempts:     p.attempts,
		StartedAt:    p.startedAt,
	}
}

// PracticeService runs practice sessions on top of the session engine
type PracticeService struct {
	vocabRepo    *repository.VocabularyRepository
	resultRepo   *repository.ResultRepository
	progressRepo *repository.ProgressRepository
	settingsRepo *repository.SettingsRepository
	email        *EmailService
	registry     *PracticeRegistry

	newRandom func() session.Random
	now       func() time.Time
}

// PracticeOption customises a PracticeService
type PracticeOption func(*PracticeService)

// WithRandomSource sets the random source given to every new engine.
func WithRandomSource(fn func() session.Random) PracticeOption {
	return func(s *PracticeService) { s.newRandom = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) PracticeOption {
	return func(s *PracticeService) { s.now = fn }
}

// NewPracticeService creates a new practice service
func NewPracticeService(
	vocabRepo *repository.VocabularyRepository,
	resultRepo *repository.ResultRepository,
	progressRepo *repository.ProgressRepository,
	settingsRepo *repository.SettingsRepository,
	email *EmailService,
	registry *PracticeRegistry,
	opts ...PracticeOption,
) *PracticeService {
	s := &PracticeService{
		vocabRepo:    vocabRepo,
		resultRepo:   resultRepo,
		progressRepo: progressRepo,
		settingsRepo: settingsRepo,
		email:        email,
		registry:     registry,
		newRandom: func() session.Random {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a practice for a vocabulary, optionally resuming saved progress.
func (s *PracticeService) Start(ctx context.Context, opts PracticeOptions) (*PracticeState, error) {
	vocab, err := s.vocabRepo.GetVocabularyByID(ctx, opts.VocabularyID)
	if err != nil {
		return nil, err
	}
	if vocab == nil {
		return nil, ErrVocabularyNotFound
	}

	stored, err := s.vocabRepo.GetWords(ctx, vocab.ID)
	if err != nil {
		return nil, err
	}
	words := models.WordsToTranslations(stored)

	settings, err := s.settingsRepo.GetUserSettings(ctx)
	if err != nil {
		return nil, err
	}

	p := &practice{
		id:             uuid.NewString(),
		vocabularyID:   vocab.ID,
		vocabularyName: vocab.Name,
		cfg:            settings.SessionConfig(),
		attempts:       make(map[string]int),
		startedAt:      s.now().UTC(),
	}
	if opts.Config != nil {
		p.cfg = *opts.Config
	}

	var restored *session.Snapshot
	if opts.Resume {
		saved, err := s.progressRepo.GetProgress(ctx, vocab.ID)
		if err != nil {
			return nil, err
		}
		if saved != nil {
			restored = s.restore(p, saved, words)
		}
	}

	if !p.resumed {
		limit := opts.Limit
		if limit == 0 {
			limit = settings.WordLimit
		}
		p.pool = words
		if limit > 0 && limit < len(words) {
			p.pool = wordlist.RandomSelection(words, limit, nil)
		}
	}
	if len(p.pool) == 0 {
		return nil, ErrNoWords
	}

	p.lastActive = s.now()
	p.engine = session.Start(p.pool, p.cfg, restored,
		session.WithRandom(s.newRandom()),
		session.WithObserver(p.observe),
	)
	s.registry.put(p)

	slog.Info("Practice started",
		"practice_id", p.id,
		"vocabulary_id", p.vocabularyID,
		"words", len(p.pool),
		"resumed", p.resumed,
	)

	st := p.state()
	return &st, nil
}

// restore applies saved progress to p. Words deleted from the vocabulary
// since the pause are dropped and edited words take their current text.
func (s *PracticeService) restore(p *practice, saved *models.SavedProgress, words []session.WordTranslation) *session.Snapshot {
	current := make(map[string]session.WordTranslation, len(words))
	for _, w := range words {
		current[w.Key()] = w
	}
	keep := func(list []session.WordTranslation) []session.WordTranslation {
		out := make([]session.WordTranslation, 0, len(list))
		for _, w := range list {
			if cw, ok := current[w.Key()]; ok {
				out = append(out, cw)
			}
		}
		return out
	}

	p.cfg = saved.Config
	p.pool = keep(saved.Pool)
	if len(saved.Pool) == 0 {
		p.pool = words
	}
	for k, n := range saved.Attempts {
		p.attempts[k] = n
	}
	if !saved.StartedAt.IsZero() {
		p.startedAt = saved.StartedAt
	}
	p.resumed = true

	return &session.Snapshot{
		Remaining: keep(saved.Snapshot.Remaining),
		Invalid:   keep(saved.Snapshot.Invalid),
	}
}

// State returns the current view of a practice
func (s *PracticeService) State(ctx context.Context, id string) (*PracticeState, error) {
	return s.withPractice(ctx, id, false, func(*practice) error { return nil })
}

// Submit checks an answer for the current prompt
func (s *PracticeService) Submit(ctx context.Context, id, answer string) (*AnswerResult, error) {
	var correct bool
	st, err := s.withPractice(ctx, id, true, func(p *practice) error {
		if _, ok := p.engine.Current(); !ok {
			return ErrNoPrompt
		}
		correct = p.engine.Validate(answer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AnswerResult{Correct: correct, State: *st}, nil
}

// Peek reveals the answer without grading
func (s *PracticeService) Peek(ctx context.Context, id string) (*PracticeState, error) {
	return s.withPractice(ctx, id, true, func(p *practice) error {
		if _, ok := p.engine.Current(); !ok {
			return ErrNoPrompt
		}
		p.engine.Peek()
		return nil
	})
}

// Next advances to the next prompt
func (s *PracticeService) Next(ctx context.Context, id string) (*PracticeState, error) {
	return s.withPractice(ctx, id, true, func(p *practice) error {
		p.engine.Next()
		return nil
	})
}

// RemoveWord drops a word from the practice and deletes it from the vocabulary
func (s *PracticeService) RemoveWord(ctx context.Context, id, wordID string) (*PracticeState, error) {
	return s.withPractice(ctx, id, true, func(p *practice) error {
		idx := -1
		for i, w := range p.pool {
			if w.Key() == wordID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrWordNotFound
		}
		word := p.pool[idx]

		if _, err := s.vocabRepo.DeleteWord(ctx, p.vocabularyID, word.ID); err != nil {
			return err
		}

		p.pool = append(p.pool[:idx:idx], p.pool[idx+1:]...)
		delete(p.attempts, wordID)
		p.engine.RemoveWord(word)

		slog.Info("Word removed during practice", "practice_id", p.id, "word_id", word.ID)
		return nil
	})
}

// Pause stores the practice's progress and stops it. It can be continued
// later with PracticeOptions.Resume.
func (s *PracticeService) Pause(ctx context.Context, id string) error {
	p, ok := s.registry.get(id)
	if !ok {
		return ErrPracticeNotFound
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return ErrPracticeFinished
	}
	if err := s.pause(ctx, p); err != nil {
		return err
	}
	slog.Info("Practice paused", "practice_id", p.id, "vocabulary_id", p.vocabularyID)
	return nil
}

// pause requires p.mu to be held.
func (s *PracticeService) pause(ctx context.Context, p *practice) error {
	if err := s.progressRepo.SaveProgress(ctx, p.progress(p.engine.Progress())); err != nil {
		return err
	}
	p.pending = nil
	p.finished = true
	s.registry.remove(p.id)
	return nil
}

// Finish ends a practice, stores its result and clears saved progress.
// Words still remaining count as missed.
func (s *PracticeService) Finish(ctx context.Context, id string) (*models.TestResult, error) {
	p, ok := s.registry.get(id)
	if !ok {
		return nil, ErrPracticeNotFound
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return nil, ErrPracticeFinished
	}

	res := p.engine.Finish()
	result := buildResult(p, res, s.now().UTC())

	if err := s.resultRepo.CreateResult(ctx, result); err != nil {
		return nil, err
	}
	if err := s.progressRepo.DeleteProgress(ctx, p.vocabularyID); err != nil {
		return nil, err
	}
	p.pending = nil
	p.finished = true
	s.registry.remove(p.id)

	slog.Info("Practice finished",
		"practice_id", p.id,
		"vocabulary_id", p.vocabularyID,
		"result_id", result.ID,
		"score", result.Score,
	)

	s.sendReport(ctx, p.vocabularyName, result)
	return result, nil
}

func buildResult(p *practice, res session.Result, finishedAt time.Time) *models.TestResult {
	missed := make(map[string]bool, len(res.RemainingAndInvalid))
	for _, w := range res.RemainingAndInvalid {
		missed[w.Key()] = true
	}

	result := &models.TestResult{
		VocabularyID: p.vocabularyID,
		Config:       p.cfg,
		StartedAt:    p.startedAt,
		FinishedAt:   finishedAt,
		TotalWords:   len(p.pool),
		Words:        make([]models.WordResult, 0, len(p.pool)),
	}
	for _, w := range p.pool {
		key := w.Key()
		attempts := p.attempts[key]
		wr := models.WordResult{
			WordID:      key,
			Original:    w.Original,
			Translation: w.Translation,
			Attempts:    attempts,
			Correct:     !missed[key],
			Skipped:     missed[key] && attempts == 0,
		}
		if wr.Correct {
			result.CorrectFirstTry++
		}
		result.Words = append(result.Words, wr)
	}
	result.Score = models.ScorePercent(result.CorrectFirstTry, result.TotalWords)
	result.Bucket = models.ScoreBucket(result.Score)
	return result
}

func (s *PracticeService) sendReport(ctx context.Context, vocabularyName string, result *models.TestResult) {
	if !s.email.IsEnabled() {
		return
	}
	settings, err := s.settingsRepo.GetUserSettings(ctx)
	if err != nil {
		slog.Warn("Failed to load settings for result email", "error", err)
		return
	}
	if settings.ReportEmail == "" {
		return
	}
	if err := s.email.SendResultSummary(ctx, settings.ReportEmail, vocabularyName, result); err != nil {
		slog.Warn("Failed to send result email", "result_id", result.ID, "error", err)
	}
}

// ExpireIdle pauses practices without activity for longer than idle and
// returns how many were stopped.
func (s *PracticeService) ExpireIdle(ctx context.Context, idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	expired := 0

	for _, p := range s.registry.all() {
		p.mu.Lock()
		if !p.finished && p.lastActive.Before(cutoff) {
			if err := s.pause(ctx, p); err != nil {
				slog.Warn("Failed to save idle practice", "practice_id", p.id, "error", err)
				// Drop it anyway so a broken practice cannot linger.
				p.finished = true
				s.registry.remove(p.id)
			}
			expired++
		}
		p.mu.Unlock()
	}

	if expired > 0 {
		slog.Info("Expired idle practices", "count", expired)
	}
	return expired
}

// withPractice runs fn with the practice locked and persists any snapshot
// the engine produced.
func (s *PracticeService) withPractice(ctx context.Context, id string, touch bool, fn func(p *practice) error) (*PracticeState, error) {
	p, ok := s.registry.get(id)
	if !ok {
		return nil, ErrPracticeNotFound
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return nil, ErrPracticeFinished
	}

	if err := fn(p); err != nil {
		return nil, err
	}
	if touch {
		p.lastActive = s.now()
	}

	if p.pending != nil {
		if err := s.progressRepo.SaveProgress(ctx, p.progress(*p.pending)); err != nil {
			return nil, fmt.Errorf("failed to save practice progress: %w", err)
		}
		p.pending = nil
	}

	st := p.state()
	return &st, nil
}
