package tui

import (
	"context"

	"wordtrainer/internal/models"
	"wordtrainer/internal/service"
	"wordtrainer/internal/session"
)

// State is what the model renders for the current prompt.
type State struct {
	Prompt    string
	Answer    string
	Notes     string
	Outcome   session.Outcome
	Revealed  bool
	Complete  bool
	Remaining int
	Missed    int
	Total     int
}

// Summary is shown once the practice is finished.
type Summary struct {
	Total   int
	Correct int
	Score   int
	Bucket  string
	Missed  []session.WordTranslation
}

// Practice is the session the model drives. It is implemented over a bare
// engine for word list files and over the practice service for stored
// vocabularies.
type Practice interface {
	State() State
	Submit(answer string) (bool, error)
	Peek() error
	Next() error
	Remove() error
	Finish() (Summary, error)
	// Pause is called when the user quits without finishing.
	Pause() error
}

// EngineAdapter runs a practice directly on a session engine.
type EngineAdapter struct {
	engine   *session.Engine
	pool     []session.WordTranslation
	attempts map[string]int
	onRemove func(session.WordTranslation) error
}

// NewEngineAdapter starts an engine over words. onRemove, if set, is
// called before a word is dropped so the caller can update its source.
func NewEngineAdapter(words []session.WordTranslation, cfg session.Config, onRemove func(session.WordTranslation) error, opts ...session.Option) *EngineAdapter {
	a := &EngineAdapter{
		pool:     append([]session.WordTranslation(nil), words...),
		attempts: make(map[string]int),
		onRemove: onRemove,
	}
	opts = append(opts, session.WithObserver(a.observe))
	a.engine = session.Start(words, cfg, nil, opts...)
	return a
}

func (a *EngineAdapter) observe(ev session.Event) {
	if ev.Type == session.EventAttempt {
		a.attempts[ev.Word.Key()]++
	}
}

func (a *EngineAdapter) State() State {
	st := State{
		Outcome:   a.engine.Outcome(),
		Revealed:  a.engine.Revealed(),
		Complete:  a.engine.Complete(),
		Remaining: len(a.engine.Remaining()),
		Missed:    len(a.engine.Invalid()),
		Total:     len(a.pool),
	}
	if cur, ok := a.engine.Current(); ok {
		st.Prompt = a.engine.Prompt()
		if st.Revealed {
			st.Answer = a.engine.Expected()
			st.Notes = cur.Notes
		}
	}
	return st
}

func (a *EngineAdapter) Submit(answer string) (bool, error) {
	return a.engine.Validate(answer), nil
}

func (a *EngineAdapter) Peek() error {
	a.engine.Peek()
	return nil
}

func (a *EngineAdapter) Next() error {
	a.engine.Next()
	return nil
}

func (a *EngineAdapter) Remove() error {
	cur, ok := a.engine.Current()
	if !ok {
		return nil
	}
	if a.onRemove != nil {
		if err := a.onRemove(cur); err != nil {
			return err
		}
	}
	for i, w := range a.pool {
		if w.Key() == cur.Key() {
			a.pool = append(a.pool[:i], a.pool[i+1:]...)
			break
		}
	}
	a.engine.RemoveWord(cur)
	return nil
}

func (a *EngineAdapter) Finish() (Summary, error) {
	res := a.engine.Finish()
	sum := Summary{
		Total:  len(a.pool),
		Missed: res.RemainingAndInvalid,
	}
	sum.Correct = sum.Total - len(sum.Missed)
	sum.Score = models.ScorePercent(sum.Correct, sum.Total)
	sum.Bucket = models.ScoreBucket(sum.Score)
	return sum, nil
}

// Pause is a no-op; file practices are not persisted.
func (a *EngineAdapter) Pause() error { return nil }

// ServiceAdapter runs a stored practice through the practice service.
type ServiceAdapter struct {
	ctx   context.Context
	svc   *service.PracticeService
	state service.PracticeState
}

// NewServiceAdapter wraps a practice already started on svc.
func NewServiceAdapter(ctx context.Context, svc *service.PracticeService, started *service.PracticeState) *ServiceAdapter {
	return &ServiceAdapter{ctx: ctx, svc: svc, state: *started}
}

func (a *ServiceAdapter) State() State {
	st := a.state
	return State{
		Prompt:    st.Prompt,
		Answer:    st.Answer,
		Notes:     st.Notes,
		Outcome:   parseOutcome(st.Outcome),
		Revealed:  st.Revealed,
		Complete:  st.Complete,
		Remaining: st.Remaining,
		Missed:    st.Missed,
		Total:     st.Total,
	}
}

func parseOutcome(s string) session.Outcome {
	switch s {
	case session.OutcomeCorrect.String():
		return session.OutcomeCorrect
	case session.OutcomeIncorrect.String():
		return session.OutcomeIncorrect
	default:
		return session.OutcomeUnset
	}
}

func (a *ServiceAdapter) Submit(answer string) (bool, error) {
	res, err := a.svc.Submit(a.ctx, a.state.ID, answer)
	if err != nil {
		return false, err
	}
	a.state = res.State
	return res.Correct, nil
}

func (a *ServiceAdapter) Peek() error {
	return a.apply(a.svc.Peek(a.ctx, a.state.ID))
}

func (a *ServiceAdapter) Next() error {
	return a.apply(a.svc.Next(a.ctx, a.state.ID))
}

func (a *ServiceAdapter) Remove() error {
	if a.state.WordID == "" {
		return nil
	}
	return a.apply(a.svc.RemoveWord(a.ctx, a.state.ID, a.state.WordID))
}

func (a *ServiceAdapter) apply(st *service.PracticeState, err error) error {
	if err != nil {
		return err
	}
	a.state = *st
	return nil
}

func (a *ServiceAdapter) Finish() (Summary, error) {
	result, err := a.svc.Finish(a.ctx, a.state.ID)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{
		Total:   result.TotalWords,
		Correct: result.CorrectFirstTry,
		Score:   result.Score,
		Bucket:  result.Bucket,
	}
	for _, w := range result.Missed() {
		sum.Missed = append(sum.Missed, session.WordTranslation{ID: w.WordID, Original: w.Original, Translation: w.Translation})
	}
	return sum, nil
}

func (a *ServiceAdapter) Pause() error {
	return a.svc.Pause(a.ctx, a.state.ID)
}
