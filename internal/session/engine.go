// Package session implements the self-testing engine that drives a single
// practice session: picking prompts, checking answers, tracking missed
// words and reporting what is left when the session ends.
package session

import (
	"math/rand"
	"time"
)

// WordTranslation is a single prompt/answer pair.
type WordTranslation struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Original    string `json:"original" yaml:"original"`
	Translation string `json:"translation" yaml:"translation"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Key identifies a word inside a session. Words without an ID fall back to
// their original text.
func (w WordTranslation) Key() string {
	if w.ID != "" {
		return w.ID
	}
	return w.Original
}

// Config controls how a session treats answers.
type Config struct {
	// RepeatInvalid keeps wrongly answered words in the pass until they are
	// answered correctly on a fresh showing.
	RepeatInvalid bool `json:"repeat_invalid"`
	// Reverse prompts with the translation and expects the original.
	Reverse bool `json:"reverse"`
	// StrictMatch disables accent folding.
	StrictMatch bool `json:"strict_match"`
}

// Snapshot is the serializable part of a session used for pause/resume.
type Snapshot struct {
	Remaining []WordTranslation `json:"remaining"`
	Invalid   []WordTranslation `json:"invalid"`
}

// Result is reported by Finish.
type Result struct {
	// RemainingAndInvalid holds every word that was missed at least once or
	// never completed, deduplicated by key.
	RemainingAndInvalid []WordTranslation `json:"remaining_and_invalid"`
}

// Outcome is the tri-state result of the attempts on the current prompt.
type Outcome int

const (
	OutcomeUnset Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	default:
		return "unset"
	}
}

// Random is the source used to pick the next prompt.
type Random interface {
	Intn(n int) int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithObserver subscribes fn before the first prompt is picked.
func WithObserver(fn Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, fn)
	}
}

// WithRandom replaces the default random source.
func WithRandom(r Random) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// Engine holds the state of one practice session. It is owned by a single
// caller and is not safe for concurrent use.
type Engine struct {
	cfg       Config
	rng       Random
	remaining []WordTranslation
	invalid   []WordTranslation
	current   *WordTranslation
	outcome   Outcome
	revealed  bool
	complete  bool
	observers []Observer
}

// Start creates an engine over words. When restored is non-nil the
// remaining and invalid words are taken from it instead of words. The
// first prompt is picked before Start returns.
func Start(words []WordTranslation, cfg Config, restored *Snapshot, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}

	if restored != nil {
		e.remaining = cloneWords(restored.Remaining)
		for _, w := range restored.Invalid {
			e.markInvalid(w)
		}
	} else {
		e.remaining = cloneWords(words)
	}

	e.Next()
	return e
}

// Next settles the current prompt and advances to a random remaining word.
//
// The current word leaves the pass when it was answered correctly or when
// invalid words are not repeated; a word skipped without a recorded
// outcome counts as missed in that case. With a single word left whose
// outcome is a failure, Next does nothing.
func (e *Engine) Next() {
	if e.complete {
		return
	}

	if e.current != nil {
		if len(e.remaining) == 1 && e.outcome == OutcomeIncorrect {
			return
		}
		e.settle()
	}

	if len(e.remaining) == 0 {
		e.current = nil
		e.resetAttempt()
		e.complete = true
		e.emit(Event{Type: EventComplete, Snapshot: e.Progress()})
		return
	}

	picked := e.remaining[e.rng.Intn(len(e.remaining))]
	e.current = &picked
	e.resetAttempt()
	e.emit(Event{Type: EventPrompt, Word: picked})
}

func (e *Engine) settle() {
	word := *e.current
	switch {
	case e.outcome == OutcomeCorrect:
		e.removeRemaining(word.Key())
	case !e.cfg.RepeatInvalid:
		if e.outcome == OutcomeUnset {
			e.markInvalid(word)
		}
		e.removeRemaining(word.Key())
	default:
		return
	}
	e.emit(Event{Type: EventProgress, Word: word, Snapshot: e.Progress()})
}

// Validate checks answer against the expected side of the current word.
//
// Only the first attempt at a prompt is recorded, except for the last
// remaining word whose outcome follows every attempt. A wrong answer
// always marks the word invalid; a correct one reveals the answer. The
// prompt is not advanced.
func (e *Engine) Validate(answer string) bool {
	if e.current == nil {
		return false
	}
	word := *e.current

	ok := Matches(answer, e.Expected(), e.cfg.StrictMatch)

	recorded := false
	if e.outcome == OutcomeUnset || len(e.remaining) == 1 {
		e.outcome = OutcomeIncorrect
		if ok {
			e.outcome = OutcomeCorrect
		}
		recorded = true
	}
	if ok {
		e.revealed = true
	} else {
		e.markInvalid(word)
	}

	e.emit(Event{
		Type:     EventAttempt,
		Word:     word,
		Answer:   answer,
		Correct:  ok,
		Recorded: recorded,
		Snapshot: e.Progress(),
	})
	return ok
}

// Peek reveals the expected answer without grading.
func (e *Engine) Peek() {
	if e.current == nil {
		return
	}
	e.revealed = true
	e.emit(Event{Type: EventPeek, Word: *e.current})
}

// RemoveWord drops word from the session entirely. If it was the current
// prompt the engine advances.
func (e *Engine) RemoveWord(word WordTranslation) {
	key := word.Key()
	e.removeRemaining(key)
	for i, w := range e.invalid {
		if w.Key() == key {
			e.invalid = append(e.invalid[:i], e.invalid[i+1:]...)
			break
		}
	}
	e.emit(Event{Type: EventProgress, Word: word, Snapshot: e.Progress()})

	if e.current != nil && e.current.Key() == key {
		e.current = nil
		e.resetAttempt()
		e.Next()
	}
}

// Finish ends the session and returns every missed or unfinished word,
// deduplicated by key with the first occurrence kept. A current word
// already answered correctly counts as done. All state is cleared.
func (e *Engine) Finish() Result {
	unsettled := e.unsettled()
	merged := make([]WordTranslation, 0, len(e.invalid)+len(unsettled))
	seen := make(map[string]bool, cap(merged))
	for _, list := range [][]WordTranslation{e.invalid, unsettled} {
		for _, w := range list {
			if seen[w.Key()] {
				continue
			}
			seen[w.Key()] = true
			merged = append(merged, w)
		}
	}

	e.remaining = nil
	e.invalid = nil
	e.current = nil
	e.resetAttempt()
	e.complete = true

	return Result{RemainingAndInvalid: merged}
}

// Progress exports the current snapshot. Like Finish it leaves out a
// current word already answered correctly.
func (e *Engine) Progress() Snapshot {
	return Snapshot{
		Remaining: cloneWords(e.unsettled()),
		Invalid:   cloneWords(e.invalid),
	}
}

// unsettled returns the remaining words without the current one when its
// correct answer is still waiting for Next to settle it.
func (e *Engine) unsettled() []WordTranslation {
	if e.current == nil || e.outcome != OutcomeCorrect {
		return e.remaining
	}
	key := e.current.Key()
	out := make([]WordTranslation, 0, len(e.remaining))
	for _, w := range e.remaining {
		if w.Key() != key {
			out = append(out, w)
		}
	}
	return out
}

// Current returns the active word.
func (e *Engine) Current() (WordTranslation, bool) {
	if e.current == nil {
		return WordTranslation{}, false
	}
	return *e.current, true
}

// Prompt returns the side of the current word shown to the user.
func (e *Engine) Prompt() string {
	if e.current == nil {
		return ""
	}
	if e.cfg.Reverse {
		return e.current.Translation
	}
	return e.current.Original
}

// Expected returns the side of the current word the user has to type.
func (e *Engine) Expected() string {
	if e.current == nil {
		return ""
	}
	if e.cfg.Reverse {
		return e.current.Original
	}
	return e.current.Translation
}

func (e *Engine) Config() Config               { return e.cfg }
func (e *Engine) Outcome() Outcome             { return e.outcome }
func (e *Engine) Revealed() bool               { return e.revealed }
func (e *Engine) Complete() bool               { return e.complete }
func (e *Engine) Remaining() []WordTranslation { return cloneWords(e.remaining) }
func (e *Engine) Invalid() []WordTranslation   { return cloneWords(e.invalid) }

func (e *Engine) resetAttempt() {
	e.outcome = OutcomeUnset
	e.revealed = false
}

func (e *Engine) markInvalid(word WordTranslation) {
	key := word.Key()
	for _, w := range e.invalid {
		if w.Key() == key {
			return
		}
	}
	e.invalid = append(e.invalid, word)
}

func (e *Engine) removeRemaining(key string) {
	kept := e.remaining[:0]
	for _, w := range e.remaining {
		if w.Key() != key {
			kept = append(kept, w)
		}
	}
	e.remaining = kept
}

func cloneWords(words []WordTranslation) []WordTranslation {
	out := make([]WordTranslation, len(words))
	copy(out, words)
	return out
}
