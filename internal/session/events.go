package session

// EventType enumerates engine notifications.
type EventType string

const (
	// EventPrompt fires when a new word becomes current.
	EventPrompt EventType = "prompt"
	// EventAttempt fires after every Validate call.
	EventAttempt EventType = "attempt"
	// EventPeek fires when the answer is revealed without grading.
	EventPeek EventType = "peek"
	// EventProgress fires when a word leaves the pass.
	EventProgress EventType = "progress"
	// EventComplete fires once when no words remain.
	EventComplete EventType = "complete"
)

// Event describes a state change. Snapshot is set for attempt, progress
// and complete events so that a progress sink can persist it.
type Event struct {
	Type     EventType
	Word     WordTranslation
	Answer   string
	Correct  bool
	Recorded bool
	Snapshot Snapshot
}

// Observer receives engine events synchronously.
type Observer func(Event)

// Subscribe registers fn for all future events.
func (e *Engine) Subscribe(fn Observer) {
	e.observers = append(e.observers, fn)
}

func (e *Engine) emit(ev Event) {
	for _, fn := range e.observers {
		fn(ev)
	}
}
