package service

import "sync"

// PracticeRegistry holds the practices that are currently running.
type PracticeRegistry struct {
	mu        sync.RWMutex
	practices map[string]*practice
}

// NewPracticeRegistry creates an empty registry
func NewPracticeRegistry() *PracticeRegistry {
	return &PracticeRegistry{practices: make(map[string]*practice)}
}

// Len returns the number of running practices
func (r *PracticeRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.practices)
}

func (r *PracticeRegistry) get(id string) (*practice, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.practices[id]
	return p, ok
}

func (r *PracticeRegistry) put(p *practice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.practices[p.id] = p
}

func (r *PracticeRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.practices, id)
}

func (r *PracticeRegistry) all() []*practice {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*practice, 0, len(r.practices))
	for _, p := range r.practices {
		out = append(out, p)
	}
	return out
}
