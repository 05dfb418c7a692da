package memory

import (
	"sync"

	"poe2-ladder-tracker/internal/ladder"
)

// Repository holds the last rank observed for the tracked character, used to
// decide whether a cycle's result is news worth notifying about.
type Repository struct {
	last *ladder.CharacterRank
	mu   sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveLast(result *ladder.CharacterRank) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = result
}

func (r *Repository) GetLast() *ladder.CharacterRank {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}
