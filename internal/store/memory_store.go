package store

import (
	"sync"

	"github.com/gridironsim/franchise-flow/internal/domain"
)

// MemoryStore keeps a thread-safe snapshot of the franchise state in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	state domain.GameState
	set   bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// State returns a deep copy of the current snapshot.
func (s *MemoryStore) State() (domain.GameState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return domain.GameState{}, false
	}
	return s.state.Clone(), true
}

// SetState replaces the existing snapshot.
func (s *MemoryStore) SetState(state domain.GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state.Clone()
	s.set = true
}

// Clear removes the snapshot.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.GameState{}
	s.set = false
}
