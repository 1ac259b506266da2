package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the most recent runs in process memory.
type MemoryStore struct {
	runs     []Run
	capacity int
	mu       sync.RWMutex
}

// NewMemoryStore creates a store that retains at most capacity runs.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = MaxRecent
	}
	return &MemoryStore{capacity: capacity}
}

// Record appends a run, evicting the oldest once full.
func (s *MemoryStore) Record(_ context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	if len(s.runs) > s.capacity {
		s.runs = s.runs[len(s.runs)-s.capacity:]
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Run, error) {
	limit = normalizeLimit(limit)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Run, 0, min(limit, len(s.runs)))
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
