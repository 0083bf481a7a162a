// Package flags holds the process-wide feature toggles. The store is an
// explicit object handed to the engine at construction, initialized at
// startup and mutated only through Set.
package flags

import "sync"

// Feature ids consulted by the engine.
const (
	// DirectStream makes plain-video requests try a directly playable URL
	// before falling back to a local download.
	DirectStream = 1
)

// Store is a concurrency-safe id -> bool lookup.
type Store struct {
	mu     sync.RWMutex
	values map[int]bool
}

// NewStore returns a store seeded with defaults. A nil map is allowed.
func NewStore(defaults map[int]bool) *Store {
	values := make(map[int]bool, len(defaults))
	for id, on := range defaults {
		values[id] = on
	}
	return &Store{values: values}
}

// IsOn reports whether a feature is enabled. Unknown ids are off.
func (s *Store) IsOn(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[id]
}

// Set enables or disables a feature.
func (s *Store) Set(id int, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[id] = on
}
