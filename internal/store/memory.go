// internal/store/memory.go
//
// In-memory implementation of the round.Store interface.
// Rounds are live objects (mutexes, debounce timers), so the canonical home
// for an active round is process memory; only finished-round summaries are
// persisted, by internal/results.
//
// Characteristics:
//   - Stores *round.Round objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - round.ErrNotFound is returned for missing round IDs on Get().

package store

import (
	"context"
	"sync"

	"github.com/kipackjeong/wordbingo-server/internal/round"
)

// memory is an in-memory map-based round.Store implementation.
type memory struct {
	mu     sync.RWMutex            // guards rounds map
	rounds map[string]*round.Round // keyed by Round.ID
}

// NewMemory constructs a new in-memory round store.
func NewMemory() round.Store {
	return &memory{rounds: make(map[string]*round.Round)}
}

// Save adds or updates the round in the map.
func (m *memory) Save(ctx context.Context, rd *round.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[rd.ID] = rd
	return nil
}

// Get looks up a round by ID.
func (m *memory) Get(ctx context.Context, id string) (*round.Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rd, ok := m.rounds[id]; ok {
		return rd, nil
	}
	return nil, round.ErrNotFound
}
