// internal/debounce/debounce.go
//
// Per-key trailing-edge debounce on top of time.AfterFunc.
// Responsibilities:
//   - Coalesce rapid calls for the same key: only the latest scheduled
//     function runs, after the full delay has elapsed since the last call
//     (last edit wins).
//   - Independent keys never interfere with each other.
//   - Cancel a single key or everything at once (round ends, deadline hits).
//
// The callback runs on the timer's goroutine. Before running it re-checks,
// under the lock, that it is still the timer registered for its key; a
// callback that lost a race with Schedule or CancelAll simply returns.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is how long a cell stays quiet before validation fires.
const DefaultDelay = 500 * time.Millisecond

// Scheduler debounces work per key.
type Scheduler struct {
	delay time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New builds a scheduler; delay <= 0 falls back to DefaultDelay.
func New(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// Delay reports the configured debounce window.
func (s *Scheduler) Delay() time.Duration { return s.delay }

// Schedule arms (or re-arms) the timer for key. Any previously scheduled
// function for the same key is dropped, whether or not its timer already
// expired.
func (s *Scheduler) Schedule(key string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.timers[key]; ok {
		old.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		if s.timers[key] != t {
			// Superseded or cancelled while we waited for the lock.
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.mu.Unlock()
		fn()
	})
	s.timers[key] = t
}

// Cancel drops the pending function for key, reporting whether one existed.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[key]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.timers, key)
	return true
}

// CancelAll drops every pending function and returns how many were dropped.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.timers)
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
	return n
}

// Pending reports how many keys have a function waiting to run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
