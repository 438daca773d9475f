// Package keylock serializes work per key inside a single process.
//
// Each key gets its own mutex, created on first use and dropped once the last
// holder or waiter releases it, so the map only holds keys that are in use.
// Different keys never contend with each other.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Map is a set of per-key mutexes. The zero value is not usable; call New.
type Map struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New returns an empty Map.
func New() *Map {
	return &Map{locks: make(map[string]*entry)}
}

// Lock blocks until the lock for key is held and returns the function that
// releases it. The unlock function must be called exactly once.
func (m *Map) Lock(key string) (unlock func()) {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		m.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}

// Len reports how many keys are currently locked or waited on.
func (m *Map) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
