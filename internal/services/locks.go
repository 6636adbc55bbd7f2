package services

import (
	"sync"
)

// PhoneLocks serializes compound read-modify-write sequences for a single
// user. Operations on different users never contend. Entries are kept for
// the life of the process; the map is bounded by the active user population.
type PhoneLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPhoneLocks() *PhoneLocks {
	return &PhoneLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the per-user lock and returns its release func.
func (pl *PhoneLocks) Lock(phone string) func() {
	pl.mu.Lock()
	m, ok := pl.locks[phone]
	if !ok {
		m = &sync.Mutex{}
		pl.locks[phone] = m
	}
	pl.mu.Unlock()

	m.Lock()
	return m.Unlock
}
