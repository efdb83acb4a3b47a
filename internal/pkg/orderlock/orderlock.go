// Package orderlock provides mutual exclusion keyed by order identifier.
// The fulfillment workflow mutates three stores without a distributed
// transaction, so concurrent calls against the same order must be serialized
// in-process before the delivery/invoicing tail runs.
package orderlock

import "sync"

// KeyedMutex serializes critical sections per string key.
// Locks are created lazily and kept for the lifetime of the process;
// the key space here is bounded by the number of distinct orders a single
// instance fulfills.
type KeyedMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock acquires the mutex for the given key, blocking until it is free.
func (m *KeyedMutex) Lock(key string) {
	mu, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

// Unlock releases the mutex for the given key.
// Unlocking a key that was never locked panics, matching sync.Mutex semantics.
func (m *KeyedMutex) Unlock(key string) {
	mu, ok := m.locks.Load(key)
	if !ok {
		panic("orderlock: unlock of unheld key " + key)
	}
	mu.(*sync.Mutex).Unlock()
}
