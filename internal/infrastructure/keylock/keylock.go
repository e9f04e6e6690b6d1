// Package keylock provides per-key mutual exclusion for check-then-act
// sequences that must be serialized by entity id (one outlet, one wallet)
// without a global lock.
package keylock

import "sync"

// KeyedMutex hands out one mutex per key. Locks are retained for the
// lifetime of the process; the key space is bounded by the number of
// outlets and consumers.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty KeyedMutex.
func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
//
//	unlock := km.Lock(outletID)
//	defer unlock()
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
