package storage

import "sync"

// keyLock hands out one mutex per user id and forgets it once nobody
// holds or waits on it.
type keyLock struct {
	mu    sync.Mutex
	locks map[uint64]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[uint64]*refMutex)}
}

func (k *keyLock) Lock(id uint64) {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &refMutex{}
		k.locks[id] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
}

func (k *keyLock) Unlock(id uint64) {
	k.mu.Lock()
	m := k.locks[id]
	m.refs--
	if m.refs == 0 {
		delete(k.locks, id)
	}
	k.mu.Unlock()

	m.Unlock()
}
