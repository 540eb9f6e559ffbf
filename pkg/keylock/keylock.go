// Package keylock provides in-process mutual exclusion scoped to a string
// key. Booking creation locks on (artist, date) so the validate-then-write
// sequence cannot interleave for the same calendar day, while unrelated keys
// proceed concurrently.
package keylock

import (
	"context"
	"sync"
)

// KeyedMutex is a lazily grown set of named mutexes. Entries are never
// reclaimed; the key space here (artists x dates, booking ids) is small.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	m := k.get(key)
	m.Lock()
	return m.Unlock
}

// LockCtx acquires the mutex for key unless ctx is done first. The returned
// unlock function is nil when acquisition failed.
func (k *KeyedMutex) LockCtx(ctx context.Context, key string) (func(), error) {
	m := k.get(key)

	acquired := make(chan struct{})
	go func() {
		m.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		return m.Unlock, nil
	case <-ctx.Done():
		// The goroutine will still acquire the mutex eventually; release it
		// so the next waiter is not blocked forever.
		go func() {
			<-acquired
			m.Unlock()
		}()
		return nil, ctx.Err()
	}
}
