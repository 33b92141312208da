// Package lock provides a mutex table keyed by integer id with bounded waits.
package lock

import (
	"context"
	"errors"
	"sync"
)

// ErrTimeout is returned when the lock could not be acquired before the context ended.
var ErrTimeout = errors.New("lock: wait timed out")

type entry struct {
	ch      chan struct{}
	waiters int
}

// KeyedMutex serialises holders of the same key while different keys never contend.
// Entries are dropped once nobody holds or waits for them.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[int]*entry
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[int]*entry),
	}
}

// Lock blocks until key is free or ctx is done. On success the returned function
// releases the lock and must be called exactly once.
func (k *KeyedMutex) Lock(ctx context.Context, key int) (func(), error) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		k.entries[key] = e
	}
	e.waiters++
	k.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.ch
				k.release(key, e)
			})
		}, nil
	case <-ctx.Done():
		k.release(key, e)
		return nil, errors.Join(ErrTimeout, ctx.Err())
	}
}

func (k *KeyedMutex) release(key int, e *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e.waiters--
	if e.waiters == 0 {
		delete(k.entries, key)
	}
}

// Len returns the number of keys currently held or waited on.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.entries)
}
