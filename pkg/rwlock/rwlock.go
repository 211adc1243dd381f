// Package rwlock provides the reader/writer lock guarding the shared index:
// any number of concurrent readers, or exactly one writer, with the writer's
// goroutine recorded so a release by anyone else is caught as misuse.
package rwlock

import (
	"sync"

	"github.com/petermattis/goid"
)

// noOwner marks the lock as having no active writer.
const noOwner int64 = -1

// Lock is a condition-variable based reader/writer lock. The zero value is
// not usable; construct with New. Re-entrant acquisition is not supported.
type Lock struct {
	mu      sync.Mutex
	cond    *sync.Cond
	readers int
	writers int
	owner   int64
}

// New creates an unlocked Lock.
func New() *Lock {
	l := &Lock{owner: noOwner}
	l.cond = sync.NewCond(&l.mu)

	return l
}

// RLock blocks while a writer is active, then registers the caller as a
// reader. Multiple readers may hold the lock at once.
func (l *Lock) RLock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.writers > 0 {
		l.cond.Wait()
	}

	l.readers++
}

// RUnlock releases one reader hold. When the last reader leaves, all waiters
// are woken so a pending writer can proceed.
func (l *Lock) RUnlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.readers == 0 {
		panic("rwlock: RUnlock without matching RLock")
	}

	l.readers--
	if l.readers == 0 {
		l.cond.Broadcast()
	}
}

// Lock blocks while any reader or writer is active, then takes exclusive
// ownership and records the calling goroutine as the owner.
func (l *Lock) Lock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.readers > 0 || l.writers > 0 {
		l.cond.Wait()
	}

	l.writers = 1
	l.owner = goid.Get()
}

// Unlock releases the write hold. A release by a goroutine other than the
// recorded owner is a programming error and panics; there is no runtime
// condition under which it can be retried.
func (l *Lock) Unlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writers == 0 || l.owner != goid.Get() {
		panic("rwlock: concurrent modification: write lock released by non-owner")
	}

	l.owner = noOwner
	l.writers = 0
	l.cond.Broadcast()
}
