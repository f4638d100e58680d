package common

import (
	"sync"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

type sessionLock struct {
	mu   sync.Mutex
	refs int // holders plus waiters; guarded by SessionLocks.mu
}

// SessionLocks serialises day transitions per (user, level) session.
// An entry lives only while someone holds or waits for it.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[shared.SessionKey]*sessionLock
}

func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[shared.SessionKey]*sessionLock)}
}

// Lock blocks until the session is free and returns its unlock function.
// The unlock function must be called exactly once.
func (l *SessionLocks) Lock(key shared.SessionKey) func() {
	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &sessionLock{}
		l.locks[key] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// Len returns how many sessions currently have a lock entry
func (l *SessionLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
