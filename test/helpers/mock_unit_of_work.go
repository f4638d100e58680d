package helpers

import (
	"context"
	"sync"
)

// Snapshotter is an in-memory store that can capture and later restore its contents
type Snapshotter interface {
	Snapshot() (restore func())
}

type mockUnitKey struct{}

// MockUnitOfWork gives in-memory repositories all-or-nothing writes.
// Participants are snapshotted when the outermost unit starts and restored if it fails.
type MockUnitOfWork struct {
	mu           sync.Mutex
	participants []Snapshotter
	rollbacks    int
}

// NewMockUnitOfWork creates a unit of work over the given stores
func NewMockUnitOfWork(participants ...Snapshotter) *MockUnitOfWork {
	return &MockUnitOfWork{participants: participants}
}

func (u *MockUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(mockUnitKey{}) != nil {
		return fn(ctx)
	}

	restores := make([]func(), len(u.participants))
	for i, p := range u.participants {
		restores[i] = p.Snapshot()
	}

	if err := fn(context.WithValue(ctx, mockUnitKey{}, u)); err != nil {
		for _, restore := range restores {
			restore()
		}
		u.mu.Lock()
		u.rollbacks++
		u.mu.Unlock()
		return err
	}
	return nil
}

// Rollbacks returns how many units were rolled back
func (u *MockUnitOfWork) Rollbacks() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rollbacks
}
