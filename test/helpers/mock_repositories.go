package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/ledger"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/shared"
)

// MockSessionRepository is an in-memory game.SessionRepository
type MockSessionRepository struct {
	mu       sync.RWMutex
	sessions map[shared.SessionKey]game.Session
	saves    int
	saveErr  error
}

// NewMockSessionRepository creates a new mock session repository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[shared.SessionKey]game.Session)}
}

// FindByKey returns a copy of the stored session
func (m *MockSessionRepository) FindByKey(ctx context.Context, key shared.SessionKey) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[key]
	if !ok {
		return nil, shared.NewNotFoundError("session", key.String())
	}
	return &s, nil
}

// Save upserts and bumps the version
func (m *MockSessionRepository) Save(ctx context.Context, session *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	session.Version = m.sessions[session.Key].Version + 1
	m.sessions[session.Key] = *session
	m.saves++
	return nil
}

// Delete removes a session
func (m *MockSessionRepository) Delete(ctx context.Context, key shared.SessionKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
	return nil
}

// SaveCount returns how many times Save succeeded
func (m *MockSessionRepository) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// FailSavesWith makes every subsequent Save return err
func (m *MockSessionRepository) FailSavesWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Snapshot captures the stored sessions and save count
func (m *MockSessionRepository) Snapshot() func() {
	m.mu.RLock()
	sessions := make(map[shared.SessionKey]game.Session, len(m.sessions))
	for k, v := range m.sessions {
		sessions[k] = v
	}
	saves := m.saves
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.sessions = sessions
		m.saves = saves
	}
}

// MockPerformanceRepository is an in-memory game.PerformanceRepository
type MockPerformanceRepository struct {
	mu           sync.RWMutex
	performances []*game.Performance
}

// NewMockPerformanceRepository creates a new mock performance repository
func NewMockPerformanceRepository() *MockPerformanceRepository {
	return &MockPerformanceRepository{}
}

func (m *MockPerformanceRepository) Add(ctx context.Context, performance *game.Performance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.performances = append(m.performances, performance)
	return nil
}

// FindByUser returns a user's attempts, newest first
func (m *MockPerformanceRepository) FindByUser(ctx context.Context, userID shared.UserID) ([]*game.Performance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*game.Performance
	for _, p := range m.performances {
		if p.Result.UserID == userID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out, nil
}

// All returns every recorded performance
func (m *MockPerformanceRepository) All() []*game.Performance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*game.Performance(nil), m.performances...)
}

func (m *MockPerformanceRepository) Snapshot() func() {
	m.mu.RLock()
	performances := append([]*game.Performance(nil), m.performances...)
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.performances = performances
	}
}

// MockTransactionRepository is an in-memory ledger.TransactionRepository
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions []*ledger.Transaction
}

// NewMockTransactionRepository creates a new mock transaction repository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) CreateBatch(ctx context.Context, transactions []*ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, transactions...)
	return nil
}

// FindBySession applies filters, ordering and pagination the way the gorm repository does
func (m *MockTransactionRepository) FindBySession(ctx context.Context, key shared.SessionKey, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := m.matching(key, opts)
	if opts.OrderBy == "day DESC" {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *MockTransactionRepository) CountBySession(ctx context.Context, key shared.SessionKey, opts ledger.QueryOptions) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matching(key, opts)), nil
}

// matching returns filtered transactions in day then insertion order
func (m *MockTransactionRepository) matching(key shared.SessionKey, opts ledger.QueryOptions) []*ledger.Transaction {
	var out []*ledger.Transaction
	for _, tx := range m.transactions {
		if tx.UserID() != key.UserID || tx.LevelID() != key.LevelID {
			continue
		}
		if opts.FromDay > 0 && tx.Day() < opts.FromDay {
			continue
		}
		if opts.ToDay > 0 && tx.Day() > opts.ToDay {
			continue
		}
		if opts.Category != nil && tx.Category() != *opts.Category {
			continue
		}
		if opts.TransactionType != nil && tx.TransactionType() != *opts.TransactionType {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day() < out[j].Day() })
	return out
}

func (m *MockTransactionRepository) Snapshot() func() {
	m.mu.RLock()
	transactions := append([]*ledger.Transaction(nil), m.transactions...)
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.transactions = transactions
	}
}

func (m *MockTransactionRepository) DeleteBySession(ctx context.Context, key shared.SessionKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.transactions[:0]
	for _, tx := range m.transactions {
		if tx.UserID() != key.UserID || tx.LevelID() != key.LevelID {
			kept = append(kept, tx)
		}
	}
	m.transactions = kept
	return nil
}
