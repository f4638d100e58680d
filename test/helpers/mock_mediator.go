package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	ledgerCommands "github.com/LeonIngman/LTH-Game-sub001/internal/application/ledger/commands"
)

// MockMediator is a test double for the Mediator interface.
// By default it acknowledges RecordDayTransactionsCommand and records every request it sees.
type MockMediator struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, request common.Request) (common.Response, error)
	requests []common.Request
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request common.Request) (common.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, request)
	sendFunc := m.sendFunc
	m.mu.Unlock()

	if sendFunc != nil {
		return sendFunc(ctx, request)
	}

	switch req := request.(type) {
	case *ledgerCommands.RecordDayTransactionsCommand:
		balance := req.OpeningCash
		for _, movement := range req.Movements {
			balance += movement.Amount
		}
		return &ledgerCommands.RecordDayTransactionsResponse{ClosingBalance: balance}, nil

	default:
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
}

// Register is a no-op for the mock
func (m *MockMediator) Register(requestType reflect.Type, handler common.RequestHandler) error {
	return nil
}

// RegisterMiddleware is a no-op for the mock
func (m *MockMediator) RegisterMiddleware(middleware common.Middleware) {}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request common.Request) (common.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// Requests returns every request sent so far
func (m *MockMediator) Requests() []common.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]common.Request(nil), m.requests...)
}
