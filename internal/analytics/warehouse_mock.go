package analytics

import (
	"context"
	"sync"

	"github.com/emiliopalmerini/execdash/internal/ports"
)

// MockWarehouse is a mock implementation of ports.Warehouse for testing.
type MockWarehouse struct {
	QueryFunc func(ctx context.Context, q ports.Query) ([]ports.Row, error)
	CloseFunc func() error

	mu    sync.Mutex
	calls []ports.Query
}

func (m *MockWarehouse) Query(ctx context.Context, q ports.Query) ([]ports.Row, error) {
	m.mu.Lock()
	m.calls = append(m.calls, q)
	m.mu.Unlock()

	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, q)
	}
	return nil, nil
}

func (m *MockWarehouse) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns the queries received so far.
func (m *MockWarehouse) Calls() []ports.Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.Query, len(m.calls))
	copy(out, m.calls)
	return out
}

// RowsWarehouse returns a MockWarehouse answering every query with rows.
func RowsWarehouse(rows ...ports.Row) *MockWarehouse {
	return &MockWarehouse{
		QueryFunc: func(context.Context, ports.Query) ([]ports.Row, error) {
			return rows, nil
		},
	}
}
