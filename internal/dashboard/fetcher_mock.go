package dashboard

import "context"

// MockFetcher is a mock implementation of Fetcher for testing.
type MockFetcher struct {
	FetchFunc func(ctx context.Context, f Filters) (*Snapshot, error)
}

func (m *MockFetcher) Fetch(ctx context.Context, f Filters) (*Snapshot, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, f)
	}
	return &Snapshot{}, nil
}
