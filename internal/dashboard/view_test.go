package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/execdash/internal/domain"
)

func TestView_Refresh(t *testing.T) {
	want := &Snapshot{KPIs: domain.ExecutiveKPIs{TotalRevenue: 100}}
	v := NewView(&MockFetcher{
		FetchFunc: func(context.Context, Filters) (*Snapshot, error) { return want, nil },
	}, DefaultFilters)

	require.NoError(t, v.Refresh(context.Background()))

	state := v.State()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
	assert.Same(t, want, state.Snapshot)
}

func TestView_RefreshError(t *testing.T) {
	v := NewView(&MockFetcher{
		FetchFunc: func(context.Context, Filters) (*Snapshot, error) {
			return nil, &FetchError{Metric: MetricFunnel, Err: errors.New("status 500")}
		},
	}, DefaultFilters)

	err := v.Refresh(context.Background())
	require.Error(t, err)

	state := v.State()
	assert.False(t, state.Loading)
	assert.Equal(t, "Failed to fetch funnel data", state.Error)
	assert.Nil(t, state.Snapshot)
}

func TestView_StaleRefreshDiscarded(t *testing.T) {
	stale := &Snapshot{KPIs: domain.ExecutiveKPIs{TotalRevenue: 1}}
	fresh := &Snapshot{KPIs: domain.ExecutiveKPIs{TotalRevenue: 2}}

	started := make(chan struct{})
	var calls int
	var mu sync.Mutex

	v := NewView(&MockFetcher{
		FetchFunc: func(ctx context.Context, f Filters) (*Snapshot, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()

			if n == 1 {
				close(started)
				<-ctx.Done()
				// A slow response that still arrives after being superseded.
				return stale, nil
			}
			return fresh, nil
		},
	}, DefaultFilters)

	firstDone := make(chan error, 1)
	go func() { firstDone <- v.Refresh(context.Background()) }()

	<-started
	require.NoError(t, v.Refresh(context.Background()))

	assert.ErrorIs(t, <-firstDone, ErrStale)
	state := v.State()
	assert.Same(t, fresh, state.Snapshot)
	assert.False(t, state.Loading)
}

func TestView_SetFilters(t *testing.T) {
	var got []Filters
	v := NewView(&MockFetcher{
		FetchFunc: func(_ context.Context, f Filters) (*Snapshot, error) {
			got = append(got, f)
			return &Snapshot{}, nil
		},
	}, DefaultFilters)
	ctx := context.Background()

	require.NoError(t, v.SetFilters(ctx, Filters{DateRange: 30}))
	require.NoError(t, v.SetFilters(ctx, Filters{DateRange: 30, Channel: "Email"}))
	require.NoError(t, v.SetFilters(ctx, Filters{DateRange: 30, Channel: "Email", Platform: "Meta Ads"}))
	require.NoError(t, v.SetFilters(ctx, Filters{DateRange: 90, Channel: "Email"}))

	require.Len(t, got, 2, "display-only filters must not refetch")
	assert.Equal(t, 30, got[0].DateRange)
	assert.Equal(t, 90, got[1].DateRange)
	assert.Equal(t, "Email", v.State().Filters.Channel)
}

func TestSnapshot_RevenueTotals(t *testing.T) {
	s := &Snapshot{Revenue: []domain.RevenueDailyPoint{
		{Date: "2024-03-14", CurrentPeriodRevenue: 100, PreviousPeriodRevenue: 40},
		{Date: "2024-03-15", CurrentPeriodRevenue: 50, PreviousPeriodRevenue: 60},
	}}
	cur, prev := s.RevenueTotals()
	assert.Equal(t, 150.0, cur)
	assert.Equal(t, 100.0, prev)
}
