package dashboard

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned by Refresh when a newer refresh superseded it.
var ErrStale = errors.New("refresh superseded by a newer one")

// View holds dashboard state across refreshes. Each refresh cancels the one
// in flight, and results of a superseded refresh are dropped.
type View struct {
	fetcher Fetcher

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State
}

func NewView(fetcher Fetcher, initial Filters) *View {
	return &View{
		fetcher: fetcher,
		state:   State{Filters: initial},
	}
}

// State returns a copy of the current view state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// SetFilters applies f and refreshes when the date range changed.
// Channel and platform changes only update the view state.
func (v *View) SetFilters(ctx context.Context, f Filters) error {
	v.mu.Lock()
	refetch := f.DateRange != v.state.Filters.DateRange || v.state.Snapshot == nil
	v.state.Filters = f
	v.mu.Unlock()

	if !refetch {
		return nil
	}
	return v.Refresh(ctx)
}

// Refresh reloads the snapshot for the active filters.
func (v *View) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.state.Loading = true
	v.state.Error = ""
	filters := v.state.Filters
	v.mu.Unlock()

	defer cancel()
	snap, err := v.fetcher.Fetch(ctx, filters)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return ErrStale
	}
	v.cancel = nil
	v.state.Loading = false
	if err != nil {
		v.state.Error = err.Error()
		return err
	}
	v.state.Snapshot = snap
	return nil
}
