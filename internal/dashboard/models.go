package dashboard

import (
	"time"

	"github.com/emiliopalmerini/execdash/internal/domain"
)

// Filters is the user's dashboard selection. Only DateRange reaches the
// query service; Channel and Platform are kept for display.
type Filters struct {
	DateRange int
	Channel   string
	Platform  string
}

// DefaultFilters is the selection a fresh dashboard starts with.
var DefaultFilters = Filters{DateRange: 30}

// Snapshot is one complete set of dashboard data.
type Snapshot struct {
	KPIs      domain.ExecutiveKPIs
	Revenue   []domain.RevenueDailyPoint
	Channels  []domain.ChannelMetric
	Marketing []domain.MarketingMetric
	Inventory []domain.InventoryMetric
	Funnel    []domain.FunnelStage
	FetchedAt time.Time
}

// RevenueTotals sums the current and previous period revenue series.
func (s *Snapshot) RevenueTotals() (current, previous float64) {
	for _, p := range s.Revenue {
		current += p.CurrentPeriodRevenue
		previous += p.PreviousPeriodRevenue
	}
	return current, previous
}

// State is what the dashboard renders: a loading flag, at most one error
// message, the last good snapshot and the active filters.
type State struct {
	Loading  bool
	Error    string
	Snapshot *Snapshot
	Filters  Filters
}
