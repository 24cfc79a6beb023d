package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Metric labels used in fetch errors.
const (
	MetricKPIs      = "KPIs"
	MetricRevenue   = "revenue data"
	MetricChannels  = "channel data"
	MetricMarketing = "marketing data"
	MetricInventory = "inventory data"
	MetricFunnel    = "funnel data"
)

// ChannelLimit is the number of channels the dashboard shows.
const ChannelLimit = 5

// FetchError is the single error surfaced when any dashboard call fails.
type FetchError struct {
	Metric string
	Err    error
}

func (e *FetchError) Error() string {
	return "Failed to fetch " + e.Metric
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher loads a dashboard snapshot.
type Fetcher interface {
	Fetch(ctx context.Context, f Filters) (*Snapshot, error)
}

// Client fetches dashboard data from the execdash HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		now:        time.Now,
	}
}

// Fetch issues the six dashboard requests concurrently. The first failure
// cancels the rest and is returned alone; no partial snapshot is produced.
func (c *Client) Fetch(ctx context.Context, f Filters) (*Snapshot, error) {
	days := f.DateRange
	if days <= 0 {
		days = DefaultFilters.DateRange
	}
	dateRange := url.Values{"dateRange": {strconv.Itoa(days)}}

	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.get(ctx, MetricKPIs, "/api/executive/kpis", dateRange, &snap.KPIs)
	})
	g.Go(func() error {
		return c.get(ctx, MetricRevenue, "/api/executive/revenue", dateRange, &snap.Revenue)
	})
	g.Go(func() error {
		return c.get(ctx, MetricChannels, "/api/executive/channels", url.Values{"limit": {strconv.Itoa(ChannelLimit)}}, &snap.Channels)
	})
	g.Go(func() error {
		return c.get(ctx, MetricMarketing, "/api/executive/marketing", nil, &snap.Marketing)
	})
	g.Go(func() error {
		return c.get(ctx, MetricInventory, "/api/executive/inventory", nil, &snap.Inventory)
	})
	g.Go(func() error {
		return c.get(ctx, MetricFunnel, "/api/executive/funnel", nil, &snap.Funnel)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.FetchedAt = c.now()
	return &snap, nil
}

func (c *Client) get(ctx context.Context, metric, path string, query url.Values, dst any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Metric: metric, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Metric: metric, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Metric: metric, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &FetchError{Metric: metric, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
