package analytics

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/execdash/internal/domain"
	"github.com/emiliopalmerini/execdash/internal/ports"
)

const (
	DefaultGrossMarginPct = 30.0
	DefaultQueryTimeout   = 30 * time.Second
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Service runs the executive dashboard queries against a warehouse.
type Service struct {
	wh             ports.Warehouse
	dialect        Dialect
	grossMarginPct float64
	timeout        time.Duration
	now            func() time.Time
	metrics        ports.MetricsExporter
	log            zerolog.Logger
	funnel         []domain.FunnelStep
	projectID      string
	dataset        string
}

// Option configures a Service.
type Option func(*Service)

func WithDialect(d Dialect) Option {
	return func(s *Service) { s.dialect = d }
}

// WithGrossMargin sets the gross margin percentage reported with the KPIs.
// The warehouse carries no cost data, so the margin is a business constant.
func WithGrossMargin(pct float64) Option {
	return func(s *Service) { s.grossMarginPct = pct }
}

// WithTimeout bounds every warehouse call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithMetrics(m ports.MetricsExporter) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithFunnelStages replaces the default conversion funnel stages.
func WithFunnelStages(steps []domain.FunnelStep) Option {
	return func(s *Service) { s.funnel = steps }
}

// WithSource records the project and dataset reported by WarehouseStatus.
func WithSource(projectID, dataset string) Option {
	return func(s *Service) {
		s.projectID = projectID
		s.dataset = dataset
	}
}

// NewService creates a Service over wh. Without options it speaks the
// BigQuery dialect against the default dataset.
func NewService(wh ports.Warehouse, opts ...Option) (*Service, error) {
	if wh == nil {
		return nil, fmt.Errorf("warehouse is required")
	}
	s := &Service{
		wh:             wh,
		dialect:        BigQueryDialect("analytics_ecommerce_ecommerce"),
		grossMarginPct: DefaultGrossMarginPct,
		timeout:        DefaultQueryTimeout,
		now:            time.Now,
		metrics:        noopMetrics{},
		log:            zerolog.Nop(),
		funnel:         domain.DefaultFunnel,
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.funnel) == 0 {
		return nil, fmt.Errorf("funnel needs at least one stage")
	}
	for _, step := range s.funnel {
		if step.Label == "" {
			return nil, fmt.Errorf("funnel stage without label")
		}
		if step.Flag != "" && !identifierPattern.MatchString(step.Flag) {
			return nil, fmt.Errorf("funnel stage %q: invalid flag column %q", step.Label, step.Flag)
		}
	}
	return s, nil
}

// ExecutiveKPIs returns the headline KPIs for the trailing windowDays.
func (s *Service) ExecutiveKPIs(ctx context.Context, windowDays int) (domain.ExecutiveKPIs, error) {
	if windowDays <= 0 {
		return domain.ExecutiveKPIs{}, fmt.Errorf("window days %d: %w", windowDays, domain.ErrInvalidArgument)
	}
	const op = "ExecutiveKPIs"

	rows, err := s.run(ctx, op, s.dialect.kpiQuery(s.window(windowDays)))
	if err != nil {
		return domain.ExecutiveKPIs{}, err
	}
	if len(rows) == 0 {
		return domain.KPIAggregates{}.ComputeKPIs(s.grossMarginPct), nil
	}

	r := newRowReader(rows[0])
	agg := domain.KPIAggregates{
		TotalRevenue:       r.float("total_revenue"),
		TotalOrders:        r.int("total_orders"),
		AvgOrderValue:      r.float("avg_order_value"),
		TotalSessions:      r.int("total_sessions"),
		ConvertingSessions: r.int("converting_sessions"),
		MarketingSpend:     r.float("marketing_spend"),
		MarketingRevenue:   r.float("marketing_revenue"),
	}
	s.warnMissing(op, r)
	return agg.ComputeKPIs(s.grossMarginPct), nil
}

// RevenueComparison returns one point per day of the trailing window, each
// paired with the same day offset of the preceding window.
func (s *Service) RevenueComparison(ctx context.Context, windowDays int) ([]domain.RevenueDailyPoint, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("window days %d: %w", windowDays, domain.ErrInvalidArgument)
	}
	const op = "RevenueComparison"

	w := s.window(windowDays)
	rows, err := s.run(ctx, op, s.dialect.dailyRevenueQuery(w))
	if err != nil {
		return nil, err
	}

	byDay := make(map[int64]float64, len(rows))
	var missing []string
	for _, row := range rows {
		r := newRowReader(row)
		byDay[r.int("date_key")] += r.float("daily_revenue")
		missing = append(missing, r.missing...)
	}
	s.warnMissing(op, &rowReader{missing: missing})

	return buildRevenueSeries(w, byDay), nil
}

// buildRevenueSeries lays the daily totals over the calendar spine of w.
func buildRevenueSeries(w domain.Window, byDay map[int64]float64) []domain.RevenueDailyPoint {
	prev := w.Previous()
	points := make([]domain.RevenueDailyPoint, w.Days)
	for i := range points {
		day := w.Day(i)
		points[i] = domain.RevenueDailyPoint{
			Date:                  domain.FormatDate(day),
			CurrentPeriodRevenue:  domain.Finite(byDay[domain.DateKey(day)]),
			PreviousPeriodRevenue: domain.Finite(byDay[domain.DateKey(prev.Day(i))]),
		}
	}
	return points
}

// TopChannels returns the highest-revenue acquisition channels of the last
// 30 days, at most limit rows.
func (s *Service) TopChannels(ctx context.Context, limit int) ([]domain.ChannelMetric, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit %d: %w", limit, domain.ErrInvalidArgument)
	}
	const op = "TopChannels"

	rows, err := s.run(ctx, op, s.dialect.channelQuery(s.window(FixedLookbackDays), limit))
	if err != nil {
		return nil, err
	}

	channels := make([]domain.ChannelMetric, 0, len(rows))
	var missing []string
	for _, row := range rows {
		r := newRowReader(row)
		name := r.string("channel_name")
		if name == "" {
			name = domain.DirectChannel
		}
		channels = append(channels, domain.ChannelMetric{
			ChannelName:   name,
			TotalRevenue:  r.float("total_revenue"),
			TotalOrders:   r.int("total_orders"),
			AvgOrderValue: r.float("avg_order_value"),
		})
		missing = append(missing, r.missing...)
	}
	s.warnMissing(op, &rowReader{missing: missing})

	sort.SliceStable(channels, func(i, j int) bool {
		if channels[i].TotalRevenue != channels[j].TotalRevenue {
			return channels[i].TotalRevenue > channels[j].TotalRevenue
		}
		return channels[i].ChannelName < channels[j].ChannelName
	})
	if len(channels) > limit {
		channels = channels[:limit]
	}
	return channels, nil
}

// MarketingPerformance returns spend and return per platform for the last
// 30 days, highest spend first. Platforms without spend are omitted.
func (s *Service) MarketingPerformance(ctx context.Context) ([]domain.MarketingMetric, error) {
	const op = "MarketingPerformance"

	rows, err := s.run(ctx, op, s.dialect.marketingQuery(s.window(FixedLookbackDays)))
	if err != nil {
		return nil, err
	}

	metrics := make([]domain.MarketingMetric, 0, len(rows))
	var missing []string
	for _, row := range rows {
		r := newRowReader(row)
		spend := r.float("total_spend")
		revenue := r.float("total_revenue")
		missing = append(missing, r.missing...)
		if spend <= 0 {
			continue
		}
		metrics = append(metrics, domain.MarketingMetric{
			Platform:      r.string("platform"),
			TotalSpend:    spend,
			TotalRevenue:  revenue,
			ROAS:          domain.SafeDivide(revenue, spend),
			CampaignCount: r.int("campaign_count"),
		})
	}
	s.warnMissing(op, &rowReader{missing: missing})

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].TotalSpend > metrics[j].TotalSpend
	})
	return metrics, nil
}

// InventoryValue returns the ten most valuable active product categories.
func (s *Service) InventoryValue(ctx context.Context) ([]domain.InventoryMetric, error) {
	const op = "InventoryValue"

	rows, err := s.run(ctx, op, s.dialect.inventoryQuery())
	if err != nil {
		return nil, err
	}

	inventory := make([]domain.InventoryMetric, 0, len(rows))
	var missing []string
	for _, row := range rows {
		r := newRowReader(row)
		value := r.float("inventory_value")
		item := domain.InventoryMetric{
			Category:        r.string("category"),
			ProductCount:    r.int("product_count"),
			InventoryValue:  value,
			AvgProductPrice: r.float("avg_product_price"),
		}
		missing = append(missing, r.missing...)
		if value <= 0 {
			continue
		}
		inventory = append(inventory, item)
	}
	s.warnMissing(op, &rowReader{missing: missing})

	sort.SliceStable(inventory, func(i, j int) bool {
		return inventory[i].InventoryValue > inventory[j].InventoryValue
	})
	if len(inventory) > InventoryLimit {
		inventory = inventory[:InventoryLimit]
	}
	return inventory, nil
}

// ConversionFunnel returns distinct session counts per funnel stage over the
// last 30 days. Counts are reported as the warehouse returns them.
func (s *Service) ConversionFunnel(ctx context.Context) ([]domain.FunnelStage, error) {
	const op = "ConversionFunnel"

	rows, err := s.run(ctx, op, s.dialect.funnelQuery(s.window(FixedLookbackDays), s.funnel))
	if err != nil {
		return nil, err
	}

	r := newRowReader(nil)
	if len(rows) > 0 {
		r = newRowReader(rows[0])
	}
	stages := make([]domain.FunnelStage, len(s.funnel))
	for i, step := range s.funnel {
		stages[i] = domain.FunnelStage{
			Stage:      step.Label,
			Count:      r.int(stageColumn(i)),
			StageOrder: i + 1,
		}
	}
	if len(rows) > 0 {
		s.warnMissing(op, r)
	}
	return stages, nil
}

// WarehouseStatus probes the warehouse with a cheap aggregate over the orders fact.
func (s *Service) WarehouseStatus(ctx context.Context) (domain.WarehouseStatus, error) {
	const op = "WarehouseStatus"

	status := domain.WarehouseStatus{
		Config: domain.WarehouseStatusConfig{ProjectID: s.projectID, Dataset: s.dataset},
	}
	rows, err := s.run(ctx, op, s.dialect.statusQuery())
	if err != nil {
		return status, err
	}
	if len(rows) > 0 {
		r := newRowReader(rows[0])
		status.Result = domain.WarehouseStatusResult{
			Count:   r.int("count"),
			MinDate: r.int("min_date"),
			MaxDate: r.int("max_date"),
		}
	}
	status.Success = true
	return status, nil
}

func (s *Service) window(days int) domain.Window {
	return domain.NewWindow(days, s.now())
}

// run executes q under the configured timeout and wraps any failure in a
// domain.QueryError.
func (s *Service) run(ctx context.Context, op string, q ports.Query) ([]ports.Row, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := s.wh.Query(ctx, q)
	elapsed := time.Since(start)

	s.metrics.RecordQuery(ctx, ports.QueryMetrics{
		Operation: op,
		Dialect:   s.dialect.Name,
		Duration:  elapsed,
		Rows:      len(rows),
		Err:       err,
	})
	if err != nil {
		return nil, domain.NewQueryError(op, q.ParamMap(), err)
	}

	s.log.Debug().
		Str("op", op).
		Interface("params", q.ParamMap()).
		Int("rows", len(rows)).
		Dur("elapsed", elapsed).
		Msg("warehouse query")
	return rows, nil
}

func (s *Service) warnMissing(op string, r *rowReader) {
	if len(r.missing) == 0 {
		return
	}
	s.log.Warn().
		Str("op", op).
		Strs("columns", dedupe(r.missing)).
		Msg("warehouse result missing expected columns, defaulting to zero")
}

type noopMetrics struct{}

func (noopMetrics) RecordQuery(context.Context, ports.QueryMetrics) {}
func (noopMetrics) Close(context.Context) error                     { return nil }
