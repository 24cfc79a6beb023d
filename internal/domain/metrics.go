package domain

// ExecutiveKPIs is the single aggregate row shown as KPI cards for a window.
type ExecutiveKPIs struct {
	TotalRevenue            float64 `json:"totalRevenue"`
	TotalOrders             int64   `json:"totalOrders"`
	AvgOrderValue           float64 `json:"avgOrderValue"`
	GrossMarginPct          float64 `json:"grossMarginPct"`
	CustomerAcquisitionCost float64 `json:"customerAcquisitionCost"`
	ReturnOnAdSpend         float64 `json:"returnOnAdSpend"`
	ConversionRate          float64 `json:"conversionRate"`
}

// KPIAggregates holds the raw scalar aggregates the KPIs are derived from.
type KPIAggregates struct {
	TotalRevenue       float64
	TotalOrders        int64
	AvgOrderValue      float64
	TotalSessions      int64
	ConvertingSessions int64
	MarketingSpend     float64
	MarketingRevenue   float64
}

// ComputeKPIs derives the executive KPIs from raw aggregates.
// All divisions are zero-safe: returns 0 when the divisor is zero.
func (a KPIAggregates) ComputeKPIs(grossMarginPct float64) ExecutiveKPIs {
	return ExecutiveKPIs{
		TotalRevenue:            Finite(a.TotalRevenue),
		TotalOrders:             a.TotalOrders,
		AvgOrderValue:           Finite(a.AvgOrderValue),
		GrossMarginPct:          Finite(grossMarginPct),
		CustomerAcquisitionCost: SafeDivide(a.MarketingSpend, float64(a.TotalOrders)),
		ReturnOnAdSpend:         SafeDivide(a.MarketingRevenue, a.MarketingSpend),
		ConversionRate:          SafeDivide(float64(a.ConvertingSessions), float64(a.TotalSessions)) * 100,
	}
}

// RevenueDailyPoint pairs a day of the current window with the same day
// offset of the preceding window.
type RevenueDailyPoint struct {
	Date                  string  `json:"date"`
	CurrentPeriodRevenue  float64 `json:"current_period"`
	PreviousPeriodRevenue float64 `json:"previous_period"`
}

// DirectChannel is the channel name for orders with no attribution match.
const DirectChannel = "Direct"

// ChannelMetric is the revenue attributed to one acquisition channel.
type ChannelMetric struct {
	ChannelName   string  `json:"channel_name"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalOrders   int64   `json:"total_orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// MarketingMetric is spend and return for one advertising platform.
type MarketingMetric struct {
	Platform      string  `json:"platform"`
	TotalSpend    float64 `json:"total_spend"`
	TotalRevenue  float64 `json:"total_revenue"`
	ROAS          float64 `json:"roas"`
	CampaignCount int64   `json:"campaign_count"`
}

// InventoryMetric is the on-hand inventory value of one product category.
type InventoryMetric struct {
	Category        string  `json:"category"`
	ProductCount    int64   `json:"product_count"`
	InventoryValue  float64 `json:"inventory_value"`
	AvgProductPrice float64 `json:"avg_product_price"`
}

// FunnelStage is the distinct session count reaching one funnel step.
type FunnelStage struct {
	Stage      string `json:"stage"`
	Count      int64  `json:"count"`
	StageOrder int    `json:"stage_order"`
}

// WarehouseStatus is the result of the connectivity probe.
type WarehouseStatus struct {
	Success bool                  `json:"success"`
	Result  WarehouseStatusResult `json:"result"`
	Config  WarehouseStatusConfig `json:"config"`
}

type WarehouseStatusResult struct {
	Count   int64 `json:"count"`
	MinDate int64 `json:"min_date"`
	MaxDate int64 `json:"max_date"`
}

type WarehouseStatusConfig struct {
	ProjectID string `json:"projectId"`
	Dataset   string `json:"dataset"`
}
