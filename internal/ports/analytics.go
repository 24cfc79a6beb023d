package ports

import (
	"context"

	"github.com/emiliopalmerini/execdash/internal/domain"
)

// ExecutiveAnalytics is the query service behind the executive dashboard.
type ExecutiveAnalytics interface {
	ExecutiveKPIs(ctx context.Context, windowDays int) (domain.ExecutiveKPIs, error)
	RevenueComparison(ctx context.Context, windowDays int) ([]domain.RevenueDailyPoint, error)
	TopChannels(ctx context.Context, limit int) ([]domain.ChannelMetric, error)
	MarketingPerformance(ctx context.Context) ([]domain.MarketingMetric, error)
	InventoryValue(ctx context.Context) ([]domain.InventoryMetric, error)
	ConversionFunnel(ctx context.Context) ([]domain.FunnelStage, error)
	WarehouseStatus(ctx context.Context) (domain.WarehouseStatus, error)
}
