package domain

import (
	"math"
	"testing"
)

func TestKPIAggregates_ComputeKPIs(t *testing.T) {
	tests := []struct {
		name     string
		agg      KPIAggregates
		margin   float64
		expected ExecutiveKPIs
	}{
		{
			name: "normal case",
			agg: KPIAggregates{
				TotalRevenue:       10000,
				TotalOrders:        100,
				AvgOrderValue:      100,
				TotalSessions:      4000,
				ConvertingSessions: 100,
				MarketingSpend:     2500,
				MarketingRevenue:   7500,
			},
			margin: 30,
			expected: ExecutiveKPIs{
				TotalRevenue:            10000,
				TotalOrders:             100,
				AvgOrderValue:           100,
				GrossMarginPct:          30,
				CustomerAcquisitionCost: 25,  // 2500/100
				ReturnOnAdSpend:         3,   // 7500/2500
				ConversionRate:          2.5, // 100/4000*100
			},
		},
		{
			name:     "empty aggregates, all zero except margin",
			agg:      KPIAggregates{},
			margin:   30,
			expected: ExecutiveKPIs{GrossMarginPct: 30},
		},
		{
			name: "zero orders, CAC zero",
			agg: KPIAggregates{
				MarketingSpend:   500,
				MarketingRevenue: 1000,
			},
			margin: 0,
			expected: ExecutiveKPIs{
				ReturnOnAdSpend: 2,
			},
		},
		{
			name: "zero spend, ROAS zero",
			agg: KPIAggregates{
				TotalOrders:      10,
				MarketingRevenue: 1000,
			},
			expected: ExecutiveKPIs{TotalOrders: 10},
		},
		{
			name: "zero sessions, conversion zero",
			agg: KPIAggregates{
				ConvertingSessions: 5,
			},
			expected: ExecutiveKPIs{},
		},
		{
			name: "NaN inputs are flattened",
			agg: KPIAggregates{
				TotalRevenue:  math.NaN(),
				AvgOrderValue: math.Inf(1),
			},
			expected: ExecutiveKPIs{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.agg.ComputeKPIs(tt.margin)
			if got != tt.expected {
				t.Errorf("ComputeKPIs() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		want     float64
	}{
		{"normal", 10, 4, 2.5},
		{"zero denominator", 10, 0, 0},
		{"zero over zero", 0, 0, 0},
		{"negative", -9, 3, -3},
		{"nan numerator", math.NaN(), 2, 0},
		{"inf numerator", math.Inf(-1), 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeDivide(tt.num, tt.den); got != tt.want {
				t.Errorf("SafeDivide(%v, %v) = %v, want %v", tt.num, tt.den, got, tt.want)
			}
		})
	}
}
