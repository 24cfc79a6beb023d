package ports_test

import (
	"testing"

	"github.com/emiliopalmerini/execdash/internal/adapters/bigquery"
	"github.com/emiliopalmerini/execdash/internal/adapters/otel"
	"github.com/emiliopalmerini/execdash/internal/adapters/turso"
	"github.com/emiliopalmerini/execdash/internal/analytics"
	"github.com/emiliopalmerini/execdash/internal/ports"
)

// Compile-time interface conformance checks.
// These verify that concrete adapters properly implement their port interfaces.

func TestBigQueryWarehouseConformance(t *testing.T) {
	var _ ports.Warehouse = (*bigquery.Warehouse)(nil)
}

func TestLibSQLWarehouseConformance(t *testing.T) {
	var _ ports.Warehouse = (*turso.Warehouse)(nil)
}

func TestMockWarehouseConformance(t *testing.T) {
	var _ ports.Warehouse = (*analytics.MockWarehouse)(nil)
}

func TestAnalyticsServiceConformance(t *testing.T) {
	var _ ports.ExecutiveAnalytics = (*analytics.Service)(nil)
}

func TestOTelExporterConformance(t *testing.T) {
	var _ ports.MetricsExporter = (*otel.Exporter)(nil)
	var _ ports.MetricsExporter = (*otel.NoOpExporter)(nil)
}

func TestQueryParamMap(t *testing.T) {
	q := ports.Query{Params: []ports.Param{
		{Name: "start_key", Value: int64(20240101)},
		{Name: "limit", Value: int64(5)},
	}}

	got := q.ParamMap()
	if len(got) != 2 || got["start_key"] != int64(20240101) || got["limit"] != int64(5) {
		t.Errorf("unexpected param map: %v", got)
	}
}
