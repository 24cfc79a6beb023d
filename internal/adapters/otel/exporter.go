package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/execdash/internal/ports"
)

const (
	serviceName    = "execdash"
	serviceVersion = "1.0.0"
)

// Exporter exports warehouse query metrics to an OTEL Collector.
type Exporter struct {
	provider    *sdkmetric.MeterProvider
	queries     metric.Int64Counter
	failures    metric.Int64Counter
	latencyHist metric.Float64Histogram
	rowsHist    metric.Int64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	e, err := newExporter(provider)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	queries, err := meter.Int64Counter(
		"execdash_warehouse_queries_total",
		metric.WithDescription("Warehouse queries executed"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queries counter: %w", err)
	}

	failures, err := meter.Int64Counter(
		"execdash_warehouse_query_failures_total",
		metric.WithDescription("Warehouse queries that returned an error"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	latencyHist, err := meter.Float64Histogram(
		"execdash_warehouse_query_duration_seconds",
		metric.WithDescription("Warehouse query latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating latency histogram: %w", err)
	}

	rowsHist, err := meter.Int64Histogram(
		"execdash_warehouse_query_rows",
		metric.WithDescription("Rows returned per warehouse query"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rows histogram: %w", err)
	}

	return &Exporter{
		provider:    provider,
		queries:     queries,
		failures:    failures,
		latencyHist: latencyHist,
		rowsHist:    rowsHist,
	}, nil
}

// RecordQuery records the outcome of one warehouse query.
func (e *Exporter) RecordQuery(ctx context.Context, m ports.QueryMetrics) {
	opt := metric.WithAttributes(
		attribute.String("operation", m.Operation),
		attribute.String("dialect", m.Dialect),
	)

	e.queries.Add(ctx, 1, opt)
	e.latencyHist.Record(ctx, m.Duration.Seconds(), opt)
	if m.Err != nil {
		e.failures.Add(ctx, 1, opt)
		return
	}
	e.rowsHist.Record(ctx, int64(m.Rows), opt)
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
