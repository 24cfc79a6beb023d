package ports

import (
	"context"
	"time"
)

// MetricsExporter exports query service metrics to an external observability system.
type MetricsExporter interface {
	// RecordQuery records the outcome of one warehouse query.
	RecordQuery(ctx context.Context, m QueryMetrics)
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// QueryMetrics describes a single executed query.
type QueryMetrics struct {
	Operation string
	Dialect   string
	Duration  time.Duration
	Rows      int
	Err       error
}
