package otel

import (
	"context"

	"github.com/emiliopalmerini/execdash/internal/ports"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordQuery(ctx context.Context, m ports.QueryMetrics) {}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
