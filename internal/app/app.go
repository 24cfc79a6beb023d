// Package app wires configuration, warehouse, metrics and the query service.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/execdash/internal/adapters/bigquery"
	"github.com/emiliopalmerini/execdash/internal/adapters/otel"
	"github.com/emiliopalmerini/execdash/internal/adapters/turso"
	"github.com/emiliopalmerini/execdash/internal/analytics"
	"github.com/emiliopalmerini/execdash/internal/config"
	"github.com/emiliopalmerini/execdash/internal/ports"
	"github.com/emiliopalmerini/execdash/internal/util"
)

// App holds the process-wide dependencies.
type App struct {
	Config    *config.Config
	Log       zerolog.Logger
	Warehouse ports.Warehouse
	Metrics   ports.MetricsExporter
	Service   *analytics.Service
}

// NewLogger builds the logger described by cfg.
func NewLogger(cfg *config.Config) zerolog.Logger {
	return util.NewLogger(cfg.LogLevel, cfg.LogPretty)
}

// New connects the configured warehouse and builds the query service.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	wh, dialect, err := openWarehouse(ctx, cfg)
	if err != nil {
		return nil, err
	}

	metrics := newMetrics(ctx, cfg.OTel, log)

	svc, err := analytics.NewService(wh,
		analytics.WithDialect(dialect),
		analytics.WithGrossMargin(cfg.GrossMarginPct),
		analytics.WithTimeout(cfg.QueryTimeout),
		analytics.WithMetrics(metrics),
		analytics.WithLogger(log),
		analytics.WithSource(cfg.BigQuery.ProjectID, cfg.BigQuery.Dataset),
	)
	if err != nil {
		_ = wh.Close()
		_ = metrics.Close(ctx)
		return nil, err
	}

	log.Info().
		Str("warehouse", cfg.Warehouse).
		Str("dialect", dialect.Name).
		Dur("query_timeout", cfg.QueryTimeout).
		Msg("query service ready")

	return &App{
		Config:    cfg,
		Log:       log,
		Warehouse: wh,
		Metrics:   metrics,
		Service:   svc,
	}, nil
}

func openWarehouse(ctx context.Context, cfg *config.Config) (ports.Warehouse, analytics.Dialect, error) {
	switch cfg.Warehouse {
	case config.WarehouseLibSQL:
		db, err := OpenLibSQL(cfg)
		if err != nil {
			return nil, analytics.Dialect{}, err
		}
		return turso.NewWarehouse(db), analytics.SQLiteDialect(), nil
	case config.WarehouseBigQuery:
		wh, err := bigquery.NewWarehouse(ctx, bigquery.Config{
			ProjectID:       cfg.BigQuery.ProjectID,
			CredentialsFile: cfg.BigQuery.CredentialsFile,
			Dataset:         cfg.BigQuery.Dataset,
			Location:        cfg.BigQuery.Location,
		})
		if err != nil {
			return nil, analytics.Dialect{}, err
		}
		return wh, analytics.BigQueryDialect(cfg.BigQuery.Dataset), nil
	}
	return nil, analytics.Dialect{}, &config.Error{Key: "EXECDASH_WAREHOUSE", Err: fmt.Errorf("unknown warehouse %q", cfg.Warehouse)}
}

// OpenLibSQL opens the local sample warehouse database.
func OpenLibSQL(cfg *config.Config) (*sql.DB, error) {
	db, err := turso.NewDB(cfg.LibSQLURL, cfg.LibSQLAuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to libsql warehouse: %w", err)
	}
	return db, nil
}

// newMetrics falls back to the no-op exporter when OTEL is off or unreachable.
func newMetrics(ctx context.Context, cfg otel.Config, log zerolog.Logger) ports.MetricsExporter {
	if !cfg.Enabled {
		return otel.NewNoOpExporter()
	}
	exp, err := otel.NewExporter(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("otel exporter unavailable, metrics disabled")
		return otel.NewNoOpExporter()
	}
	return exp
}

// Close releases the warehouse and flushes metrics.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Warehouse != nil {
		errs = append(errs, a.Warehouse.Close())
	}
	if a.Metrics != nil {
		errs = append(errs, a.Metrics.Close(ctx))
	}
	return errors.Join(errs...)
}
