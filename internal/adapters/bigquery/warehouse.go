package bigquery

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/emiliopalmerini/execdash/internal/ports"
)

// ErrMissingProject is returned when no GCP project is configured.
var ErrMissingProject = errors.New("bigquery: project id is required")

// Config identifies the BigQuery project and dataset holding the marts.
type Config struct {
	ProjectID       string
	CredentialsFile string
	Dataset         string
	Location        string
}

// Warehouse implements ports.Warehouse on a BigQuery client.
type Warehouse struct {
	client   *bigquery.Client
	location string
}

// NewWarehouse creates a BigQuery client for cfg. Without a credentials file
// the client falls back to application default credentials.
func NewWarehouse(ctx context.Context, cfg Config) (*Warehouse, error) {
	if cfg.ProjectID == "" {
		return nil, ErrMissingProject
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := bigquery.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating bigquery client: %w", err)
	}
	return &Warehouse{client: client, location: cfg.Location}, nil
}

// Query runs q as a standard SQL job and collects every row.
func (w *Warehouse) Query(ctx context.Context, q ports.Query) ([]ports.Row, error) {
	bq := w.client.Query(q.SQL)
	bq.Location = w.location
	bq.Parameters = queryParameters(q.Params)

	it, err := bq.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}

	var rows []ports.Row
	for {
		var values map[string]bigquery.Value
		err := it.Next(&values)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading rows: %w", err)
		}
		rows = append(rows, toRow(values))
	}
	return rows, nil
}

// Close releases the BigQuery client.
func (w *Warehouse) Close() error {
	return w.client.Close()
}

func queryParameters(params []ports.Param) []bigquery.QueryParameter {
	if len(params) == 0 {
		return nil
	}
	out := make([]bigquery.QueryParameter, len(params))
	for i, p := range params {
		out[i] = bigquery.QueryParameter{Name: p.Name, Value: p.Value}
	}
	return out
}

func toRow(values map[string]bigquery.Value) ports.Row {
	row := make(ports.Row, len(values))
	for k, v := range values {
		row[k] = v
	}
	return row
}
