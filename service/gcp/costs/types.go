package gcpcosts

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/gcp-bill-doctor/model"
)

type service struct {
	bqClient *bigquery.Client
	debugf   func(format string, args ...any)
}

type CostService interface {
	GetCosts(ctx context.Context, table *model.ExportTable, rng model.DateRange, groupBy model.GroupBy, projectFilter, currency string) ([]model.CostRow, error)
	SetDebugLogger(debugf func(format string, args ...any))
	Close() error
}

// classifiedRow is one raw aggregation row from the ai/model query, before
// in-process classification collapses it into a labeled cost row.
type classifiedRow struct {
	ServiceName string
	SKU         string
	ModelID     string
	Cost        float64
	Currency    string
}
