package gcpexport

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/gcp-bill-doctor/model"
)

type service struct {
	projectID string
	bqClient  *bigquery.Client
	debugf    func(format string, args ...any)
}

type ExportService interface {
	FindExportTable(ctx context.Context, billingAccountID string) (*model.ExportTable, error)
	Describe(ctx context.Context, table *model.ExportTable)
	Inventory(ctx context.Context) ([]model.DatasetInfo, error)
	SetDebugLogger(debugf func(format string, args ...any))
	Close() error
}
