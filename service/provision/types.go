package provision

import (
	"context"
	"io"
	"time"

	"cloud.google.com/go/bigquery"
)

type service struct {
	projectID string
	bqClient  *bigquery.Client

	// Injectable for tests
	in          io.Reader
	out         io.Writer
	openBrowser func(url string) error
	sleep       func(d time.Duration)
}

type ProvisionService interface {
	Setup(ctx context.Context, billingAccountID, datasetName, location string) error
	Destroy(ctx context.Context, billingAccountID, datasetName string, deleteDataset bool) error
	Close() error
}
