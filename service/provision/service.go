package provision

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/gcp-bill-doctor/model"
	gcpexport "github.com/elC0mpa/gcp-bill-doctor/service/gcp/export"
	"github.com/pkg/browser"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
)

func NewService(ctx context.Context, projectID string) (*service, error) {
	bqClient, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}

	return &service{
		projectID:   projectID,
		bqClient:    bqClient,
		in:          os.Stdin,
		out:         os.Stdout,
		openBrowser: browser.OpenURL,
		sleep:       time.Sleep,
	}, nil
}

// Close closes the BigQuery client
func (s *service) Close() error {
	return s.bqClient.Close()
}

// Setup implements ProvisionService: verify access, create the dataset,
// then walk the user through the console step GCP exposes no API for.
// The sequence is create -> instructions -> wait for confirmation ->
// one verification pass -> report.
func (s *service) Setup(ctx context.Context, billingAccountID, datasetName, location string) error {
	fmt.Fprintf(s.out, "\n=== Setting up BigQuery Billing Export ===\n\n")
	fmt.Fprintf(s.out, "Billing Account: %s\n", billingAccountID)
	fmt.Fprintf(s.out, "Project: %s\n", s.projectID)
	fmt.Fprintf(s.out, "Dataset: %s\n", datasetName)
	fmt.Fprintf(s.out, "Location: %s\n\n", location)

	if err := s.verifyAccess(ctx); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Project %q verified (BigQuery access confirmed)\n\n", s.projectID)

	if err := s.createDataset(ctx, datasetName, location); err != nil {
		return err
	}

	s.printConsoleSteps(billingAccountID, datasetName)

	consoleURL := exportConsoleURL(billingAccountID)
	if err := s.openBrowser(consoleURL); err != nil {
		fmt.Fprintf(s.out, "Could not open browser automatically.\nPlease manually open: %s\n", consoleURL)
	} else {
		fmt.Fprintf(s.out, "Browser opened to the billing export configuration page.\n")
	}

	fmt.Fprintf(s.out, "\nPress ENTER after you have completed the configuration in the Console...")
	if _, err := bufio.NewReader(s.in).ReadString('\n'); err != nil {
		fmt.Fprintf(s.out, "\nRunning in non-interactive mode - skipping verification.\n")
		fmt.Fprintf(s.out, "You can verify the export later with: gcp-bill-doctor --costs --billing-account %s\n", billingAccountID)
		s.printSummary(billingAccountID, datasetName, location)
		return nil
	}

	fmt.Fprintf(s.out, "\nWaiting 10 seconds for GCP to create the export table...\n")
	s.sleep(10 * time.Second)

	if tableID, found := s.verifyExportTable(ctx, billingAccountID, datasetName); found {
		fmt.Fprintf(s.out, "Billing export table created: %s\n", tableID)
	} else {
		fmt.Fprintf(s.out, "Export table not found yet.\n")
		fmt.Fprintf(s.out, "This is normal - the table may take a few minutes to appear.\n")
		fmt.Fprintf(s.out, "Verify later with: bq ls %s:%s\n", s.projectID, datasetName)
	}

	s.printSummary(billingAccountID, datasetName, location)
	return nil
}

// Destroy implements ProvisionService. Export disabling is console-only;
// the dataset is deleted, with its contents, only when explicitly requested.
func (s *service) Destroy(ctx context.Context, billingAccountID, datasetName string, deleteDataset bool) error {
	fmt.Fprintf(s.out, "\n=== Destroying BigQuery Billing Export ===\n\n")
	fmt.Fprintf(s.out, "Billing Account: %s\n\n", billingAccountID)

	fmt.Fprintf(s.out, "Step 1: Disable billing export (GCP Console only):\n")
	fmt.Fprintf(s.out, "  1. Go to: %s\n", exportConsoleURL(billingAccountID))
	fmt.Fprintf(s.out, "  2. Under 'Detailed usage cost', click 'EDIT SETTINGS'\n")
	fmt.Fprintf(s.out, "  3. Click 'DISABLE EXPORT', then 'SAVE'\n\n")

	if !deleteDataset {
		fmt.Fprintf(s.out, "Step 2: Keeping dataset %q with historical billing data.\n", datasetName)
		fmt.Fprintf(s.out, "To delete it later, rerun with --delete-dataset.\n")
		return nil
	}

	fmt.Fprintf(s.out, "Step 2: Deleting dataset %q...\n", datasetName)
	if err := s.bqClient.Dataset(datasetName).DeleteWithContents(ctx); err != nil {
		if isNotFound(err) {
			fmt.Fprintf(s.out, "Dataset %q does not exist, nothing to delete.\n", datasetName)
			return nil
		}
		return &model.ProvisionError{
			Err:  err,
			Hint: fmt.Sprintf("To delete manually: bq rm -r -f -d %s.%s", s.projectID, datasetName),
		}
	}
	fmt.Fprintf(s.out, "Dataset %q deleted.\n", datasetName)
	return nil
}

func (s *service) verifyAccess(ctx context.Context) error {
	it := s.bqClient.Datasets(ctx)
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return &model.ProvisionError{
			Err: err,
			Hint: fmt.Sprintf("Check that you have permissions on project %q and that the BigQuery API is enabled:\n  gcloud services enable bigquery.googleapis.com --project=%s",
				s.projectID, s.projectID),
		}
	}
	return nil
}

// createDataset is an idempotent create: an existing dataset is reported,
// not treated as a failure.
func (s *service) createDataset(ctx context.Context, datasetName, location string) error {
	dataset := s.bqClient.Dataset(datasetName)

	err := dataset.Create(ctx, &bigquery.DatasetMetadata{Location: location})
	if err != nil {
		if isAlreadyExists(err) {
			fmt.Fprintf(s.out, "Dataset %q already exists in project %q, reusing it.\n\n", datasetName, s.projectID)
			return nil
		}
		return &model.ProvisionError{
			Err: err,
			Hint: fmt.Sprintf("Common issues:\n  - Insufficient permissions (need bigquery.datasets.create)\n  - BigQuery API not enabled on project\nTo enable: gcloud services enable bigquery.googleapis.com --project=%s",
				s.projectID),
		}
	}

	fmt.Fprintf(s.out, "Dataset %q created in %s.\n\n", datasetName, location)
	return nil
}

func (s *service) verifyExportTable(ctx context.Context, billingAccountID, datasetName string) (string, bool) {
	patterns := gcpexport.TablePatterns(billingAccountID)

	it := s.bqClient.Dataset(datasetName).Tables(ctx)
	for {
		table, err := it.Next()
		if err != nil {
			return "", false
		}
		if gcpexport.MatchesExportTable(table.TableID, patterns) {
			return table.TableID, true
		}
	}
}

func (s *service) printConsoleSteps(billingAccountID, datasetName string) {
	fmt.Fprintf(s.out, "Billing export MUST be configured via GCP Console.\n")
	fmt.Fprintf(s.out, "This is a Google Cloud Platform limitation - no API exists for this.\n\n")
	fmt.Fprintf(s.out, "REQUIRED MANUAL STEP:\n")
	fmt.Fprintf(s.out, "  1. Open: %s\n", exportConsoleURL(billingAccountID))
	fmt.Fprintf(s.out, "  2. Click the 'BIGQUERY EXPORT' tab\n")
	fmt.Fprintf(s.out, "  3. Under 'Detailed usage cost', click 'EDIT SETTINGS'\n")
	fmt.Fprintf(s.out, "  4. Enable the toggle, select project %q and dataset %q\n", s.projectID, datasetName)
	fmt.Fprintf(s.out, "  5. Click 'SAVE'\n\n")
}

func (s *service) printSummary(billingAccountID, datasetName, location string) {
	patterns := gcpexport.TablePatterns(billingAccountID)

	fmt.Fprintf(s.out, "\n=== Setup Information ===\n\n")
	fmt.Fprintf(s.out, "Dataset: %s.%s (location %s)\n", s.projectID, datasetName, location)
	fmt.Fprintf(s.out, "Export table will appear as: %s.%s.%s\n", s.projectID, datasetName, patterns[0])
	fmt.Fprintf(s.out, "Data will be available ~24 hours after export is enabled.\n\n")
	fmt.Fprintf(s.out, "To verify export is working:\n")
	fmt.Fprintf(s.out, "  gcp-bill-doctor --costs --billing-account %s\n", billingAccountID)
}

func exportConsoleURL(billingAccountID string) string {
	return fmt.Sprintf("https://console.cloud.google.com/billing/%s/export", billingAccountID)
}

func isAlreadyExists(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusConflict
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}
