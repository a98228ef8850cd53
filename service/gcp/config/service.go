package gcpconfig

import (
	"context"
	"os"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/gcp-bill-doctor/model"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/cloudbilling/v1"
)

func NewService(projectID string) *service {
	return &service{
		projectID: projectID,
	}
}

// GetCredentials resolves Application Default Credentials.
// This supports:
// - GOOGLE_APPLICATION_CREDENTIALS environment variable
// - gcloud auth application-default login
// - Service account on GCE/Cloud Run/Cloud Functions
func (s *service) GetCredentials(ctx context.Context) (*google.Credentials, error) {
	creds, err := google.FindDefaultCredentials(ctx,
		cloudbilling.CloudBillingScope,
		bigquery.Scope,
	)
	if err != nil {
		return nil, &model.AuthError{Err: err}
	}
	return creds, nil
}

// ResolveProjectID picks the project for BigQuery operations: the explicit
// flag wins, then GCP_PROJECT_ID, then the credentials' default project.
func (s *service) ResolveProjectID(creds *google.Credentials) string {
	if s.projectID != "" {
		return s.projectID
	}
	if env := os.Getenv("GCP_PROJECT_ID"); env != "" {
		return env
	}
	if creds != nil {
		return creds.ProjectID
	}
	return ""
}
