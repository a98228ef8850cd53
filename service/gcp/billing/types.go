package gcpbilling

import (
	"context"

	"github.com/elC0mpa/gcp-bill-doctor/model"
	"google.golang.org/api/cloudbilling/v1"
)

type service struct {
	client *cloudbilling.APIService
}

type BillingService interface {
	ListAccounts(ctx context.Context, filter string) ([]model.BillingAccount, error)
	ListProjects(ctx context.Context, billingAccountID string) ([]model.ProjectBillingInfo, error)
	AccountCurrency(ctx context.Context, billingAccountID string) (string, error)
}
