package gcpbilling

import (
	"context"
	"fmt"
	"strings"

	"github.com/elC0mpa/gcp-bill-doctor/model"
	"google.golang.org/api/cloudbilling/v1"
	"google.golang.org/api/option"
)

func NewService(ctx context.Context) (*service, error) {
	client, err := cloudbilling.NewService(ctx, option.WithScopes(
		cloudbilling.CloudBillingScope,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Billing client: %w", err)
	}

	return &service{
		client: client,
	}, nil
}

// ListAccounts implements BillingService. An empty result is valid: the
// caller simply has no visible billing accounts.
func (s *service) ListAccounts(ctx context.Context, filter string) ([]model.BillingAccount, error) {
	accounts := []model.BillingAccount{}

	err := s.client.BillingAccounts.List().Pages(ctx, func(resp *cloudbilling.ListBillingAccountsResponse) error {
		for _, account := range resp.BillingAccounts {
			if filter != "" && !strings.Contains(account.Name, filter) {
				continue
			}

			currency := account.CurrencyCode
			if currency == "" {
				currency = "N/A"
			}

			accounts = append(accounts, model.BillingAccount{
				ID:          strings.TrimPrefix(account.Name, "billingAccounts/"),
				Name:        account.Name,
				DisplayName: account.DisplayName,
				Open:        account.Open,
				Currency:    currency,
			})
		}
		return nil
	})
	if err != nil {
		return nil, model.ClassifyAPIError(err)
	}

	return accounts, nil
}

// ListProjects implements BillingService. With a billing account ID it lists
// that account's projects; without one it walks every visible account.
func (s *service) ListProjects(ctx context.Context, billingAccountID string) ([]model.ProjectBillingInfo, error) {
	if billingAccountID != "" {
		return s.listProjectsForAccount(ctx, accountResourceName(billingAccountID))
	}

	accounts, err := s.ListAccounts(ctx, "")
	if err != nil {
		return nil, err
	}

	projects := []model.ProjectBillingInfo{}
	for _, account := range accounts {
		accountProjects, err := s.listProjectsForAccount(ctx, account.Name)
		if err != nil {
			return nil, err
		}
		projects = append(projects, accountProjects...)
	}

	return projects, nil
}

// AccountCurrency implements BillingService
func (s *service) AccountCurrency(ctx context.Context, billingAccountID string) (string, error) {
	account, err := s.client.BillingAccounts.Get(accountResourceName(billingAccountID)).Context(ctx).Do()
	if err != nil {
		return "", model.ClassifyAPIError(err)
	}
	if account.CurrencyCode == "" {
		return "USD", nil
	}
	return account.CurrencyCode, nil
}

func (s *service) listProjectsForAccount(ctx context.Context, accountName string) ([]model.ProjectBillingInfo, error) {
	projects := []model.ProjectBillingInfo{}

	err := s.client.BillingAccounts.Projects.List(accountName).Pages(ctx, func(resp *cloudbilling.ListProjectBillingInfoResponse) error {
		for _, info := range resp.ProjectBillingInfo {
			associated := "None"
			if info.BillingAccountName != "" {
				associated = strings.TrimPrefix(info.BillingAccountName, "billingAccounts/")
			}

			projects = append(projects, model.ProjectBillingInfo{
				ProjectID:      info.ProjectId,
				BillingAccount: associated,
				BillingEnabled: info.BillingEnabled,
			})
		}
		return nil
	})
	if err != nil {
		return nil, model.ClassifyAPIError(err)
	}

	return projects, nil
}

func accountResourceName(billingAccountID string) string {
	if strings.HasPrefix(billingAccountID, "billingAccounts/") {
		return billingAccountID
	}
	return "billingAccounts/" + billingAccountID
}
