package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/elC0mpa/gcp-bill-doctor/service/diagnose"
	gcpbilling "github.com/elC0mpa/gcp-bill-doctor/service/gcp/billing"
	gcpcosts "github.com/elC0mpa/gcp-bill-doctor/service/gcp/costs"
	gcpexport "github.com/elC0mpa/gcp-bill-doctor/service/gcp/export"
	"github.com/elC0mpa/gcp-bill-doctor/utils"
)

func NewService(
	billingService gcpbilling.BillingService,
	exportService gcpexport.ExportService,
	costService gcpcosts.CostService,
	diagnoseService diagnose.DiagnoseService,
) *service {
	return &service{
		billingService:  billingService,
		exportService:   exportService,
		costService:     costService,
		diagnoseService: diagnoseService,
	}
}

func (s *service) Orchestrate(ctx context.Context, flags model.Flags) error {
	if flags.ListAccounts {
		if err := s.accountsWorkflow(ctx, flags); err != nil {
			return err
		}
	}

	if flags.ListProjects {
		if err := s.projectsWorkflow(ctx, flags); err != nil {
			return err
		}
	}

	if flags.CheckExport {
		if err := s.inventoryWorkflow(ctx, flags); err != nil {
			return err
		}
	}

	if flags.Costs {
		return s.costsWorkflow(ctx, flags)
	}

	return nil
}

func (s *service) accountsWorkflow(ctx context.Context, flags model.Flags) error {
	accounts, err := s.billingService.ListAccounts(ctx, flags.BillingAccount)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	if flags.Format == model.FormatTable {
		fmt.Println("\n=== Billing Accounts ===")
	}
	return utils.RenderAccounts(os.Stdout, accounts, flags.Format)
}

func (s *service) projectsWorkflow(ctx context.Context, flags model.Flags) error {
	projects, err := s.billingService.ListProjects(ctx, flags.BillingAccount)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	if flags.Format == model.FormatTable {
		fmt.Println("\n=== Projects with Billing Status ===")
	}
	return utils.RenderProjects(os.Stdout, projects, flags.Format)
}

func (s *service) inventoryWorkflow(ctx context.Context, flags model.Flags) error {
	inventory, err := s.exportService.Inventory(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	if flags.Format == model.FormatTable {
		fmt.Println("\n=== BigQuery Datasets ===")
	}
	return utils.RenderInventory(os.Stdout, inventory, flags.Format)
}

// costsWorkflow runs the diagnostics before the cost query so "no data yet"
// and "zero cost incurred" never get conflated.
func (s *service) costsWorkflow(ctx context.Context, flags model.Flags) error {
	rng, err := model.ParseDateRange(flags.StartDate, flags.EndDate)
	if err != nil {
		return err
	}

	table, err := s.exportService.FindExportTable(ctx, flags.BillingAccount)
	if err != nil {
		var notFound *model.NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		table = nil
	}

	if table != nil {
		s.exportService.Describe(ctx, table)
	}

	verdict := s.diagnoseService.Evaluate(table, rng, flags.BillingAccount)
	if verdict.Kind != diagnose.Ready {
		utils.StopSpinner()
		fmt.Println(verdict.Message())
		if verdict.Kind == diagnose.NoExportConfigured {
			return &model.NotFoundError{
				Resource: fmt.Sprintf("billing export for account %s", flags.BillingAccount),
			}
		}
		return nil
	}

	// Best effort: the account currency labels the synthesized zero row.
	currency, err := s.billingService.AccountCurrency(ctx, flags.BillingAccount)
	if err != nil {
		currency = "USD"
	}

	rows, err := s.costService.GetCosts(ctx, table, rng, flags.GroupBy, flags.Project, currency)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	if flags.Format == model.FormatTable {
		fmt.Printf("\n=== Billing Costs (%s) ===\n", rng)
		fmt.Printf("Using BigQuery table: %s\n\n", table.FQN())
	}

	if flags.Chart && (flags.GroupBy == model.GroupByDay || flags.GroupBy == model.GroupByMonth) {
		utils.DrawCostChart(flags.BillingAccount, rows)
	}

	return utils.RenderCostRows(os.Stdout, rows, flags.Format, string(flags.GroupBy))
}
