package orchestrator

import (
	"context"

	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/elC0mpa/gcp-bill-doctor/service/diagnose"
	gcpbilling "github.com/elC0mpa/gcp-bill-doctor/service/gcp/billing"
	gcpcosts "github.com/elC0mpa/gcp-bill-doctor/service/gcp/costs"
	gcpexport "github.com/elC0mpa/gcp-bill-doctor/service/gcp/export"
)

type service struct {
	billingService  gcpbilling.BillingService
	exportService   gcpexport.ExportService
	costService     gcpcosts.CostService
	diagnoseService diagnose.DiagnoseService
}

type OrchestratorService interface {
	Orchestrate(ctx context.Context, flags model.Flags) error
}
