package response

import (
	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/elC0mpa/gcp-bill-doctor/service/diagnose"
)

// ConvertAccounts converts model billing accounts to response accounts
func ConvertAccounts(accounts []model.BillingAccount) []BillingAccount {
	result := make([]BillingAccount, 0, len(accounts))
	for _, account := range accounts {
		result = append(result, BillingAccount{
			ID:          account.ID,
			DisplayName: account.DisplayName,
			Open:        account.Open,
			Currency:    account.Currency,
		})
	}
	return result
}

// ConvertProjects converts model project billing info to response projects
func ConvertProjects(projects []model.ProjectBillingInfo) []Project {
	result := make([]Project, 0, len(projects))
	for _, project := range projects {
		result = append(result, Project{
			ProjectID:      project.ProjectID,
			BillingAccount: project.BillingAccount,
			BillingEnabled: project.BillingEnabled,
		})
	}
	return result
}

// ConvertCostReport builds a cost report with total and currency derived
// from the rows themselves.
func ConvertCostReport(rows []model.CostRow, rng model.DateRange, groupBy model.GroupBy) *CostReport {
	entries := make([]CostEntry, 0, len(rows))
	var total float64
	currency := ""

	for _, row := range rows {
		entries = append(entries, CostEntry{Key: row.Key, Amount: row.Cost, Unit: row.Currency})
		total += row.Cost
		if currency == "" {
			currency = row.Currency
		}
	}
	if currency == "" {
		currency = "USD"
	}

	return &CostReport{
		StartDate: rng.Start.String(),
		EndDate:   rng.End.String(),
		GroupBy:   string(groupBy),
		Entries:   entries,
		Total:     total,
		Currency:  currency,
	}
}

// ConvertVerdict converts a diagnosis verdict into an export status
func ConvertVerdict(verdict diagnose.Verdict, table *model.ExportTable) *ExportStatus {
	status := &ExportStatus{
		Ready:  verdict.Kind == diagnose.Ready,
		State:  verdictState(verdict.Kind),
		Detail: verdict.Message(),
	}
	if table != nil {
		status.Table = table.FQN()
	}
	return status
}

func verdictState(kind diagnose.VerdictKind) string {
	switch kind {
	case diagnose.NoExportConfigured:
		return "no_export_configured"
	case diagnose.TableTooYoung:
		return "table_too_young"
	case diagnose.ExportStalled:
		return "export_stalled"
	case diagnose.DateRangeUncovered:
		return "date_range_uncovered"
	default:
		return "ready"
	}
}
