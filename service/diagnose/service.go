package diagnose

import (
	"fmt"
	"strings"
	"time"

	"github.com/elC0mpa/gcp-bill-doctor/model"
)

// DefaultPropagationDelay is how long GCP documents billing data can take
// to appear after export is enabled.
const DefaultPropagationDelay = 24 * time.Hour

func NewService() *service {
	return &service{
		propagationDelay: DefaultPropagationDelay,
		now:              time.Now,
	}
}

type service struct {
	propagationDelay time.Duration
	now              func() time.Time
}

// SetPropagationDelay overrides the 24h threshold
func (s *service) SetPropagationDelay(delay time.Duration) {
	s.propagationDelay = delay
}

// Evaluate implements DiagnoseService. The rules run in order:
//
//  1. no table -> NoExportConfigured
//  2. zero rows and still within the propagation delay -> TableTooYoung;
//     zero rows past the delay -> ExportStalled
//  3. rows exist but none intersect the requested range -> DateRangeUncovered
//  4. otherwise Ready
//
// A table whose creation time could not be fetched counts as too young:
// without a timestamp the delay cannot have provably elapsed.
func (s *service) Evaluate(table *model.ExportTable, requested model.DateRange, billingAccountID string) Verdict {
	if table == nil {
		return Verdict{Kind: NoExportConfigured, Account: billingAccountID}
	}

	if table.NumRows == 0 {
		if table.Created.IsZero() {
			return Verdict{
				Kind:      TableTooYoung,
				Remaining: s.propagationDelay,
				Account:   billingAccountID,
			}
		}

		elapsed := s.now().Sub(table.Created)
		if elapsed < s.propagationDelay {
			return Verdict{
				Kind:      TableTooYoung,
				Elapsed:   elapsed,
				Remaining: s.propagationDelay - elapsed,
				Account:   billingAccountID,
			}
		}

		return Verdict{Kind: ExportStalled, Elapsed: elapsed, Account: billingAccountID}
	}

	if !table.HasUsageBounds() {
		// Rows exist but the bounds query failed; coverage cannot be
		// checked, so let the cost query answer.
		return Verdict{Kind: Ready, Account: billingAccountID}
	}

	available := table.AvailableRange()
	if !requested.Intersects(available) {
		return Verdict{
			Kind:      DateRangeUncovered,
			Requested: requested,
			Available: available,
			Account:   billingAccountID,
		}
	}

	return Verdict{Kind: Ready, Account: billingAccountID}
}

// Message renders the verdict for the user, always ending with a suggested
// next action.
func (v Verdict) Message() string {
	var b strings.Builder

	switch v.Kind {
	case NoExportConfigured:
		fmt.Fprintf(&b, "BigQuery billing export not found for account: %s\n\n", v.Account)
		b.WriteString("To enable billing export:\n")
		fmt.Fprintf(&b, "  1. Run: gcp-bill-setup --setup --billing-account %s --project YOUR_PROJECT\n", v.Account)
		b.WriteString("  2. Or manually configure in GCP Console -> Billing -> Billing export\n\n")
		b.WriteString("Note: Billing data becomes available ~24 hours after export is enabled.\n")
		b.WriteString("Tip: Run with --debug to see what datasets/tables were found.")

	case TableTooYoung:
		b.WriteString("Table exists but contains no data yet.\n")
		if v.Elapsed > 0 {
			fmt.Fprintf(&b, "Time elapsed since table creation: %.1f hours\n", v.Elapsed.Hours())
		}
		fmt.Fprintf(&b, "\nData should be available in ~%.1f hours (24 hours after creation).\n", v.Remaining.Hours())
		b.WriteString("Billing data export typically takes up to 24 hours after table creation. Try again later.")

	case ExportStalled:
		fmt.Fprintf(&b, "Table exists but still contains no data %.1f hours after creation.\n\n", v.Elapsed.Hours())
		b.WriteString("Possible issues:\n")
		b.WriteString("  1. Billing export not configured in GCP Console (only dataset/table created)\n")
		b.WriteString("  2. No usage/costs have been incurred yet\n")
		b.WriteString("  3. Export configuration error\n\n")
		b.WriteString("Verify billing export is enabled:\n")
		fmt.Fprintf(&b, "  https://console.cloud.google.com/billing/%s/export", strings.ReplaceAll(v.Account, "_", "-"))

	case DateRangeUncovered:
		fmt.Fprintf(&b, "No costs found in requested range: %s\n", v.Requested)
		fmt.Fprintf(&b, "Available data range: %s\n", v.Available)
		b.WriteString("Your requested date range is outside the available billing data. Adjust --start-date/--end-date.")

	case Ready:
		b.WriteString("Billing export is ready.")
	}

	return b.String()
}
