package flag

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/elC0mpa/gcp-bill-doctor/model"
)

func NewService() *service {
	return &service{}
}

func (s *service) GetParsedFlags() (model.Flags, error) {
	listAccounts := flag.Bool("list-accounts", false, "List billing accounts")
	listProjects := flag.Bool("list-projects", false, "List projects and their billing status")
	costs := flag.Bool("costs", false, "Retrieve actual billing costs (requires BigQuery export)")
	checkExport := flag.Bool("check-export", false, "List all BigQuery datasets and tables in the project")
	billingAccount := flag.String("billing-account", os.Getenv("GCP_BILLING_ACCOUNT"), "Billing account ID to filter/query")
	project := flag.String("project", "", "Filter costs by specific project ID")
	startDate := flag.String("start-date", "", "Start date for cost analysis (YYYY-MM-DD, default: 30 days ago)")
	endDate := flag.String("end-date", "", "End date for cost analysis (YYYY-MM-DD, default: today)")
	groupBy := flag.String("group-by", "service", "Group costs by dimension: service|project|day|month|ai|model")
	format := flag.String("format", "table", "Output format: table|csv|json")
	chart := flag.Bool("chart", false, "Draw a bar chart for day/month groupings")
	debug := flag.Bool("debug", false, "Show debug information for troubleshooting")

	flag.Parse()

	return Validate(model.Flags{
		ListAccounts:   *listAccounts,
		ListProjects:   *listProjects,
		Costs:          *costs,
		CheckExport:    *checkExport,
		BillingAccount: *billingAccount,
		Project:        *project,
		StartDate:      *startDate,
		EndDate:        *endDate,
		GroupBy:        model.GroupBy(*groupBy),
		Format:         model.Format(*format),
		Chart:          *chart,
		Debug:          *debug,
	})
}

// PrintUsage writes flag documentation to stderr
func (s *service) PrintUsage() {
	flag.Usage()
}

// Validate normalizes parsed flags, filling date defaults and rejecting
// invalid combinations before any remote call is made.
func Validate(f model.Flags) (model.Flags, error) {
	groupBy, err := model.ParseGroupBy(string(f.GroupBy))
	if err != nil {
		return f, err
	}
	f.GroupBy = groupBy

	format, err := model.ParseFormat(string(f.Format))
	if err != nil {
		return f, err
	}
	f.Format = format

	if f.Costs && f.BillingAccount == "" {
		return f, fmt.Errorf("--billing-account is required for cost analysis")
	}

	if f.EndDate == "" {
		f.EndDate = time.Now().Format("2006-01-02")
	}
	if f.StartDate == "" {
		f.StartDate = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}
	if _, err := model.ParseDateRange(f.StartDate, f.EndDate); err != nil {
		return f, err
	}

	return f, nil
}
