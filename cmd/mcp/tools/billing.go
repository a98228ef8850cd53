package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/elC0mpa/gcp-bill-doctor/cmd/mcp/response"
	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/elC0mpa/gcp-bill-doctor/service/diagnose"
	gcpbilling "github.com/elC0mpa/gcp-bill-doctor/service/gcp/billing"
	gcpcosts "github.com/elC0mpa/gcp-bill-doctor/service/gcp/costs"
	gcpexport "github.com/elC0mpa/gcp-bill-doctor/service/gcp/export"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterBillingTools registers all billing tools with the MCP server
func RegisterBillingTools(s *server.MCPServer, projectID, billingAccount string) {
	s.AddTool(
		mcp.NewTool("gcp_list_billing_accounts",
			mcp.WithDescription("List GCP billing accounts visible to the caller, with open/closed state and currency."),
		),
		makeListAccountsHandler(),
	)

	s.AddTool(
		mcp.NewTool("gcp_list_projects",
			mcp.WithDescription("List GCP projects and their billing status. Uses GCP_BILLING_ACCOUNT when set, otherwise walks every visible billing account."),
		),
		makeListProjectsHandler(billingAccount),
	)

	s.AddTool(
		mcp.NewTool("gcp_get_costs",
			mcp.WithDescription("Get GCP costs from the BigQuery billing export, grouped by a dimension. Requires GCP_PROJECT_ID and GCP_BILLING_ACCOUNT environment variables."),
			mcp.WithString("group_by",
				mcp.Description("Grouping dimension: service, project, day, month, ai or model. Defaults to service."),
			),
			mcp.WithString("start_date",
				mcp.Description("Start date (YYYY-MM-DD). Defaults to 30 days ago."),
			),
			mcp.WithString("end_date",
				mcp.Description("End date (YYYY-MM-DD). Defaults to today."),
			),
			mcp.WithString("project",
				mcp.Description("Optional project ID to filter costs by."),
			),
		),
		makeGetCostsHandler(projectID, billingAccount),
	)

	s.AddTool(
		mcp.NewTool("gcp_check_export",
			mcp.WithDescription("Check whether the BigQuery billing export is configured and has usable data. Requires GCP_PROJECT_ID and GCP_BILLING_ACCOUNT environment variables."),
		),
		makeCheckExportHandler(projectID, billingAccount),
	)
}

func makeListAccountsHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		billingSvc, err := gcpbilling.NewService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create billing service: %v", err)), nil
		}

		accounts, err := billingSvc.ListAccounts(ctx, "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list billing accounts: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertAccounts(accounts), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeListProjectsHandler(billingAccount string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		billingSvc, err := gcpbilling.NewService(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create billing service: %v", err)), nil
		}

		projects, err := billingSvc.ListProjects(ctx, billingAccount)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list projects: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertProjects(projects), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeGetCostsHandler(projectID, billingAccount string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if projectID == "" {
			return mcp.NewToolResultError("GCP_PROJECT_ID environment variable is required"), nil
		}
		if billingAccount == "" {
			return mcp.NewToolResultError("GCP_BILLING_ACCOUNT environment variable is required for cost analysis"), nil
		}

		groupBy, err := model.ParseGroupBy(request.GetString("group_by", "service"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		rng, err := parseRange(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		table, verdict, exportSvc, err := evaluateExport(ctx, projectID, billingAccount, rng)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer exportSvc.Close()

		if verdict.Kind != diagnose.Ready {
			data, _ := json.MarshalIndent(response.ConvertVerdict(verdict, table), "", "  ")
			return mcp.NewToolResultText(string(data)), nil
		}

		costSvc, err := gcpcosts.NewService(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create cost service: %v", err)), nil
		}
		defer costSvc.Close()

		rows, err := costSvc.GetCosts(ctx, table, rng, groupBy, request.GetString("project", ""), "")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get costs: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertCostReport(rows, rng, groupBy), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeCheckExportHandler(projectID, billingAccount string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if projectID == "" {
			return mcp.NewToolResultError("GCP_PROJECT_ID environment variable is required"), nil
		}
		if billingAccount == "" {
			return mcp.NewToolResultError("GCP_BILLING_ACCOUNT environment variable is required"), nil
		}

		rng, err := parseRange(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		table, verdict, exportSvc, err := evaluateExport(ctx, projectID, billingAccount, rng)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		defer exportSvc.Close()

		data, _ := json.MarshalIndent(response.ConvertVerdict(verdict, table), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

// evaluateExport discovers and diagnoses the export table. The caller owns
// closing the returned export service.
func evaluateExport(ctx context.Context, projectID, billingAccount string, rng model.DateRange) (*model.ExportTable, diagnose.Verdict, gcpexport.ExportService, error) {
	exportSvc, err := gcpexport.NewService(ctx, projectID)
	if err != nil {
		return nil, diagnose.Verdict{}, nil, fmt.Errorf("failed to create export service: %w", err)
	}

	table, err := exportSvc.FindExportTable(ctx, billingAccount)
	if err != nil {
		var notFound *model.NotFoundError
		if !errors.As(err, &notFound) {
			exportSvc.Close()
			return nil, diagnose.Verdict{}, nil, fmt.Errorf("failed to find export table: %w", err)
		}
		table = nil
	}
	if table != nil {
		exportSvc.Describe(ctx, table)
	}

	verdict := diagnose.NewService().Evaluate(table, rng, billingAccount)
	return table, verdict, exportSvc, nil
}

func parseRange(request mcp.CallToolRequest) (model.DateRange, error) {
	endDate := request.GetString("end_date", time.Now().Format("2006-01-02"))
	startDate := request.GetString("start_date", time.Now().AddDate(0, 0, -30).Format("2006-01-02"))
	return model.ParseDateRange(startDate, endDate)
}
