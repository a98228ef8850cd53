package gcpcosts

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportTable() *model.ExportTable {
	return &model.ExportTable{
		ProjectID: "my-proj",
		DatasetID: "billing_export",
		TableID:   "gcp_billing_export_v1_012345_ABCDEF_678901",
	}
}

func mustRange(t *testing.T, start, end string) model.DateRange {
	r, err := model.ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestBuildQueryRejectsInvertedRange(t *testing.T) {
	rng := model.DateRange{
		Start: civil.Date{Year: 2025, Month: 1, Day: 10},
		End:   civil.Date{Year: 2025, Month: 1, Day: 5},
	}

	_, _, err := BuildQuery(exportTable(), rng, model.GroupByService, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date range")
}

func TestBuildQueryServiceGrouping(t *testing.T) {
	sql, params, err := BuildQuery(exportTable(), mustRange(t, "2025-01-01", "2025-01-31"), model.GroupByService, "")
	require.NoError(t, err)

	assert.Contains(t, sql, "service.description AS category")
	assert.Contains(t, sql, "`my-proj.billing_export.gcp_billing_export_v1_012345_ABCDEF_678901`")
	assert.Contains(t, sql, "DATE(usage_start_time) BETWEEN @start_date AND @end_date")
	assert.Contains(t, sql, "ORDER BY total_cost DESC")
	assert.NotContains(t, sql, "@project_id")
	assert.Len(t, params, 2)
}

func TestBuildQueryTruncationPerUnit(t *testing.T) {
	sql, _, err := BuildQuery(exportTable(), mustRange(t, "2025-01-01", "2025-01-31"), model.GroupByDay, "")
	require.NoError(t, err)
	assert.Contains(t, sql, "CAST(DATE(usage_start_time) AS STRING) AS category")

	sql, _, err = BuildQuery(exportTable(), mustRange(t, "2025-01-01", "2025-01-31"), model.GroupByMonth, "")
	require.NoError(t, err)
	assert.Contains(t, sql, "FORMAT_DATE('%Y-%m', DATE(usage_start_time)) AS category")
}

func TestBuildQueryProjectFilter(t *testing.T) {
	sql, params, err := BuildQuery(exportTable(), mustRange(t, "2025-01-01", "2025-01-31"), model.GroupByProject, "other-proj")
	require.NoError(t, err)

	assert.Contains(t, sql, "project.id = @project_id")
	require.Len(t, params, 3)
	assert.Equal(t, "project_id", params[2].Name)
	assert.Equal(t, "other-proj", params[2].Value)
}

func TestBuildQueryModelGrouping(t *testing.T) {
	sql, _, err := BuildQuery(exportTable(), mustRange(t, "2025-01-01", "2025-01-31"), model.GroupByModel, "")
	require.NoError(t, err)

	assert.Contains(t, sql, "goog-vertex-ai-model-id")
	assert.Contains(t, sql, "sku.description AS sku_description")
	assert.Contains(t, sql, "GROUP BY service_name, sku_description, model_id, currency")
}
