package gcpcosts

import (
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/gcp-bill-doctor/model"
)

// SQL expressions for the groupings resolved entirely inside BigQuery.
// Day/month truncate in the export's own timezone convention; no conversion
// is applied.
var groupExpressions = map[model.GroupBy]string{
	model.GroupByService: "service.description",
	model.GroupByProject: "project.id",
	model.GroupByDay:     "CAST(DATE(usage_start_time) AS STRING)",
	model.GroupByMonth:   "FORMAT_DATE('%Y-%m', DATE(usage_start_time))",
}

const vertexModelLabelSQL = "(SELECT value FROM UNNEST(system_labels) WHERE key = 'goog-vertex-ai-model-id' LIMIT 1)"

// BuildQuery renders the parameterized aggregation SQL for the chosen
// grouping. An invalid date range is rejected here, before any remote call.
func BuildQuery(table *model.ExportTable, rng model.DateRange, groupBy model.GroupBy, projectFilter string) (string, []bigquery.QueryParameter, error) {
	if err := rng.Validate(); err != nil {
		return "", nil, err
	}

	params := []bigquery.QueryParameter{
		{Name: "start_date", Value: rng.Start},
		{Name: "end_date", Value: rng.End},
	}

	filter := "DATE(usage_start_time) BETWEEN @start_date AND @end_date"
	if projectFilter != "" {
		filter += "\n\t\t\tAND project.id = @project_id"
		params = append(params, bigquery.QueryParameter{Name: "project_id", Value: projectFilter})
	}

	switch groupBy {
	case model.GroupByAI, model.GroupByModel:
		// Classification happens in-process after the query; the SQL only
		// narrows rows to (service, sku, model) combinations.
		sql := fmt.Sprintf(`
		SELECT
			service.description AS service_name,
			sku.description AS sku_description,
			%s AS model_id,
			SUM(cost) AS total_cost,
			currency
		FROM `+"`%s`"+`
		WHERE %s
		GROUP BY service_name, sku_description, model_id, currency`,
			vertexModelLabelSQL, table.FQN(), filter)
		return sql, params, nil

	default:
		expr, ok := groupExpressions[groupBy]
		if !ok {
			return "", nil, fmt.Errorf("invalid group-by %q", groupBy)
		}

		sql := fmt.Sprintf(`
		SELECT
			%s AS category,
			SUM(cost) AS total_cost,
			currency
		FROM `+"`%s`"+`
		WHERE %s
		GROUP BY category, currency
		ORDER BY total_cost DESC`,
			expr, table.FQN(), filter)
		return sql, params, nil
	}
}
