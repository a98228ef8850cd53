package gcpcosts

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/elC0mpa/gcp-bill-doctor/service/classify"
	"google.golang.org/api/iterator"
)

func NewService(ctx context.Context, projectID string) (*service, error) {
	bqClient, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}

	return &service{
		bqClient: bqClient,
		debugf:   func(string, ...any) {},
	}, nil
}

func (s *service) SetDebugLogger(debugf func(format string, args ...any)) {
	s.debugf = debugf
}

// Close closes the BigQuery client
func (s *service) Close() error {
	return s.bqClient.Close()
}

// GetCosts implements CostService. currency is used only for the
// synthesized 0.00 row when the query matches nothing.
func (s *service) GetCosts(ctx context.Context, table *model.ExportTable, rng model.DateRange, groupBy model.GroupBy, projectFilter, currency string) ([]model.CostRow, error) {
	sql, params, err := BuildQuery(table, rng, groupBy, projectFilter)
	if err != nil {
		return nil, err
	}
	s.debugf("generated query:%s", sql)

	query := s.bqClient.Query(sql)
	query.Parameters = params

	it, err := query.Read(ctx)
	if err != nil {
		return nil, &model.QueryError{Err: err}
	}

	var rows []model.CostRow
	switch groupBy {
	case model.GroupByAI, model.GroupByModel:
		raw, err := readClassifiedRows(it)
		if err != nil {
			return nil, err
		}
		rows = MergeByLabel(raw, groupBy)
	default:
		rows, err = readCategoryRows(it)
		if err != nil {
			return nil, err
		}
	}

	if len(rows) == 0 {
		return []model.CostRow{SynthesizeZeroRow(currency)}, nil
	}

	return rows, nil
}

// SynthesizeZeroRow is the single "Ready but no usage" row: a genuine total
// of 0.00, reported instead of an empty result set.
func SynthesizeZeroRow(currency string) model.CostRow {
	if currency == "" {
		currency = "USD"
	}
	return model.CostRow{Key: "Total", Cost: 0, Currency: currency}
}

// MergeByLabel tags every raw row with its classification label and sums
// costs per (label, currency). Two raw rows resolving to the same label
// collapse into one output row.
func MergeByLabel(raw []classifiedRow, groupBy model.GroupBy) []model.CostRow {
	type key struct {
		label    string
		currency string
	}

	merged := map[key]float64{}
	for _, row := range raw {
		var label string
		if groupBy == model.GroupByModel {
			label = classify.ModelLabel(row.ServiceName, row.SKU, row.ModelID)
		} else {
			skuOrModel := row.ModelID
			if skuOrModel == "" {
				skuOrModel = row.SKU
			}
			label = classify.Category(row.ServiceName, skuOrModel)
		}
		merged[key{label, row.Currency}] += row.Cost
	}

	rows := make([]model.CostRow, 0, len(merged))
	for k, cost := range merged {
		rows = append(rows, model.CostRow{Key: k.label, Cost: cost, Currency: k.currency})
	}
	sortByCostDesc(rows)
	return rows
}

func readClassifiedRows(it *bigquery.RowIterator) ([]classifiedRow, error) {
	var raw []classifiedRow
	for {
		var row struct {
			ServiceName string              `bigquery:"service_name"`
			SKU         bigquery.NullString `bigquery:"sku_description"`
			ModelID     bigquery.NullString `bigquery:"model_id"`
			TotalCost   float64             `bigquery:"total_cost"`
			Currency    string              `bigquery:"currency"`
		}

		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read BigQuery row: %w", err)
		}

		raw = append(raw, classifiedRow{
			ServiceName: row.ServiceName,
			SKU:         row.SKU.StringVal,
			ModelID:     row.ModelID.StringVal,
			Cost:        row.TotalCost,
			Currency:    row.Currency,
		})
	}
	return raw, nil
}

func readCategoryRows(it *bigquery.RowIterator) ([]model.CostRow, error) {
	var rows []model.CostRow
	for {
		var row struct {
			Category  bigquery.NullString `bigquery:"category"`
			TotalCost float64             `bigquery:"total_cost"`
			Currency  string              `bigquery:"currency"`
		}

		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read BigQuery row: %w", err)
		}

		key := row.Category.StringVal
		if !row.Category.Valid || key == "" {
			key = "Unknown"
		}

		rows = append(rows, model.CostRow{
			Key:      key,
			Cost:     row.TotalCost,
			Currency: row.Currency,
		})
	}
	return rows, nil
}

func sortByCostDesc(rows []model.CostRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Cost != rows[j].Cost {
			return rows[i].Cost > rows[j].Cost
		}
		return rows[i].Key < rows[j].Key
	})
}
