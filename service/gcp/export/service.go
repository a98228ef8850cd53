package gcpexport

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/elC0mpa/gcp-bill-doctor/model"
	"google.golang.org/api/iterator"
)

// Datasets scanned before the full sweep; the console suggests these names
// when configuring billing export.
var preferredDatasets = []string{"billing_export", "billing_data", "billing"}

func NewService(ctx context.Context, projectID string) (*service, error) {
	bqClient, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create BigQuery client: %w", err)
	}

	return &service{
		projectID: projectID,
		bqClient:  bqClient,
		debugf:    func(string, ...any) {},
	}, nil
}

// SetDebugLogger routes per-dataset/table enumeration output somewhere
// visible. The default logger discards everything.
func (s *service) SetDebugLogger(debugf func(format string, args ...any)) {
	s.debugf = debugf
}

// Close closes the BigQuery client
func (s *service) Close() error {
	return s.bqClient.Close()
}

// TablePatterns returns the table ID fragments GCP uses for billing export
// tables of the given account, dashes replaced with underscores.
func TablePatterns(billingAccountID string) []string {
	clean := strings.ReplaceAll(billingAccountID, "-", "_")
	return []string{
		"gcp_billing_export_v1_" + clean,
		"gcp_billing_export_resource_v1_" + clean,
	}
}

// MatchesExportTable reports whether a table ID looks like a billing export
// table for the account behind patterns.
func MatchesExportTable(tableID string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(tableID, pattern) {
			return true
		}
	}
	return false
}

// FindExportTable implements ExportService. It scans the well-known export
// dataset names first, then every remaining dataset, and returns a
// NotFoundError when no table matches the export naming convention.
func (s *service) FindExportTable(ctx context.Context, billingAccountID string) (*model.ExportTable, error) {
	patterns := TablePatterns(billingAccountID)

	s.debugf("searching for billing export table, patterns: %v", patterns)

	datasets, err := s.listDatasetIDs(ctx)
	if err != nil {
		return nil, model.ClassifyAPIError(err)
	}
	s.debugf("found %d datasets in project %q", len(datasets), s.projectID)

	for _, datasetID := range datasets {
		if !isPreferredDataset(datasetID) {
			continue
		}
		if table := s.scanDataset(ctx, datasetID, patterns); table != nil {
			return table, nil
		}
	}

	for _, datasetID := range datasets {
		if isPreferredDataset(datasetID) {
			continue
		}
		if table := s.scanDataset(ctx, datasetID, patterns); table != nil {
			return table, nil
		}
	}

	s.debugf("no matching billing export table, expected a table like %s", patterns[0])

	return nil, &model.NotFoundError{
		Resource: fmt.Sprintf("billing export table for account %s", billingAccountID),
	}
}

// Describe implements ExportService. It fills in creation time, row count
// and min/max usage dates. Metadata failures degrade to unknown values: the
// table may have disappeared between discovery and this call.
func (s *service) Describe(ctx context.Context, table *model.ExportTable) {
	md, err := s.bqClient.DatasetInProject(table.ProjectID, table.DatasetID).Table(table.TableID).Metadata(ctx)
	if err != nil {
		s.debugf("could not fetch metadata for %s: %v", table.FQN(), err)
	} else {
		table.Created = md.CreationTime
		table.NumRows = md.NumRows
		s.debugf("table %s created %s, %d rows", table.FQN(), md.CreationTime, md.NumRows)
	}

	if table.NumRows == 0 {
		return
	}

	sql := fmt.Sprintf(
		"SELECT MIN(DATE(usage_start_time)) AS min_date, MAX(DATE(usage_start_time)) AS max_date FROM `%s`",
		table.FQN())

	it, err := s.bqClient.Query(sql).Read(ctx)
	if err != nil {
		s.debugf("could not check usage date bounds: %v", err)
		return
	}

	var row struct {
		MinDate bigquery.NullDate `bigquery:"min_date"`
		MaxDate bigquery.NullDate `bigquery:"max_date"`
	}
	if err := it.Next(&row); err != nil {
		s.debugf("could not read usage date bounds: %v", err)
		return
	}

	if row.MinDate.Valid {
		minDate := row.MinDate.Date
		table.MinDate = &minDate
	}
	if row.MaxDate.Valid {
		maxDate := row.MaxDate.Date
		table.MaxDate = &maxDate
	}
	if table.HasUsageBounds() {
		s.debugf("data available from %s to %s", *table.MinDate, *table.MaxDate)
	}
}

// Inventory implements ExportService: every dataset and table in the
// project with creation time and row count, for --check-export.
func (s *service) Inventory(ctx context.Context) ([]model.DatasetInfo, error) {
	inventory := []model.DatasetInfo{}

	it := s.bqClient.Datasets(ctx)
	for {
		dataset, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, model.ClassifyAPIError(err)
		}

		info := model.DatasetInfo{DatasetID: dataset.DatasetID, Tables: []model.TableInfo{}}

		tables := dataset.Tables(ctx)
		for {
			table, err := tables.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, model.ClassifyAPIError(err)
			}

			tableInfo := model.TableInfo{TableID: table.TableID}
			if md, err := table.Metadata(ctx); err == nil {
				tableInfo.Created = md.CreationTime
				tableInfo.NumRows = md.NumRows
			}
			info.Tables = append(info.Tables, tableInfo)
		}

		inventory = append(inventory, info)
	}

	return inventory, nil
}

func (s *service) listDatasetIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	it := s.bqClient.Datasets(ctx)
	for {
		dataset, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, dataset.DatasetID)
	}
	return ids, nil
}

func (s *service) scanDataset(ctx context.Context, datasetID string, patterns []string) *model.ExportTable {
	s.debugf("checking dataset %q", datasetID)

	it := s.bqClient.Dataset(datasetID).Tables(ctx)
	for {
		table, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			s.debugf("error listing tables in %q: %v", datasetID, err)
			return nil
		}

		s.debugf("  - %s", table.TableID)
		if MatchesExportTable(table.TableID, patterns) {
			return &model.ExportTable{
				ProjectID: s.projectID,
				DatasetID: datasetID,
				TableID:   table.TableID,
			}
		}
	}
}

func isPreferredDataset(datasetID string) bool {
	for _, preferred := range preferredDatasets {
		if datasetID == preferred {
			return true
		}
	}
	return false
}
