package model

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// ExportTable is a detected billing export table and what is known about it.
// Created is the zero time and NumRows is zero when the table metadata could
// not be fetched; MinDate/MaxDate are nil when the usage-date bounds query
// failed or the table is empty.
type ExportTable struct {
	ProjectID string
	DatasetID string
	TableID   string
	Created   time.Time
	NumRows   uint64
	MinDate   *civil.Date
	MaxDate   *civil.Date
}

// FQN returns the fully qualified project.dataset.table identifier
func (t *ExportTable) FQN() string {
	return fmt.Sprintf("%s.%s.%s", t.ProjectID, t.DatasetID, t.TableID)
}

// HasUsageBounds reports whether the min/max usage dates are known
func (t *ExportTable) HasUsageBounds() bool {
	return t.MinDate != nil && t.MaxDate != nil
}

// AvailableRange returns the usage dates covered by the exported rows.
// Only meaningful when HasUsageBounds is true.
func (t *ExportTable) AvailableRange() DateRange {
	if !t.HasUsageBounds() {
		return DateRange{}
	}
	return DateRange{Start: *t.MinDate, End: *t.MaxDate}
}

// TableInfo is one table in the export inventory listing
type TableInfo struct {
	TableID string    `json:"table_id"`
	Created time.Time `json:"created"`
	NumRows uint64    `json:"num_rows"`
}

// DatasetInfo is one dataset in the export inventory listing
type DatasetInfo struct {
	DatasetID string      `json:"dataset_id"`
	Tables    []TableInfo `json:"tables"`
}
