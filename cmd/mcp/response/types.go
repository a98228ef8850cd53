package response

// BillingAccount represents a billing account visible to the caller
type BillingAccount struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Open        bool   `json:"open"`
	Currency    string `json:"currency"`
}

// Project represents a project and its billing association
type Project struct {
	ProjectID      string `json:"project_id"`
	BillingAccount string `json:"billing_account"`
	BillingEnabled bool   `json:"billing_enabled"`
}

// CostEntry represents cost for a single group (service, project, day...)
type CostEntry struct {
	Key    string  `json:"key"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// CostReport represents cost data for a time period
type CostReport struct {
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	GroupBy   string      `json:"group_by"`
	Entries   []CostEntry `json:"entries"`
	Total     float64     `json:"total"`
	Currency  string      `json:"currency"`
}

// ExportStatus represents the availability of the BigQuery billing export
type ExportStatus struct {
	Ready  bool   `json:"ready"`
	State  string `json:"state"`
	Table  string `json:"table,omitempty"`
	Detail string `json:"detail"`
}
