package model

// BillingAccount describes one billing account visible to the caller
type BillingAccount struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Open        bool   `json:"open"`
	Currency    string `json:"currency"`
}

// ProjectBillingInfo links a project to the billing account that pays for it
type ProjectBillingInfo struct {
	ProjectID      string `json:"project_id"`
	BillingAccount string `json:"billing_account"`
	BillingEnabled bool   `json:"billing_enabled"`
}
