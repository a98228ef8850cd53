package main

import "os"

// Config holds environment-based configuration for the MCP server
type Config struct {
	ProjectID      string
	BillingAccount string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		ProjectID:      os.Getenv("GCP_PROJECT_ID"),
		BillingAccount: os.Getenv("GCP_BILLING_ACCOUNT"),
	}
}

// HasBilling returns true if cost analysis is fully configured
func (c *Config) HasBilling() bool {
	return c.ProjectID != "" && c.BillingAccount != ""
}
