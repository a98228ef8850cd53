package flag

import (
	"testing"
	"time"

	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCostFlags() model.Flags {
	return model.Flags{
		Costs:          true,
		BillingAccount: "012345-ABCDEF-678901",
		GroupBy:        "service",
		Format:         "table",
	}
}

func TestValidateFillsDateDefaults(t *testing.T) {
	flags, err := Validate(validCostFlags())
	require.NoError(t, err)

	assert.Equal(t, time.Now().Format("2006-01-02"), flags.EndDate)
	assert.Equal(t, time.Now().AddDate(0, 0, -30).Format("2006-01-02"), flags.StartDate)
}

func TestValidateKeepsExplicitDates(t *testing.T) {
	f := validCostFlags()
	f.StartDate = "2025-03-01"
	f.EndDate = "2025-03-15"

	flags, err := Validate(f)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", flags.StartDate)
	assert.Equal(t, "2025-03-15", flags.EndDate)
}

func TestValidateRequiresBillingAccountForCosts(t *testing.T) {
	f := validCostFlags()
	f.BillingAccount = ""

	_, err := Validate(f)
	assert.ErrorContains(t, err, "--billing-account is required")
}

func TestValidateAllowsListingWithoutBillingAccount(t *testing.T) {
	_, err := Validate(model.Flags{
		ListAccounts: true,
		GroupBy:      "service",
		Format:       "table",
	})
	assert.NoError(t, err)
}

func TestValidateRejectsUnknownGroupBy(t *testing.T) {
	f := validCostFlags()
	f.GroupBy = "region"

	_, err := Validate(f)
	assert.ErrorContains(t, err, "invalid group-by")
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	f := validCostFlags()
	f.Format = "yaml"

	_, err := Validate(f)
	assert.ErrorContains(t, err, "invalid format")
}

func TestValidateRejectsInvertedDates(t *testing.T) {
	f := validCostFlags()
	f.StartDate = "2025-05-10"
	f.EndDate = "2025-05-01"

	_, err := Validate(f)
	assert.ErrorContains(t, err, "invalid date range")
}
