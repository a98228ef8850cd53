package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []model.CostRow {
	return []model.CostRow{
		{Key: "Compute Engine", Cost: 123.456789, Currency: "USD"},
		{Key: "Vertex AI", Cost: 42.1, Currency: "USD"},
		{Key: "Cloud Storage", Cost: -3.25, Currency: "USD"},
	}
}

func asSet(rows []model.CostRow) map[model.CostRow]bool {
	set := make(map[model.CostRow]bool, len(rows))
	for _, row := range rows {
		set[row] = true
	}
	return set
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCostRows(&buf, sampleRows(), model.FormatCSV, "service"))

	parsed, err := ParseCostRowsCSV(&buf)
	require.NoError(t, err)

	assert.Equal(t, asSet(sampleRows()), asSet(parsed))
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCostRows(&buf, sampleRows(), model.FormatJSON, "service"))

	var parsed []model.CostRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	assert.Equal(t, asSet(sampleRows()), asSet(parsed))
}

func TestTableOutputIncludesTotal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCostRows(&buf, sampleRows(), model.FormatTable, "service"))

	out := buf.String()
	assert.Contains(t, out, "Compute Engine")
	assert.Contains(t, out, "123.46")
	// 123.456789 + 42.1 - 3.25
	assert.Contains(t, out, "Total: 162.31 USD")
}

func TestTableOutputZeroRow(t *testing.T) {
	var buf bytes.Buffer
	rows := []model.CostRow{{Key: "Total", Cost: 0, Currency: "USD"}}
	require.NoError(t, RenderCostRows(&buf, rows, model.FormatTable, "service"))

	assert.Contains(t, buf.String(), "Total: 0.00 USD")
}

func TestRenderAccountsCSV(t *testing.T) {
	var buf bytes.Buffer
	accounts := []model.BillingAccount{
		{ID: "012345-ABCDEF-678901", DisplayName: "Prod", Open: true, Currency: "USD"},
	}
	require.NoError(t, RenderAccounts(&buf, accounts, model.FormatCSV))

	out := buf.String()
	assert.Contains(t, out, "id,display_name,open,currency")
	assert.Contains(t, out, "012345-ABCDEF-678901,Prod,true,USD")
}
