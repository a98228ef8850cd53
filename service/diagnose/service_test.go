package diagnose

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedService(now time.Time) *service {
	svc := NewService()
	svc.now = func() time.Time { return now }
	return svc
}

func date(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustRange(start, end string) model.DateRange {
	r, err := model.ParseDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func TestEvaluateNoTable(t *testing.T) {
	svc := fixedService(time.Now())

	verdict := svc.Evaluate(nil, mustRange("2025-01-01", "2025-01-31"), "012345-ABCDEF-678901")

	assert.Equal(t, NoExportConfigured, verdict.Kind)
	assert.Contains(t, verdict.Message(), "--setup")
	assert.Contains(t, verdict.Message(), "012345-ABCDEF-678901")
}

func TestEvaluateFreshEmptyTable(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := fixedService(now)

	table := &model.ExportTable{
		ProjectID: "proj",
		DatasetID: "billing_export",
		TableID:   "gcp_billing_export_v1_012345_ABCDEF_678901",
		Created:   now.Add(-5 * time.Minute),
		NumRows:   0,
	}

	verdict := svc.Evaluate(table, mustRange("2025-03-01", "2025-03-10"), "acct")

	require.Equal(t, TableTooYoung, verdict.Kind)
	assert.Equal(t, 5*time.Minute, verdict.Elapsed)
	assert.InDelta(t, (24*time.Hour).Hours(), verdict.Remaining.Hours(), 0.1)
}

func TestEvaluateStalledExport(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := fixedService(now)

	table := &model.ExportTable{
		Created: now.Add(-30 * time.Hour),
		NumRows: 0,
	}

	verdict := svc.Evaluate(table, mustRange("2025-03-01", "2025-03-10"), "acct")

	require.Equal(t, ExportStalled, verdict.Kind)
	assert.NotEqual(t, TableTooYoung, verdict.Kind)
	assert.Equal(t, 30*time.Hour, verdict.Elapsed)
	assert.Contains(t, verdict.Message(), "30.0 hours")
	assert.Contains(t, verdict.Message(), "Verify billing export")
}

func TestEvaluateDelayBoundaryIsExclusive(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := fixedService(now)

	table := &model.ExportTable{Created: now.Add(-24 * time.Hour), NumRows: 0}

	verdict := svc.Evaluate(table, mustRange("2025-03-01", "2025-03-10"), "acct")
	assert.Equal(t, ExportStalled, verdict.Kind)

	table.Created = now.Add(-24*time.Hour + time.Second)
	verdict = svc.Evaluate(table, mustRange("2025-03-01", "2025-03-10"), "acct")
	assert.Equal(t, TableTooYoung, verdict.Kind)
}

func TestEvaluateConfigurableDelay(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := fixedService(now)
	svc.SetPropagationDelay(48 * time.Hour)

	table := &model.ExportTable{Created: now.Add(-30 * time.Hour), NumRows: 0}

	verdict := svc.Evaluate(table, mustRange("2025-03-01", "2025-03-10"), "acct")

	require.Equal(t, TableTooYoung, verdict.Kind)
	assert.Equal(t, 18*time.Hour, verdict.Remaining)
}

func TestEvaluateUnknownCreationTime(t *testing.T) {
	svc := fixedService(time.Now())

	table := &model.ExportTable{NumRows: 0}

	verdict := svc.Evaluate(table, mustRange("2025-03-01", "2025-03-10"), "acct")

	require.Equal(t, TableTooYoung, verdict.Kind)
	assert.Equal(t, DefaultPropagationDelay, verdict.Remaining)
}

func TestEvaluateDateRangeUncovered(t *testing.T) {
	svc := fixedService(time.Now())

	minDate := date("2025-01-01")
	maxDate := date("2025-01-10")
	table := &model.ExportTable{
		Created: time.Now().Add(-72 * time.Hour),
		NumRows: 1200,
		MinDate: &minDate,
		MaxDate: &maxDate,
	}

	requested := mustRange("2025-02-01", "2025-02-05")
	verdict := svc.Evaluate(table, requested, "acct")

	require.Equal(t, DateRangeUncovered, verdict.Kind)
	assert.Equal(t, requested, verdict.Requested)
	assert.Equal(t, mustRange("2025-01-01", "2025-01-10"), verdict.Available)
	assert.Contains(t, verdict.Message(), "2025-02-01 to 2025-02-05")
	assert.Contains(t, verdict.Message(), "2025-01-01 to 2025-01-10")
}

func TestEvaluateReadyOnOverlap(t *testing.T) {
	svc := fixedService(time.Now())

	minDate := date("2025-01-01")
	maxDate := date("2025-01-10")
	table := &model.ExportTable{
		Created: time.Now().Add(-72 * time.Hour),
		NumRows: 1200,
		MinDate: &minDate,
		MaxDate: &maxDate,
	}

	// Single day of overlap is enough.
	verdict := svc.Evaluate(table, mustRange("2025-01-10", "2025-01-20"), "acct")
	assert.Equal(t, Ready, verdict.Kind)
}

func TestEvaluateReadyWhenBoundsUnknown(t *testing.T) {
	svc := fixedService(time.Now())

	table := &model.ExportTable{
		Created: time.Now().Add(-72 * time.Hour),
		NumRows: 1200,
	}

	verdict := svc.Evaluate(table, mustRange("2025-01-01", "2025-01-31"), "acct")
	assert.Equal(t, Ready, verdict.Kind)
}
