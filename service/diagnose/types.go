package diagnose

import (
	"time"

	"github.com/elC0mpa/gcp-bill-doctor/model"
)

// VerdictKind enumerates the export readiness states
type VerdictKind int

const (
	// NoExportConfigured: no table matching the export naming convention exists
	NoExportConfigured VerdictKind = iota
	// TableTooYoung: the table exists, holds no rows, and is still within
	// the expected export propagation delay
	TableTooYoung
	// ExportStalled: the table exists, holds no rows, and the propagation
	// delay has passed. The console configuration needs verifying.
	ExportStalled
	// DateRangeUncovered: the table has rows but none inside the requested range
	DateRangeUncovered
	// Ready: a cost query can be answered. Zero matching rows then means a
	// genuine total of 0.00, never missing data.
	Ready
)

// Verdict is the diagnostic classification of export readiness. Kind selects
// which payload fields are meaningful.
type Verdict struct {
	Kind VerdictKind

	// TableTooYoung / ExportStalled
	Elapsed   time.Duration
	Remaining time.Duration

	// DateRangeUncovered
	Requested model.DateRange
	Available model.DateRange

	// Account the diagnosis ran for, used in messages
	Account string
}

type DiagnoseService interface {
	Evaluate(table *model.ExportTable, requested model.DateRange, billingAccountID string) Verdict
}
