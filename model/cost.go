package model

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// GroupBy selects the dimension cost rows are aggregated on
type GroupBy string

const (
	GroupByService GroupBy = "service"
	GroupByProject GroupBy = "project"
	GroupByDay     GroupBy = "day"
	GroupByMonth   GroupBy = "month"
	GroupByAI      GroupBy = "ai"
	GroupByModel   GroupBy = "model"
)

func ParseGroupBy(value string) (GroupBy, error) {
	switch GroupBy(value) {
	case GroupByService, GroupByProject, GroupByDay, GroupByMonth, GroupByAI, GroupByModel:
		return GroupBy(value), nil
	}
	return "", fmt.Errorf("invalid group-by %q (expected service|project|day|month|ai|model)", value)
}

// Format selects the output encoding
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatTable, FormatCSV, FormatJSON:
		return Format(value), nil
	}
	return "", fmt.Errorf("invalid format %q (expected table|csv|json)", value)
}

// DateRange is an inclusive calendar date interval
type DateRange struct {
	Start civil.Date
	End   civil.Date
}

// ParseDateRange builds a validated range from two YYYY-MM-DD strings
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := civil.ParseDate(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: dates must be in YYYY-MM-DD format", start)
	}
	e, err := civil.ParseDate(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: dates must be in YYYY-MM-DD format", end)
	}
	r := DateRange{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("invalid date range: start %s is after end %s", r.Start, r.End)
	}
	return nil
}

// Intersects reports whether the two inclusive ranges share at least one day
func (r DateRange) Intersects(other DateRange) bool {
	return !r.End.Before(other.Start) && !r.Start.After(other.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start, r.End)
}

// CostRow is one aggregated cost line as returned by the grouping engine.
// Cost may be negative when credits or refunds outweigh usage.
type CostRow struct {
	Key      string  `json:"key"`
	Cost     float64 `json:"cost"`
	Currency string  `json:"currency"`
}
