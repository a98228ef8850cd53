package model

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroupBy(t *testing.T) {
	for _, valid := range []string{"service", "project", "day", "month", "ai", "model"} {
		groupBy, err := ParseGroupBy(valid)
		require.NoError(t, err)
		assert.Equal(t, GroupBy(valid), groupBy)
	}

	_, err := ParseGroupBy("region")
	assert.ErrorContains(t, err, "invalid group-by")

	_, err = ParseGroupBy("")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "csv", "json"} {
		format, err := ParseFormat(valid)
		require.NoError(t, err)
		assert.Equal(t, Format(valid), format)
	}

	_, err := ParseFormat("yaml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestParseDateRange(t *testing.T) {
	rng, err := ParseDateRange("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2025, Month: 1, Day: 1}, rng.Start)
	assert.Equal(t, civil.Date{Year: 2025, Month: 1, Day: 31}, rng.End)
	assert.Equal(t, "2025-01-01 to 2025-01-31", rng.String())
}

func TestParseDateRangeSingleDay(t *testing.T) {
	_, err := ParseDateRange("2025-06-15", "2025-06-15")
	assert.NoError(t, err)
}

func TestParseDateRangeRejectsInverted(t *testing.T) {
	_, err := ParseDateRange("2025-02-01", "2025-01-01")
	assert.ErrorContains(t, err, "start 2025-02-01 is after end 2025-01-01")
}

func TestParseDateRangeRejectsMalformed(t *testing.T) {
	_, err := ParseDateRange("01/02/2025", "2025-01-31")
	assert.ErrorContains(t, err, "YYYY-MM-DD")

	_, err = ParseDateRange("2025-01-01", "tomorrow")
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestDateRangeIntersects(t *testing.T) {
	jan := DateRange{
		Start: civil.Date{Year: 2025, Month: 1, Day: 1},
		End:   civil.Date{Year: 2025, Month: 1, Day: 31},
	}
	feb := DateRange{
		Start: civil.Date{Year: 2025, Month: 2, Day: 1},
		End:   civil.Date{Year: 2025, Month: 2, Day: 28},
	}
	overlap := DateRange{
		Start: civil.Date{Year: 2025, Month: 1, Day: 31},
		End:   civil.Date{Year: 2025, Month: 2, Day: 5},
	}

	assert.False(t, jan.Intersects(feb))
	assert.False(t, feb.Intersects(jan))

	// Sharing a single boundary day counts as overlap.
	assert.True(t, jan.Intersects(overlap))
	assert.True(t, overlap.Intersects(feb))
}
