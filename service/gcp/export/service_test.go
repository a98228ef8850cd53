package gcpexport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablePatterns(t *testing.T) {
	patterns := TablePatterns("012345-ABCDEF-678901")

	require.Len(t, patterns, 2)
	assert.Equal(t, "gcp_billing_export_v1_012345_ABCDEF_678901", patterns[0])
	assert.Equal(t, "gcp_billing_export_resource_v1_012345_ABCDEF_678901", patterns[1])
}

func TestMatchesExportTable(t *testing.T) {
	patterns := TablePatterns("012345-ABCDEF-678901")

	assert.True(t, MatchesExportTable("gcp_billing_export_v1_012345_ABCDEF_678901", patterns))
	assert.True(t, MatchesExportTable("gcp_billing_export_resource_v1_012345_ABCDEF_678901", patterns))

	// Tables for a different account never match.
	assert.False(t, MatchesExportTable("gcp_billing_export_v1_999999_FFFFFF_000000", patterns))
	assert.False(t, MatchesExportTable("my_custom_table", patterns))
	assert.False(t, MatchesExportTable("", patterns))
}
