package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBreadcrumbAppendsInOrder(t *testing.T) {
	ClearBreadcrumbs()
	defer ClearBreadcrumbs()

	RecordBreadcrumb("backend", "resize requested", map[string]interface{}{"w": 80})
	RecordBreadcrumb("backend", "write failed", nil)

	got := GetBreadcrumbs()
	require.Len(t, got, 2)
	assert.Equal(t, "resize requested", got[0].Message)
	assert.Equal(t, "write failed", got[1].Message)
}

func TestRecordBreadcrumbDropsOldestPastCapacity(t *testing.T) {
	ClearBreadcrumbs()
	defer ClearBreadcrumbs()

	for i := 0; i < MaxBreadcrumbs+10; i++ {
		RecordBreadcrumb("backend", "tick", nil)
	}

	got := GetBreadcrumbs()
	assert.Len(t, got, MaxBreadcrumbs)
}

func TestClearBreadcrumbsEmptiesTrail(t *testing.T) {
	RecordBreadcrumb("backend", "tick", nil)
	ClearBreadcrumbs()
	assert.Empty(t, GetBreadcrumbs())
}

func TestGetBreadcrumbsReturnsDefensiveCopy(t *testing.T) {
	ClearBreadcrumbs()
	defer ClearBreadcrumbs()

	RecordBreadcrumb("backend", "tick", nil)
	got := GetBreadcrumbs()
	got[0].Message = "mutated"

	assert.Equal(t, "tick", GetBreadcrumbs()[0].Message)
}
